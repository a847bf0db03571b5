package entity

import (
	"context"
	"time"
)

type AuditEvent struct {
	Action    string         `json:"action"`
	TableName string         `json:"table_name,omitempty"`
	RecordID  string         `json:"record_id,omitempty"`
	OldValues map[string]any `json:"old_values,omitempty"`
	NewValues map[string]any `json:"new_values,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type AuditRepositoryInterface interface {
	Insert(ctx context.Context, event *AuditEvent) error
}
