package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

type AuditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Insert(ctx context.Context, event *entity.AuditEvent) error {
	metadata := event.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	query := `
		INSERT INTO audit_logs (action, table_name, record_id, old_values, new_values, metadata, created_at)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6::jsonb, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		event.Action,
		nullString(event.TableName),
		nullString(event.RecordID),
		jsonOrNull(event.OldValues),
		jsonOrNull(event.NewValues),
		jsonOrNull(metadata),
		event.CreatedAt,
	)
	return err
}

func jsonOrNull(v map[string]any) *string {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
