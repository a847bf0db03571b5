package entity

import (
	"context"
	"time"
)

// Lead é uma inscrição na lista de espera do site.
type Lead struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"` // PENDING, FORWARDED, FAILED
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	LeadPending   = "PENDING"
	LeadForwarded = "FORWARDED"
	LeadFailed    = "FAILED"
)

type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *Lead) error
	UpdateStatus(ctx context.Context, email, status string) error
}
