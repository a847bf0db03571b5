package database

import (
	"context"
	"database/sql"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert por e-mail. Uma nova inscrição volta o lead para PENDING.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO waitlist_leads (email, name, phone, status, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			name = COALESCE(EXCLUDED.name, waitlist_leads.name),
			phone = COALESCE(EXCLUDED.phone, waitlist_leads.phone),
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, status, created_at, updated_at
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		lead.Email,
		nullString(lead.Name),
		nullString(lead.Phone),
		entity.LeadPending,
	).Scan(
		&lead.ID,
		&lead.Status,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, email, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE waitlist_leads SET status = $1, updated_at = NOW() WHERE email = $2`,
		status, email,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}
