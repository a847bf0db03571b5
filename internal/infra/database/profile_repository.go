package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// FindByID já resolve o papel via user_roles. Sem linha em user_roles o papel
// fica vazio e o redirect cai no caso "papel desconhecido".
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	query := `
		SELECT p.id, COALESCE(p.full_name, ''), p.email, p.organization_id, p.invite_code,
		       p.created_at, p.updated_at, COALESCE(ur.role, '')
		FROM profiles p
		LEFT JOIN user_roles ur ON ur.user_id = p.id
		WHERE p.id = $1
	`

	var p entity.Profile
	var role string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.FullName,
		&p.Email,
		&p.OrganizationID,
		&p.InviteCode,
		&p.CreatedAt,
		&p.UpdatedAt,
		&role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar profile: %w", err)
	}

	p.Role = entity.Role(role)
	return &p, nil
}

func (r *ProfileRepository) AssignOrganization(ctx context.Context, profileID, organizationID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE profiles SET organization_id = $1, updated_at = NOW() WHERE id = $2`,
		organizationID, profileID,
	)
	if err != nil {
		return fmt.Errorf("erro ao vincular organização: %w", err)
	}
	return expectOneRow(res)
}

func (r *ProfileRepository) ListEmailsByOrganization(ctx context.Context, organizationID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT email FROM profiles WHERE organization_id = $1 AND email <> '' ORDER BY created_at`,
		organizationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
