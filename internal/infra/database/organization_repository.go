package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

const pgUniqueViolation = "23505"

type OrganizationRepository struct {
	DB *sql.DB
}

func NewOrganizationRepository(db *sql.DB) *OrganizationRepository {
	return &OrganizationRepository{DB: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, slug, website_url, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		org.ID,
		org.Name,
		org.Slug,
		org.WebsiteURL,
		org.LogoURL,
		org.CreatedAt,
		org.UpdatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return entity.ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("erro ao criar organização: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	return err
}

const organizationColumns = `id, name, slug, website_url, logo_url, created_at, updated_at`

func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*entity.Organization, error) {
	return r.findOne(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
}

func (r *OrganizationRepository) FindBySlug(ctx context.Context, slug string) (*entity.Organization, error) {
	return r.findOne(ctx, `SELECT `+organizationColumns+` FROM organizations WHERE slug = $1`, slug)
}

// FindByDomain casa o domínio normalizado com website_url (http ou https) ou com o nome.
func (r *OrganizationRepository) FindByDomain(ctx context.Context, domain string) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations
		WHERE website_url IN ($1, $2) OR name = $3
		ORDER BY created_at
		LIMIT 1`
	return r.findOne(ctx, query, "https://"+domain, "http://"+domain, domain)
}

func (r *OrganizationRepository) findOne(ctx context.Context, query string, args ...any) (*entity.Organization, error) {
	var org entity.Organization
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&org.ID,
		&org.Name,
		&org.Slug,
		&org.WebsiteURL,
		&org.LogoURL,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar organização: %w", err)
	}
	return &org, nil
}
