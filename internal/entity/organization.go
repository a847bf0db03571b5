package entity

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	WebsiteURL *string   `json:"website_url,omitempty"`
	LogoURL    *string   `json:"logo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// NewOrganizationForDomain monta a organização de um cliente a partir do domínio já normalizado.
func NewOrganizationForDomain(domain string) *Organization {
	website := "https://" + domain
	now := time.Now()
	return &Organization{
		ID:         uuid.New().String(),
		Name:       domain,
		Slug:       Slugify(domain),
		WebsiteURL: &website,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Slugify turns "acme.com.br" into "acme-com-br".
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(slug, "-")
}

type OrganizationRepositoryInterface interface {
	Create(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Organization, error)
	FindBySlug(ctx context.Context, slug string) (*Organization, error)
	FindByDomain(ctx context.Context, domain string) (*Organization, error)
}
