package entity

import (
	"context"
	"time"
)

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Profile espelha a linha de profiles criada no signup (trigger do BaaS).
type Profile struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	OrganizationID *string   `json:"organization_id,omitempty"`
	InviteCode     *string   `json:"invite_code,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Role vem de user_roles; não é coluna de profiles.
	Role Role `json:"role"`
}

func (p *Profile) HasOrganization() bool {
	return p.OrganizationID != nil && *p.OrganizationID != ""
}

type UserRole struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileRepositoryInterface interface {
	// FindByID carrega o profile já com o papel resolvido.
	FindByID(ctx context.Context, id string) (*Profile, error)
	AssignOrganization(ctx context.Context, profileID, organizationID string) error
	ListEmailsByOrganization(ctx context.Context, organizationID string) ([]string, error)
}
