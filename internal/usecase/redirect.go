package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

const (
	PathAdmin       = "/admin"
	PathDemo        = "/demo"
	PathDomainSetup = "/domain-setup"

	DemoEmail = "demo@example.com"
)

type RedirectResult struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// PostLoginRedirectUseCase decide para onde o usuário vai depois do login.
// Nunca falha: qualquer problema com a organização manda para /domain-setup.
type PostLoginRedirectUseCase struct {
	Profiles entity.ProfileRepositoryInterface
	Orgs     entity.OrganizationRepositoryInterface
	Logger   *zap.Logger
}

func NewPostLoginRedirectUseCase(profiles entity.ProfileRepositoryInterface, orgs entity.OrganizationRepositoryInterface, logger *zap.Logger) *PostLoginRedirectUseCase {
	return &PostLoginRedirectUseCase{Profiles: profiles, Orgs: orgs, Logger: logger}
}

func (uc *PostLoginRedirectUseCase) Execute(ctx context.Context, profile *entity.Profile) RedirectResult {
	switch profile.Role {
	case entity.RoleAdmin:
		return RedirectResult{Path: PathAdmin, Reason: "admin"}
	case entity.RoleClient:
		return uc.clientRedirect(ctx, profile)
	default:
		return RedirectResult{Path: PathDomainSetup, Reason: "unknown_role"}
	}
}

func (uc *PostLoginRedirectUseCase) clientRedirect(ctx context.Context, profile *entity.Profile) RedirectResult {
	if profile.Email == DemoEmail {
		return RedirectResult{Path: PathDemo, Reason: "demo_account"}
	}
	if !profile.HasOrganization() {
		return RedirectResult{Path: PathDomainSetup, Reason: "no_organization"}
	}

	org, err := uc.Orgs.FindByID(ctx, *profile.OrganizationID)
	if errors.Is(err, entity.ErrNotFound) {
		return RedirectResult{Path: PathDomainSetup, Reason: "organization_not_found"}
	}
	if err != nil {
		uc.Logger.Warn("organization lookup failed on redirect",
			zap.String("profile_id", profile.ID), zap.Error(err))
		return RedirectResult{Path: PathDomainSetup, Reason: "organization_lookup_failed"}
	}

	if org.WebsiteURL == nil || *org.WebsiteURL == "" {
		return RedirectResult{Path: PathDomainSetup, Reason: "organization_without_website"}
	}
	if org.Slug == "" {
		return RedirectResult{Path: PathDomainSetup, Reason: "organization_without_slug"}
	}
	return RedirectResult{Path: "/home/" + org.Slug, Reason: "organization_dashboard"}
}

// ExecuteForUser carrega o profile (com papel) e aplica a decisão.
func (uc *PostLoginRedirectUseCase) ExecuteForUser(ctx context.Context, userID string) (RedirectResult, error) {
	profile, err := uc.Profiles.FindByID(ctx, userID)
	if errors.Is(err, entity.ErrNotFound) {
		return RedirectResult{}, &DomainError{Code: CodeNotFound, Message: "profile not found"}
	}
	if err != nil {
		return RedirectResult{}, &TechnicalError{Code: CodeDatabase, Message: "failed to load profile", Err: err}
	}
	return uc.Execute(ctx, profile), nil
}
