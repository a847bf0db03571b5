package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

type CreateOrganizationInput struct {
	UserID string `json:"-"`
	Domain string `json:"domain"`
}

type CreateOrganizationOutput struct {
	Success        bool   `json:"success"`
	OrganizationID string `json:"organization_id"`
	Domain         string `json:"domain"`
	Slug           string `json:"slug"`
}

type CreateOrganizationUseCase struct {
	Orgs     entity.OrganizationRepositoryInterface
	Profiles entity.ProfileRepositoryInterface
	Audit    *AuditLogger
	Logger   *zap.Logger
}

func NewCreateOrganizationUseCase(
	orgs entity.OrganizationRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	audit *AuditLogger,
	logger *zap.Logger,
) *CreateOrganizationUseCase {
	return &CreateOrganizationUseCase{Orgs: orgs, Profiles: profiles, Audit: audit, Logger: logger}
}

func (uc *CreateOrganizationUseCase) Execute(ctx context.Context, input CreateOrganizationInput) (*CreateOrganizationOutput, error) {
	if input.UserID == "" {
		return nil, &DomainError{Code: CodeUnauthorized, Message: "Unauthorized"}
	}
	if input.Domain == "" {
		return nil, validationError("Domain is required", nil)
	}

	domain := NormalizeDomain(input.Domain)
	if !ValidDomain(domain) {
		return nil, validationError("Invalid domain format", map[string]any{"domain": input.Domain})
	}

	profile, err := uc.Profiles.FindByID(ctx, input.UserID)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, &DomainError{Code: CodeNotFound, Message: "Profile not found"}
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to load profile", Err: err}
	}
	// um cliente pertence a no máximo uma organização
	if profile.HasOrganization() {
		return nil, &DomainError{Code: CodeConflict, Message: "User already belongs to an organization"}
	}

	org := entity.NewOrganizationForDomain(domain)

	txn := NewTransaction(uc.Logger)
	txn.AddOperation("create_organization", func(ctx context.Context) error {
		return uc.Orgs.Create(ctx, org)
	})
	txn.AddCompensation("delete_organization", func(ctx context.Context) error {
		return uc.Orgs.Delete(ctx, org.ID)
	})
	txn.AddOperation("assign_profile", func(ctx context.Context) error {
		return uc.Profiles.AssignOrganization(ctx, input.UserID, org.ID)
	})

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrSlugTaken) {
			return nil, &DomainError{Code: CodeConflict, Message: "Organization already exists for this domain", Details: map[string]any{"slug": org.Slug}}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to create organization", Err: err}
	}

	uc.Audit.Record(ctx, entity.AuditEvent{
		Action:    AuditOrganizationCreated,
		TableName: "organizations",
		RecordID:  org.ID,
		NewValues: map[string]any{"slug": org.Slug},
		Metadata: map[string]any{
			"domain":     MaskDomain(domain),
			"user_email": MaskEmail(profile.Email),
		},
	})
	uc.Logger.Info("organization created", zap.String("organization_id", org.ID), zap.String("slug", org.Slug))

	return &CreateOrganizationOutput{
		Success:        true,
		OrganizationID: org.ID,
		Domain:         domain,
		Slug:           org.Slug,
	}, nil
}
