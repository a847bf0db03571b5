package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

const dashboardRankLLMLimit = 10

type DashboardInput struct {
	UserID string
	Slug   string
}

type DashboardOutput struct {
	Organization *entity.Organization    `json:"organization"`
	Domain       string                  `json:"domain"`
	Analysis     *AnalysisDataOutput     `json:"analysis"`
	RankLLM      []*entity.RankLLMResult `json:"rankllm"`
}

// DashboardUseCase monta a leitura do dashboard de uma organização.
type DashboardUseCase struct {
	Orgs     entity.OrganizationRepositoryInterface
	Profiles entity.ProfileRepositoryInterface
	Analyses entity.AnalysisRepositoryInterface
	RankLLM  entity.RankLLMRepositoryInterface
	Audit    *AuditLogger
	Clock    Clock
}

func NewDashboardUseCase(
	orgs entity.OrganizationRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	analyses entity.AnalysisRepositoryInterface,
	rankllm entity.RankLLMRepositoryInterface,
	audit *AuditLogger,
) *DashboardUseCase {
	return &DashboardUseCase{
		Orgs:     orgs,
		Profiles: profiles,
		Analyses: analyses,
		RankLLM:  rankllm,
		Audit:    audit,
		Clock:    SystemClock{},
	}
}

func (uc *DashboardUseCase) Execute(ctx context.Context, input DashboardInput) (*DashboardOutput, error) {
	profile, err := uc.Profiles.FindByID(ctx, input.UserID)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, &DomainError{Code: CodeUnauthorized, Message: "Profile not found"}
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to load profile", Err: err}
	}

	org, err := uc.Orgs.FindBySlug(ctx, input.Slug)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, &DomainError{Code: CodeNotFound, Message: "Organization not found"}
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to load organization", Err: err}
	}

	member := profile.HasOrganization() && *profile.OrganizationID == org.ID
	if profile.Role != entity.RoleAdmin && !member {
		uc.Audit.Record(ctx, entity.AuditEvent{
			Action:    AuditUnauthorizedAccess,
			TableName: "organizations",
			RecordID:  org.ID,
			Metadata:  map[string]any{"user_email": MaskEmail(profile.Email), "slug": org.Slug},
		})
		return nil, &DomainError{Code: CodeForbidden, Message: "Access denied to this organization"}
	}

	domain := organizationDomain(org)
	out := &DashboardOutput{Organization: org, Domain: domain, RankLLM: []*entity.RankLLMResult{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := uc.Analyses.FindLatestByDomain(gctx, domain)
		if errors.Is(err, entity.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out.Analysis = newAnalysisDataOutput(result, uc.Clock.Now())
		return nil
	})
	g.Go(func() error {
		results, err := uc.RankLLM.ListByDomain(gctx, domain, dashboardRankLLMLimit)
		if err != nil {
			return err
		}
		if results != nil {
			out.RankLLM = results
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to load dashboard data", Err: err}
	}

	return out, nil
}

// organizationDomain: o domínio analisado vem do website_url; sem ele, do nome.
func organizationDomain(org *entity.Organization) string {
	if org.WebsiteURL != nil && *org.WebsiteURL != "" {
		return NormalizeDomain(*org.WebsiteURL)
	}
	return NormalizeDomain(org.Name)
}
