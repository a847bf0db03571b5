package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

type dashboardDeps struct {
	orgs     *MockOrganizationRepository
	profiles *MockProfileRepository
	analyses *MockAnalysisRepository
	rankllm  *MockRankLLMRepository
}

func newDashboardUseCase() (*DashboardUseCase, dashboardDeps) {
	d := dashboardDeps{
		orgs:     new(MockOrganizationRepository),
		profiles: new(MockProfileRepository),
		analyses: new(MockAnalysisRepository),
		rankllm:  new(MockRankLLMRepository),
	}
	uc := NewDashboardUseCase(d.orgs, d.profiles, d.analyses, d.rankllm, nil)
	uc.Clock = fixedClock{time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	return uc, d
}

var acmeOrg = &entity.Organization{ID: "org-1", Name: "acme.com", Slug: "acme-com", WebsiteURL: strPtr("https://acme.com")}

func TestDashboardMember(t *testing.T) {
	uc, d := newDashboardUseCase()

	d.profiles.On("FindByID", mock.Anything, "u1").Return(&entity.Profile{ID: "u1", Role: entity.RoleClient, OrganizationID: strPtr("org-1")}, nil)
	d.orgs.On("FindBySlug", mock.Anything, "acme-com").Return(acmeOrg, nil)
	d.analyses.On("FindLatestByDomain", mock.Anything, "acme.com").
		Return(&entity.AnalysisResult{ID: "an-1", UpdatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}, nil)
	d.rankllm.On("ListByDomain", mock.Anything, "acme.com", 10).Return([]*entity.RankLLMResult{{ID: "r1"}}, nil)

	out, err := uc.Execute(context.Background(), DashboardInput{UserID: "u1", Slug: "acme-com"})

	require.NoError(t, err)
	assert.Equal(t, "acme.com", out.Domain)
	require.NotNil(t, out.Analysis)
	assert.Equal(t, 2, out.Analysis.AnalysisAgeHours)
	assert.Len(t, out.RankLLM, 1)
}

func TestDashboardAdminWithoutData(t *testing.T) {
	uc, d := newDashboardUseCase()

	d.profiles.On("FindByID", mock.Anything, "admin").Return(&entity.Profile{ID: "admin", Role: entity.RoleAdmin}, nil)
	d.orgs.On("FindBySlug", mock.Anything, "acme-com").Return(acmeOrg, nil)
	d.analyses.On("FindLatestByDomain", mock.Anything, "acme.com").Return(nil, entity.ErrNotFound)
	d.rankllm.On("ListByDomain", mock.Anything, "acme.com", 10).Return(nil, nil)

	out, err := uc.Execute(context.Background(), DashboardInput{UserID: "admin", Slug: "acme-com"})

	require.NoError(t, err)
	assert.Nil(t, out.Analysis)
	assert.Empty(t, out.RankLLM)
}

func TestDashboardForbiddenForOtherOrganization(t *testing.T) {
	uc, d := newDashboardUseCase()
	auditRepo := new(MockAuditRepository)
	uc.Audit = &AuditLogger{Repo: auditRepo, Logger: zapNop(), Clock: SystemClock{}}

	d.profiles.On("FindByID", mock.Anything, "u2").Return(&entity.Profile{ID: "u2", Email: "bob@rival.com", Role: entity.RoleClient, OrganizationID: strPtr("org-2")}, nil)
	d.orgs.On("FindBySlug", mock.Anything, "acme-com").Return(acmeOrg, nil)
	auditRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *entity.AuditEvent) bool {
		return e.Action == AuditUnauthorizedAccess && e.Metadata["user_email"] == "bob***@rival.com"
	})).Return(nil)

	_, err := uc.Execute(context.Background(), DashboardInput{UserID: "u2", Slug: "acme-com"})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeForbidden, de.Code)
	auditRepo.AssertExpectations(t)
	d.analyses.AssertNotCalled(t, "FindLatestByDomain", mock.Anything, mock.Anything)
}

func TestDashboardErrors(t *testing.T) {
	t.Run("unknown organization", func(t *testing.T) {
		uc, d := newDashboardUseCase()
		d.profiles.On("FindByID", mock.Anything, "u1").Return(&entity.Profile{ID: "u1", Role: entity.RoleAdmin}, nil)
		d.orgs.On("FindBySlug", mock.Anything, "nope").Return(nil, entity.ErrNotFound)

		_, err := uc.Execute(context.Background(), DashboardInput{UserID: "u1", Slug: "nope"})

		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, CodeNotFound, de.Code)
	})

	t.Run("fan-out failure", func(t *testing.T) {
		uc, d := newDashboardUseCase()
		d.profiles.On("FindByID", mock.Anything, "u1").Return(&entity.Profile{ID: "u1", Role: entity.RoleAdmin}, nil)
		d.orgs.On("FindBySlug", mock.Anything, "acme-com").Return(acmeOrg, nil)
		d.analyses.On("FindLatestByDomain", mock.Anything, "acme.com").Return(nil, entity.ErrNotFound)
		d.rankllm.On("ListByDomain", mock.Anything, "acme.com", 10).Return(nil, errors.New("pool exhausted"))

		_, err := uc.Execute(context.Background(), DashboardInput{UserID: "u1", Slug: "acme-com"})

		assert.True(t, IsTechnicalError(err))
	})
}
