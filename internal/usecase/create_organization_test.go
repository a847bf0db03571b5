package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

func newCreateOrgUseCase() (*CreateOrganizationUseCase, *MockOrganizationRepository, *MockProfileRepository) {
	orgs := new(MockOrganizationRepository)
	profiles := new(MockProfileRepository)
	return NewCreateOrganizationUseCase(orgs, profiles, nil, zap.NewNop()), orgs, profiles
}

func TestCreateOrganizationSuccess(t *testing.T) {
	uc, orgs, profiles := newCreateOrgUseCase()

	profiles.On("FindByID", mock.Anything, "user-1").Return(&entity.Profile{ID: "user-1", Email: "ana@acme.com", Role: entity.RoleClient}, nil)
	orgs.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.Organization) bool {
		return o.Name == "acme.com.br" && o.Slug == "acme-com-br" && *o.WebsiteURL == "https://acme.com.br"
	})).Return(nil)
	profiles.On("AssignOrganization", mock.Anything, "user-1", mock.AnythingOfType("string")).Return(nil)

	out, err := uc.Execute(context.Background(), CreateOrganizationInput{UserID: "user-1", Domain: "https://www.acme.com.br/"})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, "acme.com.br", out.Domain)
	assert.Equal(t, "acme-com-br", out.Slug)
	assert.NotEmpty(t, out.OrganizationID)
	orgs.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestCreateOrganizationCompensatesOnAssignFailure(t *testing.T) {
	uc, orgs, profiles := newCreateOrgUseCase()
	var createdID string

	profiles.On("FindByID", mock.Anything, "user-1").Return(&entity.Profile{ID: "user-1"}, nil)
	orgs.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		createdID = args.Get(1).(*entity.Organization).ID
	}).Return(nil)
	profiles.On("AssignOrganization", mock.Anything, "user-1", mock.Anything).Return(errors.New("rls denied"))
	orgs.On("Delete", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), CreateOrganizationInput{UserID: "user-1", Domain: "acme.com"})

	var te *TechnicalError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, CodeDatabase, te.Code)
	orgs.AssertCalled(t, "Delete", mock.Anything, createdID)
}

func TestCreateOrganizationErrors(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		uc, _, _ := newCreateOrgUseCase()
		_, err := uc.Execute(context.Background(), CreateOrganizationInput{Domain: "acme.com"})
		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, CodeUnauthorized, de.Code)
	})

	t.Run("missing domain", func(t *testing.T) {
		uc, _, _ := newCreateOrgUseCase()
		_, err := uc.Execute(context.Background(), CreateOrganizationInput{UserID: "u"})
		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, CodeValidation, de.Code)
	})

	t.Run("already linked", func(t *testing.T) {
		uc, orgs, profiles := newCreateOrgUseCase()
		profiles.On("FindByID", mock.Anything, "u").Return(&entity.Profile{ID: "u", OrganizationID: strPtr("org-9")}, nil)

		_, err := uc.Execute(context.Background(), CreateOrganizationInput{UserID: "u", Domain: "acme.com"})

		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, CodeConflict, de.Code)
		orgs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("slug taken", func(t *testing.T) {
		uc, orgs, profiles := newCreateOrgUseCase()
		profiles.On("FindByID", mock.Anything, "u").Return(&entity.Profile{ID: "u"}, nil)
		orgs.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("insert: %w", entity.ErrSlugTaken))

		_, err := uc.Execute(context.Background(), CreateOrganizationInput{UserID: "u", Domain: "acme.com"})

		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, CodeConflict, de.Code)
		orgs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
