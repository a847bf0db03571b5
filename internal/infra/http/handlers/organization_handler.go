package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/http/middleware"
	"github.com/promptmetrics/promptmetrics-api/internal/usecase"
)

type organizationCreator interface {
	Execute(ctx context.Context, input usecase.CreateOrganizationInput) (*usecase.CreateOrganizationOutput, error)
}

type dashboardReader interface {
	Execute(ctx context.Context, input usecase.DashboardInput) (*usecase.DashboardOutput, error)
}

type redirectResolver interface {
	ExecuteForUser(ctx context.Context, userID string) (usecase.RedirectResult, error)
}

// OrganizationHandler cobre as rotas autenticadas (bearer JWT).
type OrganizationHandler struct {
	CreateUC    organizationCreator
	DashboardUC dashboardReader
	RedirectUC  redirectResolver
	Logger      *zap.Logger
}

func NewOrganizationHandler(create organizationCreator, dashboard dashboardReader, redirect redirectResolver, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{CreateUC: create, DashboardUC: dashboard, RedirectUC: redirect, Logger: logger}
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateOrganizationInput
	if err := decodeJSON(r, &input); err != nil {
		writeInvalidJSON(w)
		return
	}
	input.UserID = middleware.UserIDFrom(r.Context())

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *OrganizationHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	output, err := h.DashboardUC.Execute(r.Context(), usecase.DashboardInput{
		UserID: middleware.UserIDFrom(r.Context()),
		Slug:   chi.URLParam(r, "slug"),
	})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (h *OrganizationHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	result, err := h.RedirectUC.ExecuteForUser(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
