package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/http/middleware"
	"github.com/promptmetrics/promptmetrics-api/internal/usecase"
)

type waitlistSubmitter interface {
	Execute(ctx context.Context, input usecase.SubmitWaitlistInput) (*usecase.SubmitWaitlistOutput, error)
}

type WaitlistHandler struct {
	SubmitUC waitlistSubmitter
	Logger   *zap.Logger
}

func NewWaitlistHandler(uc waitlistSubmitter, logger *zap.Logger) *WaitlistHandler {
	return &WaitlistHandler{SubmitUC: uc, Logger: logger}
}

func (h *WaitlistHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitWaitlistInput
	if err := decodeJSON(r, &input); err != nil {
		middleware.RecordWaitlistSubmission("invalid")
		writeInvalidJSON(w)
		return
	}

	output, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		if upstreamFailure(err) {
			middleware.RecordIntegrationError("waitlist")
		}
		middleware.RecordWaitlistSubmission("error")
		writeError(w, h.Logger, err)
		return
	}

	middleware.RecordWaitlistSubmission("success")
	writeJSON(w, http.StatusOK, output)
}
