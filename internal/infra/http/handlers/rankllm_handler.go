package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/http/middleware"
	"github.com/promptmetrics/promptmetrics-api/internal/usecase"
)

type rankLLMTrigger interface {
	Execute(ctx context.Context, input usecase.TriggerRankLLMInput) (*usecase.TriggerRankLLMOutput, error)
}

type rankLLMReader interface {
	Execute(ctx context.Context, input usecase.GetRankLLMDataInput) (*usecase.GetRankLLMDataOutput, error)
}

type RankLLMHandler struct {
	TriggerUC rankLLMTrigger
	GetUC     rankLLMReader
	Logger    *zap.Logger
}

func NewRankLLMHandler(trigger rankLLMTrigger, get rankLLMReader, logger *zap.Logger) *RankLLMHandler {
	return &RankLLMHandler{TriggerUC: trigger, GetUC: get, Logger: logger}
}

func (h *RankLLMHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var input usecase.TriggerRankLLMInput
	if err := decodeJSON(r, &input); err != nil {
		writeInvalidJSON(w)
		return
	}

	output, err := h.TriggerUC.Execute(r.Context(), input)
	if err != nil {
		if upstreamFailure(err) {
			middleware.RecordIntegrationError("rankllm")
		}
		middleware.RecordRankLLMRequest("error")
		writeError(w, h.Logger, err)
		return
	}

	middleware.RecordRankLLMRequest("success")
	writeJSON(w, http.StatusOK, output)
}

type rankLLMNotFound struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *RankLLMHandler) Get(w http.ResponseWriter, r *http.Request) {
	var input usecase.GetRankLLMDataInput
	if err := decodeJSON(r, &input); err != nil {
		writeInvalidJSON(w)
		return
	}

	output, err := h.GetUC.Execute(r.Context(), input)
	if err != nil {
		// o front espera data: null no 404, não o corpo de erro padrão
		var de *usecase.DomainError
		if errors.As(err, &de) && de.Code == usecase.CodeNotFound {
			writeJSON(w, http.StatusNotFound, rankLLMNotFound{Message: de.Message})
			return
		}
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}
