package handlers

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/http/middleware"
	"github.com/promptmetrics/promptmetrics-api/internal/usecase"
)

type analysisTrigger interface {
	Execute(ctx context.Context, input usecase.TriggerAnalysisInput) (*usecase.TriggerAnalysisOutput, error)
}

type analysisReceiver interface {
	Execute(ctx context.Context, raw []byte) (*usecase.ReceiveAnalysisOutput, error)
}

type analysisReader interface {
	Execute(ctx context.Context, input usecase.GetAnalysisDataInput) (*usecase.GetAnalysisDataOutput, error)
}

// AnalysisHandler expõe o ciclo trigger -> n8n -> receive -> leitura.
type AnalysisHandler struct {
	TriggerUC analysisTrigger
	ReceiveUC analysisReceiver
	GetUC     analysisReader
	Logger    *zap.Logger
}

func NewAnalysisHandler(trigger analysisTrigger, receive analysisReceiver, get analysisReader, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{TriggerUC: trigger, ReceiveUC: receive, GetUC: get, Logger: logger}
}

func (h *AnalysisHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var input usecase.TriggerAnalysisInput
	if err := decodeJSON(r, &input); err != nil {
		middleware.RecordAnalysisTriggered("invalid")
		writeInvalidJSON(w)
		return
	}

	output, err := h.TriggerUC.Execute(r.Context(), input)
	if err != nil {
		if upstreamFailure(err) {
			middleware.RecordIntegrationError("n8n")
		}
		middleware.RecordAnalysisTriggered("error")
		writeError(w, h.Logger, err)
		return
	}

	if output.WebhookCalled {
		middleware.RecordAnalysisTriggered("success")
	} else {
		middleware.RecordAnalysisTriggered("simulated")
	}
	writeJSON(w, http.StatusOK, output)
}

// Receive é chamado pelo n8n. O middleware de webhook já validou o segredo.
func (h *AnalysisHandler) Receive(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes*5))
	if err != nil {
		writeInvalidJSON(w)
		return
	}

	output, err := h.ReceiveUC.Execute(r.Context(), raw)
	if err != nil {
		middleware.RecordAnalysisReceived("rejected")
		writeError(w, h.Logger, err)
		return
	}

	middleware.RecordAnalysisReceived("accepted")
	h.Logger.Info("analysis received",
		zap.String("domain", output.Domain),
		zap.String("id", output.ID),
		zap.Int("completeness_score", output.DataSummary.CompletenessScore),
	)
	writeJSON(w, http.StatusOK, output)
}

func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	var input usecase.GetAnalysisDataInput
	if err := decodeJSON(r, &input); err != nil {
		writeInvalidJSON(w)
		return
	}

	output, err := h.GetUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}
