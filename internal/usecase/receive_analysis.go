package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/queue"
)

const receiveAnalysisFunction = "receive-analysis"

type ReceiveAnalysisOutput struct {
	Success     bool        `json:"success"`
	ID          string      `json:"id"`
	Domain      string      `json:"domain"`
	Message     string      `json:"message"`
	DataSummary DataMetrics `json:"data_summary"`
}

type analysisPayload struct {
	Domain       any    `json:"domain"`
	AnalysisData any    `json:"analysis_data"`
	Status       string `json:"status"`
}

// ReceiveAnalysisUseCase grava o resultado enviado pelo workflow. A
// autenticação do webhook acontece antes, no middleware.
type ReceiveAnalysisUseCase struct {
	Repo     entity.AnalysisRepositoryInterface
	Events   EventPublisher
	Archive  PayloadArchiver
	Reporter ErrorReporter
	Clock    Clock
	Logger   *zap.Logger
}

func NewReceiveAnalysisUseCase(
	repo entity.AnalysisRepositoryInterface,
	events EventPublisher,
	archive PayloadArchiver,
	reporter ErrorReporter,
	logger *zap.Logger,
) *ReceiveAnalysisUseCase {
	return &ReceiveAnalysisUseCase{
		Repo:     repo,
		Events:   events,
		Archive:  archive,
		Reporter: reporter,
		Clock:    SystemClock{},
		Logger:   logger,
	}
}

func (uc *ReceiveAnalysisUseCase) Execute(ctx context.Context, raw []byte) (*ReceiveAnalysisOutput, error) {
	payload, keys, err := decodeAnalysisPayload(raw)
	if err != nil {
		uc.report(ctx, err, map[string]any{"step": "JSON parse", "body_length": len(raw)})
		return nil, err
	}

	domainStr, _ := payload.Domain.(string)
	analysisData, _ := payload.AnalysisData.(map[string]any)
	if domainStr == "" || analysisData == nil {
		derr := validationError("Missing required fields: domain, analysis_data", map[string]any{"received_keys": keys})
		uc.report(ctx, derr, map[string]any{"step": "Validation - missing required fields", "received_keys": keys})
		return nil, derr
	}

	summary, _ := analysisData["summary"].(string)
	_, scoreIsNumber := analysisData["score"].(float64)
	_, recsIsArray := analysisData["recommendations"].([]any)
	if summary == "" || !scoreIsNumber || !recsIsArray {
		derr := validationError(
			"Missing core analysis fields: summary (string), score (number), recommendations (array)",
			map[string]any{"received_keys": sortedKeys(analysisData)},
		)
		uc.report(ctx, derr, map[string]any{"step": "Validation - missing core fields", "domain": domainStr})
		return nil, derr
	}

	status := entity.AnalysisCompleted
	if payload.Status != "" {
		status = entity.AnalysisStatus(payload.Status)
		if !status.Valid() {
			derr := validationError("Invalid status", map[string]any{"status": payload.Status})
			uc.report(ctx, derr, map[string]any{"step": "Validation - invalid status", "domain": domainStr, "status": payload.Status})
			return nil, derr
		}
	}

	domain := NormalizeDomain(domainStr)
	if domain == "" {
		return nil, validationError("Invalid domain", nil)
	}

	processed, competitors := ProcessAnalysisData(entity.AnalysisData(analysisData))
	metrics := CalculateDataMetrics(processed, competitors)

	result := &entity.AnalysisResult{
		Domain:       domain,
		Status:       status,
		AnalysisData: processed,
	}
	if err := uc.Repo.Upsert(ctx, result); err != nil {
		uc.report(ctx, err, map[string]any{"step": "Database upsert", "domain": domain})
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to save analysis", Err: err}
	}

	uc.Logger.Info("analysis saved",
		zap.String("id", result.ID),
		zap.String("domain", domain),
		zap.String("status", string(status)),
		zap.Int("completeness_score", metrics.CompletenessScore),
		zap.Strings("llms_analyzed", metrics.LLMsAnalyzed),
		zap.Int("competitors_found", len(metrics.CompetitorsFound)),
		zap.Strings("sections_missing", metrics.SectionsMissing),
	)

	uc.archive(ctx, domain, raw)
	uc.publish(ctx, result, metrics)

	return &ReceiveAnalysisOutput{
		Success:     true,
		ID:          result.ID,
		Domain:      result.Domain,
		Message:     "Analysis received and saved successfully",
		DataSummary: metrics,
	}, nil
}

// decodeAnalysisPayload aceita objeto ou array (o n8n às vezes embrulha em lista).
func decodeAnalysisPayload(raw []byte) (*analysisPayload, []string, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, nil, validationError("Invalid JSON payload", err.Error())
	}

	if list, ok := parsed.([]any); ok {
		if len(list) == 0 {
			return nil, nil, validationError("Empty payload array", nil)
		}
		parsed = list[0]
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, nil, validationError("Payload must be a JSON object", nil)
	}

	p := &analysisPayload{Domain: obj["domain"], AnalysisData: obj["analysis_data"]}
	p.Status, _ = obj["status"].(string)
	return p, sortedKeys(obj), nil
}

func (uc *ReceiveAnalysisUseCase) archive(ctx context.Context, domain string, raw []byte) {
	if uc.Archive == nil {
		return
	}
	key, err := uc.Archive.Archive(ctx, domain, raw)
	if err != nil {
		uc.Logger.Warn("failed to archive analysis payload", zap.String("domain", domain), zap.Error(err))
		return
	}
	uc.Logger.Debug("analysis payload archived", zap.String("key", key))
}

func (uc *ReceiveAnalysisUseCase) publish(ctx context.Context, result *entity.AnalysisResult, metrics DataMetrics) {
	if uc.Events == nil {
		return
	}
	event := queue.AnalysisReceivedEvent{
		EventID:           uuid.New().String(),
		Domain:            result.Domain,
		Status:            string(result.Status),
		AnalysisID:        result.ID,
		CompletenessScore: metrics.CompletenessScore,
		ReceivedAt:        uc.Clock.Now(),
	}
	if err := uc.Events.PublishAnalysisReceived(ctx, event); err != nil {
		uc.Logger.Warn("failed to publish analysis.received", zap.String("domain", result.Domain), zap.Error(err))
	}
}

func (uc *ReceiveAnalysisUseCase) report(ctx context.Context, err error, details map[string]any) {
	if uc.Reporter == nil {
		return
	}
	var de *DomainError
	if errors.As(err, &de) {
		details["error_code"] = de.Code
	}
	uc.Reporter.Report(ctx, receiveAnalysisFunction, err, details)
}
