package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/n8n"
)

const (
	triggerSource       = "promptmetrics-api"
	triggerFrom         = "/analysis"
	triggerAnalysisFunc = "trigger-analysis"
)

type TriggerAnalysisInput struct {
	// any para distinguir "ausente" de "não é string"
	Domain any `json:"domain"`
}

type TriggerAnalysisOutput struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Domain        string         `json:"domain"`
	N8NResponse   map[string]any `json:"n8n_response,omitempty"`
	WebhookCalled bool           `json:"webhook_called"`
	WebhookStatus int            `json:"webhook_status,omitempty"`
	Warning       string         `json:"warning,omitempty"`
}

type TriggerAnalysisUseCase struct {
	N8N        AnalysisTrigger
	Audit      *AuditLogger
	Reporter   ErrorReporter
	Production bool
	Clock      Clock
	Logger     *zap.Logger
}

func NewTriggerAnalysisUseCase(trigger AnalysisTrigger, audit *AuditLogger, reporter ErrorReporter, production bool, logger *zap.Logger) *TriggerAnalysisUseCase {
	return &TriggerAnalysisUseCase{
		N8N:        trigger,
		Audit:      audit,
		Reporter:   reporter,
		Production: production,
		Clock:      SystemClock{},
		Logger:     logger,
	}
}

func (uc *TriggerAnalysisUseCase) Execute(ctx context.Context, input TriggerAnalysisInput) (*TriggerAnalysisOutput, error) {
	raw, ok := input.Domain.(string)
	if !ok || raw == "" {
		return nil, validationError("Domain is required and must be a string", nil)
	}

	domain := NormalizeDomain(raw)
	if !ValidDomain(domain) {
		return nil, validationError("Invalid domain format", map[string]any{"domain": raw})
	}

	if !uc.N8N.Configured() {
		if uc.Production {
			uc.Logger.Error("n8n webhook url not configured")
			return nil, &TechnicalError{Code: CodeUpstreamDown, Message: "Service temporarily unavailable"}
		}
		uc.Logger.Warn("n8n webhook url not configured, simulating trigger", zap.String("domain", domain))
		return &TriggerAnalysisOutput{
			Success: true,
			Message: "Analysis triggered successfully (simulated - N8N webhook not configured)",
			Domain:  domain,
			Warning: "N8N webhook URL not configured in environment",
		}, nil
	}

	payload := n8n.TriggerPayload{
		Domain:        domain,
		Timestamp:     uc.Clock.Now().Format("2006-01-02T15:04:05.000Z07:00"),
		Source:        triggerSource,
		TestMode:      !uc.Production,
		TriggeredFrom: triggerFrom,
	}

	res, err := uc.N8N.Trigger(ctx, payload)
	if err != nil {
		uc.recordAudit(ctx, domain, false)
		if uc.Reporter != nil {
			uc.Reporter.Report(ctx, triggerAnalysisFunc, err, map[string]any{"domain": domain})
		}

		var statusErr *n8n.StatusError
		if errors.As(err, &statusErr) {
			uc.Logger.Error("n8n rejected trigger",
				zap.String("domain", domain), zap.Int("status", statusErr.StatusCode))
			return nil, &TechnicalError{
				Code:    CodeUpstream,
				Message: "Failed to trigger analysis workflow",
				Details: map[string]any{
					"status":      statusErr.StatusCode,
					"status_text": statusErr.Status,
					"response":    statusErr.Body,
				},
				Err: err,
			}
		}

		uc.Logger.Error("n8n unreachable", zap.String("domain", domain), zap.Error(err))
		return nil, &TechnicalError{
			Code:    CodeUpstream,
			Message: "Failed to reach analysis workflow",
			Details: err.Error(),
			Err:     err,
		}
	}

	uc.recordAudit(ctx, domain, true)
	uc.Logger.Info("analysis triggered", zap.String("domain", domain), zap.Int("status", res.StatusCode))

	return &TriggerAnalysisOutput{
		Success:       true,
		Message:       "Analysis triggered successfully",
		Domain:        domain,
		N8NResponse:   res.Body,
		WebhookCalled: true,
		WebhookStatus: res.StatusCode,
	}, nil
}

func (uc *TriggerAnalysisUseCase) recordAudit(ctx context.Context, domain string, success bool) {
	action := AuditDomainAnalysisTriggered
	if !success {
		action = AuditDomainAnalysisFailed
	}
	uc.Audit.Record(ctx, entity.AuditEvent{
		Action:    action,
		TableName: "analysis_results",
		Metadata: map[string]any{
			"domain":  MaskDomain(domain),
			"success": success,
		},
	})
}
