package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

const (
	AuditDomainAnalysisTriggered = "domain_analysis_triggered"
	AuditDomainAnalysisFailed    = "domain_analysis_failed"
	AuditOrganizationCreated     = "organization_created"
	AuditUnauthorizedAccess      = "unauthorized_access_attempt"
)

// AuditLogger grava eventos de auditoria sem nunca quebrar o fluxo principal.
type AuditLogger struct {
	Repo   entity.AuditRepositoryInterface
	Logger *zap.Logger
	Clock  Clock
}

func NewAuditLogger(repo entity.AuditRepositoryInterface, logger *zap.Logger) *AuditLogger {
	return &AuditLogger{Repo: repo, Logger: logger, Clock: SystemClock{}}
}

func (a *AuditLogger) Record(ctx context.Context, event entity.AuditEvent) {
	if a == nil {
		return
	}
	event.CreatedAt = a.Clock.Now()

	a.Logger.Debug("audit",
		zap.String("action", event.Action),
		zap.String("table", event.TableName),
		zap.String("record_id", event.RecordID),
		zap.Any("metadata", event.Metadata),
	)

	if a.Repo == nil {
		return
	}
	if err := a.Repo.Insert(context.WithoutCancel(ctx), &event); err != nil {
		a.Logger.Error("failed to log audit event", zap.String("action", event.Action), zap.Error(err))
	}
}

// MaskEmail keeps the first three characters of the local part.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "invalid-email"
	}
	if len(local) > 3 {
		local = local[:3]
	}
	return local + "***@" + domain
}

// MaskDomain reduz "app.acme.com.br" para "app.br".
func MaskDomain(domain string) string {
	if domain == "" {
		return "unknown-domain"
	}
	clean := schemePrefix.ReplaceAllString(domain, "")
	parts := strings.Split(clean, ".")
	if len(parts) >= 2 {
		return parts[0] + "." + parts[len(parts)-1]
	}
	return clean
}
