package usecase

import (
	"context"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/n8n"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/rankllm"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/waitlist"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/queue"
)

// AnalysisTrigger dispara o workflow de análise (n8n).
type AnalysisTrigger interface {
	Configured() bool
	Trigger(ctx context.Context, payload n8n.TriggerPayload) (*n8n.TriggerResult, error)
}

type Reranker interface {
	Configured() bool
	Rerank(ctx context.Context, input rankllm.RerankRequest) (*rankllm.RerankResponse, error)
}

type WaitlistForwarder interface {
	Configured() bool
	Submit(ctx context.Context, form waitlist.Form) (*waitlist.Reply, error)
}

// ErrorReporter é best-effort: nunca devolve erro para o chamador.
type ErrorReporter interface {
	Report(ctx context.Context, function string, err error, details map[string]any)
}

type EventPublisher interface {
	PublishAnalysisReceived(ctx context.Context, event queue.AnalysisReceivedEvent) error
}

type PayloadArchiver interface {
	Archive(ctx context.Context, domain string, payload []byte) (string, error)
}

type EmailService interface {
	SendAnalysisReady(to, domain, dashboardURL string) error
	SendWaitlistConfirmation(to, name string) error
}
