package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/http/middleware"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/rankllm"
)

const (
	StatusHealthy       = "healthy"
	StatusUnhealthy     = "unhealthy"
	StatusUnknown       = "unknown"
	StatusNotConfigured = "not configured"
)

type HealthChecker interface {
	Configured() bool
	Health(ctx context.Context) (*rankllm.HealthCheck, error)
	Models(ctx context.Context) ([]rankllm.ModelInfo, error)
}

type RankLLMStatus struct {
	Status          string              `json:"status"`
	ModelsAvailable []string            `json:"models_available,omitempty"`
	Version         string              `json:"version,omitempty"`
	Models          []rankllm.ModelInfo `json:"models,omitempty"`
	CheckedAt       time.Time           `json:"checked_at"`
	Error           string              `json:"error,omitempty"`
}

// RankLLMHealthWorker consulta o /health do microserviço periodicamente e
// guarda o último resultado para o /health da API.
type RankLLMHealthWorker struct {
	client       HealthChecker
	tickInterval time.Duration
	timeout      time.Duration
	logger       *zap.Logger

	mu   sync.RWMutex
	last RankLLMStatus
}

func NewRankLLMHealthWorker(client HealthChecker, interval time.Duration, logger *zap.Logger) *RankLLMHealthWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RankLLMHealthWorker{
		client:       client,
		tickInterval: interval,
		timeout:      10 * time.Second,
		logger:       logger,
		last:         RankLLMStatus{Status: StatusUnknown},
	}
}

func (w *RankLLMHealthWorker) Start(ctx context.Context) {
	if !w.client.Configured() {
		w.set(RankLLMStatus{Status: StatusNotConfigured, CheckedAt: time.Now()})
		w.logger.Info("rankllm health worker disabled: service url not configured")
		return
	}

	w.logger.Info("rankllm health worker started", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.check(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("rankllm health worker stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *RankLLMHealthWorker) Status() RankLLMStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last
}

func (w *RankLLMHealthWorker) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	hc, err := w.client.Health(ctx)
	if err != nil {
		w.logger.Warn("rankllm health check failed", zap.Error(err))
		w.set(RankLLMStatus{Status: StatusUnhealthy, CheckedAt: time.Now(), Error: err.Error()})
		return
	}

	status := StatusHealthy
	if hc.Status != StatusHealthy {
		status = StatusUnhealthy
	}
	st := RankLLMStatus{
		Status:          status,
		ModelsAvailable: hc.ModelsAvailable,
		Version:         hc.Version,
		CheckedAt:       time.Now(),
	}

	// catálogo de modelos é informativo, falha não derruba o status
	if status == StatusHealthy {
		models, err := w.client.Models(ctx)
		if err != nil {
			w.logger.Warn("rankllm models listing failed", zap.Error(err))
		} else {
			st.Models = models
		}
	}
	w.set(st)
}

func (w *RankLLMHealthWorker) set(s RankLLMStatus) {
	w.mu.Lock()
	prev := w.last.Status
	w.last = s
	w.mu.Unlock()

	middleware.SetDependencyHealth("rankllm", s.Status == StatusHealthy)
	if prev != s.Status {
		w.logger.Info("rankllm status changed", zap.String("from", prev), zap.String("to", s.Status))
	}
}
