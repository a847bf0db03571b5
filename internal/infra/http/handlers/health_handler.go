package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/worker"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type BrokerConn interface {
	IsClosed() bool
}

type RankLLMStatusSource interface {
	Status() worker.RankLLMStatus
}

type HealthHandler struct {
	DB        Pinger
	RabbitMQ  BrokerConn
	RankLLM   RankLLMStatusSource
	Version   string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string                `json:"status"`
	Version      string                `json:"version"`
	Uptime       string                `json:"uptime"`
	Dependencies map[string]string     `json:"dependencies"`
	RankLLM      *worker.RankLLMStatus `json:"rankllm,omitempty"`
}

func NewHealthHandler(db Pinger, rabbitMQ BrokerConn, rankLLM RankLLMStatusSource, version string) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		RankLLM:   rankLLM,
		Version:   version,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Database
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	// RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	// RankLLM não derruba o status geral, o pipeline principal é o n8n
	var rankStatus *worker.RankLLMStatus
	if h.RankLLM != nil {
		s := h.RankLLM.Status()
		rankStatus = &s
		deps["rankllm"] = s.Status
	} else {
		deps["rankllm"] = worker.StatusNotConfigured
	}

	status := "healthy"
	for name, v := range deps {
		if name == "rankllm" {
			continue
		}
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
		RankLLM:      rankStatus,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
