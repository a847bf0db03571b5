package rankllm

import (
	"fmt"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

type RerankRequest struct {
	Query     string                   `json:"query"`
	Documents []entity.RankLLMDocument `json:"documents"`
	Model     string                   `json:"model"`
	TopK      *int                     `json:"top_k,omitempty"`
	Domain    string                   `json:"domain"`
}

type RerankResponse struct {
	ID          string             `json:"id"`
	Domain      string             `json:"domain"`
	Query       string             `json:"query"`
	ModelUsed   string             `json:"model_used"`
	RankingData entity.RankingData `json:"ranking_data"`
	Status      string             `json:"status"`
	// datetime naive do pydantic, sem timezone
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type HealthCheck struct {
	Status          string   `json:"status"`
	ModelsAvailable []string `json:"models_available"`
	Uptime          float64  `json:"uptime"`
	Version         string   `json:"version"`
}

type ModelInfo struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Size           string   `json:"size"`
	Description    string   `json:"description"`
	RecommendedFor []string `json:"recommended_for"`
}

type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rankllm service returned %d: %s", e.StatusCode, e.Body)
}
