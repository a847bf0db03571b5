package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RankLLMStatus string

const (
	RankLLMPending    RankLLMStatus = "pending"
	RankLLMProcessing RankLLMStatus = "processing"
	RankLLMCompleted  RankLLMStatus = "completed"
	RankLLMFailed     RankLLMStatus = "failed"
)

// RankLLMModels são os rerankers servidos pelo microserviço.
var RankLLMModels = []string{"monot5", "zephyr", "vicuna", "duot5"}

const DefaultRankLLMModel = "monot5"

func IsRankLLMModel(name string) bool {
	for _, m := range RankLLMModels {
		if m == name {
			return true
		}
	}
	return false
}

type RankLLMDocument struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Title    string         `json:"title,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type RankLLMCandidate struct {
	DocID string         `json:"docid"`
	Score float64        `json:"score"`
	Rank  int            `json:"rank"`
	Doc   map[string]any `json:"doc"`
}

// RankingMetrics guarda as métricas do serviço como recebidas
// (processing_time_ms, total_documents, top_score, score_range, ...).
type RankingMetrics map[string]any

func (m RankingMetrics) ProcessingTimeMS() float64 {
	v, _ := m["processing_time_ms"].(float64)
	return v
}

type RankingData struct {
	Query      map[string]string  `json:"query"`
	Candidates []RankLLMCandidate `json:"candidates"`
	Metrics    RankingMetrics     `json:"metrics,omitempty"`
}

type RankLLMResult struct {
	ID          string        `json:"id" db:"id"`
	Domain      string        `json:"domain" db:"domain"`
	Query       string        `json:"query" db:"query"`
	ModelUsed   string        `json:"model_used" db:"model_used"`
	RankingData RankingData   `json:"ranking_data" db:"-"`
	Status      RankLLMStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

func NewRankLLMResult(domain, query, model string, data RankingData) *RankLLMResult {
	now := time.Now()
	return &RankLLMResult{
		ID:          uuid.New().String(),
		Domain:      domain,
		Query:       query,
		ModelUsed:   model,
		RankingData: data,
		Status:      RankLLMCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type RankLLMRepositoryInterface interface {
	Create(ctx context.Context, result *RankLLMResult) error
	ListByDomain(ctx context.Context, domain string, limit int) ([]*RankLLMResult, error)
}
