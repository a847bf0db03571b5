package entity

import (
	"context"
	"time"
)

type AnalysisStatus string

const (
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

func (s AnalysisStatus) Valid() bool {
	switch s {
	case AnalysisProcessing, AnalysisCompleted, AnalysisFailed:
		return true
	}
	return false
}

// AnalysisData é o blob jsonb gravado pelo workflow. Mantido como mapa para
// preservar chaves que o dashboard ainda não conhece.
type AnalysisData map[string]any

// AnalysisResult: no máximo um "atual" por domínio (upsert em domain).
type AnalysisResult struct {
	ID           string         `json:"id"`
	Domain       string         `json:"domain"`
	Status       AnalysisStatus `json:"status"`
	AnalysisData AnalysisData   `json:"analysis_data"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type AnalysisRepositoryInterface interface {
	Upsert(ctx context.Context, result *AnalysisResult) error
	FindLatestByDomain(ctx context.Context, domain string) (*AnalysisResult, error)
}
