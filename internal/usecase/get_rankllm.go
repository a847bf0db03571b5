package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

const (
	defaultRankLLMLimit = 10
	maxRankLLMLimit     = 100
)

type GetRankLLMDataInput struct {
	Domain string `json:"domain"`
	Limit  *int   `json:"limit,omitempty"`
}

type RankLLMSummary struct {
	TotalDocuments   int     `json:"total_documents"`
	TopScore         float64 `json:"top_score"`
	ProcessingTime   float64 `json:"processing_time"`
	ModelPerformance any     `json:"model_performance"`
}

type RankLLMResultView struct {
	*entity.RankLLMResult
	Summary RankLLMSummary `json:"summary"`
}

type RankLLMAggregate struct {
	TotalAnalyses         int       `json:"total_analyses"`
	ModelsUsed            []string  `json:"models_used"`
	AverageProcessingTime float64   `json:"average_processing_time"`
	LatestAnalysis        time.Time `json:"latest_analysis"`
	SuccessRate           float64   `json:"success_rate"`
}

type GetRankLLMDataOutput struct {
	Success bool                `json:"success"`
	Data    []RankLLMResultView `json:"data"`
	Metrics RankLLMAggregate    `json:"metrics"`
	Message string              `json:"message"`
}

type GetRankLLMDataUseCase struct {
	Repo entity.RankLLMRepositoryInterface
}

func NewGetRankLLMDataUseCase(repo entity.RankLLMRepositoryInterface) *GetRankLLMDataUseCase {
	return &GetRankLLMDataUseCase{Repo: repo}
}

func (uc *GetRankLLMDataUseCase) Execute(ctx context.Context, input GetRankLLMDataInput) (*GetRankLLMDataOutput, error) {
	domain := NormalizeDomain(input.Domain)
	if domain == "" {
		return nil, validationError("Domain is required and must be a string", nil)
	}

	results, err := uc.Repo.ListByDomain(ctx, domain, clampLimit(input.Limit))
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to fetch RankLLM data", Err: err}
	}
	if len(results) == 0 {
		return nil, &DomainError{Code: CodeNotFound, Message: "No RankLLM analysis data found for this domain"}
	}

	views := make([]RankLLMResultView, len(results))
	for i, r := range results {
		views[i] = RankLLMResultView{RankLLMResult: r, Summary: summarizeRanking(r.RankingData)}
	}

	return &GetRankLLMDataOutput{
		Success: true,
		Data:    views,
		Metrics: aggregateRankLLM(results),
		Message: fmt.Sprintf("Found %d RankLLM analysis results", len(results)),
	}, nil
}

func clampLimit(limit *int) int {
	if limit == nil {
		return defaultRankLLMLimit
	}
	switch {
	case *limit < 1:
		return 1
	case *limit > maxRankLLMLimit:
		return maxRankLLMLimit
	}
	return *limit
}

func summarizeRanking(data entity.RankingData) RankLLMSummary {
	s := RankLLMSummary{
		TotalDocuments:   len(data.Candidates),
		ModelPerformance: map[string]any{},
	}
	if len(data.Candidates) > 0 {
		s.TopScore = data.Candidates[0].Score
	}
	if data.Metrics != nil {
		s.ProcessingTime = data.Metrics.ProcessingTimeMS()
		s.ModelPerformance = data.Metrics
	}
	return s
}

// aggregateRankLLM espera os resultados do mais novo para o mais antigo.
func aggregateRankLLM(results []*entity.RankLLMResult) RankLLMAggregate {
	agg := RankLLMAggregate{TotalAnalyses: len(results), ModelsUsed: []string{}}
	if len(results) == 0 {
		return agg
	}

	seen := map[string]bool{}
	var totalTime float64
	completed := 0
	for _, r := range results {
		if !seen[r.ModelUsed] {
			seen[r.ModelUsed] = true
			agg.ModelsUsed = append(agg.ModelsUsed, r.ModelUsed)
		}
		totalTime += r.RankingData.Metrics.ProcessingTimeMS()
		if r.Status == entity.RankLLMCompleted {
			completed++
		}
	}

	n := float64(len(results))
	agg.AverageProcessingTime = totalTime / n
	agg.SuccessRate = float64(completed) / n
	agg.LatestAnalysis = results[0].CreatedAt
	return agg
}
