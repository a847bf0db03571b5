package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
	"github.com/promptmetrics/promptmetrics-api/internal/infra/integration/rankllm"
)

type TriggerRankLLMInput struct {
	Domain    string                   `json:"domain"`
	Query     string                   `json:"query"`
	Documents []entity.RankLLMDocument `json:"documents"`
	Model     string                   `json:"model"`
	TopK      *int                     `json:"top_k,omitempty"`
}

type TriggerRankLLMOutput struct {
	Success bool                  `json:"success"`
	ID      string                `json:"id"`
	Message string                `json:"message"`
	Result  *entity.RankLLMResult `json:"result"`
}

type TriggerRankLLMUseCase struct {
	Client Reranker
	Repo   entity.RankLLMRepositoryInterface
	Logger *zap.Logger
}

func NewTriggerRankLLMUseCase(client Reranker, repo entity.RankLLMRepositoryInterface, logger *zap.Logger) *TriggerRankLLMUseCase {
	return &TriggerRankLLMUseCase{Client: client, Repo: repo, Logger: logger}
}

func (uc *TriggerRankLLMUseCase) Execute(ctx context.Context, input TriggerRankLLMInput) (*TriggerRankLLMOutput, error) {
	if errs := ValidateRankLLMInput(input); len(errs) > 0 {
		return nil, validationError("Invalid RankLLM request", errs)
	}

	if !uc.Client.Configured() {
		return nil, &TechnicalError{Code: CodeUpstreamDown, Message: "RankLLM service not configured"}
	}

	model := input.Model
	if model == "" {
		model = entity.DefaultRankLLMModel
	}
	domain := NormalizeDomain(input.Domain)

	resp, err := uc.Client.Rerank(ctx, rankllm.RerankRequest{
		Query:     input.Query,
		Documents: input.Documents,
		Model:     model,
		TopK:      input.TopK,
		Domain:    domain,
	})
	if err != nil {
		var statusErr *rankllm.StatusError
		if errors.As(err, &statusErr) {
			uc.Logger.Error("rankllm rejected rerank", zap.String("domain", domain), zap.Int("status", statusErr.StatusCode))
			return nil, &TechnicalError{
				Code:    CodeUpstream,
				Message: "RankLLM service error",
				Details: map[string]any{"status": statusErr.StatusCode, "response": statusErr.Body},
				Err:     err,
			}
		}
		uc.Logger.Error("rankllm unreachable", zap.String("domain", domain), zap.Error(err))
		return nil, &TechnicalError{Code: CodeUpstream, Message: "Failed to reach RankLLM service", Details: err.Error(), Err: err}
	}

	usedModel := resp.ModelUsed
	if usedModel == "" {
		usedModel = model
	}
	result := entity.NewRankLLMResult(domain, input.Query, usedModel, resp.RankingData)

	if err := uc.Repo.Create(ctx, result); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to save RankLLM result", Err: err}
	}

	uc.Logger.Info("rankllm analysis stored",
		zap.String("id", result.ID),
		zap.String("domain", domain),
		zap.String("model", usedModel),
		zap.Int("candidates", len(result.RankingData.Candidates)),
	)

	return &TriggerRankLLMOutput{
		Success: true,
		ID:      result.ID,
		Message: "RankLLM analysis completed successfully",
		Result:  result,
	}, nil
}
