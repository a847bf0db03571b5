package usecase

import (
	"context"
	"errors"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

type GetAnalysisDataInput struct {
	Domain string `json:"domain"`
}

type GetAnalysisDataOutput struct {
	Success bool                `json:"success"`
	Data    *AnalysisDataOutput `json:"data"`
	Message string              `json:"message"`
}

type GetAnalysisDataUseCase struct {
	Repo  entity.AnalysisRepositoryInterface
	Clock Clock
}

func NewGetAnalysisDataUseCase(repo entity.AnalysisRepositoryInterface) *GetAnalysisDataUseCase {
	return &GetAnalysisDataUseCase{Repo: repo, Clock: SystemClock{}}
}

func (uc *GetAnalysisDataUseCase) Execute(ctx context.Context, input GetAnalysisDataInput) (*GetAnalysisDataOutput, error) {
	domain := NormalizeDomain(input.Domain)
	if domain == "" {
		return nil, validationError("Domain is required and must be a string", nil)
	}

	result, err := uc.Repo.FindLatestByDomain(ctx, domain)
	if errors.Is(err, entity.ErrNotFound) {
		// ausência de análise não é erro para o front
		return &GetAnalysisDataOutput{Success: true, Message: "No analysis found for this domain"}, nil
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "Failed to fetch analysis data", Err: err}
	}

	return &GetAnalysisDataOutput{
		Success: true,
		Data:    newAnalysisDataOutput(result, uc.Clock.Now()),
		Message: "Analysis data retrieved successfully",
	}, nil
}
