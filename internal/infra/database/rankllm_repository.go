package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

type RankLLMRepository struct {
	DB *sqlx.DB
}

func NewRankLLMRepository(db *sqlx.DB) *RankLLMRepository {
	return &RankLLMRepository{DB: db}
}

// rankLLMRow recebe ranking_data cru; o jsonb é decodificado depois do Select.
type rankLLMRow struct {
	entity.RankLLMResult
	RankingRaw []byte `db:"ranking_data"`
}

func (r *RankLLMRepository) Create(ctx context.Context, result *entity.RankLLMResult) error {
	data, err := json.Marshal(result.RankingData)
	if err != nil {
		return fmt.Errorf("ranking_data inválido: %w", err)
	}

	query := `
		INSERT INTO rankllm_results (id, domain, query, model_used, ranking_data, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8)
	`
	_, err = r.DB.ExecContext(ctx, query,
		result.ID,
		result.Domain,
		result.Query,
		result.ModelUsed,
		string(data),
		string(result.Status),
		result.CreatedAt,
		result.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao gravar resultado rankllm: %w", err)
	}
	return nil
}

// ListByDomain devolve os resultados mais recentes primeiro.
func (r *RankLLMRepository) ListByDomain(ctx context.Context, domain string, limit int) ([]*entity.RankLLMResult, error) {
	query := `
		SELECT id, domain, query, model_used, ranking_data, status, created_at, updated_at
		FROM rankllm_results
		WHERE domain = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var rows []rankLLMRow
	if err := r.DB.SelectContext(ctx, &rows, query, domain, limit); err != nil {
		return nil, fmt.Errorf("erro ao listar resultados rankllm: %w", err)
	}

	results := make([]*entity.RankLLMResult, 0, len(rows))
	for i := range rows {
		res := rows[i].RankLLMResult
		if err := json.Unmarshal(rows[i].RankingRaw, &res.RankingData); err != nil {
			return nil, fmt.Errorf("ranking_data corrompido (%s): %w", res.ID, err)
		}
		results = append(results, &res)
	}
	return results, nil
}
