package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

type AnalysisRepository struct {
	DB *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{DB: db}
}

// Upsert mantém uma única análise atual por domínio.
func (r *AnalysisRepository) Upsert(ctx context.Context, result *entity.AnalysisResult) error {
	data, err := json.Marshal(result.AnalysisData)
	if err != nil {
		return fmt.Errorf("analysis_data inválido: %w", err)
	}

	query := `
		INSERT INTO analysis_results (domain, status, analysis_data, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW())
		ON CONFLICT (domain)
		DO UPDATE SET
			status = EXCLUDED.status,
			analysis_data = EXCLUDED.analysis_data,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	// jsonb vai como texto; []byte o lib/pq mandaria como bytea
	err = r.DB.QueryRowContext(ctx, query, result.Domain, string(result.Status), string(data)).
		Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao gravar análise: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) FindLatestByDomain(ctx context.Context, domain string) (*entity.AnalysisResult, error) {
	query := `
		SELECT id, domain, status, analysis_data, created_at, updated_at
		FROM analysis_results
		WHERE domain = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var (
		res    entity.AnalysisResult
		status string
		raw    []byte
	)
	err := r.DB.QueryRowContext(ctx, query, domain).Scan(
		&res.ID,
		&res.Domain,
		&status,
		&raw,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar análise: %w", err)
	}

	res.Status = entity.AnalysisStatus(status)
	if err := json.Unmarshal(raw, &res.AnalysisData); err != nil {
		return nil, fmt.Errorf("analysis_data corrompido para %s: %w", domain, err)
	}
	return &res, nil
}
