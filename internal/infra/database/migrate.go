package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate aplica o schema. Todas as instruções são idempotentes (IF NOT EXISTS),
// então rodar em todo deploy é seguro.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("falha ao aplicar schema: %w", err)
	}
	return nil
}
