package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica o schema do Postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := database.NewDBConnection(cmd.Context(), cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("erro ao conectar no banco: %w", err)
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db.DB); err != nil {
			return err
		}
		log.Info("schema aplicado")
		return nil
	},
}
