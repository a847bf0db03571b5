package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/database"
	"github.com/promptmetrics/promptmetrics-api/internal/usecase"
)

// redirectCmd ajuda o suporte a entender para onde um usuário cai após o login.
var redirectCmd = &cobra.Command{
	Use:   "redirect <user-id>",
	Short: "Mostra o redirect pós-login de um usuário",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		uc := usecase.NewPostLoginRedirectUseCase(
			database.NewProfileRepository(db.DB),
			database.NewOrganizationRepository(db.DB),
			log,
		)
		result, err := uc.ExecuteForUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}
