package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/config"
	"github.com/promptmetrics/promptmetrics-api/internal/logger"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "promptmetrics-api",
	Short:         "PromptMetrics API: edge functions, análises e RankLLM",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			os.Setenv("CONFIG_PATH", configPath)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "arquivo YAML de configuração (ou CONFIG_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(redirectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

// bootstrap carrega config e logger, comum a todos os subcomandos.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao iniciar logger: %w", err)
	}
	return cfg, log, nil
}
