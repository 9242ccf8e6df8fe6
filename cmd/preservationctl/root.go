package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"preservation/internal/platform/config"
	"preservation/internal/platform/logger"
	"preservation/internal/platform/postgres"
)

var (
	configPath string
	cfg        *config.Config
	log        *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "preservationctl",
	Short:         "Operator tooling for the preservation service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		log = logger.New(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is not configured")
	}
	return postgres.Connect(ctx, cfg.Database, log)
}
