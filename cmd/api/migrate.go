package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/postgres"
	"github.com/LuizZonetti1/cafeterias-api/pkg/config"
	"github.com/LuizZonetti1/cafeterias-api/pkg/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema de base de datos (idempotente)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})

			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()

			if err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}
			log.Info().Msg("esquema aplicado")
			return nil
		},
	}
}
