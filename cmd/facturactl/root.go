package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/bootstrap"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturation-api/pkg/config"
	"github.com/jhoicas/facturation-api/pkg/logger"
)

// cliSession identifica las operaciones lanzadas desde la CLI en los logs.
var cliSession = entity.Session{UserID: "facturactl", Role: entity.RoleAdmin}

// env se completa en PersistentPreRunE; los subcomandos abren la base cuando la necesitan.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	settings billing.Settings
}

func (e *env) connect(ctx context.Context) (*pgxpool.Pool, error) {
	return postgres.NewPool(ctx, e.cfg.DB, e.settings.Retry)
}

func newRootCmd() *cobra.Command {
	e := &env{}
	var verbose bool

	root := &cobra.Command{
		Use:           "facturactl",
		Short:         "Tareas de operación de la API de facturación",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			level := cfg.App.LogLevel
			if verbose {
				level = "debug"
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: "development", Level: level, Output: cmd.ErrOrStderr()})
			e.settings, _, err = bootstrap.BillingSettings(cfg)
			return err
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log en nivel debug")

	root.AddCommand(
		newMigrateCmd(e),
		newCreateAdminCmd(e),
		newExportCmd(e),
		newPurgeCmd(e),
	)
	return root
}
