package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/application/usecase"
	"github.com/jhoicas/facturation-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/facturation-api/internal/infrastructure/xlsx"
)

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "sin migraciones pendientes")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "aplicada:", name)
			}
			return nil
		},
	}
}

func newCreateAdminCmd(e *env) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Crea el administrador o promueve un usuario existente",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := usecase.NewUserUseCase(postgres.NewUserRepository(pool), e.log)
			created, err := uc.EnsureAdmin(ctx, email, password, name)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "administrador %s creado\n", email)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "usuario %s promovido a admin\n", email)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (solo al crear)")
	cmd.Flags().StringVar(&name, "name", "", "nombre visible")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newExportCmd(e *env) *cobra.Command {
	var out, docType, status string
	var outstanding bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta los documentos a un archivo Excel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := billing.NewExportUseCase(postgres.NewInvoiceRepository(pool), infraxlsx.NewExporter(), e.settings)
			data, fileName, err := uc.ExportXLSX(ctx, cliSession, dto.InvoiceListQuery{
				Type:        docType,
				Status:      status,
				Outstanding: outstanding,
			})
			if err != nil {
				return err
			}
			if out == "" {
				out = fileName
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "exportado:", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "archivo de salida (por defecto factures_<fecha>.xlsx)")
	cmd.Flags().StringVar(&docType, "type", "", "facture | recu")
	cmd.Flags().StringVar(&status, "status", "", "impayee | partielle | payee")
	cmd.Flags().BoolVar(&outstanding, "outstanding", false, "solo documentos con reliquat")
	return cmd
}

func newPurgeCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Elimina todos los documentos y su historial de pagos",
		Args:  cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			if !yes {
				return fmt.Errorf("operación irreversible: repetir con --yes")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			uc := billing.NewInvoiceUseCase(postgres.NewTxRunner(pool), postgres.NewInvoiceRepository(pool), e.settings, e.log)
			n, err := uc.DeleteAll(ctx, cliSession)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d documentos eliminados\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirma el borrado")
	return cmd
}
