// Command storectl runs operator tasks against the storefront database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/laramoda/storefront-api/internal/config"
	"github.com/laramoda/storefront-api/internal/database"
	"github.com/laramoda/storefront-api/internal/repository"
	"github.com/laramoda/storefront-api/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg  *config.Config
	log  *slog.Logger
	pool *pgxpool.Pool
}

func newRootCmd() *cobra.Command {
	a := &app{log: slog.New(slog.NewJSONHandler(os.Stderr, nil))}

	root := &cobra.Command{
		Use:          "storectl",
		Short:        "Operator tasks for the Lara Moda storefront",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			pool, err := pgxpool.New(cmd.Context(), cfg.DB.DSN())
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			a.cfg, a.pool = cfg, pool
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.pool != nil {
				a.pool.Close()
			}
		},
	}
	root.AddCommand(a.migrateCmd(), a.seedCmd(), a.statsCmd())
	return root
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := database.Migrate(cmd.Context(), a.pool, a.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		},
	}
}

func (a *app) seedCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := seedCatalog(cmd.Context(), repository.NewProductRepository(a.pool), force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d product(s)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "insert even when the catalog is not empty")
	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the admin dashboard figures as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			products := service.NewProductService(repository.NewProductRepository(a.pool), nil, nil, a.log)
			admin := service.NewAdminService(repository.NewOrderRepository(a.pool), products)
			resp, err := admin.Stats(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
}
