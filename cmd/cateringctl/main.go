package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"catering/internal/config"
	"catering/internal/db"
	"catering/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var timeout time.Duration

// rootCmd is the operator entry point.
var rootCmd = &cobra.Command{
	Use:   "cateringctl",
	Short: "Operate the catering backend",
	Long: `Operator commands for the catering backend.

Available subcommands:
  migrate      - Create or update the database schema
  create-admin - Add an admin dashboard account
  seed         - Import dishes and menus from a YAML file`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env is what every subcommand needs: config, a logger and a pool.
type env struct {
	cfg  *config.Config
	log  *zap.Logger
	pool *pgxpool.Pool
}

func (e *env) Close() {
	e.pool.Close()
	_ = e.log.Sync()
}

func connect(ctx context.Context) (*env, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, pool: pool}, nil
}

// withEnv runs fn against a connected env with the --timeout deadline.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	e, err := connect(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	return fn(ctx, e)
}
