package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrimport/internal/db"
	"hrimport/internal/platform/config"
	"hrimport/internal/platform/logging"
)

// env is what every subcommand needs after startup.
type env struct {
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	cmd := &cobra.Command{
		Use:           "hrimport",
		Short:         "Import HR roster, payroll and timecard exports into the roster database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.Environment)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			zap.ReplaceGlobals(logger)
			e.cfg = cfg
			e.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}
	cmd.AddCommand(newRunCmd(e), newMigrateCmd(e), newServeCmd(e), newTokenCmd(e))
	return cmd
}

// connect opens the pool and applies migrations when configured to.
func (e *env) connect(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := db.Connect(ctx, e.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if e.cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return pool, nil
}
