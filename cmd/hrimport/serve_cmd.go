package main

import (
	"context"

	"github.com/spf13/cobra"

	"hrimport/internal/app/server"
	"hrimport/internal/domain/audit"
	"hrimport/internal/importer"
	"hrimport/internal/platform/crypto"
	"hrimport/internal/platform/jobs"
	"hrimport/internal/platform/metrics"
	"hrimport/internal/requestctx"
)

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve health, metrics and the authenticated import API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.cfg.ValidateServe(); err != nil {
				return err
			}
			ctx := cmd.Context()

			svc, err := crypto.New(e.cfg.DataEncryptionKey)
			if err != nil {
				return err
			}
			pool, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			runs := audit.New(pool)
			runner := importer.New(pool, svc, e.logger, metrics.Default(), importer.OptionsFromConfig(e.cfg)).WithRecorder(runs)
			jobs.New("import", e.cfg.ImportInterval, func(ctx context.Context) error {
				_, err := runner.Run(requestctx.WithOrigin(ctx, requestctx.Origin{Trigger: audit.TriggerSchedule}))
				return err
			}, e.logger).Start(ctx)
			return server.New(e.cfg, pool, runner, runs, e.logger).ListenAndServe(ctx)
		},
	}
}
