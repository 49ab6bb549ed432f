package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrimport/internal/domain/audit"
	"hrimport/internal/importer"
	"hrimport/internal/platform/crypto"
	"hrimport/internal/platform/metrics"
	"hrimport/internal/report"
	"hrimport/internal/requestctx"
)

func newRunCmd(e *env) *cobra.Command {
	var (
		reportPath string
		sourceDir  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one import batch over every source file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.cfg.Validate(); err != nil {
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

			opts := importer.OptionsFromConfig(e.cfg)
			if sourceDir != "" {
				opts.Dir = sourceDir
			}
			e.logger.Info("starting import batch", zap.String("dir", opts.Dir), zap.Int("period_year", opts.PeriodYear))

			imp := importer.New(pool, svc, e.logger, metrics.Default(), opts).WithRecorder(audit.New(pool))
			ctx = requestctx.WithOrigin(ctx, requestctx.Origin{Trigger: audit.TriggerCLI, ActorID: os.Getenv("USER")})
			summary, err := imp.Run(ctx)
			if err != nil {
				return err
			}

			if reportPath != "" {
				if err := report.WriteSummaryFile(reportPath, summary); err != nil {
					return err
				}
				e.logger.Info("summary report written", zap.String("path", reportPath))
			}
			e.logger.Info("import completed",
				zap.String("batch_id", summary.BatchID),
				zap.Int("stubs_created", summary.StubsCreated),
				zap.Int("skipped_files", len(summary.Skipped)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Write a PDF summary of the batch to this path")
	cmd.Flags().StringVar(&sourceDir, "dir", "", "Source directory (overrides HR_BASE_DIR/SOURCE_SUBDIR)")
	return cmd
}
