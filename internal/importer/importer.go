package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"hrimport/internal/db"
	"hrimport/internal/domain/audit"
	"hrimport/internal/domain/roster"
	cryptoutil "hrimport/internal/platform/crypto"
	"hrimport/internal/platform/config"
	"hrimport/internal/platform/metrics"
	"hrimport/internal/requestctx"
	"hrimport/internal/source"
)

var ErrBatchRunning = errors.New("an import batch is already running")

type Options struct {
	Dir             string
	OnboardingAGlob string
	OnboardingBGlob string
	PayrollGlob     string
	TimecardGlob    string
	PeriodYear      int
	FuzzyNames      bool
}

func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Dir:             cfg.SourceDir(),
		OnboardingAGlob: cfg.OnboardingAGlob,
		OnboardingBGlob: cfg.OnboardingBGlob,
		PayrollGlob:     cfg.PayrollGlob,
		TimecardGlob:    cfg.TimecardGlob,
		PeriodYear:      cfg.PeriodYear,
		FuzzyNames:      cfg.IdentityFuzzy,
	}
}

// Recorder keeps a ledger entry for every finished batch.
type Recorder interface {
	Record(ctx context.Context, run audit.Run, summary any) error
}

type Importer struct {
	db       db.Beginner
	crypto   *cryptoutil.Service
	logger   *zap.Logger
	metrics  *metrics.Collector
	recorder Recorder
	opts     Options
	now      func() time.Time
	newID    func() string

	mu sync.Mutex
}

func New(pool db.Beginner, crypto *cryptoutil.Service, logger *zap.Logger, m *metrics.Collector, opts Options) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		db:      pool,
		crypto:  crypto,
		logger:  logger,
		metrics: m,
		opts:    opts,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// WithRecorder makes Run write an import_runs entry after each batch.
func (i *Importer) WithRecorder(r Recorder) *Importer {
	i.recorder = r
	return i
}

// Run imports every source inside one transaction. Any store error rolls the
// whole batch back.
func (i *Importer) Run(ctx context.Context) (Summary, error) {
	if !i.mu.TryLock() {
		return Summary{}, ErrBatchRunning
	}
	defer i.mu.Unlock()

	start := i.now()
	var summary Summary
	err := db.WithTx(ctx, i.db, func(tx pgx.Tx) error {
		var err error
		summary, err = i.Import(ctx, roster.NewStore(tx, i.crypto))
		return err
	})
	i.metrics.BatchFinished(err, i.now().Sub(start))
	i.record(ctx, start, summary, err)
	if err != nil {
		i.logger.Error("import batch rolled back", zap.String("batch_id", summary.BatchID), zap.Error(err))
		return summary, err
	}
	i.logger.Info("import batch committed", summaryField(summary))
	return summary, nil
}

func (i *Importer) record(ctx context.Context, start time.Time, summary Summary, batchErr error) {
	if i.recorder == nil {
		return
	}
	origin := requestctx.GetOrigin(ctx)
	run := audit.Run{
		BatchID:    summary.BatchID,
		Trigger:    origin.Trigger,
		ActorID:    origin.ActorID,
		RequestID:  origin.RequestID,
		Result:     audit.ResultCommitted,
		StartedAt:  start,
		FinishedAt: i.now(),
	}
	if run.Trigger == "" {
		run.Trigger = audit.TriggerCLI
	}
	if batchErr != nil {
		run.Result = audit.ResultRolledBack
		run.Error = batchErr.Error()
	}
	if err := i.recorder.Record(context.WithoutCancel(ctx), run, summary); err != nil {
		i.logger.Warn("import run not recorded", zap.String("batch_id", summary.BatchID), zap.Error(err))
	}
}

// Import runs the passes against an open store session without managing the
// transaction.
func (i *Importer) Import(ctx context.Context, store roster.StoreAPI) (Summary, error) {
	summary := newSummary(i.newID(), i.now())
	logger := i.logger.With(zap.String("batch_id", summary.BatchID))

	opts := []roster.Option{roster.WithClock(i.now)}
	if i.opts.FuzzyNames {
		opts = append(opts, roster.WithFuzzyNames())
	}
	engine := roster.NewEngine(store, summary.BatchID, opts...)

	p := &pass{
		importer: i,
		engine:   engine,
		summary:  &summary,
		logger:   logger,
	}
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"onboarding_a", p.onboardingA},
		{"onboarding_b", p.onboardingB},
		{"payroll", p.payroll},
		{"timecards", p.timecards},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := step.run(ctx); err != nil {
			return summary, fmt.Errorf("%s: %w", step.name, err)
		}
	}

	summary.StubsCreated = engine.StubsCreated()
	summary.FinishedAt = i.now()
	i.metrics.AddStubs(summary.StubsCreated)
	return summary, nil
}

type pass struct {
	importer *Importer
	engine   *roster.Engine
	summary  *Summary
	logger   *zap.Logger
}

func (p *pass) discover(kind source.Kind, pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, nil
	}
	files, shadowed, err := source.Discover(p.importer.opts.Dir, pattern)
	if err != nil {
		return nil, err
	}
	for _, path := range shadowed {
		p.logger.Warn("ignoring duplicate export of the same sheet",
			zap.String("kind", string(kind)),
			zap.String("file", filepath.Base(path)),
		)
	}
	if len(files) == 0 {
		p.logger.Warn("no source files found",
			zap.String("kind", string(kind)),
			zap.String("dir", p.importer.opts.Dir),
			zap.String("pattern", pattern),
		)
	}
	return files, nil
}

// read loads a file and reports it as skipped when it cannot be read.
func (p *pass) read(kind source.Kind, path string) ([][]string, bool) {
	rows, err := source.ReadRows(path)
	if err != nil {
		p.skipFile(kind, path, err)
		return nil, false
	}
	return rows, true
}

func (p *pass) skipFile(kind source.Kind, path string, reason error) {
	name := filepath.Base(path)
	p.logger.Warn("skipping source file",
		zap.String("kind", string(kind)),
		zap.String("file", name),
		zap.Error(reason),
	)
	p.summary.skip(kind, name, reason.Error())
	p.importer.metrics.FileSkipped(string(kind))
}
