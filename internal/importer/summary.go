package importer

import (
	"sort"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hrimport/internal/source"
)

// SkippedFile is a source file left out of the batch because a structural
// anchor was missing.
type SkippedFile struct {
	Kind   source.Kind `json:"kind"`
	File   string      `json:"file"`
	Reason string      `json:"reason"`
}

type Summary struct {
	BatchID      string         `json:"batchId"`
	OnboardingA  int            `json:"onboardingA"`
	OnboardingB  int            `json:"onboardingB"`
	PayrollRows  int            `json:"payrollRows"`
	PayrollFiles map[string]int `json:"payrollFiles"`
	TimeEntries  int            `json:"timeEntries"`
	Timecards    map[string]int `json:"timecards"`
	StubsCreated int            `json:"stubsCreated"`
	Skipped      []SkippedFile  `json:"skipped"`
	Warnings     map[string]int `json:"warnings"`
	StartedAt    time.Time      `json:"startedAt"`
	FinishedAt   time.Time      `json:"finishedAt"`
}

func newSummary(batchID string, startedAt time.Time) Summary {
	return Summary{
		BatchID:      batchID,
		PayrollFiles: map[string]int{},
		Timecards:    map[string]int{},
		Warnings:     map[string]int{},
		StartedAt:    startedAt,
	}
}

func (s *Summary) skip(kind source.Kind, file, reason string) {
	s.Skipped = append(s.Skipped, SkippedFile{Kind: kind, File: file, Reason: reason})
}

func (s *Summary) warn(kind source.Kind, field string) {
	s.Warnings[string(kind)+"."+field]++
}

func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// WarningKeys returns the warning keys in a stable order.
func (s Summary) WarningKeys() []string {
	keys := make([]string, 0, len(s.Warnings))
	for k := range s.Warnings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s Summary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("batch_id", s.BatchID)
	enc.AddInt("onboarding_a", s.OnboardingA)
	enc.AddInt("onboarding_b", s.OnboardingB)
	enc.AddInt("payroll_rows", s.PayrollRows)
	enc.AddInt("payroll_files", len(s.PayrollFiles))
	enc.AddInt("time_entries", s.TimeEntries)
	enc.AddInt("stubs_created", s.StubsCreated)
	enc.AddInt("skipped_files", len(s.Skipped))
	enc.AddDuration("duration", s.Duration())
	return nil
}

var _ zapcore.ObjectMarshaler = Summary{}

func summaryField(s Summary) zap.Field {
	return zap.Object("summary", s)
}
