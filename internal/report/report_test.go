package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrimport/internal/importer"
	"hrimport/internal/source"
)

func sampleSummary() importer.Summary {
	start := time.Date(2025, time.August, 4, 10, 0, 0, 0, time.UTC)
	return importer.Summary{
		BatchID:      "3f0c1c1e-0000-4000-8000-000000000001",
		OnboardingA:  12,
		OnboardingB:  4,
		PayrollRows:  30,
		PayrollFiles: map[string]int{"LGM_Payroll_2025__June_30_-_July_13.csv": 30},
		TimeEntries:  18,
		Timecards:    map[string]int{"Maria_Lopez_Timecard.csv": 18},
		StubsCreated: 2,
		Skipped:      []importer.SkippedFile{{Kind: source.KindTimecard, File: "x_Timecard.csv", Reason: "timecard: employee name not found"}},
		Warnings:     map[string]int{"payroll.rate": 1},
		StartedAt:    start,
		FinishedAt:   start.Add(3 * time.Second),
	}
}

func TestWriteSummaryPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryPDF(&buf, sampleSummary()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteSummaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "summary.pdf")
	require.NoError(t, WriteSummaryFile(path, sampleSummary()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
