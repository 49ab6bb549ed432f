package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"hrimport/internal/importer"
)

const timeLayout = "2006-01-02 15:04:05 MST"

// WriteSummaryPDF renders the batch summary as a one-page PDF.
func WriteSummaryPDF(w io.Writer, s importer.Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Roster import summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	line := func(format string, args ...any) {
		pdf.Cell(0, 7, fmt.Sprintf(format, args...))
		pdf.Ln(6)
	}
	line("Batch: %s", s.BatchID)
	line("Started: %s", s.StartedAt.UTC().Format(timeLayout))
	line("Finished: %s", s.FinishedAt.UTC().Format(timeLayout))
	pdf.Ln(4)

	section(pdf, "Rows")
	line("Onboarding (incoming responses): %d", s.OnboardingA)
	line("Onboarding (form responses): %d", s.OnboardingB)
	line("Payroll rows: %d", s.PayrollRows)
	line("Time entries: %d", s.TimeEntries)
	line("Stub employees created: %d", s.StubsCreated)

	if len(s.PayrollFiles) > 0 {
		section(pdf, "Payroll files")
		for _, name := range sortedKeys(s.PayrollFiles) {
			line("%s: %d", name, s.PayrollFiles[name])
		}
	}

	if len(s.Timecards) > 0 {
		section(pdf, "Timecards")
		for _, name := range sortedKeys(s.Timecards) {
			line("%s: %d", name, s.Timecards[name])
		}
	}

	if len(s.Skipped) > 0 {
		section(pdf, "Skipped files")
		for _, sk := range s.Skipped {
			line("[%s] %s: %s", sk.Kind, sk.File, sk.Reason)
		}
	}

	if len(s.Warnings) > 0 {
		section(pdf, "Unparsed cells")
		for _, key := range s.WarningKeys() {
			line("%s: %d", key, s.Warnings[key])
		}
	}

	return pdf.Output(w)
}

// WriteSummaryFile writes the PDF to path, creating parent directories.
func WriteSummaryFile(path string, s importer.Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSummaryPDF(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
