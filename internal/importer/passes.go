package importer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hrimport/internal/domain/normalize"
	"hrimport/internal/domain/payroll"
	"hrimport/internal/domain/roster"
	"hrimport/internal/domain/timecard"
	"hrimport/internal/source"
)

var errFileNotFound = errors.New("file not found")

func (p *pass) onboardingA(ctx context.Context) error {
	n, err := p.onboarding(ctx, source.OnboardingA, p.importer.opts.OnboardingAGlob)
	p.summary.OnboardingA = n
	return err
}

func (p *pass) onboardingB(ctx context.Context) error {
	n, err := p.onboarding(ctx, source.OnboardingB, p.importer.opts.OnboardingBGlob)
	p.summary.OnboardingB = n
	return err
}

func (p *pass) onboarding(ctx context.Context, schema source.Schema, pattern string) (int, error) {
	files, err := p.discover(schema.Kind, pattern)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 && pattern != "" {
		p.summary.skip(schema.Kind, pattern, errFileNotFound.Error())
		p.importer.metrics.FileSkipped(string(schema.Kind))
		return 0, nil
	}

	total := 0
	for _, path := range files {
		rows, ok := p.read(schema.Kind, path)
		if !ok {
			continue
		}
		table, err := schema.Locate(rows)
		if err != nil {
			p.skipFile(schema.Kind, path, err)
			continue
		}
		count := 0
		for _, rec := range table.Records() {
			record, ok := p.onboardingRecord(schema.Kind, rec)
			if !ok {
				continue
			}
			if _, err := p.engine.UpsertOnboarding(ctx, record); err != nil {
				return total + count, err
			}
			count++
		}
		p.logger.Info("onboarding file imported",
			zap.String("kind", string(schema.Kind)),
			zap.String("file", filepath.Base(path)),
			zap.Int("rows", count),
		)
		p.importer.metrics.AddRows(string(schema.Kind), count)
		total += count
	}
	return total, nil
}

func (p *pass) onboardingRecord(kind source.Kind, rec source.Record) (roster.OnboardingRecord, bool) {
	first, last := normalize.SplitName(rec[source.FieldFirstName], rec[source.FieldLastName], rec[source.FieldFullName])
	email := rec[source.FieldEmail]
	if first == "" && last == "" && email == "" {
		return roster.OnboardingRecord{}, false
	}

	status := normalize.StatusActive
	if kind == source.KindOnboardingA {
		status = normalize.NormalizeStatus(rec[source.FieldStatus])
	}

	return roster.OnboardingRecord{
		Department:      rec[source.FieldDepartment],
		FirstName:       first,
		LastName:        last,
		Email:           email,
		Phone:           rec[source.FieldPhone],
		RoleTitle:       rec[source.FieldRoleTitle],
		HireDate:        p.date(kind, source.FieldHireDate, rec),
		TerminationDate: p.date(kind, source.FieldTerminationDate, rec),
		BirthDate:       p.date(kind, source.FieldBirthDate, rec),
		Status:          status,
		Address:         rec[source.FieldAddress],
		EmergencyName:   rec[source.FieldEmergencyName],
		EmergencyPhone:  rec[source.FieldEmergencyPhone],
		BankName:        rec[source.FieldBank],
		TransitNumber:   rec[source.FieldTransit],
		AccountNumber:   rec[source.FieldAccount],
		SIN:             rec[source.FieldSIN],
		SINExpiry:       p.date(kind, source.FieldSINExpiry, rec),
		ContractURL:     rec[source.FieldContractURL],
		StatusProofURL:  rec[source.FieldStatusProofURL],
		VoidChequeURL:   rec[source.FieldVoidChequeURL],
	}, true
}

// date parses a date cell; a non-empty cell that does not parse is counted
// as a warning.
func (p *pass) date(kind source.Kind, field string, rec source.Record) *time.Time {
	raw := rec[field]
	if raw == "" {
		return nil
	}
	t, ok := normalize.ParseDate(raw)
	if !ok {
		p.summary.warn(kind, field)
		return nil
	}
	return &t
}

func (p *pass) decimal(kind source.Kind, field, raw string) decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero
	}
	d, ok := normalize.ParseDecimal(raw)
	if !ok {
		p.summary.warn(kind, field)
		return decimal.Zero
	}
	return d
}

func (p *pass) payroll(ctx context.Context) error {
	files, err := p.discover(source.KindPayroll, p.importer.opts.PayrollGlob)
	if err != nil {
		return err
	}
	for _, path := range files {
		n, err := p.payrollFile(ctx, path)
		if err != nil {
			return err
		}
		p.summary.PayrollRows += n
	}
	p.logger.Info("payroll imported", zap.Int("rows", p.summary.PayrollRows), zap.Int("files", len(p.summary.PayrollFiles)))
	return nil
}

func (p *pass) payrollFile(ctx context.Context, path string) (int, error) {
	kind := source.KindPayroll
	hint := payroll.ResolvePeriod(path, p.importer.opts.PeriodYear)
	period, err := p.engine.Period(ctx, hint)
	if err != nil {
		return 0, err
	}

	rows, ok := p.read(kind, path)
	if !ok {
		return 0, nil
	}
	table, err := source.Payroll.Locate(rows)
	if err != nil {
		p.skipFile(kind, path, err)
		return 0, nil
	}

	inserted := 0
	for _, r := range table.Rows() {
		if source.Blank(r) {
			continue
		}
		nameCell := table.Get(r, source.FieldName)
		if strings.HasPrefix(strings.ToLower(nameCell), "total") {
			break
		}
		first, last, ok := normalize.CleanPayrollName(nameCell)
		if !ok {
			continue
		}
		row := payroll.Row{
			FirstName:       first,
			LastName:        last,
			Rate:            p.decimal(kind, source.FieldRate, table.Get(r, source.FieldRate)),
			HoursBiweekly:   p.decimal(kind, source.FieldHoursBiweekly, table.Get(r, source.FieldHoursBiweekly)),
			TimeReportHours: p.decimal(kind, source.FieldTimeReportHours, table.Get(r, source.FieldTimeReportHours)),
			PayrollHours:    p.decimal(kind, source.FieldPayrollHours, table.Get(r, source.FieldPayrollHours)),
			StatHours:       p.decimal(kind, source.FieldStatHours, table.Get(r, source.FieldStatHours)),
			RemainingHours:  p.decimal(kind, source.FieldRemainingHours, table.Get(r, source.FieldRemainingHours)),
			AfterHoursBonus: p.decimal(kind, source.FieldAfterHoursBonus, table.Get(r, source.FieldAfterHoursBonus)),
			Bonus:           p.decimal(kind, source.FieldBonus, table.Get(r, source.FieldBonus)),
			Deduction:       p.decimal(kind, source.FieldDeduction, table.Get(r, source.FieldDeduction)),
			VacationPay:     p.decimal(kind, source.FieldVacationPay, table.Get(r, source.FieldVacationPay)),
		}
		if err := p.engine.ImportPayrollRow(ctx, period, row); err != nil {
			return inserted, err
		}
		inserted++
	}

	name := filepath.Base(path)
	p.summary.PayrollFiles[name] = inserted
	p.importer.metrics.AddRows(string(kind), inserted)
	p.logger.Info("payroll file imported",
		zap.String("file", name),
		zap.String("period", hint.Name),
		zap.Int("rows", inserted),
	)
	return inserted, nil
}

func (p *pass) timecards(ctx context.Context) error {
	kind := source.KindTimecard
	files, err := p.discover(kind, p.importer.opts.TimecardGlob)
	if err != nil {
		return err
	}
	layout := timecard.DefaultLayout()
	for _, path := range files {
		rows, ok := p.read(kind, path)
		if !ok {
			continue
		}
		card, err := timecard.Extract(rows, layout)
		if errors.Is(err, timecard.ErrEmployeeNotFound) {
			p.skipFile(kind, path, err)
			continue
		}
		if err != nil {
			return err
		}
		n, err := p.engine.ImportTimecard(ctx, card)
		if err != nil {
			return err
		}
		name := filepath.Base(path)
		p.summary.Timecards[name] = n
		p.summary.TimeEntries += n
		p.importer.metrics.AddRows(string(kind), n)
		p.logger.Info("timecard imported",
			zap.String("file", name),
			zap.String("employee", card.EmployeeName),
			zap.String("period", card.PeriodLabel),
			zap.Int("entries", n),
		)
	}
	return nil
}
