package roster

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hrimport/internal/domain/identity"
	"hrimport/internal/domain/normalize"
	"hrimport/internal/domain/payroll"
	"hrimport/internal/domain/timecard"
)

// Engine merges normalized source records into one store session.
type Engine struct {
	store    StoreAPI
	resolver *identity.Resolver
	now      func() time.Time
	batchID  string
	stubs    int
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithFuzzyNames appends the fuzzy name matcher after the exact matchers.
func WithFuzzyNames() Option {
	return func(e *Engine) {
		e.resolver = identity.NewResolver(e.store,
			identity.EmailMatcher{Lookup: e.store},
			identity.NameMatcher{Lookup: e.store},
			identity.NewFuzzyNameMatcher(e.store),
		)
	}
}

func NewEngine(store StoreAPI, batchID string, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		batchID: batchID,
		now:     time.Now,
		resolver: identity.NewResolver(store,
			identity.EmailMatcher{Lookup: store},
			identity.NameMatcher{Lookup: store},
		),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver.WithClock(e.now)
	return e
}

// StubsCreated counts employees created by identity misses in this session.
func (e *Engine) StubsCreated() int {
	return e.stubs
}

func (e *Engine) today() time.Time {
	now := e.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (e *Engine) UpsertOnboarding(ctx context.Context, rec OnboardingRecord) (string, error) {
	var departmentID string
	if label := strings.TrimSpace(rec.Department); label != "" {
		id, err := e.store.FindOrCreateDepartment(ctx, label)
		if err != nil {
			return "", fmt.Errorf("department %q: %w", label, err)
		}
		departmentID = id
	}

	status := rec.Status
	if status == "" {
		status = normalize.StatusActive
	}
	email := strings.TrimSpace(rec.Email)

	employeeID, ok, err := e.resolver.Resolve(ctx, identity.Candidate{Email: email, FirstName: rec.FirstName, LastName: rec.LastName})
	if err != nil {
		return "", fmt.Errorf("resolve employee: %w", err)
	}

	effective := e.today()
	if rec.HireDate != nil {
		effective = *rec.HireDate
	}

	emp := Employee{
		ID:              employeeID,
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		Email:           email,
		Phone:           strings.TrimSpace(rec.Phone),
		RoleTitle:       strings.TrimSpace(rec.RoleTitle),
		BirthDate:       rec.BirthDate,
		HireDate:        rec.HireDate,
		TerminationDate: rec.TerminationDate,
		DepartmentID:    departmentID,
		Status:          status,
		EmploymentType:  identity.EmploymentTypeFullTime,
	}
	if ok {
		if err := e.store.UpdateEmployee(ctx, emp); err != nil {
			return "", fmt.Errorf("update employee: %w", err)
		}
	} else {
		if emp.Email == "" {
			emp.Email = normalize.PlaceholderEmail(rec.FirstName, rec.LastName)
		}
		emp.HireDate = &effective
		employeeID, err = e.store.InsertEmployee(ctx, emp)
		if err != nil {
			return "", fmt.Errorf("insert employee: %w", err)
		}
	}

	if err := e.appendOnboardingFacts(ctx, employeeID, effective, rec); err != nil {
		return "", err
	}

	if err := e.store.InsertStatusChange(ctx, StatusChange{
		EmployeeID: employeeID,
		Status:     status,
		StatusDate: effective,
		BatchID:    e.batchID,
	}); err != nil {
		return "", fmt.Errorf("insert status history: %w", err)
	}
	return employeeID, nil
}

func (e *Engine) appendOnboardingFacts(ctx context.Context, employeeID string, effective time.Time, rec OnboardingRecord) error {
	if line := strings.TrimSpace(rec.Address); line != "" {
		if err := e.store.InsertAddress(ctx, Address{
			EmployeeID:    employeeID,
			Line1:         line,
			EffectiveFrom: effective,
			IsPrimary:     true,
			BatchID:       e.batchID,
		}); err != nil {
			return fmt.Errorf("insert address: %w", err)
		}
	}

	contactName := strings.TrimSpace(rec.EmergencyName)
	contactPhone := strings.TrimSpace(rec.EmergencyPhone)
	if contactName != "" || contactPhone != "" {
		if err := e.store.InsertEmergencyContact(ctx, EmergencyContact{
			EmployeeID: employeeID,
			Name:       contactName,
			Phone:      contactPhone,
			IsPrimary:  true,
			BatchID:    e.batchID,
		}); err != nil {
			return fmt.Errorf("insert emergency contact: %w", err)
		}
	}

	bank := strings.TrimSpace(rec.BankName)
	transit := strings.TrimSpace(rec.TransitNumber)
	account := strings.TrimSpace(rec.AccountNumber)
	if bank != "" || transit != "" || account != "" {
		if err := e.store.InsertBankAccount(ctx, BankAccount{
			EmployeeID:    employeeID,
			BankName:      bank,
			TransitNumber: transit,
			AccountNumber: account,
			EffectiveDate: effective,
			IsPrimary:     true,
			BatchID:       e.batchID,
		}); err != nil {
			return fmt.Errorf("insert bank account: %w", err)
		}
	}

	if sin := strings.TrimSpace(rec.SIN); sin != "" {
		if err := e.store.UpsertIdentifier(ctx, Identifier{
			EmployeeID: employeeID,
			Type:       IdentifierSIN,
			Value:      sin,
			ExpiresOn:  rec.SINExpiry,
		}); err != nil {
			return fmt.Errorf("upsert identifier: %w", err)
		}
	}

	docs := []struct {
		url, docType, notes string
	}{
		{rec.ContractURL, DocTypeContract, ""},
		{rec.StatusProofURL, DocTypeWorkPermit, ""},
		{rec.VoidChequeURL, DocTypeOther, voidChequeNote},
	}
	for _, d := range docs {
		doc, ok := documentFromURL(employeeID, d.url, d.docType, d.notes)
		if !ok {
			continue
		}
		doc.BatchID = e.batchID
		if err := e.store.InsertDocument(ctx, doc); err != nil {
			return fmt.Errorf("insert %s document: %w", d.docType, err)
		}
	}
	return nil
}

func documentFromURL(employeeID, rawURL, docType, notes string) (Document, bool) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return Document{}, false
	}
	name := url[strings.LastIndex(url, "/")+1:]
	if r := []rune(name); len(r) > maxFileNameLength {
		name = string(r[:maxFileNameLength])
	}
	if name == "" {
		name = docType
	}
	return Document{
		EmployeeID: employeeID,
		DocType:    docType,
		FileName:   name,
		FileURL:    url,
		Signed:     docType == DocTypeContract,
		Notes:      notes,
	}, true
}

// GetOrCreatePeriod returns the id of the period registered under the hint's
// name, registering it first when needed.
func (e *Engine) GetOrCreatePeriod(ctx context.Context, hint payroll.PeriodHint) (string, error) {
	period, err := e.Period(ctx, hint)
	if err != nil {
		return "", err
	}
	return period.ID, nil
}

// Period is GetOrCreatePeriod returning the stored row. Dates of an existing
// period are never recomputed.
func (e *Engine) Period(ctx context.Context, hint payroll.PeriodHint) (Period, error) {
	existing, ok, err := e.store.FindPeriodByName(ctx, hint.Name)
	if err != nil {
		return Period{}, fmt.Errorf("find period %q: %w", hint.Name, err)
	}
	if ok {
		return existing, nil
	}
	period := Period{
		Name:      hint.Name,
		StartDate: hint.Start,
		EndDate:   hint.End,
		PayDate:   payroll.PayDate(hint, e.today()),
		Status:    payroll.PeriodStatusClosed,
	}
	period.ID, err = e.store.InsertPeriod(ctx, period)
	if err != nil {
		return Period{}, fmt.Errorf("insert period %q: %w", hint.Name, err)
	}
	return period, nil
}

func (e *Engine) resolveOrStub(ctx context.Context, first, last string) (string, error) {
	id, created, err := e.resolver.ResolveOrStub(ctx, identity.Candidate{FirstName: first, LastName: last})
	if err != nil {
		return "", err
	}
	if created {
		e.stubs++
	}
	return id, nil
}

// ImportPayrollRow records one payroll sheet line against a period.
func (e *Engine) ImportPayrollRow(ctx context.Context, period Period, row payroll.Row) error {
	employeeID, err := e.resolveOrStub(ctx, row.FirstName, row.LastName)
	if err != nil {
		return err
	}

	if row.HasRate() {
		comp := Compensation{
			EmployeeID:    employeeID,
			EffectiveDate: payroll.EffectiveDate(payroll.PeriodHint{Start: period.StartDate}, e.today()),
			RateType:      payroll.RateTypeHourly,
			RegularRate:   row.Rate,
		}
		if !row.HoursBiweekly.IsZero() {
			hours := row.HoursBiweekly
			comp.HoursBiweekly = &hours
		}
		if err := e.store.UpsertCompensation(ctx, comp); err != nil {
			return fmt.Errorf("upsert compensation: %w", err)
		}
	}

	if err := e.store.InsertPayrollCalculation(ctx, PayrollCalculation{
		EmployeeID:  employeeID,
		PeriodID:    period.ID,
		Calculation: payroll.Compute(row),
		BatchID:     e.batchID,
	}); err != nil {
		return fmt.Errorf("insert payroll calculation: %w", err)
	}
	return nil
}

// ImportTimecard appends one time entry per shift and returns how many were
// written.
func (e *Engine) ImportTimecard(ctx context.Context, card timecard.Card) (int, error) {
	first, last := normalize.SplitName("", "", card.EmployeeName)
	employeeID, err := e.resolveOrStub(ctx, first, last)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, shift := range card.Shifts {
		if err := e.store.InsertTimeEntry(ctx, TimeEntry{
			EmployeeID:    employeeID,
			WorkDate:      shift.WorkDate,
			ClockIn:       shift.ClockIn,
			ClockOut:      shift.ClockOut,
			OvertimeHours: decimal.Zero,
			BatchID:       e.batchID,
		}); err != nil {
			return inserted, fmt.Errorf("insert time entry: %w", err)
		}
		inserted++
	}
	return inserted, nil
}
