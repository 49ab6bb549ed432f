package roster_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrimport/internal/domain/normalize"
	"hrimport/internal/domain/payroll"
	"hrimport/internal/domain/roster"
	"hrimport/internal/domain/roster/rostertest"
	"hrimport/internal/domain/timecard"
)

var fixedNow = time.Date(2025, time.August, 4, 14, 0, 0, 0, time.UTC)

func newEngine(store *rostertest.MemStore, opts ...roster.Option) *roster.Engine {
	opts = append([]roster.Option{roster.WithClock(func() time.Time { return fixedNow })}, opts...)
	return roster.NewEngine(store, "batch-1", opts...)
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func onboardingRecord() roster.OnboardingRecord {
	return roster.OnboardingRecord{
		Department:     "Operations",
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          "Jane.Doe@example.com",
		Phone:          "555-0100",
		RoleTitle:      "Supervisor",
		HireDate:       date(2024, time.March, 4),
		BirthDate:      date(1990, time.January, 2),
		Status:         normalize.StatusActive,
		Address:        "1 Main St, Toronto ON M1M 1M1",
		EmergencyName:  "John Doe",
		BankName:       "TD",
		TransitNumber:  "12345",
		AccountNumber:  "7654321",
		SIN:            "046 454 286",
		ContractURL:    "https://files.example.com/docs/contract-jane.pdf",
		StatusProofURL: " ",
		VoidChequeURL:  "https://files.example.com/docs/",
	}
}

func TestUpsertOnboardingTwiceKeepsOneEmployee(t *testing.T) {
	store := rostertest.NewMemStore()
	engine := newEngine(store)
	ctx := context.Background()

	first, err := engine.UpsertOnboarding(ctx, onboardingRecord())
	require.NoError(t, err)
	second, err := engine.UpsertOnboarding(ctx, onboardingRecord())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, store.Employees, 1)
	assert.Len(t, store.StatusHistory, 2)
	assert.Len(t, store.Addresses, 2)
	assert.Len(t, store.BankAccounts, 2)
	assert.Len(t, store.Identifiers, 1)
	assert.Len(t, store.Departments, 1)
	assert.Equal(t, "batch-1", store.StatusHistory[0].BatchID)
}

func TestUpsertOnboardingDocuments(t *testing.T) {
	store := rostertest.NewMemStore()
	_, err := newEngine(store).UpsertOnboarding(context.Background(), onboardingRecord())
	require.NoError(t, err)

	require.Len(t, store.Documents, 2)
	contract := store.Documents[0]
	assert.Equal(t, roster.DocTypeContract, contract.DocType)
	assert.Equal(t, "contract-jane.pdf", contract.FileName)
	assert.True(t, contract.Signed)

	cheque := store.Documents[1]
	assert.Equal(t, roster.DocTypeOther, cheque.DocType)
	assert.Equal(t, roster.DocTypeOther, cheque.FileName, "empty last segment falls back to the type")
	assert.Equal(t, "Void Cheque", cheque.Notes)
	assert.False(t, cheque.Signed)
}

func TestUpsertOnboardingTruncatesLongFileNames(t *testing.T) {
	store := rostertest.NewMemStore()
	rec := onboardingRecord()
	rec.ContractURL = "https://x.example.com/" + strings.Repeat("a", 300)
	_, err := newEngine(store).UpsertOnboarding(context.Background(), rec)
	require.NoError(t, err)
	assert.Len(t, store.Documents[0].FileName, 255)
}

func TestUpsertOnboardingDefaultsForNewEmployee(t *testing.T) {
	store := rostertest.NewMemStore()
	rec := roster.OnboardingRecord{FirstName: "Ana", LastName: "Silva", Status: normalize.StatusOnLeave}

	id, err := newEngine(store).UpsertOnboarding(context.Background(), rec)
	require.NoError(t, err)

	emp, ok := store.Employee(id)
	require.True(t, ok)
	assert.Equal(t, "Ana.Silva@unknown.local", emp.Email)
	require.NotNil(t, emp.HireDate)
	assert.Equal(t, *date(2025, time.August, 4), *emp.HireDate)
	assert.Equal(t, "Full-time", emp.EmploymentType)
	assert.Empty(t, emp.DepartmentID)
	assert.Empty(t, store.Addresses)
	assert.Empty(t, store.EmergencyContacts)
	assert.Empty(t, store.BankAccounts)
	assert.Empty(t, store.Identifiers)
	require.Len(t, store.StatusHistory, 1)
	assert.Equal(t, normalize.StatusOnLeave, store.StatusHistory[0].Status)
	assert.Equal(t, *date(2025, time.August, 4), store.StatusHistory[0].StatusDate)
}

func TestUpsertOnboardingCoalescesUpdates(t *testing.T) {
	store := rostertest.NewMemStore()
	engine := newEngine(store)
	ctx := context.Background()

	id, err := engine.UpsertOnboarding(ctx, onboardingRecord())
	require.NoError(t, err)

	update := roster.OnboardingRecord{
		FirstName:       "JANE",
		LastName:        "doe",
		TerminationDate: date(2025, time.June, 1),
		Status:          normalize.StatusTerminated,
	}
	again, err := engine.UpsertOnboarding(ctx, update)
	require.NoError(t, err)
	require.Equal(t, id, again)

	emp, _ := store.Employee(id)
	assert.Equal(t, "555-0100", emp.Phone)
	assert.Equal(t, "Supervisor", emp.RoleTitle)
	assert.Equal(t, normalize.StatusTerminated, emp.Status)
	assert.Equal(t, date(2025, time.June, 1), emp.TerminationDate)
	assert.NotEmpty(t, emp.DepartmentID)
}

func TestGetOrCreatePeriodIsIdempotent(t *testing.T) {
	store := rostertest.NewMemStore()
	engine := newEngine(store)
	ctx := context.Background()

	hint := payroll.ResolvePeriod("LGM_Payroll_2025__June_30_-_July_13.csv", 2025)
	first, err := engine.GetOrCreatePeriod(ctx, hint)
	require.NoError(t, err)

	changed := hint
	changed.End = date(2025, time.December, 31)
	second, err := engine.GetOrCreatePeriod(ctx, changed)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, store.Periods, 1)
	assert.Equal(t, *date(2025, time.July, 13), *store.Periods[0].EndDate)
	assert.Equal(t, *date(2025, time.July, 18), store.Periods[0].PayDate)
	assert.Equal(t, payroll.PeriodStatusClosed, store.Periods[0].Status)
}

func TestImportPayrollRowWithBlankRate(t *testing.T) {
	store := rostertest.NewMemStore()
	engine := newEngine(store)
	ctx := context.Background()

	period, err := engine.Period(ctx, payroll.ResolvePeriod("LGM_Payroll_2025__June_30_-_July_13.csv", 2025))
	require.NoError(t, err)

	err = engine.ImportPayrollRow(ctx, period, payroll.Row{
		FirstName:    "Sam",
		LastName:     "Green",
		PayrollHours: decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	assert.Empty(t, store.Compensation)
	require.Len(t, store.Calculations, 1)
	assert.True(t, store.Calculations[0].RegularRate.IsZero())
	assert.Equal(t, period.ID, store.Calculations[0].PeriodID)
	assert.Equal(t, 1, engine.StubsCreated())
	assert.Equal(t, "Sam.Green@unknown.local", store.Employees[0].Email)
}

func TestImportPayrollRowUpsertsCompensation(t *testing.T) {
	store := rostertest.NewMemStore()
	engine := newEngine(store)
	ctx := context.Background()

	period, err := engine.Period(ctx, payroll.ResolvePeriod("LGM_Payroll_2025__June_30_-_July_13.csv", 2025))
	require.NoError(t, err)

	row := payroll.Row{FirstName: "Sam", LastName: "Green", Rate: decimal.RequireFromString("17.20"), HoursBiweekly: decimal.NewFromInt(80)}
	require.NoError(t, engine.ImportPayrollRow(ctx, period, row))
	row.Rate = decimal.RequireFromString("18.00")
	row.HoursBiweekly = decimal.Zero
	require.NoError(t, engine.ImportPayrollRow(ctx, period, row))

	require.Len(t, store.Compensation, 1)
	comp := store.Compensation[0]
	assert.Equal(t, *date(2025, time.June, 30), comp.EffectiveDate)
	assert.True(t, comp.RegularRate.Equal(decimal.RequireFromString("18.00")))
	require.NotNil(t, comp.HoursBiweekly)
	assert.True(t, comp.HoursBiweekly.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, payroll.RateTypeHourly, comp.RateType)
	assert.Len(t, store.Calculations, 2)
	assert.Equal(t, 1, engine.StubsCreated())
}

func TestImportTimecard(t *testing.T) {
	store := rostertest.NewMemStore()
	engine := newEngine(store)
	ctx := context.Background()

	existing, err := engine.UpsertOnboarding(ctx, onboardingRecord())
	require.NoError(t, err)

	day := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	n, err := engine.ImportTimecard(ctx, timecard.Card{
		EmployeeName: "jane doe",
		Shifts: []timecard.Shift{
			{WorkDate: day, ClockIn: day.Add(9 * time.Hour), ClockOut: day.Add(13 * time.Hour)},
			{WorkDate: day, ClockIn: day.Add(14 * time.Hour), ClockOut: day.Add(18 * time.Hour)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, store.TimeEntries, 2)
	assert.Equal(t, existing, store.TimeEntries[0].EmployeeID)
	assert.False(t, store.TimeEntries[0].WasLate)
	assert.Equal(t, 0, engine.StubsCreated())
}

func TestStoreFailuresPropagate(t *testing.T) {
	store := rostertest.NewMemStore()
	store.FailOn = "InsertBankAccount"
	store.Err = errors.New("disk full")

	_, err := newEngine(store).UpsertOnboarding(context.Background(), onboardingRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.Err)
}

func TestFuzzyNamesOptIn(t *testing.T) {
	store := rostertest.NewMemStore()
	ctx := context.Background()
	_, err := newEngine(store).UpsertOnboarding(ctx, onboardingRecord())
	require.NoError(t, err)

	engine := newEngine(store, roster.WithFuzzyNames())
	n, err := engine.ImportTimecard(ctx, timecard.Card{EmployeeName: "Jayne Doe"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, engine.StubsCreated())
	assert.Len(t, store.Employees, 1)
}
