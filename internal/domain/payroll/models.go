package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodHint is what a payroll filename tells us about its period.
type PeriodHint struct {
	Name  string
	Start *time.Time
	End   *time.Time
}

// Row holds the numeric columns of one payroll sheet line, already parsed.
type Row struct {
	FirstName       string
	LastName        string
	Rate            decimal.Decimal
	HoursBiweekly   decimal.Decimal
	TimeReportHours decimal.Decimal
	PayrollHours    decimal.Decimal
	StatHours       decimal.Decimal
	RemainingHours  decimal.Decimal
	AfterHoursBonus decimal.Decimal
	Bonus           decimal.Decimal
	Deduction       decimal.Decimal
	VacationPay     decimal.Decimal
}

// Calculation is the payroll_calculations row derived from a Row.
type Calculation struct {
	BaseHours        decimal.Decimal
	OvertimeHours    decimal.Decimal
	RegularRate      decimal.Decimal
	CommissionAmount decimal.Decimal
	BonusAmount      decimal.Decimal
	Deductions       decimal.Decimal
	Status           string
}
