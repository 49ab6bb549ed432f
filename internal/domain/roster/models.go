package roster

import (
	"time"

	"github.com/shopspring/decimal"

	"hrimport/internal/domain/normalize"
	"hrimport/internal/domain/payroll"
)

type Employee struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	RoleTitle       string
	BirthDate       *time.Time
	HireDate        *time.Time
	TerminationDate *time.Time
	DepartmentID    string
	Status          normalize.Status
	EmploymentType  string
}

type Address struct {
	EmployeeID    string
	Line1         string
	EffectiveFrom time.Time
	IsPrimary     bool
	BatchID       string
}

type EmergencyContact struct {
	EmployeeID   string
	Name         string
	Phone        string
	Relationship string
	IsPrimary    bool
	BatchID      string
}

type BankAccount struct {
	EmployeeID    string
	BankName      string
	TransitNumber string
	AccountNumber string
	EffectiveDate time.Time
	IsPrimary     bool
	BatchID       string
}

type Identifier struct {
	EmployeeID string
	Type       string
	Value      string
	ExpiresOn  *time.Time
}

type Document struct {
	EmployeeID string
	DocType    string
	FileName   string
	FileURL    string
	Signed     bool
	Notes      string
	BatchID    string
}

type StatusChange struct {
	EmployeeID string
	Status     normalize.Status
	StatusDate time.Time
	BatchID    string
}

type Compensation struct {
	EmployeeID    string
	EffectiveDate time.Time
	RateType      string
	RegularRate   decimal.Decimal
	HoursBiweekly *decimal.Decimal
}

type Period struct {
	ID        string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	PayDate   time.Time
	Status    string
}

type PayrollCalculation struct {
	EmployeeID string
	PeriodID   string
	payroll.Calculation
	BatchID string
}

type TimeEntry struct {
	EmployeeID    string
	WorkDate      time.Time
	ClockIn       time.Time
	ClockOut      time.Time
	WasLate       bool
	LeftEarly     bool
	OvertimeHours decimal.Decimal
	BatchID       string
}

// OnboardingRecord is one normalized onboarding sheet row. Names are already
// split and dates and status already normalized by the caller.
type OnboardingRecord struct {
	Department      string
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	RoleTitle       string
	HireDate        *time.Time
	TerminationDate *time.Time
	BirthDate       *time.Time
	Status          normalize.Status
	Address         string
	EmergencyName   string
	EmergencyPhone  string
	BankName        string
	TransitNumber   string
	AccountNumber   string
	SIN             string
	SINExpiry       *time.Time
	ContractURL     string
	StatusProofURL  string
	VoidChequeURL   string
}
