package roster

import (
	"context"

	"hrimport/internal/domain/identity"
)

// StoreAPI is the read/write surface of one import session.
type StoreAPI interface {
	FindEmployeeByEmail(ctx context.Context, email string) (string, bool, error)
	FindEmployeeByName(ctx context.Context, first, last string) (string, bool, error)
	ListEmployeeNames(ctx context.Context) ([]identity.NameEntry, error)
	CreateStubEmployee(ctx context.Context, stub identity.Stub) (string, error)
	InsertEmployee(ctx context.Context, emp Employee) (string, error)
	UpdateEmployee(ctx context.Context, emp Employee) error

	FindOrCreateDepartment(ctx context.Context, name string) (string, error)

	InsertAddress(ctx context.Context, addr Address) error
	InsertEmergencyContact(ctx context.Context, contact EmergencyContact) error
	InsertBankAccount(ctx context.Context, account BankAccount) error
	UpsertIdentifier(ctx context.Context, ident Identifier) error
	InsertDocument(ctx context.Context, doc Document) error
	InsertStatusChange(ctx context.Context, change StatusChange) error

	UpsertCompensation(ctx context.Context, comp Compensation) error
	FindPeriodByName(ctx context.Context, name string) (Period, bool, error)
	InsertPeriod(ctx context.Context, period Period) (string, error)
	InsertPayrollCalculation(ctx context.Context, calc PayrollCalculation) error
	InsertTimeEntry(ctx context.Context, entry TimeEntry) error
}
