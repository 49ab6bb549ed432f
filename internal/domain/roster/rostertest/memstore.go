// Package rostertest provides an in-memory roster store for tests.
package rostertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"hrimport/internal/domain/identity"
	"hrimport/internal/domain/roster"
)

type MemStore struct {
	mu sync.Mutex

	// FailOn makes the named method return Err.
	FailOn string
	Err    error

	seq int

	Employees         []roster.Employee
	Departments       map[string]string
	Addresses         []roster.Address
	EmergencyContacts []roster.EmergencyContact
	BankAccounts      []roster.BankAccount
	Identifiers       []roster.Identifier
	Documents         []roster.Document
	StatusHistory     []roster.StatusChange
	Compensation      []roster.Compensation
	Periods           []roster.Period
	Calculations      []roster.PayrollCalculation
	TimeEntries       []roster.TimeEntry
}

var _ roster.StoreAPI = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{Departments: map[string]string{}}
}

func (m *MemStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *MemStore) fail(method string) error {
	if m.FailOn == method {
		if m.Err != nil {
			return m.Err
		}
		return fmt.Errorf("%s failed", method)
	}
	return nil
}

// Employee returns the stored employee with the given id.
func (m *MemStore) Employee(id string) (roster.Employee, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return roster.Employee{}, false
}

func (m *MemStore) FindEmployeeByEmail(_ context.Context, email string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("FindEmployeeByEmail"); err != nil {
		return "", false, err
	}
	for _, e := range m.Employees {
		if strings.EqualFold(e.Email, email) {
			return e.ID, true, nil
		}
	}
	return "", false, nil
}

func (m *MemStore) FindEmployeeByName(_ context.Context, first, last string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("FindEmployeeByName"); err != nil {
		return "", false, err
	}
	for _, e := range m.Employees {
		if strings.EqualFold(e.FirstName, first) && strings.EqualFold(e.LastName, last) {
			return e.ID, true, nil
		}
	}
	return "", false, nil
}

func (m *MemStore) ListEmployeeNames(context.Context) ([]identity.NameEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]identity.NameEntry, 0, len(m.Employees))
	for _, e := range m.Employees {
		out = append(out, identity.NameEntry{ID: e.ID, FirstName: e.FirstName, LastName: e.LastName})
	}
	return out, nil
}

func (m *MemStore) CreateStubEmployee(ctx context.Context, stub identity.Stub) (string, error) {
	hire := stub.HireDate
	return m.InsertEmployee(ctx, roster.Employee{
		FirstName:      stub.FirstName,
		LastName:       stub.LastName,
		Email:          stub.Email,
		HireDate:       &hire,
		Status:         stub.Status,
		EmploymentType: stub.EmploymentType,
	})
}

func (m *MemStore) InsertEmployee(_ context.Context, emp roster.Employee) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertEmployee"); err != nil {
		return "", err
	}
	emp.ID = m.nextID("emp")
	m.Employees = append(m.Employees, emp)
	return emp.ID, nil
}

func (m *MemStore) UpdateEmployee(_ context.Context, emp roster.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateEmployee"); err != nil {
		return err
	}
	for i := range m.Employees {
		cur := &m.Employees[i]
		if cur.ID != emp.ID {
			continue
		}
		if emp.Phone != "" {
			cur.Phone = emp.Phone
		}
		if emp.RoleTitle != "" {
			cur.RoleTitle = emp.RoleTitle
		}
		if emp.BirthDate != nil {
			cur.BirthDate = emp.BirthDate
		}
		if emp.HireDate != nil {
			cur.HireDate = emp.HireDate
		}
		if emp.TerminationDate != nil {
			cur.TerminationDate = emp.TerminationDate
		}
		if emp.DepartmentID != "" {
			cur.DepartmentID = emp.DepartmentID
		}
		if emp.Status != "" {
			cur.Status = emp.Status
		}
		return nil
	}
	return fmt.Errorf("employee %s not found", emp.ID)
}

func (m *MemStore) FindOrCreateDepartment(_ context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("FindOrCreateDepartment"); err != nil {
		return "", err
	}
	if id, ok := m.Departments[name]; ok {
		return id, nil
	}
	id := m.nextID("dept")
	m.Departments[name] = id
	return id, nil
}

func (m *MemStore) InsertAddress(_ context.Context, addr roster.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertAddress"); err != nil {
		return err
	}
	m.Addresses = append(m.Addresses, addr)
	return nil
}

func (m *MemStore) InsertEmergencyContact(_ context.Context, contact roster.EmergencyContact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertEmergencyContact"); err != nil {
		return err
	}
	m.EmergencyContacts = append(m.EmergencyContacts, contact)
	return nil
}

func (m *MemStore) InsertBankAccount(_ context.Context, account roster.BankAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertBankAccount"); err != nil {
		return err
	}
	m.BankAccounts = append(m.BankAccounts, account)
	return nil
}

func (m *MemStore) UpsertIdentifier(_ context.Context, ident roster.Identifier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpsertIdentifier"); err != nil {
		return err
	}
	for i := range m.Identifiers {
		cur := &m.Identifiers[i]
		if cur.EmployeeID == ident.EmployeeID && cur.Type == ident.Type {
			if ident.Value != "" {
				cur.Value = ident.Value
			}
			if ident.ExpiresOn != nil {
				cur.ExpiresOn = ident.ExpiresOn
			}
			return nil
		}
	}
	m.Identifiers = append(m.Identifiers, ident)
	return nil
}

func (m *MemStore) InsertDocument(_ context.Context, doc roster.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertDocument"); err != nil {
		return err
	}
	m.Documents = append(m.Documents, doc)
	return nil
}

func (m *MemStore) InsertStatusChange(_ context.Context, change roster.StatusChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertStatusChange"); err != nil {
		return err
	}
	m.StatusHistory = append(m.StatusHistory, change)
	return nil
}

func (m *MemStore) UpsertCompensation(_ context.Context, comp roster.Compensation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpsertCompensation"); err != nil {
		return err
	}
	for i := range m.Compensation {
		cur := &m.Compensation[i]
		if cur.EmployeeID == comp.EmployeeID && cur.EffectiveDate.Equal(comp.EffectiveDate) {
			cur.RegularRate = comp.RegularRate
			if comp.HoursBiweekly != nil {
				cur.HoursBiweekly = comp.HoursBiweekly
			}
			return nil
		}
	}
	m.Compensation = append(m.Compensation, comp)
	return nil
}

func (m *MemStore) FindPeriodByName(_ context.Context, name string) (roster.Period, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("FindPeriodByName"); err != nil {
		return roster.Period{}, false, err
	}
	for _, p := range m.Periods {
		if p.Name == name {
			return p, true, nil
		}
	}
	return roster.Period{}, false, nil
}

func (m *MemStore) InsertPeriod(_ context.Context, period roster.Period) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertPeriod"); err != nil {
		return "", err
	}
	period.ID = m.nextID("period")
	m.Periods = append(m.Periods, period)
	return period.ID, nil
}

func (m *MemStore) InsertPayrollCalculation(_ context.Context, calc roster.PayrollCalculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertPayrollCalculation"); err != nil {
		return err
	}
	m.Calculations = append(m.Calculations, calc)
	return nil
}

func (m *MemStore) InsertTimeEntry(_ context.Context, entry roster.TimeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("InsertTimeEntry"); err != nil {
		return err
	}
	m.TimeEntries = append(m.TimeEntries, entry)
	return nil
}
