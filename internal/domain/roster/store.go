package roster

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"hrimport/internal/domain/identity"
	cryptoutil "hrimport/internal/platform/crypto"
	"hrimport/internal/platform/querier"
)

type Store struct {
	DB     querier.Querier
	Crypto *cryptoutil.Service
}

func NewStore(db querier.Querier, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

func (s *Store) FindEmployeeByEmail(ctx context.Context, email string) (string, bool, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    SELECT id::text
    FROM employees
    WHERE lower(email) = lower($1)
    ORDER BY created_at
    LIMIT 1
  `, email).Scan(&id)
	return found(id, err)
}

func (s *Store) FindEmployeeByName(ctx context.Context, first, last string) (string, bool, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    SELECT id::text
    FROM employees
    WHERE lower(first_name) = lower($1) AND lower(last_name) = lower($2)
    ORDER BY created_at
    LIMIT 1
  `, first, last).Scan(&id)
	return found(id, err)
}

func (s *Store) ListEmployeeNames(ctx context.Context) ([]identity.NameEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id::text, first_name, last_name
    FROM employees
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []identity.NameEntry
	for rows.Next() {
		var e identity.NameEntry
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) CreateStubEmployee(ctx context.Context, stub identity.Stub) (string, error) {
	hire := stub.HireDate
	return s.InsertEmployee(ctx, Employee{
		FirstName:      stub.FirstName,
		LastName:       stub.LastName,
		Email:          stub.Email,
		HireDate:       &hire,
		Status:         stub.Status,
		EmploymentType: stub.EmploymentType,
	})
}

func (s *Store) InsertEmployee(ctx context.Context, emp Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, phone, role_title, birth_date, hire_date,
                           termination_date, department_id, status, employment_type)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id::text
  `, emp.FirstName, emp.LastName, emp.Email, nullIfEmpty(emp.Phone), nullIfEmpty(emp.RoleTitle),
		emp.BirthDate, emp.HireDate, emp.TerminationDate, nullIfEmpty(emp.DepartmentID),
		string(emp.Status), emp.EmploymentType).Scan(&id)
	return id, err
}

// UpdateEmployee overwrites only the fields that carry a value.
func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET phone = COALESCE($2, phone),
        role_title = COALESCE($3, role_title),
        birth_date = COALESCE($4, birth_date),
        hire_date = COALESCE($5, hire_date),
        termination_date = COALESCE($6, termination_date),
        department_id = COALESCE($7::uuid, department_id),
        status = COALESCE($8, status),
        updated_at = now()
    WHERE id = $1
  `, emp.ID, nullIfEmpty(emp.Phone), nullIfEmpty(emp.RoleTitle), emp.BirthDate, emp.HireDate,
		emp.TerminationDate, nullIfEmpty(emp.DepartmentID), nullIfEmpty(string(emp.Status)))
	return err
}

func (s *Store) FindOrCreateDepartment(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `SELECT id::text FROM departments WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	err = s.DB.QueryRow(ctx, `
    INSERT INTO departments (name) VALUES ($1)
    RETURNING id::text
  `, name).Scan(&id)
	return id, err
}

func (s *Store) InsertAddress(ctx context.Context, addr Address) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_addresses (employee_id, line1, effective_from, is_primary, import_batch_id)
    VALUES ($1,$2,$3,$4,$5)
  `, addr.EmployeeID, addr.Line1, addr.EffectiveFrom, addr.IsPrimary, nullIfEmpty(addr.BatchID))
	return err
}

func (s *Store) InsertEmergencyContact(ctx context.Context, contact EmergencyContact) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_emergency_contacts (employee_id, contact_name, contact_phone, relationship, is_primary, import_batch_id)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, contact.EmployeeID, nullIfEmpty(contact.Name), nullIfEmpty(contact.Phone), nullIfEmpty(contact.Relationship),
		contact.IsPrimary, nullIfEmpty(contact.BatchID))
	return err
}

func (s *Store) InsertBankAccount(ctx context.Context, account BankAccount) error {
	plain, enc, err := s.protect(account.AccountNumber)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO employee_bank_accounts (employee_id, bank_name, transit_number, account_number, account_number_enc,
                                        effective_date, is_primary, import_batch_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, account.EmployeeID, nullIfEmpty(account.BankName), nullIfEmpty(account.TransitNumber), plain, enc,
		account.EffectiveDate, account.IsPrimary, nullIfEmpty(account.BatchID))
	return err
}

func (s *Store) UpsertIdentifier(ctx context.Context, ident Identifier) error {
	plain, enc, err := s.protect(ident.Value)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO employee_identifiers (employee_id, id_type, id_value, id_value_enc, expires_on)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id, id_type) DO UPDATE
    SET id_value = CASE WHEN EXCLUDED.id_value_enc IS NOT NULL THEN NULL
                        ELSE COALESCE(EXCLUDED.id_value, employee_identifiers.id_value) END,
        id_value_enc = COALESCE(EXCLUDED.id_value_enc, employee_identifiers.id_value_enc),
        expires_on = COALESCE(EXCLUDED.expires_on, employee_identifiers.expires_on),
        updated_at = now()
  `, ident.EmployeeID, ident.Type, plain, enc, ident.ExpiresOn)
	return err
}

func (s *Store) InsertDocument(ctx context.Context, doc Document) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO documents (employee_id, doc_type, file_name, file_url, signed, notes, import_batch_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, doc.EmployeeID, doc.DocType, doc.FileName, doc.FileURL, doc.Signed, nullIfEmpty(doc.Notes), nullIfEmpty(doc.BatchID))
	return err
}

func (s *Store) InsertStatusChange(ctx context.Context, change StatusChange) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_status_history (employee_id, status, status_date, import_batch_id)
    VALUES ($1,$2,$3,$4)
  `, change.EmployeeID, string(change.Status), change.StatusDate, nullIfEmpty(change.BatchID))
	return err
}

func (s *Store) UpsertCompensation(ctx context.Context, comp Compensation) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_compensation (employee_id, effective_date, rate_type, regular_rate, hours_biweekly)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id, effective_date) DO UPDATE
    SET regular_rate = COALESCE(EXCLUDED.regular_rate, employee_compensation.regular_rate),
        hours_biweekly = COALESCE(EXCLUDED.hours_biweekly, employee_compensation.hours_biweekly),
        updated_at = now()
  `, comp.EmployeeID, comp.EffectiveDate, comp.RateType, comp.RegularRate, comp.HoursBiweekly)
	return err
}

func (s *Store) FindPeriodByName(ctx context.Context, name string) (Period, bool, error) {
	var p Period
	err := s.DB.QueryRow(ctx, `
    SELECT id::text, period_name, start_date, end_date, pay_date, status
    FROM payroll_periods
    WHERE period_name = $1
  `, name).Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.PayDate, &p.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Period{}, false, nil
	}
	if err != nil {
		return Period{}, false, err
	}
	return p, true, nil
}

func (s *Store) InsertPeriod(ctx context.Context, period Period) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_periods (period_name, start_date, end_date, pay_date, status)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id::text
  `, period.Name, period.StartDate, period.EndDate, period.PayDate, period.Status).Scan(&id)
	return id, err
}

func (s *Store) InsertPayrollCalculation(ctx context.Context, calc PayrollCalculation) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO payroll_calculations (employee_id, period_id, base_hours, overtime_hours, regular_rate,
                                      commission_amount, bonus_amount, deductions, status, import_batch_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, calc.EmployeeID, calc.PeriodID, calc.BaseHours, calc.OvertimeHours, calc.RegularRate,
		calc.CommissionAmount, calc.BonusAmount, calc.Deductions, calc.Status, nullIfEmpty(calc.BatchID))
	return err
}

func (s *Store) InsertTimeEntry(ctx context.Context, entry TimeEntry) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO time_entries (employee_id, work_date, clock_in, clock_out, was_late, left_early, overtime_hours, import_batch_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, entry.EmployeeID, entry.WorkDate, entry.ClockIn, entry.ClockOut, entry.WasLate, entry.LeftEarly,
		entry.OvertimeHours, nullIfEmpty(entry.BatchID))
	return err
}

// protect returns the plaintext and encrypted column values for a sensitive
// field. Only one of them is set.
func (s *Store) protect(value string) (any, []byte, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil, nil
	}
	if s.Crypto == nil || !s.Crypto.Configured() {
		return value, nil, nil
	}
	enc, err := s.Crypto.EncryptString(value)
	if err != nil {
		return nil, nil, err
	}
	return nil, enc, nil
}

func found(id string, err error) (string, bool, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func nullIfEmpty(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
