package payroll

import "github.com/shopspring/decimal"

// Compute derives the stored calculation. Overtime and commission are not
// present in the period sheets and are always zero.
func Compute(row Row) Calculation {
	base := row.PayrollHours
	if base.IsZero() {
		base = row.TimeReportHours
	}
	return Calculation{
		BaseHours:        base,
		OvertimeHours:    decimal.Zero,
		RegularRate:      row.Rate,
		CommissionAmount: decimal.Zero,
		BonusAmount:      row.AfterHoursBonus.Add(row.Bonus).Add(row.VacationPay),
		Deductions:       row.Deduction,
		Status:           CalculationStatusApproved,
	}
}

// HasRate reports whether the row carries a usable compensation rate.
func (r Row) HasRate() bool {
	return r.Rate.IsPositive()
}
