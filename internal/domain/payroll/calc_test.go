package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestComputeUsesPayrollHours(t *testing.T) {
	calc := Compute(Row{
		Rate:            dec("18.50"),
		TimeReportHours: dec("76"),
		PayrollHours:    dec("80"),
		AfterHoursBonus: dec("25"),
		Bonus:           dec("100"),
		VacationPay:     dec("12.40"),
		Deduction:       dec("30"),
	})
	if !calc.BaseHours.Equal(dec("80")) {
		t.Fatalf("expected base hours 80, got %s", calc.BaseHours)
	}
	if !calc.BonusAmount.Equal(dec("137.40")) {
		t.Fatalf("expected bonus 137.40, got %s", calc.BonusAmount)
	}
	if !calc.Deductions.Equal(dec("30")) {
		t.Fatalf("expected deductions 30, got %s", calc.Deductions)
	}
	if !calc.RegularRate.Equal(dec("18.50")) {
		t.Fatalf("expected rate 18.50, got %s", calc.RegularRate)
	}
	if !calc.OvertimeHours.IsZero() || !calc.CommissionAmount.IsZero() {
		t.Fatalf("overtime and commission must be zero, got %+v", calc)
	}
	if calc.Status != CalculationStatusApproved {
		t.Fatalf("expected Approved, got %s", calc.Status)
	}
}

func TestComputeFallsBackToTimeReportHours(t *testing.T) {
	calc := Compute(Row{TimeReportHours: dec("72.5")})
	if !calc.BaseHours.Equal(dec("72.5")) {
		t.Fatalf("expected base hours 72.5, got %s", calc.BaseHours)
	}
	if !calc.RegularRate.IsZero() {
		t.Fatalf("expected zero rate for blank rate column, got %s", calc.RegularRate)
	}
}

func TestRowHasRate(t *testing.T) {
	if (Row{}).HasRate() {
		t.Fatal("blank rate must not count as a rate")
	}
	if (Row{Rate: dec("-1")}).HasRate() {
		t.Fatal("negative rate must not count as a rate")
	}
	if !(Row{Rate: dec("0.01")}).HasRate() {
		t.Fatal("positive rate expected")
	}
}
