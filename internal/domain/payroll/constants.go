package payroll

const (
	PeriodStatusClosed = "Closed"

	CalculationStatusApproved = "Approved"

	RateTypeHourly = "Hourly"

	// PayDateOffsetDays is the gap between a period's end and its pay date.
	PayDateOffsetDays = 5
)
