package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriodFromFilename(t *testing.T) {
	hint := ResolvePeriod("/data/LGM/csv/LGM_Payroll_2025__June_30_-_July_13.csv", 2025)

	assert.Equal(t, "June 30 - July 13", hint.Name)
	require.NotNil(t, hint.Start)
	require.NotNil(t, hint.End)
	assert.Equal(t, day(2025, time.June, 30), *hint.Start)
	assert.Equal(t, day(2025, time.July, 13), *hint.End)
	assert.Equal(t, day(2025, time.July, 18), PayDate(hint, day(2030, time.January, 1)))
}

func TestResolvePeriodUsesConfiguredYear(t *testing.T) {
	hint := ResolvePeriod("LGM_Payroll_2024__december_16_-_December_29.xlsx", 2025)
	require.NotNil(t, hint.Start)
	assert.Equal(t, 2025, hint.Start.Year())
	assert.Equal(t, "december 16 - December 29", hint.Name)
}

func TestResolvePeriodWithoutDates(t *testing.T) {
	today := day(2025, time.August, 1)

	hint := ResolvePeriod("LGM_Payroll_2025__Special_Run.csv", 2025)
	assert.Equal(t, "Special Run", hint.Name)
	assert.Nil(t, hint.Start)
	assert.Nil(t, hint.End)
	assert.Equal(t, day(2025, time.August, 6), PayDate(hint, today))
	assert.Equal(t, today, EffectiveDate(hint, today))
}

func TestResolvePeriodWithoutSeparatorUsesWholeStem(t *testing.T) {
	hint := ResolvePeriod("Payroll_June_30_-_July_13.csv", 2025)
	assert.Equal(t, "Payroll June 30 - July 13", hint.Name)
	assert.Nil(t, hint.Start, "first two month/day pairs must both be months")
}

func TestResolvePeriodRejectsImpossibleDay(t *testing.T) {
	hint := ResolvePeriod("LGM_Payroll_2025__February_30_-_March_13.csv", 2025)
	assert.Nil(t, hint.Start)
	assert.Nil(t, hint.End)
}

func TestPayDateFallsBackToStart(t *testing.T) {
	start := day(2025, time.March, 3)
	assert.Equal(t, day(2025, time.March, 8), PayDate(PeriodHint{Start: &start}, day(2025, time.May, 1)))
	assert.Equal(t, start, EffectiveDate(PeriodHint{Start: &start}, day(2025, time.May, 1)))
}
