package payroll

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthDay = regexp.MustCompile(`([A-Za-z]+)\s+(\d{1,2})`)

var months = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ResolvePeriod reads a period from names like
// "LGM_Payroll_2025__June_30_-_July_13.csv". The year is not taken from the
// filename; every period is placed in the given year.
func ResolvePeriod(filename string, year int) PeriodHint {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	text := stem
	if _, after, ok := strings.Cut(stem, "__"); ok {
		text = after
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, "_", " "))

	hint := PeriodHint{Name: text}
	matches := monthDay.FindAllStringSubmatch(text, -1)
	if len(matches) < 2 {
		return hint
	}
	start, ok := monthDate(year, matches[0][1], matches[0][2])
	if !ok {
		return hint
	}
	end, ok := monthDate(year, matches[1][1], matches[1][2])
	if !ok {
		return hint
	}
	hint.Start = &start
	hint.End = &end
	return hint
}

func monthDate(year int, monthName, dayText string) (time.Time, bool) {
	month, ok := months[strings.ToLower(monthName)]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayText)
	if err != nil || day < 1 {
		return time.Time{}, false
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Month() != month {
		return time.Time{}, false
	}
	return date, true
}

// PayDate is fixed when a period is first registered: end date, else start
// date, else today, plus the pay date offset.
func PayDate(hint PeriodHint, today time.Time) time.Time {
	base := today
	switch {
	case hint.End != nil:
		base = *hint.End
	case hint.Start != nil:
		base = *hint.Start
	}
	return base.AddDate(0, 0, PayDateOffsetDays)
}

// EffectiveDate is the compensation effective date for rows of this period.
func EffectiveDate(hint PeriodHint, today time.Time) time.Time {
	if hint.Start != nil {
		return *hint.Start
	}
	return today
}
