package timecard

import (
	"errors"
	"strings"
	"time"

	"hrimport/internal/domain/normalize"
)

var ErrEmployeeNotFound = errors.New("timecard: employee name not found")

const clockLayout = "3:04 PM"

var weekdays = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true, "fri": true, "sat": true, "sun": true,
}

// Column pairs a clock-in column with its clock-out column.
type Column struct {
	In  int
	Out int
}

// Layout fixes where the exported timecard puts things.
type Layout struct {
	HeaderScanRows  int
	NameLabelPrefix string
	NameColumn      int
	NameWindow      int
	PeriodLabel     string
	WeekdayColumn   int
	DateColumn      int
	Shifts          []Column
}

func DefaultLayout() Layout {
	return Layout{
		HeaderScanRows:  15,
		NameLabelPrefix: "employee",
		NameColumn:      3,
		NameWindow:      2,
		PeriodLabel:     "pay period",
		WeekdayColumn:   0,
		DateColumn:      1,
		Shifts:          []Column{{In: 2, Out: 3}, {In: 4, Out: 5}},
	}
}

type Shift struct {
	WorkDate time.Time
	ClockIn  time.Time
	ClockOut time.Time
}

type Card struct {
	EmployeeName string
	PeriodLabel  string
	Shifts       []Shift
}

// Extract reads the employee header and the day rows of one timecard. When
// several employee labels carry a name, the last one wins.
func Extract(rows [][]string, layout Layout) (Card, error) {
	var card Card
	limit := min(layout.HeaderScanRows, len(rows))
	for i := 0; i < limit; i++ {
		label := strings.ToLower(strings.TrimSpace(cell(rows[i], 0)))
		switch {
		case strings.HasPrefix(label, layout.NameLabelPrefix):
			if name := findName(rows, i, layout); name != "" {
				card.EmployeeName = name
			}
		case layout.PeriodLabel != "" && strings.Contains(label, layout.PeriodLabel):
			card.PeriodLabel = strings.TrimSpace(cell(rows[i], 0))
		}
	}
	if card.EmployeeName == "" {
		return Card{}, ErrEmployeeNotFound
	}

	for _, row := range rows {
		card.Shifts = append(card.Shifts, dayShifts(row, layout)...)
	}
	return card, nil
}

func findName(rows [][]string, at int, layout Layout) string {
	from := max(0, at-layout.NameWindow)
	to := min(len(rows), at+layout.NameWindow+1)
	for j := from; j < to; j++ {
		if isDayRow(rows[j], layout) {
			continue
		}
		raw := strings.TrimSpace(cell(rows[j], layout.NameColumn))
		if raw == "" {
			continue
		}
		name := strings.Trim(raw, `"`)
		name = strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ").Replace(name))
		if name == "" || strings.HasPrefix(strings.ToLower(name), layout.NameLabelPrefix) {
			continue
		}
		// A cell of punctuation alone names nobody.
		if first, last := normalize.SplitName("", "", name); first == "" && last == "" {
			continue
		}
		return name
	}
	return ""
}

func dayShifts(row []string, layout Layout) []Shift {
	if len(row) < 3 {
		return nil
	}
	if !isDayRow(row, layout) {
		return nil
	}
	date, ok := normalize.ParseDate(cell(row, layout.DateColumn))
	if !ok {
		return nil
	}
	var shifts []Shift
	for _, col := range layout.Shifts {
		in := strings.TrimSpace(cell(row, col.In))
		out := strings.TrimSpace(cell(row, col.Out))
		if in == "" || out == "" {
			continue
		}
		clockIn, ok := ParseClock(date, in)
		if !ok {
			continue
		}
		clockOut, ok := ParseClock(date, out)
		if !ok {
			continue
		}
		shifts = append(shifts, Shift{WorkDate: date, ClockIn: clockIn, ClockOut: clockOut})
	}
	return shifts
}

// ParseClock places a 12-hour clock reading such as "9:05 am" on the given date.
func ParseClock(date time.Time, value string) (time.Time, bool) {
	value = strings.ToUpper(strings.Join(strings.Fields(value), " "))
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), true
}

func isDayRow(row []string, layout Layout) bool {
	return weekdays[strings.ToLower(strings.TrimSpace(cell(row, layout.WeekdayColumn)))]
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
