package normalize

import (
	"strings"
	"time"
)

// dateLayouts is tried in order; the first layout that parses wins.
var dateLayouts = []string{
	"2006-1-2 15:04:05",
	"2006-1-2",
	"1/2/2006",
	"1/2/06",
}

// ParseDate reads the date formats seen in the exports. ok is false for empty
// or unrecognised input; the caller decides whether that matters.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// DatePtr is ParseDate for nullable columns.
func DatePtr(value string) *time.Time {
	parsed, ok := ParseDate(value)
	if !ok {
		return nil
	}
	return &parsed
}
