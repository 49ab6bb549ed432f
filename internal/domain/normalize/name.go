package normalize

import (
	"regexp"
	"strings"
)

var parenthesized = regexp.MustCompile(`\(.*?\)`)

// SplitName returns the explicit first/last fields when either is set.
// Otherwise the full name is read as "Last, First" when it has a comma, or as
// first token plus the remaining tokens.
func SplitName(first, last, full string) (string, string) {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first != "" || last != "" {
		return first, last
	}
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	if before, after, ok := strings.Cut(full, ","); ok {
		return strings.TrimSpace(after), strings.TrimSpace(before)
	}
	parts := strings.Fields(full)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// CleanPayrollName reads the name cell of a payroll sheet, which may carry
// comments in parentheses and trailing commas.
func CleanPayrollName(cell string) (string, string, bool) {
	cleaned := parenthesized.ReplaceAllString(cell, "")
	cleaned = strings.Trim(strings.TrimSpace(cleaned), ",")
	parts := strings.Fields(cleaned)
	if len(parts) == 0 {
		return "", "", false
	}
	return parts[0], strings.Join(parts[1:], " "), true
}

// PlaceholderEmail is the address given to employees created without one.
func PlaceholderEmail(first, last string) string {
	email := first + "." + last + "@unknown.local"
	return strings.ReplaceAll(email, "..", ".")
}
