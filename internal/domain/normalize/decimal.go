package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal keeps only digits, '.' and '-' and parses what is left, so
// currency symbols, thousands separators and stray text are dropped.
func ParseDecimal(value string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, value)
	switch cleaned {
	case "", "-", ".":
		return decimal.Zero, false
	}
	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return parsed, true
}

// ToDecimal is ParseDecimal with zero for anything unparsable.
func ToDecimal(value string) decimal.Decimal {
	parsed, _ := ParseDecimal(value)
	return parsed
}
