package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateFormatsAgree(t *testing.T) {
	want := time.Date(2023, time.May, 22, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2023-05-22 00:00:00", "2023-05-22", " 2023-05-22 ", "05/22/2023", "5/22/2023", "05/22/23"} {
		got, ok := ParseDate(in)
		require.True(t, ok, in)
		assert.True(t, want.Equal(got), "%q parsed to %s", in, got)
	}
}

func TestParseDateTwoDigitYear(t *testing.T) {
	got, ok := ParseDate("07/21/25")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.July, 21, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateDropsTimeOfDay(t *testing.T) {
	got, ok := ParseDate("2025-07-21 13:45:10")
	require.True(t, ok)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 21, got.Day())
}

func TestParseDateRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2023/05/22", "13/45/2023", "July 21"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, in)
	}
	assert.Nil(t, DatePtr("n/a"))
	assert.NotNil(t, DatePtr("2024-01-31"))
}

func TestToDecimal(t *testing.T) {
	cases := map[string]string{
		"$1,234.56": "1234.56",
		"":          "0",
		"-":         "0",
		".":         "0",
		"abc":       "0",
		"1.2.3":     "0",
		"-42.5":     "-42.5",
		"18.50/hr":  "18.5",
		" 80 ":      "80",
	}
	for in, want := range cases {
		assert.True(t, decimal.RequireFromString(want).Equal(ToDecimal(in)), "%q -> %s", in, ToDecimal(in))
	}
}

func TestToDecimalIdempotentOnCleanInput(t *testing.T) {
	first := ToDecimal("1234.56")
	second := ToDecimal(first.String())
	assert.True(t, first.Equal(second))
}

func TestParseDecimalReportsMissing(t *testing.T) {
	_, ok := ParseDecimal("N/A")
	assert.False(t, ok)
	v, ok := ParseDecimal("0")
	assert.True(t, ok)
	assert.True(t, v.IsZero())
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		first, last, full string
		wantFirst         string
		wantLast          string
	}{
		{"", "", "Smith, John", "John", "Smith"},
		{"", "", "John Smith", "John", "Smith"},
		{"", "", "Cher", "Cher", ""},
		{"", "", "Maria de la Cruz", "Maria", "de la Cruz"},
		{"", "", "  ", "", ""},
		{" Ana ", "", "Ignored Name", "Ana", ""},
		{"", "Lee", "Ignored Name", "", "Lee"},
		{"Jo", "Park", "", "Jo", "Park"},
	}
	for _, tc := range cases {
		first, last := SplitName(tc.first, tc.last, tc.full)
		assert.Equal(t, tc.wantFirst, first, "%+v", tc)
		assert.Equal(t, tc.wantLast, last, "%+v", tc)
	}
}

func TestCleanPayrollName(t *testing.T) {
	first, last, ok := CleanPayrollName("Jane Q Doe (left 06/30),")
	require.True(t, ok)
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Q Doe", last)

	first, last, ok = CleanPayrollName("Prince")
	require.True(t, ok)
	assert.Equal(t, "Prince", first)
	assert.Empty(t, last)

	_, _, ok = CleanPayrollName(" (vacant) ")
	assert.False(t, ok)
}

func TestPlaceholderEmail(t *testing.T) {
	assert.Equal(t, "Jane.Doe@unknown.local", PlaceholderEmail("Jane", "Doe"))
	assert.Equal(t, "J.Doe@unknown.local", PlaceholderEmail("J.", "Doe"))
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"":           StatusActive,
		"Active":     StatusActive,
		"probation":  StatusActive,
		"INACTIVE":   StatusTerminated,
		"Not Active": StatusTerminated,
		" resigned ": StatusTerminated,
		"left":       StatusTerminated,
		"LOA":        StatusOnLeave,
		"On Leave":   StatusOnLeave,
		"leave":      StatusOnLeave,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeStatus(in), in)
	}
}
