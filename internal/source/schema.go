package source

import (
	"errors"
	"strings"
)

var ErrHeaderNotFound = errors.New("header row not found")

type Kind string

const (
	KindOnboardingA Kind = "onboarding_a"
	KindOnboardingB Kind = "onboarding_b"
	KindPayroll     Kind = "payroll"
	KindTimecard    Kind = "timecard"
)

// HeaderMatch says how a schema recognises its header row.
type HeaderMatch int

const (
	// FirstRow takes row 0 as the header.
	FirstRow HeaderMatch = iota
	// ExactLabel wants the first cell to equal Label.
	ExactLabel
	// PrefixLabel wants the first cell to start with Label.
	PrefixLabel
)

// Schema declares where a source kind keeps its header and how its columns
// map onto canonical field names. Fields are looked up by header text,
// Offsets by position.
type Schema struct {
	Kind     Kind
	Match    HeaderMatch
	Label    string
	ScanRows int
	Fields   map[string][]string
	Offsets  map[string]int
}

// Table is a sheet after its header has been located. A field may resolve to
// several columns, one per alias present in the header, in alias order.
type Table struct {
	HeaderRow int
	columns   map[string][]int
	body      [][]string
}

// Locate finds the header row and resolves the schema's columns against it.
func (s Schema) Locate(rows [][]string) (Table, error) {
	at, ok := s.headerRow(rows)
	if !ok {
		return Table{}, ErrHeaderNotFound
	}
	header := rows[at]

	byLabel := make(map[string]int, len(header))
	for i, h := range header {
		key := headerKey(h)
		if _, dup := byLabel[key]; !dup && key != "" {
			byLabel[key] = i
		}
	}

	columns := make(map[string][]int, len(s.Fields)+len(s.Offsets))
	for field, idx := range s.Offsets {
		columns[field] = []int{idx}
	}
	for field, names := range s.Fields {
		for _, name := range names {
			if idx, ok := byLabel[headerKey(name)]; ok {
				columns[field] = append(columns[field], idx)
			}
		}
	}
	return Table{HeaderRow: at, columns: columns, body: rows[at+1:]}, nil
}

func (s Schema) headerRow(rows [][]string) (int, bool) {
	if s.Match == FirstRow {
		return 0, len(rows) > 0
	}
	label := strings.ToLower(s.Label)
	limit := len(rows)
	if s.ScanRows > 0 {
		limit = min(limit, s.ScanRows)
	}
	for i := 0; i < limit; i++ {
		first := strings.ToLower(Cell(rows[i], 0))
		switch s.Match {
		case ExactLabel:
			if first == label {
				return i, true
			}
		case PrefixLabel:
			if strings.HasPrefix(first, label) {
				return i, true
			}
		}
	}
	return 0, false
}

func headerKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Rows returns the body rows below the header.
func (t Table) Rows() [][]string {
	return t.body
}

// Has reports whether the field resolved to a column.
func (t Table) Has(field string) bool {
	_, ok := t.columns[field]
	return ok
}

// Get returns the trimmed value of field in row, taking the first alias
// column that is not blank in this row, or "".
func (t Table) Get(row []string, field string) string {
	for _, idx := range t.columns[field] {
		if v := Cell(row, idx); v != "" {
			return v
		}
	}
	return ""
}

// Records are the body rows as canonical field maps. Blank rows are dropped.
func (t Table) Records() []Record {
	var out []Record
	for _, row := range t.body {
		if Blank(row) {
			continue
		}
		rec := make(Record, len(t.columns))
		for field := range t.columns {
			rec[field] = t.Get(row, field)
		}
		out = append(out, rec)
	}
	return out
}

// Record maps canonical field names to trimmed cell values.
type Record map[string]string
