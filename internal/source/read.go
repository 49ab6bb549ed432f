package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrEmptySheet        = errors.New("worksheet is empty")
)

const xlsMaxRows = 100000

// extRank orders the exports of one sheet when several sit side by side.
var extRank = map[string]int{".csv": 0, ".xlsx": 1, ".xlsm": 2, ".xls": 3}

// Discover lists the files in dir matching pattern, sorted by name. When the
// same stem exists with several spreadsheet extensions only one is kept,
// csv first, and the others are returned as shadowed.
func Discover(dir, pattern string) (files, shadowed []string, err error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	best := make(map[string]string, len(matches))
	for _, m := range matches {
		if info, err := os.Stat(m); err != nil || info.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(m))
		if _, ok := extRank[ext]; !ok {
			files = append(files, m)
			continue
		}
		stem := strings.TrimSuffix(m, filepath.Ext(m))
		kept, ok := best[stem]
		switch {
		case !ok:
			best[stem] = m
		case extRank[ext] < extRank[strings.ToLower(filepath.Ext(kept))]:
			best[stem] = m
			shadowed = append(shadowed, kept)
		default:
			shadowed = append(shadowed, m)
		}
	}
	for _, m := range best {
		files = append(files, m)
	}
	sort.Strings(files)
	sort.Strings(shadowed)
	return files, shadowed, nil
}

// ReadRows returns the cells of a .csv file or of the first sheet of a .xlsx
// or .xls workbook.
func ReadRows(path string) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	case ".xls":
		rows, err = readXLS(path)
	default:
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptySheet)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", filepath.Base(path), err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%s: no worksheet found: %w", filepath.Base(path), ErrEmptySheet)
	}
	return file.GetRows(sheetName)
}

func readXLS(path string) ([][]string, error) {
	workbook, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", filepath.Base(path), err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("%s: no worksheet found: %w", filepath.Base(path), ErrEmptySheet)
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptySheet)
	}
	last := min(int(sheet.MaxRow), xlsMaxRows)
	rows := make([][]string, 0, last+1)
	for i := 0; i <= last; i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		rows = append(rows, cells)
	}
	return trimTrailingBlank(rows), nil
}

func trimTrailingBlank(rows [][]string) [][]string {
	for len(rows) > 0 && Blank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

// Blank reports whether every cell of the row is whitespace.
func Blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Cell returns the trimmed cell at idx, or "" when the row is too short.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
