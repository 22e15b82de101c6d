// Package export writes derived analysis tables to CSV files and an xlsx workbook.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ErrNoHeaders is returned for tables without columns.
var ErrNoHeaders = errors.New("table has no headers")

// Table is a named derived table. Cells are strings, ints or floats.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

// StringRows renders every cell as text.
func (t *Table) StringRows() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = FormatCell(cell)
		}
	}

	return out
}

// FormatCell renders a cell the way it is written to CSV.
func FormatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// WriteCSV writes t with a header row to path, creating parent directories.
func WriteCSV(path string, t *Table) error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("%s: %w", t.Name, ErrNoHeaders)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := w.WriteAll(t.StringRows()); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	return f.Close()
}
