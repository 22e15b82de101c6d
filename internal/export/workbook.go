package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"
	// maxSheetName is the xlsx limit on sheet name length.
	maxSheetName = 31
)

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// Workbook collects tables into one xlsx file, one sheet per table.
type Workbook struct {
	file   *excelize.File
	header int
	sheets []string
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	return &Workbook{file: f, header: style}, nil
}

// SheetName converts a table name into a valid, unique sheet name.
func (w *Workbook) SheetName(name string) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(name))
	if base == "" {
		base = "Table"
	}

	base = truncateRunes(base, maxSheetName)
	candidate := base

	for i := 2; w.hasSheet(candidate); i++ {
		suffix := fmt.Sprintf(" %d", i)
		candidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}

	return candidate
}

// AddTable writes t into a new sheet and returns the sheet name.
func (w *Workbook) AddTable(t *Table) (string, error) {
	if len(t.Headers) == 0 {
		return "", fmt.Errorf("%s: %w", t.Name, ErrNoHeaders)
	}

	sheet := w.SheetName(t.Name)

	if len(w.sheets) == 0 {
		if err := w.file.SetSheetName(defaultSheet, sheet); err != nil {
			return "", fmt.Errorf("failed to rename sheet: %w", err)
		}
	} else if _, err := w.file.NewSheet(sheet); err != nil {
		return "", fmt.Errorf("failed to add sheet %s: %w", sheet, err)
	}

	w.sheets = append(w.sheets, sheet)

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}

	if err := w.file.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	if err := w.file.SetRowStyle(sheet, 1, 1, w.header); err != nil {
		return "", fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}

		values := row
		if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return sheet, nil
}

// Sheets lists sheet names in insertion order.
func (w *Workbook) Sheets() []string {
	return append([]string(nil), w.sheets...)
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	if len(w.sheets) > 0 {
		w.file.SetActiveSheet(0)
	}

	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) hasSheet(name string) bool {
	for _, s := range w.sheets {
		if strings.EqualFold(s, name) {
			return true
		}
	}

	return false
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return strings.TrimSpace(string(r[:n]))
}
