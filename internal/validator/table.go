// Package validator checks loaded CSV tables against their expected columns.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"grammystats/pkg/utils"
)

// Validation errors.
var (
	ErrEmptyHeader     = errors.New("table has no header row")
	ErrMissingColumn   = errors.New("required column missing")
	ErrDuplicateColumn = errors.New("duplicate column")
)

// maxRowWarnings caps per-row warnings; the rest are summarized.
const maxRowWarnings = 10

// Schema names the columns a table must and may contain.
type Schema struct {
	Name     string
	Required []string
	Optional []string
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Err     error
	Field   string
	Value   string
	Message string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
	Stats    ValidationStats
	IsValid  bool
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	TotalRows       int
	ValidRows       int
	InvalidRows     int
	RowsWithMissing int
	RaggedRows      int
}

// TableValidator validates a header and rows against a schema.
type TableValidator struct {
	schema Schema
}

// NewTableValidator creates a validator for schema.
func NewTableValidator(schema Schema) *TableValidator {
	return &TableValidator{schema: schema}
}

// LineOf returns the file line of data row i. Without recorded lines every
// record is assumed to fill one line after the header.
func LineOf(lines []int, i int) int {
	if i < len(lines) {
		return lines[i]
	}

	return i + 2
}

// ColumnIndex maps canonical column names to their position in header.
// Matching ignores case and surrounding whitespace.
func ColumnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))

	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	return index
}

// Lookup returns the position of column in index.
func Lookup(index map[string]int, column string) (int, bool) {
	i, ok := index[strings.ToLower(column)]

	return i, ok
}

// Validate checks the header for required columns and every row for
// missing required values. lines gives the starting line of each row and
// may be nil.
func (v *TableValidator) Validate(header []string, rows [][]string, lines []int) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	if len(header) == 0 {
		result.addError(ValidationError{Err: ErrEmptyHeader, Message: ErrEmptyHeader.Error()})

		return result
	}

	index := ColumnIndex(header)
	seen := make(map[string]bool, len(header))

	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if seen[key] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: column %d %q: %v", v.schema.Name, i+1, h, ErrDuplicateColumn))
		}

		seen[key] = true
	}

	required := make([]int, 0, len(v.schema.Required))

	for _, col := range v.schema.Required {
		i, ok := Lookup(index, col)
		if !ok {
			result.addError(ValidationError{
				Err:     ErrMissingColumn,
				Field:   col,
				Message: fmt.Sprintf("%s: %v: %q", v.schema.Name, ErrMissingColumn, col),
			})

			continue
		}

		required = append(required, i)
	}

	if !result.IsValid {
		return result
	}

	rowWarnings := 0

	for r, row := range rows {
		result.Stats.TotalRows++
		line := LineOf(lines, r)

		if len(row) != len(header) {
			result.Stats.RaggedRows++
		}

		var missing []string

		for k, i := range required {
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				missing = append(missing, v.schema.Required[k])
			}
		}

		if len(missing) == 0 {
			result.Stats.ValidRows++
			continue
		}

		result.Stats.InvalidRows++
		result.Stats.RowsWithMissing++

		if rowWarnings < maxRowWarnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s line %d: missing %s (%s)",
				v.schema.Name, line, strings.Join(missing, ", "), utils.Truncate(strings.Join(row, ","), 50)))
		}

		rowWarnings++
	}

	if rowWarnings > maxRowWarnings {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: %d more rows with missing values", v.schema.Name, rowWarnings-maxRowWarnings))
	}

	if result.Stats.RaggedRows > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: %d rows do not match the header width", v.schema.Name, result.Stats.RaggedRows))
	}

	return result
}

func (r *ValidationResult) addError(e ValidationError) {
	r.IsValid = false
	r.Errors = append(r.Errors, e)
}

// Err joins the result's errors, or returns nil when valid.
func (r *ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}

	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Err != nil {
			errs = append(errs, fmt.Errorf("%w: %s", e.Err, e.Field))
		} else {
			errs = append(errs, errors.New(e.Message))
		}
	}

	return errors.Join(errs...)
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "VALID"
	if !r.IsValid {
		status = "INVALID"
	}

	return fmt.Sprintf(
		"%s | Total: %d | Valid: %d | Missing values: %d | Warnings: %d",
		status,
		r.Stats.TotalRows,
		r.Stats.ValidRows,
		r.Stats.RowsWithMissing,
		len(r.Warnings),
	)
}
