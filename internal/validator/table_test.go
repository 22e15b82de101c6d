package validator

import (
	"errors"
	"strings"
	"testing"
)

var awardsSchema = Schema{
	Name:     "grammy",
	Required: []string{"Year", "Award Name", "Nominee", "Winner"},
	Optional: []string{"Work"},
}

func TestTableValidator_Valid(t *testing.T) {
	v := NewTableValidator(awardsSchema)

	header := []string{"Year", "award name", " Nominee ", "Winner", "Work"}
	rows := [][]string{
		{"2024", "Album Of The Year", "Taylor Swift", "True", "Midnights"},
		{"2024", "Best New Artist", "Victoria Monét", "True", ""},
	}

	result := v.Validate(header, rows, nil)
	if !result.IsValid {
		t.Fatalf("Validate returned errors for valid table: %v", result.Errors)
	}

	if result.Stats.TotalRows != 2 || result.Stats.ValidRows != 2 {
		t.Errorf("Stats = %+v, want 2 total and 2 valid", result.Stats)
	}

	if result.Err() != nil {
		t.Errorf("Err() = %v, want nil", result.Err())
	}
}

func TestTableValidator_MissingColumn(t *testing.T) {
	v := NewTableValidator(awardsSchema)

	result := v.Validate([]string{"Year", "Nominee", "Winner"}, nil, nil)
	if result.IsValid {
		t.Fatal("Validate expected missing column error")
	}

	if !errors.Is(result.Err(), ErrMissingColumn) {
		t.Errorf("Err() = %v, want ErrMissingColumn", result.Err())
	}

	if !strings.Contains(result.Errors[0].Message, "Award Name") {
		t.Errorf("error message %q should name the column", result.Errors[0].Message)
	}
}

func TestTableValidator_EmptyHeader(t *testing.T) {
	result := NewTableValidator(awardsSchema).Validate(nil, nil, nil)

	if !errors.Is(result.Err(), ErrEmptyHeader) {
		t.Errorf("Err() = %v, want ErrEmptyHeader", result.Err())
	}
}

func TestTableValidator_MissingValues(t *testing.T) {
	v := NewTableValidator(awardsSchema)
	header := []string{"Year", "Award Name", "Nominee", "Winner"}

	rows := [][]string{{"2024", "Record Of The Year", "", "False"}}
	for i := 0; i < 12; i++ {
		rows = append(rows, []string{"2024", "Song Of The Year"})
	}

	result := v.Validate(header, rows, nil)
	if !result.IsValid {
		t.Fatal("missing values should be warnings, not errors")
	}

	if result.Stats.RowsWithMissing != 13 {
		t.Errorf("RowsWithMissing = %d, want 13", result.Stats.RowsWithMissing)
	}

	if result.Stats.RaggedRows != 12 {
		t.Errorf("RaggedRows = %d, want 12", result.Stats.RaggedRows)
	}

	if !strings.Contains(result.Warnings[0], "line 2: missing Nominee") {
		t.Errorf("first warning = %q, want line 2 missing Nominee", result.Warnings[0])
	}

	// 10 row warnings, one overflow summary, one ragged summary
	if len(result.Warnings) != 12 {
		t.Errorf("got %d warnings, want 12", len(result.Warnings))
	}
}

func TestTableValidator_RecordedLines(t *testing.T) {
	v := NewTableValidator(awardsSchema)
	header := []string{"Year", "Award Name", "Nominee", "Winner"}
	rows := [][]string{
		{"2024", "Song Of The Year", "Multi\nLine", "True"},
		{"2024", "Record Of The Year", "", "False"},
	}

	result := v.Validate(header, rows, []int{2, 4})
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "line 4: missing Nominee") {
		t.Errorf("Warnings = %q, want line 4 missing Nominee", result.Warnings)
	}
}

func TestLineOf(t *testing.T) {
	tests := []struct {
		lines []int
		i     int
		want  int
	}{
		{nil, 0, 2},
		{nil, 5, 7},
		{[]int{2, 5, 6}, 1, 5},
		{[]int{2}, 3, 5},
	}

	for _, tt := range tests {
		if got := LineOf(tt.lines, tt.i); got != tt.want {
			t.Errorf("LineOf(%v, %d) = %d, want %d", tt.lines, tt.i, got, tt.want)
		}
	}
}

func TestValidationResult_String(t *testing.T) {
	result := NewTableValidator(awardsSchema).Validate([]string{"Year", "Year"}, nil, nil)

	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "duplicate column") {
		t.Errorf("Warnings = %q, want duplicate column", result.Warnings)
	}

	if !errors.Is(result.Err(), ErrMissingColumn) {
		t.Errorf("Err() = %v, want ErrMissingColumn", result.Err())
	}

	if !strings.HasPrefix(result.String(), "INVALID") {
		t.Errorf("String() = %q, want INVALID prefix", result.String())
	}
}

func TestColumnIndex(t *testing.T) {
	index := ColumnIndex([]string{"Artist and Title", " Streams ", "Daily", "streams"})

	if i, ok := Lookup(index, "STREAMS"); !ok || i != 1 {
		t.Errorf("Lookup(STREAMS) = (%d, %v), want (1, true)", i, ok)
	}

	if _, ok := Lookup(index, "Artist"); ok {
		t.Error("Lookup(Artist) should not match a partial column name")
	}
}
