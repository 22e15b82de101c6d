package analysis

import (
	"fmt"
	"path/filepath"
	"strings"

	"grammystats/internal/formatter"
)

// Section is one titled part of the report. Blocks keep notes, tables and
// chart links in the order they were added.
type Section struct {
	Name   string
	Title  string
	Notes  []string
	Tables []*formatter.Table
	Charts []string

	blocks []string
}

func newSection(name, title string) *Section {
	return &Section{Name: name, Title: title}
}

// Notef adds a paragraph.
func (s *Section) Notef(format string, args ...any) {
	note := fmt.Sprintf(format, args...)
	s.Notes = append(s.Notes, note)
	s.blocks = append(s.blocks, note)
}

// AddTable adds a table.
func (s *Section) AddTable(t *formatter.Table) {
	s.Tables = append(s.Tables, t)
	s.blocks = append(s.blocks, t.String())
}

// Table returns the first table with the given title, or nil.
func (s *Section) Table(title string) *formatter.Table {
	for _, t := range s.Tables {
		if strings.TrimLeft(t.Title, "# ") == title {
			return t
		}
	}

	return nil
}

func (s *Section) addChart(path, caption string) {
	s.Charts = append(s.Charts, path)
	s.blocks = append(s.blocks, fmt.Sprintf("![%s](%s)", caption, filepath.Base(path)))
}

// Markdown renders the section with a level-two heading.
func (s *Section) Markdown() string {
	var sb strings.Builder

	sb.WriteString("## ")
	sb.WriteString(s.Title)
	sb.WriteString("\n")

	for _, b := range s.blocks {
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(b, "\n"))
		sb.WriteString("\n")
	}

	return sb.String()
}

func newTable(title string, headers ...string) *formatter.Table {
	return &formatter.Table{Title: "### " + title, Headers: headers, MaxCellWidth: maxCellWidth}
}

// rightAlign marks the given columns as numeric.
func rightAlign(t *formatter.Table, cols ...int) *formatter.Table {
	t.Align = make([]formatter.Alignment, len(t.Headers))
	for _, c := range cols {
		t.Align[c] = formatter.AlignRight
	}

	return t
}
