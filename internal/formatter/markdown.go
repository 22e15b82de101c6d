// Package formatter renders analysis tables as aligned markdown.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"grammystats/pkg/utils"
)

// Alignment of a table column.
type Alignment int

// Column alignments.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// minColumnWidth keeps separators at least "---".
const minColumnWidth = 3

// Table is a titled grid of cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Align   []Alignment
	// MaxCellWidth truncates long cells; 0 keeps them whole.
	MaxCellWidth int
}

// Render returns the table as aligned markdown lines, without the title.
func (t *Table) Render() []string {
	grid := make([][]string, 0, len(t.Rows)+1)
	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = escapePipes(h)
	}

	grid = append(grid, header)

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = escapePipes(utils.Truncate(c, t.MaxCellWidth))
		}

		grid = append(grid, cells)
	}

	return alignGrid(grid, t.Align)
}

// String renders the title, if any, followed by the table.
func (t *Table) String() string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(t.Title)
		sb.WriteString("\n\n")
	}

	sb.WriteString(strings.Join(t.Render(), "\n"))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMarkdown realigns every pipe table in a markdown document.
// Column alignment markers in separator rows are kept.
func FormatMarkdown(content string) (string, error) {
	lines := strings.Split(content, "\n")

	var formattedLines []string

	var tableBuffer []string

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}

		formattedLines = append(formattedLines, line)
	}

	if len(tableBuffer) > 0 {
		formattedLines = append(formattedLines, processTable(tableBuffer)...)
	}

	return strings.Join(formattedLines, "\n"), nil
}

func processTable(rows []string) []string {
	// A header without a separator is not a table.
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))

	for _, row := range rows {
		parts := splitRow(strings.TrimSpace(row))
		parts = parts[1 : len(parts)-1]

		cells := make([]string, len(parts))
		for i, p := range parts {
			cells[i] = strings.TrimSpace(p)
		}

		table = append(table, cells)
	}

	align, ok := parseSeparator(table[1])
	if !ok {
		return rows
	}

	grid := append([][]string{table[0]}, table[2:]...)

	return alignGrid(grid, align)
}

// splitRow splits a table row on pipes that are not escaped.
func splitRow(row string) []string {
	var (
		parts   []string
		current strings.Builder
	)

	for i := 0; i < len(row); i++ {
		switch {
		case row[i] == '\\' && i+1 < len(row) && row[i+1] == '|':
			current.WriteString(`\|`)
			i++
		case row[i] == '|':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteByte(row[i])
		}
	}

	return append(parts, current.String())
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// parseSeparator reads alignment from a "| --- | ---: |" row.
func parseSeparator(cells []string) ([]Alignment, bool) {
	align := make([]Alignment, len(cells))

	for i, cell := range cells {
		trim := strings.ReplaceAll(cell, " ", "")
		if strings.Trim(trim, "-:") != "" || trim == "" {
			return nil, false
		}

		if strings.HasSuffix(trim, ":") && !strings.HasPrefix(trim, ":") {
			align[i] = AlignRight
		}
	}

	return align, true
}

// alignGrid pads every cell to its column's display width. grid[0] is the header.
func alignGrid(grid [][]string, align []Alignment) []string {
	colCount := 0
	for _, row := range grid {
		colCount = max(colCount, len(row))
	}

	colWidths := make([]int, colCount)
	for i := range colWidths {
		colWidths[i] = minColumnWidth
	}

	for _, row := range grid {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
		}
	}

	alignment := func(col int) Alignment {
		if col < len(align) {
			return align[col]
		}

		return AlignLeft
	}

	result := make([]string, 0, len(grid)+1)

	for r, row := range grid {
		result = append(result, renderRow(row, colWidths, alignment))

		if r == 0 {
			result = append(result, renderSeparator(colWidths, alignment))
		}
	}

	return result
}

func renderRow(row []string, widths []int, alignment func(int) Alignment) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range widths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		padding := strings.Repeat(" ", width-runewidth.StringWidth(content))

		sb.WriteString(" ")

		if alignment(j) == AlignRight {
			sb.WriteString(padding)
			sb.WriteString(content)
		} else {
			sb.WriteString(content)
			sb.WriteString(padding)
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

func renderSeparator(widths []int, alignment func(int) Alignment) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range widths {
		sb.WriteString(" ")

		if alignment(j) == AlignRight {
			sb.WriteString(strings.Repeat("-", width-1))
			sb.WriteString(":")
		} else {
			sb.WriteString(strings.Repeat("-", width))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
