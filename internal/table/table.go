// Package table renders rows of strings as an ASCII table with borders.
// Cell widths are computed on the text with ANSI escape sequences removed,
// so colored cells line up with plain ones.
package table

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Alignment positions cell content within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Table accumulates a header and rows and renders them to a writer.
type Table struct {
	writer          io.Writer
	header          []string
	rows            [][]string
	columnAlignment []Alignment
	headerAlignment []Alignment
}

// NewTable creates a table that renders to the given writer.
func NewTable(writer io.Writer) *Table {
	return &Table{writer: writer}
}

// WithHeader sets the column headers.
func (t *Table) WithHeader(header []string) *Table {
	t.header = header
	return t
}

// WithColumnAlignment sets the per-column alignment used for body rows.
// Columns beyond the provided alignments default to AlignLeft.
func (t *Table) WithColumnAlignment(alignment []Alignment) *Table {
	t.columnAlignment = alignment
	return t
}

// WithHeaderAlignment sets the per-column alignment used for the header row.
func (t *Table) WithHeaderAlignment(alignment []Alignment) *Table {
	t.headerAlignment = alignment
	return t
}

// WithRows replaces all body rows.
func (t *Table) WithRows(rows [][]string) *Table {
	t.rows = rows
	return t
}

// Append adds a single body row.
func (t *Table) Append(row []string) *Table {
	t.rows = append(t.rows, row)
	return t
}

// Render writes the table, including borders, to the writer.
func (t *Table) Render() {
	columns := len(t.header)
	for _, row := range t.rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	if columns == 0 {
		return
	}

	widths := make([]int, columns)
	for i, cell := range t.header {
		if w := displayWidth(cell); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	border := borderLine(widths)
	fmt.Fprintln(t.writer, border)
	if len(t.header) > 0 {
		fmt.Fprintln(t.writer, formatRow(t.header, widths, t.headerAlignment))
		fmt.Fprintln(t.writer, border)
	}
	for _, row := range t.rows {
		fmt.Fprintln(t.writer, formatRow(row, widths, t.columnAlignment))
	}
	fmt.Fprintln(t.writer, border)
}

func borderLine(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, width := range widths {
		b.WriteString(strings.Repeat("-", width+2))
		b.WriteByte('+')
	}
	return b.String()
}

func formatRow(row []string, widths []int, alignments []Alignment) string {
	var b strings.Builder
	b.WriteByte('|')
	for i, width := range widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		alignment := AlignLeft
		if i < len(alignments) {
			alignment = alignments[i]
		}
		b.WriteByte(' ')
		b.WriteString(pad(cell, width, alignment))
		b.WriteString(" |")
	}
	return b.String()
}

func pad(cell string, width int, alignment Alignment) string {
	gap := width - displayWidth(cell)
	if gap <= 0 {
		return cell
	}
	switch alignment {
	case AlignRight:
		return strings.Repeat(" ", gap) + cell
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// displayWidth is the number of visible characters in s, with ANSI escape
// sequences excluded.
func displayWidth(s string) int {
	return utf8.RuneCountInString(stripAnsi(s))
}
