package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf)
	tbl.WithHeader([]string{"HEADER1", "H2", "h3"})
	tbl.WithColumnAlignment([]Alignment{AlignLeft, AlignRight, AlignLeft})
	tbl.WithHeaderAlignment([]Alignment{AlignCenter, AlignCenter, AlignRight})
	tbl.Append([]string{"ROW1", "ROW2", "foo bar"})
	tbl.Append([]string{"a", "b", "c"})
	tbl.Render()

	expected := `
+---------+------+---------+
| HEADER1 |  H2  |      h3 |
+---------+------+---------+
| ROW1    | ROW2 | foo bar |
| a       |    b | c       |
+---------+------+---------+
`
	require.Equal(t, strings.TrimSpace(expected)+"\n", buf.String())
}

func TestTableWithRows(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf).
		WithHeader([]string{"NAME", "VALUE"}).
		WithRows([][]string{
			{"ক", "1"},
			{"খ", "2"},
		}).
		Render()

	expected := `
+------+-------+
| NAME | VALUE |
+------+-------+
| ক    | 1     |
| খ    | 2     |
+------+-------+
`
	require.Equal(t, strings.TrimSpace(expected)+"\n", buf.String())
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewTable(&buf).Render()
	require.Empty(t, buf.String())
}

func TestColoredTable(t *testing.T) {
	wasDisabled := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = wasDisabled }()

	var buf bytes.Buffer
	tbl := NewTable(&buf)
	tbl.WithHeader([]string{"HEADER1", "HEADER2", "HEADER3"})
	tbl.WithColumnAlignment([]Alignment{AlignLeft, AlignRight, AlignLeft})
	tbl.WithHeaderAlignment([]Alignment{AlignCenter, AlignCenter, AlignCenter})

	tbl.Append([]string{
		color.New(color.Bold).Sprint("Bold text"),
		"12345",
		color.New(color.FgGreen).Sprint("Green text"),
	})
	tbl.Append([]string{
		"Normal",
		color.New(color.Bold).Sprint("999"),
		color.New(color.FgGreen).Sprint("More color"),
	})
	tbl.Render()

	result := buf.String()
	t.Log(result)

	// Escape sequences must not affect column widths.
	lines := strings.Split(result, "\n")
	require.GreaterOrEqual(t, len(lines), 5, "table should have at least 5 lines")

	expectedLength := len(lines[0])
	for i := 1; i < len(lines)-1; i++ {
		require.Equal(t, expectedLength, len(stripAnsi(lines[i])),
			"line %d has incorrect length after stripping ANSI codes", i)
	}
}
