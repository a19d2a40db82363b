package cli

import (
	"regexp"
	"strings"
)

// ansiSeq matches SGR escape sequences, which take no space on screen.
var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

// visibleLen returns the on-screen width of s.
func visibleLen(s string) int {
	return len(ansiSeq.ReplaceAllString(s, ""))
}

const columnGap = "  "

// Table is a column-aligned text table. Cells may contain ANSI colour.
type Table struct {
	headers []string
	rows    [][]string
	wrapAt  map[int]int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{headers: headers, wrapAt: make(map[int]int)}
}

// SetColumnMaxWidth wraps cells in column col at word boundaries so that no
// line is wider than width.
func (t *Table) SetColumnMaxWidth(col, width int) {
	t.wrapAt[col] = width
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render returns the table with a header, a dashed separator and one or more
// lines per row. Every cell is padded to its column width.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// cells[row][col] holds the lines of one cell.
	cells := make([][][]string, len(t.rows))
	widths := make([]int, len(t.headers))
	for col, h := range t.headers {
		widths[col] = visibleLen(h)
	}
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for col, cell := range row {
			lines := []string{cell}
			if width := t.wrapAt[col]; width > 0 {
				lines = wrapText(cell, width)
			}
			for _, line := range lines {
				widths[col] = max(widths[col], visibleLen(line))
			}
			cells[r][col] = lines
		}
	}

	var b strings.Builder
	writeLine := func(cell func(col int) string) {
		parts := make([]string, len(widths))
		for col, w := range widths {
			parts[col] = padRight(cell(col), w)
		}
		b.WriteString(strings.Join(parts, columnGap))
		b.WriteByte('\n')
	}

	writeLine(func(col int) string { return t.headers[col] })
	writeLine(func(col int) string { return strings.Repeat("-", widths[col]) })
	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for i := 0; i < height; i++ {
			writeLine(func(col int) string {
				if i < len(row[col]) {
					return row[col][i]
				}
				return ""
			})
		}
	}
	return b.String()
}

// padRight pads s with spaces to width visible columns.
func padRight(s string, width int) string {
	if n := visibleLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// wrapText breaks text into lines of at most width bytes at spaces. Words
// longer than width are split.
func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		for len(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}
