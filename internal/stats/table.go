package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one column of a plain text table. A positive max
// truncates longer cells.
type column struct {
	title string
	right bool
	max   int
}

func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = displayWidth(c.title)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			if i >= len(row) {
				continue
			}
			cell := truncateCell(row[i], c.max)
			cells[r][i] = cell
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(headers, widths, cols))
	for _, row := range cells {
		lines = append(lines, formatRow(row, widths, cols))
	}
	return lines
}

func formatRow(row []string, widths []int, cols []column) string {
	var b strings.Builder
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(row[i], w, cols[i].right))
	}
	return strings.TrimRight(b.String(), " ")
}

func truncateCell(value string, max int) string {
	if max <= 0 || displayWidth(value) <= max {
		return value
	}
	return runewidth.Truncate(value, max, "...")
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
