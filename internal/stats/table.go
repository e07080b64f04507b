package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// ColumnWidths returns the display width of every column, headers included.
func ColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// monthTableLines aligns the month table: the month key to the left, the
// tallies and the average to the right.
func monthTableLines(headers []string, rows [][]string) []string {
	widths := ColumnWidths(headers, rows)
	lines := make([]string, 0, len(rows)+1)
	for _, row := range append([][]string{headers}, rows...) {
		cells := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = padCell(cell, w, i > 0)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

func padCell(value string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}
