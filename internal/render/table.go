package render

import (
	"strings"
	"unicode/utf8"
)

// renderTable lays out rows under headers as a pipe-separated table. Every
// cell is left-padded to its column's widest entry, counting runes rather
// than bytes so accented names line up. A table with no rows still renders
// its header and separator lines.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	formatRow := func(row []string) string {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = pad(cell, widths[i])
		}
		return strings.Join(cells, " | ")
	}

	dashes := make([]string, len(widths))
	for i, width := range widths {
		dashes[i] = strings.Repeat("-", width)
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, formatRow(headers), strings.Join(dashes, "-+-"))
	for _, row := range rows {
		lines = append(lines, formatRow(row))
	}
	return strings.Join(lines, "\n")
}

func pad(cell string, width int) string {
	if n := utf8.RuneCountInString(cell); n < width {
		return cell + strings.Repeat(" ", width-n)
	}
	return cell
}
