package main

import (
	"fmt"
	"strings"
)

// formatTable renders a result grid with a psql-like ASCII border and a
// trailing row count.
func formatTable(columns []string, rows [][]any) string {
	if len(columns) == 0 {
		return "(0 rows)\n"
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(columns))
		for j := range columns {
			cells[i][j] = cellText(row[j])
		}
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range cells {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	sep := buildSeparator(widths)
	var b strings.Builder
	b.WriteString(sep)
	writeRow(&b, columns, widths)
	b.WriteString(sep)
	for _, row := range cells {
		writeRow(&b, row, widths)
	}
	b.WriteString(sep)

	if len(rows) == 1 {
		b.WriteString("(1 row)\n")
	} else {
		fmt.Fprintf(&b, "(%d rows)\n", len(rows))
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteByte('|')
	for i, cell := range cells {
		fmt.Fprintf(b, " %-*s |", widths[i], cell)
	}
	b.WriteByte('\n')
}

func buildSeparator(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}

// cellText renders one grid cell; NULL is shown bare so it cannot be
// mistaken for the string "NULL" in quotes.
func cellText(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
