package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/RichardKnop/jsondb/internal/jsondb"
)

const (
	truncatedStringEnd = " ..."
	minColumnWidth     = 4
	maxLength          = 40
)

// PrintResult writes a SELECT result as a bordered text table. Columns are
// as wide as their widest cell, capped at maxLength runes.
func PrintResult(w io.Writer, columns []string, rows []jsondb.Row) {
	cells := make([][]string, 0, len(rows))
	for _, aRow := range rows {
		values := make([]string, 0, len(columns))
		for _, name := range columns {
			values = append(values, truncate(aRow.Get(name).String()))
		}
		cells = append(cells, values)
	}

	columnSize := computeColumnSize(columns, cells)

	printBorder(w, columnSize)
	printCells(w, columnSize, columns)
	printBorder(w, columnSize)
	for _, values := range cells {
		printCells(w, columnSize, values)
	}
	printBorder(w, columnSize)
}

func printCells(w io.Writer, columnSize []int, values []string) {
	for i, aValue := range values {
		// pad with columnSize[i] spaces on the right (left-justify the field)
		fmt.Fprintf(w, "| %-*s ", columnSize[i], aValue)
	}
	fmt.Fprintf(w, "|\n")
}

func printBorder(w io.Writer, columnSize []int) {
	fmt.Fprintf(w, "+%s+\n", strings.Repeat("-", tableWidth(columnSize)-2))
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxLength {
		return string(r[0:maxLength-len(truncatedStringEnd)]) + truncatedStringEnd
	}
	return s
}

func computeColumnSize(columns []string, cells [][]string) []int {
	columnSize := make([]int, len(columns))
	for i, name := range columns {
		columnSize[i] = max(minColumnWidth, len([]rune(truncate(name))))
	}
	for _, values := range cells {
		for i, aValue := range values {
			columnSize[i] = max(columnSize[i], len([]rune(aValue)))
		}
	}
	return columnSize
}

func tableWidth(columnSize []int) int {
	// left border is | followed by a space, right border is space followed by | (2+2=4)
	// then between each column we have space, |, space (3)
	width := 4 + (len(columnSize)-1)*3
	for _, columnWidth := range columnSize {
		width += columnWidth
	}
	return width
}
