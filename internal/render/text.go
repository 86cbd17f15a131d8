package render

import (
	"strconv"
	"strings"

	"igo/internal/domain/goboard"
	"igo/internal/domain/gotypes"
)

const (
	emptyMark = '.'
	blackMark = 'X'
	whiteMark = 'O'
)

// Rows returns one string per board row, row 1 first.
func Rows(b *goboard.Board) []string {
	rows := make([]string, 0, b.NumRows)
	for row := 1; row <= b.NumRows; row++ {
		var sb strings.Builder
		sb.Grow(b.NumCols)
		for col := 1; col <= b.NumCols; col++ {
			sb.WriteByte(mark(b, gotypes.Point{Row: row, Col: col}))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// Text draws the board with column letters and row numbers for a terminal.
func Text(b *goboard.Board) string {
	var sb strings.Builder
	header := "   "
	for col := 1; col <= b.NumCols; col++ {
		header += " " + string(columnLabel(col))
	}
	sb.WriteString(header + "\n")
	for i, row := range Rows(b) {
		sb.WriteString(rowLabel(b.NumRows - i))
		for j := 0; j < len(row); j++ {
			sb.WriteByte(' ')
			sb.WriteByte(row[j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func mark(b *goboard.Board, p gotypes.Point) byte {
	color, ok := b.Get(p)
	switch {
	case !ok:
		return emptyMark
	case color == gotypes.White:
		return whiteMark
	}
	return blackMark
}

func columnLabel(col int) byte {
	const letters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"
	if col < 1 || col > len(letters) {
		return '?'
	}
	return letters[col-1]
}

func rowLabel(n int) string {
	s := strconv.Itoa(n)
	return strings.Repeat(" ", 3-len(s)) + s
}
