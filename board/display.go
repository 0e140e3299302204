package board

import "strings"

// ToDisplayText returns an ASCII rendering of the board, top row first,
// with a footer of column indices. Yellow is X, Red is O.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for r := b.rows - 1; r >= 0; r-- {
		sb.WriteByte('|')
		for c := 0; c < b.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(b.cells[r][c].symbol())
		}
		sb.WriteString("|\n")
	}
	sb.WriteByte(' ')
	for c := 0; c < b.cols; c++ {
		if c > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte('0' + c%10))
	}
	sb.WriteByte('\n')
	return sb.String()
}
