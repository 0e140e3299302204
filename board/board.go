// Package board implements the Connect Four board model: piece placement,
// move legality, and incremental win/draw detection.
package board

import (
	"errors"
	"fmt"
)

const (
	// DefaultRows and DefaultCols are the dimensions of a standard board.
	DefaultRows = 6
	DefaultCols = 7
	// Connect is the length of a winning run.
	Connect = 4
)

// ErrInvalidMove is returned when a column is out of range or already full.
var ErrInvalidMove = errors.New("invalid move")

// Piece is the occupant of a single cell.
type Piece uint8

const (
	Empty Piece = iota
	Yellow
	Red
)

// Opponent returns the other side. It is only meaningful for Yellow and Red.
func (p Piece) Opponent() Piece {
	switch p {
	case Yellow:
		return Red
	case Red:
		return Yellow
	}
	return Empty
}

func (p Piece) String() string {
	switch p {
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	}
	return "empty"
}

// rune used in display text.
func (p Piece) symbol() byte {
	switch p {
	case Yellow:
		return 'X'
	case Red:
		return 'O'
	}
	return '.'
}

// Result is the outcome of a position.
type Result uint8

const (
	Ongoing Result = iota
	YellowWon
	RedWon
	Draw
)

// Wins returns the winning result for the given side.
func Wins(p Piece) Result {
	if p == Red {
		return RedWon
	}
	return YellowWon
}

// Won returns the winning side, if any.
func (r Result) Won() (Piece, bool) {
	switch r {
	case YellowWon:
		return Yellow, true
	case RedWon:
		return Red, true
	}
	return Empty, false
}

// GameOver is true for wins and draws.
func (r Result) GameOver() bool {
	return r != Ongoing
}

func (r Result) String() string {
	switch r {
	case YellowWon:
		return "yellow wins"
	case RedWon:
		return "red wins"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

// placement is one entry of the move stack; it carries everything needed
// to restore the exact prior state on unplay.
type placement struct {
	row, col   int
	piece      Piece
	prevResult Result
}

// Board is a mutable Connect Four position. It is the single owned handle
// the search mutates and restores via PlayMove/UnplayLastMove; it is not safe for
// concurrent use.
type Board struct {
	rows, cols int
	// cells[row][col]; row 0 is the bottom of a column.
	cells   [][]Piece
	heights []int
	onTurn  Piece
	moves   []placement
	result  Result
}

// NewBoard returns an empty standard 6x7 board with Yellow to move.
func NewBoard() *Board {
	b, _ := NewCustomBoard(DefaultRows, DefaultCols)
	return b
}

// NewCustomBoard returns an empty board with the given dimensions. Small
// boards are allowed (they are handy for exhaustive tests) but dimensions
// must be positive.
func NewCustomBoard(rows, cols int) (*Board, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("board dimensions %dx%d: must be positive", rows, cols)
	}
	cells := make([][]Piece, rows)
	for r := range cells {
		cells[r] = make([]Piece, cols)
	}
	return &Board{
		rows:    rows,
		cols:    cols,
		cells:   cells,
		heights: make([]int, cols),
		onTurn:  Yellow,
		moves:   make([]placement, 0, rows*cols),
	}, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// OnTurn returns the side to move.
func (b *Board) OnTurn() Piece { return b.onTurn }

// SetTurn overrides the side to move. Play/unplay keeps alternating from the
// new side.
func (b *Board) SetTurn(p Piece) { b.onTurn = p }

// At returns the piece at the given cell. Row 0 is the bottom row.
func (b *Board) At(row, col int) Piece { return b.cells[row][col] }

// MovesPlayed returns the number of pieces currently on the board.
func (b *Board) MovesPlayed() int { return len(b.moves) }

// LastMove returns the column of the most recent placement.
func (b *Board) LastMove() (int, bool) {
	if len(b.moves) == 0 {
		return 0, false
	}
	return b.moves[len(b.moves)-1].col, true
}

// IsLegal reports whether the column can receive another piece.
func (b *Board) IsLegal(col int) bool {
	return col >= 0 && col < b.cols && b.heights[col] < b.rows
}

// LegalMoves returns the playable columns in ascending index order.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, b.cols)
	for c := 0; c < b.cols; c++ {
		if b.heights[c] < b.rows {
			moves = append(moves, c)
		}
	}
	return moves
}

// Full reports whether every column is at capacity.
func (b *Board) Full() bool {
	return len(b.moves) == b.rows*b.cols
}

// PlayMove drops the on-turn side's piece into the given column. It mutates
// the board in place; call UnplayLastMove to restore the exact prior state.
func (b *Board) PlayMove(col int) error {
	if !b.IsLegal(col) {
		return fmt.Errorf("column %d: %w", col, ErrInvalidMove)
	}
	row := b.heights[col]
	piece := b.onTurn
	b.cells[row][col] = piece
	b.heights[col]++
	b.moves = append(b.moves, placement{row: row, col: col, piece: piece, prevResult: b.result})
	b.onTurn = piece.Opponent()
	b.result = b.resultAfter(row, col, piece)
	return nil
}

// UnplayLastMove pops the most recent placement and restores the prior
// state bit for bit. It is a no-op on an empty board.
func (b *Board) UnplayLastMove() {
	if len(b.moves) == 0 {
		return
	}
	last := b.moves[len(b.moves)-1]
	b.moves = b.moves[:len(b.moves)-1]
	b.cells[last.row][last.col] = Empty
	b.heights[last.col]--
	b.onTurn = last.piece
	b.result = last.prevResult
}

// Result returns the cached outcome of the position. It is maintained
// incrementally by PlayMove/UnplayLastMove.
func (b *Board) Result() Result {
	return b.result
}

// axes through a cell: horizontal, vertical, and the two diagonals.
var axes = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// resultAfter computes the outcome after piece was placed at (row, col). It
// only scans the four axes through the placed cell, so detection is O(1)
// per move regardless of board size.
func (b *Board) resultAfter(row, col int, piece Piece) Result {
	if b.result.GameOver() {
		// The game was already decided; play past the end doesn't undo it.
		return b.result
	}
	for _, axis := range axes {
		run := 1 + b.runLength(row, col, axis[0], axis[1], piece) +
			b.runLength(row, col, -axis[0], -axis[1], piece)
		if run >= Connect {
			return Wins(piece)
		}
	}
	if b.Full() {
		return Draw
	}
	return Ongoing
}

// runLength counts contiguous same-side cells extending from (row, col) in
// the given direction, excluding the origin cell itself.
func (b *Board) runLength(row, col, dr, dc int, piece Piece) int {
	count := 0
	r, c := row+dr, col+dc
	for r >= 0 && r < b.rows && c >= 0 && c < b.cols && b.cells[r][c] == piece {
		count++
		r += dr
		c += dc
	}
	return count
}

// Copy returns a deep copy of the board, including the move stack.
func (b *Board) Copy() *Board {
	cells := make([][]Piece, b.rows)
	for r := range cells {
		cells[r] = make([]Piece, b.cols)
		copy(cells[r], b.cells[r])
	}
	nb := &Board{
		rows:    b.rows,
		cols:    b.cols,
		cells:   cells,
		heights: make([]int, b.cols),
		onTurn:  b.onTurn,
		moves:   make([]placement, len(b.moves)),
		result:  b.result,
	}
	copy(nb.heights, b.heights)
	copy(nb.moves, b.moves)
	return nb
}
