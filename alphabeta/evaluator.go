package alphabeta

import (
	"github.com/omaralmansoori/connectfour/board"
)

const (
	// Infinity bounds the alpha-beta window; no reachable score exceeds it.
	Infinity = 10000000
	// WinScore is the terminal sentinel. A forced win scores WinScore plus
	// the remaining depth, so shallower wins outrank deeper ones and a
	// forced loss is delayed as long as possible.
	WinScore = 1000000
)

// windowWeights[k] is the value of a 4-cell window holding k pieces of one
// side and no pieces of the other. A window both sides occupy can never be
// completed and is worth nothing.
var windowWeights = [board.Connect + 1]int{0, 0, 2, 5, 100}

// centerWeight rewards center-column occupancy; center cells participate in
// the most windows.
const centerWeight = 3

// EvalFn scores a non-terminal position for the given side. Positive is
// good for that side.
type EvalFn func(b *board.Board, forSide board.Piece) int

// StaticEvaluate is the default evaluator: the sum over every axis-aligned
// 4-cell window of a piece-count weight, positive for forSide's windows and
// negated for the opponent's, plus a center-column bonus. By construction
// StaticEvaluate(b, x) == -StaticEvaluate(b, x.Opponent()).
func StaticEvaluate(b *board.Board, forSide board.Piece) int {
	opp := forSide.Opponent()
	score := 0
	rows, cols := b.Rows(), b.Cols()

	// Every window is visited exactly once: it is keyed by its starting
	// cell and axis direction.
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			for _, axis := range [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}} {
				score += windowValue(b, r, c, axis[0], axis[1], forSide, opp)
			}
		}
	}

	center := cols / 2
	for r := 0; r < rows; r++ {
		switch b.At(r, center) {
		case forSide:
			score += centerWeight
		case opp:
			score -= centerWeight
		}
	}
	return score
}

// windowValue scores the single window starting at (r, c) along (dr, dc),
// or 0 if the window runs off the board or is contested.
func windowValue(b *board.Board, r, c, dr, dc int, forSide, opp board.Piece) int {
	endR := r + (board.Connect-1)*dr
	endC := c + (board.Connect-1)*dc
	if endR < 0 || endR >= b.Rows() || endC < 0 || endC >= b.Cols() {
		return 0
	}
	mine, theirs := 0, 0
	for i := 0; i < board.Connect; i++ {
		switch b.At(r+i*dr, c+i*dc) {
		case forSide:
			mine++
		case opp:
			theirs++
		}
	}
	if mine > 0 && theirs > 0 {
		return 0
	}
	if mine > 0 {
		return windowWeights[mine]
	}
	return -windowWeights[theirs]
}

// terminalScore converts a decided position into its sentinel value from
// the searching side's perspective. depthRemaining biases toward shallow
// wins and deep losses.
func terminalScore(res board.Result, solvingSide board.Piece, depthRemaining int) int {
	if winner, won := res.Won(); won {
		if winner == solvingSide {
			return WinScore + depthRemaining
		}
		return -(WinScore + depthRemaining)
	}
	// Draw
	return 0
}
