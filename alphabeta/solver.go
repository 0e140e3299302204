// Package alphabeta selects moves for the computer player using
// depth-limited minimax with alpha-beta pruning, and records structured
// diagnostics (search tree, principal variation, per-root evaluations,
// node counts, timing) for rendering collaborators.
package alphabeta

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/omaralmansoori/connectfour/board"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
		for each child of node do
			play(child)
			value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
			unplayLastMove()
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
		for each child of node do
			play(child)
			value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
			unplayLastMove()
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/

var (
	// ErrNoLegalMoves is returned when Solve is invoked on a full board;
	// callers must check for terminal state first.
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrInvalidConfiguration is returned for a search depth below 1.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// MoveOrdering selects the column enumeration order at every node. The
// order does not change the chosen move, only pruning efficiency and which
// column wins a tie (earliest explored).
type MoveOrdering int

const (
	// AscendingOrder enumerates columns left to right.
	AscendingOrder MoveOrdering = iota
	// CenterFirstOrder enumerates columns by distance from the center,
	// nearest first, ties left to right. Centered moves tend to be
	// strongest, so cutoffs come earlier.
	CenterFirstOrder
)

// OrderingFromName parses a configuration string into a MoveOrdering.
func OrderingFromName(name string) (MoveOrdering, error) {
	switch name {
	case "ascending", "":
		return AscendingOrder, nil
	case "center-first":
		return CenterFirstOrder, nil
	}
	return AscendingOrder, fmt.Errorf("unknown move ordering %q", name)
}

// PVLine is the principal variation: the best line of play for both sides
// found so far, assembled as the recursion unwinds.
// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	Columns []int
	score   int
}

// Clear resets the line.
func (pv *PVLine) Clear() {
	pv.Columns = nil
}

// Update replaces the line with a new best move followed by the best
// continuation found below it.
func (pv *PVLine) Update(col int, childPV PVLine, score int) {
	pv.Clear()
	pv.Columns = append(pv.Columns, col)
	pv.Columns = append(pv.Columns, childPV.Columns...)
	pv.score = score
}

// EvaluatedMove is the backed-up score of one legal root move.
type EvaluatedMove struct {
	Column int `json:"column"`
	Score  int `json:"score"`
}

// SearchResult is the complete output of one top-level search. It is built
// once per Solve call and never mutated afterwards; it owns its tree.
type SearchResult struct {
	ChosenColumn       int
	Score              int
	Tree               *SearchNode
	PrincipalVariation []int
	EvaluatedMoves     []EvaluatedMove
	NodesExpanded      int
	Elapsed            time.Duration
	Depth              int
}

// Solver implements the minimax + alphabeta algorithm over a single owned
// board handle, mutating and restoring it at every node instead of copying.
// A Solver is single-threaded; it runs to completion once started.
type Solver struct {
	game        *board.Board
	solvingSide board.Piece
	evaluate    EvalFn
	ordering    MoveOrdering

	// disablePruning turns off alpha-beta cutoffs, giving plain minimax.
	// Used to validate that pruning never changes the chosen move.
	disablePruning bool

	nodes    int
	rootNode *SearchNode
}

// Init initializes the solver with the board handle it will search over.
func (s *Solver) Init(g *board.Board) error {
	if g == nil {
		return errors.New("nil board")
	}
	s.game = g
	s.evaluate = StaticEvaluate
	s.ordering = AscendingOrder
	return nil
}

// SetMoveOrdering sets the column enumeration policy for subsequent solves.
func (s *Solver) SetMoveOrdering(o MoveOrdering) {
	s.ordering = o
}

// SetPruningDisabled turns alpha-beta cutoffs off or on.
func (s *Solver) SetPruningDisabled(d bool) {
	s.disablePruning = d
}

// SetEvaluator overrides the static evaluation function.
func (s *Solver) SetEvaluator(f EvalFn) {
	s.evaluate = f
}

// RootNode returns the root of the last search tree.
func (s *Solver) RootNode() *SearchNode {
	return s.rootNode
}

// Solve searches the current position to the given depth for the side to
// move and returns the chosen column with full diagnostics. Every legal
// root column is fully searched (no root-level cutoff) so that
// EvaluatedMoves always carries one exact entry per legal move; deeper
// plies are pruned normally.
func (s *Solver) Solve(plies int) (*SearchResult, error) {
	if plies < 1 {
		return nil, fmt.Errorf("depth %d: %w", plies, ErrInvalidConfiguration)
	}
	legal := s.orderedMoves()
	if len(legal) == 0 {
		return nil, ErrNoLegalMoves
	}
	s.solvingSide = s.game.OnTurn()
	log.Debug().Int("plies", plies).
		Stringer("side", s.solvingSide).
		Bool("pruning-disabled", s.disablePruning).
		Msg("alphabeta-solve-config")

	tstart := time.Now()
	s.nodes = 1 // the root invocation itself
	root := &SearchNode{Column: NoColumn, Maximizing: true}

	bestScore := -Infinity
	bestCol := NoColumn
	pv := PVLine{}
	childPV := PVLine{}
	evaluated := make([]EvaluatedMove, 0, len(legal))

	for _, col := range legal {
		if err := s.game.PlayMove(col); err != nil {
			return nil, err
		}
		// A fresh full window per root move: each root evaluation must be
		// exact, not a sibling-induced bound.
		score, child, err := s.alphabeta(plies-1, -Infinity, Infinity, false, &childPV)
		s.game.UnplayLastMove()
		if err != nil {
			return nil, err
		}
		child.Column = col
		root.Children = append(root.Children, child)
		evaluated = append(evaluated, EvaluatedMove{Column: col, Score: score})
		if score > bestScore {
			bestScore = score
			bestCol = col
			pv.Update(col, childPV, score)
		}
		childPV.Clear()
	}
	root.Score = bestScore
	s.rootNode = root

	res := &SearchResult{
		ChosenColumn:       bestCol,
		Score:              bestScore,
		Tree:               root,
		PrincipalVariation: pv.Columns,
		EvaluatedMoves:     evaluated,
		NodesExpanded:      s.nodes,
		Elapsed:            time.Since(tstart),
		Depth:              plies,
	}
	log.Info().
		Int("chosen-column", res.ChosenColumn).
		Int("score", res.Score).
		Int("nodes", res.NodesExpanded).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")
	return res, nil
}

// alphabeta returns the backed-up score of the current board position and
// the diagnostics node for it. The caller sets the node's Column. The board
// is restored on every exit path, including cutoff exits.
func (s *Solver) alphabeta(depth, α, β int, maximizing bool, pv *PVLine) (int, *SearchNode, error) {
	s.nodes++
	node := &SearchNode{Column: NoColumn, Maximizing: maximizing}

	if res := s.game.Result(); depth == 0 || res.GameOver() {
		if res.GameOver() {
			node.Score = terminalScore(res, s.solvingSide, depth)
		} else {
			node.Score = s.evaluate(s.game, s.solvingSide)
		}
		return node.Score, node, nil
	}

	childPV := PVLine{}
	if maximizing {
		value := -Infinity
		for _, col := range s.orderedMoves() {
			if err := s.game.PlayMove(col); err != nil {
				return 0, nil, err
			}
			score, child, err := s.alphabeta(depth-1, α, β, false, &childPV)
			s.game.UnplayLastMove()
			if err != nil {
				return 0, nil, err
			}
			child.Column = col
			node.Children = append(node.Children, child)
			// Strictly better only: ties keep the earliest-explored column.
			if score > value {
				value = score
				pv.Update(col, childPV, score)
			}
			childPV.Clear()
			if !s.disablePruning {
				α = max(α, value)
				if α >= β {
					break // β cut-off
				}
			}
		}
		node.Score = value
		return value, node, nil
	}

	value := Infinity
	for _, col := range s.orderedMoves() {
		if err := s.game.PlayMove(col); err != nil {
			return 0, nil, err
		}
		score, child, err := s.alphabeta(depth-1, α, β, true, &childPV)
		s.game.UnplayLastMove()
		if err != nil {
			return 0, nil, err
		}
		child.Column = col
		node.Children = append(node.Children, child)
		if score < value {
			value = score
			pv.Update(col, childPV, score)
		}
		childPV.Clear()
		if !s.disablePruning {
			β = min(β, value)
			if α >= β {
				break // α cut-off
			}
		}
	}
	node.Score = value
	return value, node, nil
}

// orderedMoves enumerates the legal columns under the configured policy.
func (s *Solver) orderedMoves() []int {
	moves := s.game.LegalMoves()
	if s.ordering == CenterFirstOrder {
		center := s.game.Cols() / 2
		sort.SliceStable(moves, func(i, j int) bool {
			di, dj := abs(moves[i]-center), abs(moves[j]-center)
			if di != dj {
				return di < dj
			}
			return moves[i] < moves[j]
		})
	}
	return moves
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
