package alphabeta

import (
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/omaralmansoori/connectfour/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func playMoves(t *testing.T, b *board.Board, cols ...int) {
	t.Helper()
	for _, c := range cols {
		if err := b.PlayMove(c); err != nil {
			t.Fatalf("playing column %d: %v", c, err)
		}
	}
}

func newSolver(t *testing.T, b *board.Board) *Solver {
	t.Helper()
	s := &Solver{}
	if err := s.Init(b); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSolveDepthBelowOne(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, board.NewBoard())
	_, err := s.Solve(0)
	is.True(errors.Is(err, ErrInvalidConfiguration))
	_, err = s.Solve(-2)
	is.True(errors.Is(err, ErrInvalidConfiguration))
}

func TestSolveNoLegalMoves(t *testing.T) {
	is := is.New(t)
	b, err := board.NewCustomBoard(1, 4)
	is.NoErr(err)
	playMoves(t, b, 0, 1, 2, 3)
	s := newSolver(t, b)
	_, err = s.Solve(4)
	is.True(errors.Is(err, ErrNoLegalMoves))
}

func TestCompletesImmediateWin(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	// Yellow holds the bottom of columns 0-2; column 3 completes the row.
	playMoves(t, b, 0, 0, 1, 1, 2, 2)
	is.Equal(b.OnTurn(), board.Yellow)

	s := newSolver(t, b)
	res, err := s.Solve(4)
	is.NoErr(err)
	is.Equal(res.ChosenColumn, 3)
	// The win is found one ply in, with three plies of depth remaining.
	is.Equal(res.Score, WinScore+3)
	is.Equal(res.PrincipalVariation, []int{3})
}

func TestBlocksImmediateLoss(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	// Yellow threatens to complete 0-1-2 with column 3; red is to move.
	playMoves(t, b, 0, 6, 1, 6, 2)
	is.Equal(b.OnTurn(), board.Red)

	s := newSolver(t, b)
	res, err := s.Solve(4)
	is.NoErr(err)
	is.Equal(res.ChosenColumn, 3)
	// Blocking avoids the forced loss every other move walks into.
	is.True(res.Score > -WinScore)
	for _, m := range res.EvaluatedMoves {
		if m.Column != 3 {
			is.True(m.Score <= -WinScore)
		}
	}
}

func TestCenterPreferredOnEmptyBoard(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	s := newSolver(t, b)
	res, err := s.Solve(4)
	is.NoErr(err)
	is.Equal(res.ChosenColumn, 3)
	is.Equal(len(res.EvaluatedMoves), 7)
	var center int
	for _, m := range res.EvaluatedMoves {
		if m.Column == 3 {
			center = m.Score
		}
	}
	for _, m := range res.EvaluatedMoves {
		if m.Column != 3 {
			is.True(center > m.Score)
		}
	}
	// The search must leave the board exactly as it found it.
	is.Equal(b.MovesPlayed(), 0)
	is.Equal(b.Result(), board.Ongoing)
}

func TestSingleLegalColumn(t *testing.T) {
	is := is.New(t)
	b, err := board.NewCustomBoard(1, 4)
	is.NoErr(err)
	playMoves(t, b, 0, 1, 2)

	for _, col := range []int{0, 1, 2} {
		is.True(errors.Is(b.PlayMove(col), board.ErrInvalidMove))
	}

	s := newSolver(t, b)
	res, err := s.Solve(4)
	is.NoErr(err)
	is.Equal(res.ChosenColumn, 3)
	is.Equal(len(res.EvaluatedMoves), 1)
	is.Equal(res.PrincipalVariation, []int{3})
	// Filling the last cell without a win is a draw.
	is.Equal(res.Score, 0)
}

// randomPosition plays random non-terminal prefixes of a game.
func randomPosition(t *testing.T, rows, cols, plies int) *board.Board {
	t.Helper()
	b, err := board.NewCustomBoard(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < plies && !b.Result().GameOver(); i++ {
		legal := b.LegalMoves()
		if err := b.PlayMove(legal[frand.Intn(len(legal))]); err != nil {
			t.Fatal(err)
		}
	}
	for b.Result().GameOver() {
		b.UnplayLastMove()
	}
	return b
}

func TestPruningMatchesPlainMinimax(t *testing.T) {
	is := is.New(t)
	for trial := 0; trial < 15; trial++ {
		b := randomPosition(t, 4, 5, 6)
		s := newSolver(t, b)

		pruned, err := s.Solve(3)
		is.NoErr(err)

		s.SetPruningDisabled(true)
		plain, err := s.Solve(3)
		is.NoErr(err)

		is.Equal(pruned.ChosenColumn, plain.ChosenColumn)
		is.Equal(pruned.Score, plain.Score)
		is.True(pruned.NodesExpanded <= plain.NodesExpanded)
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	playMoves(t, b, 3, 3, 2)
	s := newSolver(t, b)

	first, err := s.Solve(4)
	is.NoErr(err)
	second, err := s.Solve(4)
	is.NoErr(err)

	is.Equal(first.ChosenColumn, second.ChosenColumn)
	is.Equal(first.Score, second.Score)
	is.Equal(first.PrincipalVariation, second.PrincipalVariation)
	is.Equal(first.EvaluatedMoves, second.EvaluatedMoves)
	is.Equal(first.NodesExpanded, second.NodesExpanded)
}

func TestPrincipalVariationProperties(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	s := newSolver(t, b)
	res, err := s.Solve(4)
	is.NoErr(err)

	// Nothing terminal within the horizon on an empty board.
	is.Equal(len(res.PrincipalVariation), 4)
	is.Equal(res.PrincipalVariation[0], res.ChosenColumn)

	// Every node along the variation carries the backed-up root score.
	node := res.Tree
	for _, col := range res.PrincipalVariation {
		var next *SearchNode
		for _, child := range node.Children {
			if child.Column == col {
				next = child
				break
			}
		}
		is.True(next != nil)
		is.Equal(next.Score, res.Score)
		node = next
	}
}

func TestNodeCountDepthOne(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	s := newSolver(t, b)
	res, err := s.Solve(1)
	is.NoErr(err)
	// The root invocation plus one leaf per legal column.
	is.Equal(res.NodesExpanded, 8)
	is.Equal(res.Tree.NodeCount(), 8)
	is.Equal(len(res.PrincipalVariation), 1)
}

func TestTreeOmitsPrunedSiblings(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	playMoves(t, b, 0, 6, 1, 6, 2) // red to move, forced block
	s := newSolver(t, b)
	res, err := s.Solve(4)
	is.NoErr(err)
	// Only visited nodes are recorded, so the tree matches the counter.
	is.Equal(res.Tree.NodeCount(), res.NodesExpanded)

	s.SetPruningDisabled(true)
	plain, err := s.Solve(4)
	is.NoErr(err)
	is.True(res.Tree.NodeCount() < plain.Tree.NodeCount())
}

func TestRootNodeExposesLastTree(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, board.NewBoard())
	is.True(s.RootNode() == nil)

	res, err := s.Solve(2)
	is.NoErr(err)
	is.True(s.RootNode() == res.Tree)
	is.Equal(s.RootNode().NodeCount(), res.NodesExpanded)
}

func TestOrderedMoves(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	s := newSolver(t, b)
	is.Equal(s.orderedMoves(), []int{0, 1, 2, 3, 4, 5, 6})

	s.SetMoveOrdering(CenterFirstOrder)
	is.Equal(s.orderedMoves(), []int{3, 2, 4, 1, 5, 0, 6})
}

func TestCenterFirstOrderingPrunesNoWorse(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	playMoves(t, b, 3, 3, 2)
	s := newSolver(t, b)
	ascending, err := s.Solve(4)
	is.NoErr(err)

	s.SetMoveOrdering(CenterFirstOrder)
	centered, err := s.Solve(4)
	is.NoErr(err)

	// Ordering affects pruning, never the chosen score.
	is.Equal(ascending.Score, centered.Score)
}

func TestOrderingFromName(t *testing.T) {
	is := is.New(t)
	o, err := OrderingFromName("ascending")
	is.NoErr(err)
	is.Equal(o, AscendingOrder)
	o, err = OrderingFromName("center-first")
	is.NoErr(err)
	is.Equal(o, CenterFirstOrder)
	_, err = OrderingFromName("bogus")
	is.True(err != nil)
}

func TestCustomEvaluator(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	s := newSolver(t, b)
	s.SetEvaluator(func(b *board.Board, forSide board.Piece) int {
		// Reward tall column 0 stacks, absurdly.
		h := 0
		for r := 0; r < b.Rows(); r++ {
			if b.At(r, 0) == forSide {
				h++
			}
		}
		return h * 100
	})
	res, err := s.Solve(2)
	is.NoErr(err)
	is.Equal(res.ChosenColumn, 0)
}
