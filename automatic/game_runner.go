// Package automatic contains the logic for computer vs computer games,
// used to exercise the engine and collect statistics.
package automatic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/omaralmansoori/connectfour/alphabeta"
	"github.com/omaralmansoori/connectfour/board"
)

// PlayerType selects how one side of an automatic game chooses moves.
type PlayerType int

const (
	// MinimaxPlayer uses the alpha-beta solver.
	MinimaxPlayer PlayerType = iota
	// RandomPlayer picks a uniformly random legal column. Useful as a
	// baseline opponent.
	RandomPlayer
)

// GameRunner plays out full games between two automatic players. Each
// runner owns its board and solvers, so runners on separate goroutines
// never share engine state.
type GameRunner struct {
	game    *board.Board
	players [2]PlayerType
	solvers [2]*alphabeta.Solver
	depth   int
	rows    int
	cols    int
	logchan chan string
	gameID  int
}

// NewGameRunner instantiates and initializes a game runner. logchan may be
// nil; when set, the runner writes one CSV line per turn.
func NewGameRunner(logchan chan string, rows, cols, depth int, p1, p2 PlayerType) (*GameRunner, error) {
	r := &GameRunner{
		players: [2]PlayerType{p1, p2},
		depth:   depth,
		rows:    rows,
		cols:    cols,
		logchan: logchan,
	}
	if err := r.reset(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GameRunner) reset() error {
	g, err := board.NewCustomBoard(r.rows, r.cols)
	if err != nil {
		return err
	}
	r.game = g
	for idx := range r.solvers {
		s := &alphabeta.Solver{}
		if err := s.Init(g); err != nil {
			return err
		}
		s.SetMoveOrdering(alphabeta.CenterFirstOrder)
		r.solvers[idx] = s
	}
	return nil
}

// GameStats summarizes one finished game.
type GameStats struct {
	Result board.Result
	Turns  int
	Nodes  int
}

// PlayFullGame plays a single game to completion and returns its stats.
func (r *GameRunner) PlayFullGame() (GameStats, error) {
	if err := r.reset(); err != nil {
		return GameStats{}, err
	}
	r.gameID++
	stats := GameStats{}
	playerIdx := 0
	for !r.game.Result().GameOver() {
		col, nodes, elapsed, err := r.playTurn(playerIdx)
		if err != nil {
			return GameStats{}, err
		}
		stats.Turns++
		stats.Nodes += nodes
		if r.logchan != nil {
			r.logchan <- fmt.Sprintf("%d,%d,%s,%d,%d,%.4f\n",
				r.gameID, stats.Turns, r.game.OnTurn().Opponent(), col, nodes, elapsed.Seconds())
		}
		playerIdx = 1 - playerIdx
	}
	stats.Result = r.game.Result()
	log.Debug().Int("game", r.gameID).
		Stringer("result", stats.Result).
		Int("turns", stats.Turns).
		Msg("game-over")
	return stats, nil
}

func (r *GameRunner) playTurn(playerIdx int) (int, int, time.Duration, error) {
	if r.players[playerIdx] == RandomPlayer {
		legal := r.game.LegalMoves()
		col := legal[frand.Intn(len(legal))]
		return col, 0, 0, r.game.PlayMove(col)
	}
	res, err := r.solvers[playerIdx].Solve(r.depth)
	if err != nil {
		return 0, 0, 0, err
	}
	return res.ChosenColumn, res.NodesExpanded, res.Elapsed, r.game.PlayMove(res.ChosenColumn)
}

// Stats aggregates results across a batch of automatic games.
type Stats struct {
	mu         sync.Mutex
	Games      int
	YellowWins int
	RedWins    int
	Draws      int
	TotalTurns int
	TotalNodes int
}

func (s *Stats) add(g GameStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Games++
	s.TotalTurns += g.Turns
	s.TotalNodes += g.Nodes
	switch g.Result {
	case board.YellowWon:
		s.YellowWins++
	case board.RedWon:
		s.RedWins++
	case board.Draw:
		s.Draws++
	}
}

// StartCompVCompGames plays numGames automatic games across the given
// number of worker goroutines and aggregates their outcomes. Each worker
// has its own runner; the engine itself stays single-threaded.
func StartCompVCompGames(ctx context.Context, numGames, threads, rows, cols, depth int,
	p1, p2 PlayerType, logchan chan string) (*Stats, error) {

	if numGames < 1 || threads < 1 {
		return nil, fmt.Errorf("numGames %d, threads %d: must be positive", numGames, threads)
	}
	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-games")

	jobs := make(chan struct{}, numGames)
	for i := 0; i < numGames; i++ {
		jobs <- struct{}{}
	}
	close(jobs)

	stats := &Stats{}
	g, ctx := errgroup.WithContext(ctx)
	for t := 0; t < threads; t++ {
		g.Go(func() error {
			r, err := NewGameRunner(logchan, rows, cols, depth, p1, p2)
			if err != nil {
				return err
			}
			for range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				gs, err := r.PlayFullGame()
				if err != nil {
					return err
				}
				stats.add(gs)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info().Int("games", stats.Games).
		Int("yellow-wins", stats.YellowWins).
		Int("red-wins", stats.RedWins).
		Int("draws", stats.Draws).
		Msg("all-games-finished")
	return stats, nil
}
