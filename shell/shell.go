// Package shell implements the interactive terminal front end: it holds a
// live board, relays human moves, and invokes the engine for the computer
// side. All game logic lives in the board and alphabeta packages.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/omaralmansoori/connectfour/alphabeta"
	"github.com/omaralmansoori/connectfour/automatic"
	"github.com/omaralmansoori/connectfour/board"
	"github.com/omaralmansoori/connectfour/config"
	"github.com/omaralmansoori/connectfour/diagnostics"
)

var errQuit = errors.New("quit")

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	game   *board.Board
	solver *alphabeta.Solver
	depth  int
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController creates a shell with a fresh game per the config.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mconnectfour>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc := &ShellController{l: l, cfg: cfg, depth: cfg.SearchDepth}
	if err := sc.newGame(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *ShellController) newGame() error {
	g, err := board.NewCustomBoard(sc.cfg.Rows, sc.cfg.Cols)
	if err != nil {
		return err
	}
	sc.game = g
	sc.solver = &alphabeta.Solver{}
	if err := sc.solver.Init(g); err != nil {
		return err
	}
	sc.solver.SetMoveOrdering(sc.cfg.Ordering())
	diagnostics.Reset()
	return nil
}

// Loop reads and executes commands until exit.
func (sc *ShellController) Loop() {
	defer sc.l.Close()
	out := sc.l.Stderr()
	showMessage("Starting Connect Four. You are X; enter a column number to move.", out)
	showMessage(sc.game.ToDisplayText(), out)
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if err := sc.execute(strings.TrimSpace(line), out); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			showMessage("error: "+err.Error(), out)
		}
	}
	log.Debug().Msg("exiting shell")
}

func (sc *ShellController) execute(line string, out io.Writer) error {
	if line == "" {
		return nil
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	// A bare number is a human move.
	if col, err := strconv.Atoi(cmd); err == nil {
		return sc.humanMove(col, out)
	}

	switch cmd {
	case "help":
		usage(out)
	case "show":
		showMessage(sc.game.ToDisplayText(), out)
	case "new":
		if err := sc.newGame(); err != nil {
			return err
		}
		showMessage(sc.game.ToDisplayText(), out)
	case "depth":
		if len(args) != 1 {
			return errors.New("usage: depth <plies>")
		}
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			return errors.New("depth must be a positive integer")
		}
		sc.depth = d
	case "ai":
		return sc.aiMove(out)
	case "diag":
		return sc.showDiagnostics(out)
	case "viz":
		if len(args) != 1 {
			return errors.New("usage: viz <file.dot>")
		}
		root := sc.solver.RootNode()
		if root == nil {
			return errors.New("no AI move yet")
		}
		if err := alphabeta.WriteDotFile(root, args[0]); err != nil {
			return err
		}
		showMessage("wrote "+args[0], out)
	case "autoplay":
		return sc.autoplay(args, out)
	case "exit", "quit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q; try help", cmd)
	}
	return nil
}

func (sc *ShellController) humanMove(col int, out io.Writer) error {
	if sc.game.Result().GameOver() {
		return errors.New("game is over; type new to start another")
	}
	if err := sc.game.PlayMove(col); err != nil {
		return err
	}
	showMessage(sc.game.ToDisplayText(), out)
	if sc.gameOverMessage(out) {
		return nil
	}
	return sc.aiMove(out)
}

func (sc *ShellController) aiMove(out io.Writer) error {
	if sc.game.Result().GameOver() {
		return errors.New("game is over; type new to start another")
	}
	res, err := sc.solver.Solve(sc.depth)
	if err != nil {
		return err
	}
	diagnostics.Record(res)
	if err := sc.game.PlayMove(res.ChosenColumn); err != nil {
		return err
	}
	showMessage(fmt.Sprintf("AI plays column %d (searched %d plies, %d nodes, %.3fs)",
		res.ChosenColumn, res.Depth, res.NodesExpanded, res.Elapsed.Seconds()), out)
	showMessage(sc.game.ToDisplayText(), out)
	sc.gameOverMessage(out)
	return nil
}

func (sc *ShellController) gameOverMessage(out io.Writer) bool {
	res := sc.game.Result()
	if !res.GameOver() {
		return false
	}
	showMessage(res.String(), out)
	return true
}

func (sc *ShellController) showDiagnostics(out io.Writer) error {
	latest := diagnostics.Latest()
	if latest == nil {
		return errors.New("no AI move yet")
	}
	evals := strings.Join(lo.Map(latest.EvaluatedMoves,
		func(m alphabeta.EvaluatedMove, _ int) string {
			return fmt.Sprintf("%d:%d", m.Column, m.Score)
		}), "  ")
	pv := strings.Join(lo.Map(latest.PrincipalVariation,
		func(c int, _ int) string { return strconv.Itoa(c) }), " ")
	showMessage(fmt.Sprintf("chosen: %d", latest.ChosenColumn), out)
	showMessage("root evaluations (col:score): "+evals, out)
	showMessage("principal variation: "+pv, out)
	showMessage(fmt.Sprintf("nodes: %d  depth: %d  elapsed: %.3fs",
		latest.NodesExpanded, latest.SearchDepth, latest.Elapsed.Seconds()), out)
	return nil
}

func (sc *ShellController) autoplay(args []string, out io.Writer) error {
	games := 10
	if len(args) > 0 {
		g, err := strconv.Atoi(args[0])
		if err != nil || g < 1 {
			return errors.New("usage: autoplay [games]")
		}
		games = g
	}
	threads := max(1, runtime.NumCPU()-1)
	if threads > games {
		threads = games
	}
	stats, err := automatic.StartCompVCompGames(context.Background(), games, threads,
		sc.cfg.Rows, sc.cfg.Cols, sc.depth,
		automatic.MinimaxPlayer, automatic.MinimaxPlayer, nil)
	if err != nil {
		return err
	}
	showMessage(fmt.Sprintf("games: %d  yellow: %d  red: %d  draws: %d  avg nodes/game: %.0f",
		stats.Games, stats.YellowWins, stats.RedWins, stats.Draws,
		float64(stats.TotalNodes)/float64(stats.Games)), out)
	return nil
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "<n> - drop your piece into column n (the AI replies)\n")
	io.WriteString(w, "ai - let the AI move for the side to play\n")
	io.WriteString(w, "show - redraw the board\n")
	io.WriteString(w, "depth <plies> - change the AI search depth\n")
	io.WriteString(w, "diag - print diagnostics for the last AI move\n")
	io.WriteString(w, "viz <file.dot> - save the last search tree as Graphviz dot\n")
	io.WriteString(w, "autoplay [games] - play AI vs AI games and report stats\n")
	io.WriteString(w, "new - start a new game\n")
	io.WriteString(w, "exit - leave the shell\n")
}
