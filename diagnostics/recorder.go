// Package diagnostics packages search output into immutable per-move
// results and maintains the process-wide "latest diagnostics" value that
// rendering collaborators read.
package diagnostics

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/omaralmansoori/connectfour/alphabeta"
)

// Result is the record of one AI turn. It is immutable after construction
// and superseded, never mutated, by the next turn's record. The tree is a
// deep copy; it shares nothing with the solver.
type Result struct {
	ChosenColumn       int                       `json:"chosenColumn"`
	PrincipalVariation []int                     `json:"principalVariation"`
	EvaluatedMoves     []alphabeta.EvaluatedMove `json:"evaluatedMoves"`
	Tree               *alphabeta.SearchNode     `json:"tree"`
	NodesExpanded      int                       `json:"nodesExpanded"`
	Elapsed            time.Duration             `json:"-"`
	SearchDepth        int                       `json:"searchDepth"`
}

// MarshalJSON adds the elapsed time in seconds, the unit the rendering
// collaborator displays.
func (r *Result) MarshalJSON() ([]byte, error) {
	type alias Result
	return json.Marshal(struct {
		*alias
		ElapsedSeconds float64 `json:"elapsedSeconds"`
	}{
		alias:          (*alias)(r),
		ElapsedSeconds: r.Elapsed.Seconds(),
	})
}

// Recorder holds the most recent Result. Replacement is wholesale and
// last-write-wins; nothing accumulates across moves. The recorder assumes
// at most one AI inference in flight per process — a deployment serving
// concurrent games needs its own per-session recorder.
type Recorder struct {
	latest *Result
}

// Record wraps a completed top-level search into a Result, stores it as
// the latest value, and emits the per-move log record.
func (rec *Recorder) Record(sr *alphabeta.SearchResult) *Result {
	pv := make([]int, len(sr.PrincipalVariation))
	copy(pv, sr.PrincipalVariation)
	moves := make([]alphabeta.EvaluatedMove, len(sr.EvaluatedMoves))
	copy(moves, sr.EvaluatedMoves)

	res := &Result{
		ChosenColumn:       sr.ChosenColumn,
		PrincipalVariation: pv,
		EvaluatedMoves:     moves,
		Tree:               sr.Tree.Copy(),
		NodesExpanded:      sr.NodesExpanded,
		Elapsed:            sr.Elapsed,
		SearchDepth:        sr.Depth,
	}
	rec.latest = res
	log.Info().
		Int("chosenMove", res.ChosenColumn).
		Dur("duration", res.Elapsed).
		Int("depth", res.SearchDepth).
		Int("nodesExpanded", res.NodesExpanded).
		Msg("ai-move")
	return res
}

// Latest returns the most recent Result, or nil before the first AI move.
func (rec *Recorder) Latest() *Result {
	return rec.latest
}

// Reset clears the latest value, e.g. when a new game starts.
func (rec *Recorder) Reset() {
	rec.latest = nil
}

// defaultRecorder backs the package-level process-wide state.
var defaultRecorder = &Recorder{}

// Record stores a result in the process-wide recorder.
func Record(sr *alphabeta.SearchResult) *Result {
	return defaultRecorder.Record(sr)
}

// Latest reads the process-wide latest result.
func Latest() *Result {
	return defaultRecorder.Latest()
}

// Reset clears the process-wide latest result.
func Reset() {
	defaultRecorder.Reset()
}
