package scenario

import (
	"fmt"

	"github.com/vovakirdan/lineclear/internal/engine"
)

// Step records one commit: the piece as locked, the board right after
// locking, the rows cleared by it and the board after gravity.
type Step struct {
	Placement engine.Placement
	Locked    engine.Snapshot
	Cleared   []int
	Settled   engine.Snapshot
}

// Result is the resolved scenario handed to renderers and writers.
type Result struct {
	Scenario *Scenario
	Initial  engine.Snapshot // terrain before any lock, piece not merged
	Final    engine.Snapshot
	Steps    []Step // one per commit, in commit order
}

// Placements returns the committed pieces in order.
func (r *Result) Placements() []engine.Placement {
	out := make([]engine.Placement, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Placement
	}
	return out
}

// ClearedRows returns one cleared-row set per commit. A commit that clears
// nothing contributes an empty set.
func (r *Result) ClearedRows() [][]int {
	out := make([][]int, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = append([]int{}, s.Cleared...)
	}
	return out
}

// LinesCleared returns the total number of rows cleared across all commits.
func (r *Result) LinesCleared() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Cleared)
	}
	return n
}

// Display returns the initial frame with the first piece drawn on top.
func (r *Result) Display() engine.Snapshot {
	return r.Scenario.Display()
}

// Resolve runs the deterministic transition from the scenario's initial
// state to its final state: lock, scan, clear once, then the next drop.
// Resolution never mutates the scenario.
func Resolve(sc *Scenario) (*Result, error) {
	board := sc.Initial.Board()
	res := &Result{Scenario: sc, Initial: sc.Initial}

	step, err := commitStep(board, sc.First)
	if err != nil {
		return nil, err
	}
	res.Steps = append(res.Steps, step)

	for i, d := range sc.Next {
		row, ok := board.DropRow(d.Piece, d.Column)
		if !ok {
			return nil, fmt.Errorf("%w: drop %d (%s in column %d) is blocked at spawn",
				ErrInvariantViolation, i+1, d.Piece.Shape, d.Column)
		}
		pl := engine.Placement{Piece: d.Piece, Anchor: engine.Pos{Row: row, Col: d.Column}}
		step, err := commitStep(board, pl)
		if err != nil {
			return nil, err
		}
		res.Steps = append(res.Steps, step)
	}

	res.Final = board.Snapshot()
	return res, nil
}

func commitStep(board *engine.Board, pl engine.Placement) (Step, error) {
	step := Step{Placement: pl}
	if err := board.Place(pl.Piece, pl.Anchor); err != nil {
		return step, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	step.Locked = board.Snapshot()

	cleared, err := clearFull(board)
	if err != nil {
		return step, err
	}
	step.Cleared = cleared
	step.Settled = board.Snapshot()
	return step, nil
}

// commit locks a placement and clears; used by the builder for trial boards.
func commit(board *engine.Board, pl engine.Placement) ([]int, error) {
	if err := board.Place(pl.Piece, pl.Anchor); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	return clearFull(board)
}

// clearFull scans top to bottom and clears every full row in one event.
// A clear must remove exactly width cells per row; anything else is a defect.
func clearFull(board *engine.Board) ([]int, error) {
	full := board.FullRows()
	if len(full) == 0 {
		return []int{}, nil
	}

	before := board.FilledCount()
	if err := board.ClearRows(full); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	if got, want := board.FilledCount(), before-len(full)*board.Width(); got != want {
		return nil, fmt.Errorf("%w: clearing rows %v left %d cells, want %d",
			ErrInvariantViolation, full, got, want)
	}
	return full, nil
}
