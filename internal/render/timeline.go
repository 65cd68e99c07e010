// Package render turns resolved scenarios into pictures: still frames and
// animated GIFs for the dataset, and colored character grids for the
// terminal.
//
// Both outputs consume the same Timeline, a list of board frames that
// walks from the initial display through every lock, flash, clear and
// drop to the final board.
package render

import (
	"github.com/vovakirdan/lineclear/internal/engine"
	"github.com/vovakirdan/lineclear/internal/scenario"
)

// MinFrames is the shortest animation ever produced.
const MinFrames = 30

// Phase labels what a frame depicts.
type Phase string

const (
	PhaseInitial Phase = "initial"
	PhaseDrop    Phase = "drop"
	PhaseFlash   Phase = "flash"
	PhaseClear   Phase = "clear"
	PhaseSettle  Phase = "settle"
	PhaseFinal   Phase = "final"
)

// Frame is one picture of the animation.
type Frame struct {
	Board engine.Snapshot
	Flash []int // Rows drawn highlighted
	Phase Phase
}

// Timing sets how many frames each part of the animation lasts.
type Timing struct {
	Hold  int // Initial and final hold
	Flash int // Cleared rows blink, alternating on and off
	Clear int // Rows vanish in place, then blocks above fall
	Fall  int // Per row travelled by a dropped piece
}

// DefaultTiming returns the frame counts used for the dataset animations.
func DefaultTiming() Timing {
	return Timing{Hold: 15, Flash: 10, Clear: 10, Fall: 2}
}

// Timeline lays out the animation of a resolved scenario. The first frame
// is always the display frame and the last one the final board; short
// animations are padded to MinFrames before the final hold.
func Timeline(res *scenario.Result, t Timing) []Frame {
	var frames []Frame
	add := func(n int, f Frame) {
		for range n {
			frames = append(frames, f)
		}
	}

	add(max(1, t.Hold), Frame{Board: res.Display(), Phase: PhaseInitial})

	for i, step := range res.Steps {
		if i > 0 {
			// The scheduled piece falls from the top onto the settled board.
			prev := res.Steps[i-1].Settled
			for row := 0; row <= step.Placement.Anchor.Row; row++ {
				at := engine.Placement{
					Piece:  step.Placement.Piece,
					Anchor: engine.Pos{Row: row, Col: step.Placement.Anchor.Col},
				}
				add(max(1, t.Fall), Frame{Board: prev.Overlay(at), Phase: PhaseDrop})
			}
		}

		if len(step.Cleared) == 0 {
			continue
		}

		for f := range t.Flash {
			frame := Frame{Board: step.Locked, Phase: PhaseFlash}
			if f%2 == 0 {
				frame.Flash = step.Cleared
			}
			frames = append(frames, frame)
		}

		emptied := t.Clear / 2
		add(emptied, Frame{Board: step.Locked.WithRowsCleared(step.Cleared), Phase: PhaseClear})
		add(t.Clear-emptied, Frame{Board: step.Settled, Phase: PhaseSettle})
	}

	if short := MinFrames - len(frames) - max(1, t.Hold); short > 0 {
		add(short, frames[len(frames)-1])
	}
	add(max(1, t.Hold), Frame{Board: res.Final, Phase: PhaseFinal})

	return frames
}
