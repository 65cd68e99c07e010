// Package scenario builds line-clearing puzzles on top of the engine and
// resolves them deterministically.
//
// A Builder turns a Config and one seeded random source into a Scenario: a
// pre-filled board, a landed piece and, for hard difficulty, a second piece
// scheduled to drop after the first clear. Resolve commits the pieces in
// order and records every simultaneous clear.
package scenario

import "github.com/vovakirdan/lineclear/internal/engine"

// Drop is a piece scheduled to spawn at the top of a column and fall
// straight down once the previous commit has settled.
type Drop struct {
	Piece  engine.Piece
	Column int
}

// Scenario is a fully specified puzzle prior to resolution.
type Scenario struct {
	Profile Profile
	Seed    int64
	Policy  ClearPolicy

	// Initial is the pre-filled terrain without any piece merged in.
	Initial engine.Snapshot

	// First is the landed piece, visible but not yet locked.
	First engine.Placement

	// Next holds the scheduled drops, committed in order after First.
	Next []Drop

	// Attempts is how many builder attempts the scenario took.
	Attempts int
}

// Display returns the initial frame: terrain with the first piece drawn on top.
func (s *Scenario) Display() engine.Snapshot {
	return s.Initial.Overlay(s.First)
}
