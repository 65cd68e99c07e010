package scenario

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/lineclear/internal/engine"
)

// Builder constructs scenarios for one validated config.
type Builder struct {
	cfg     Config
	profile Profile
	policy  ClearPolicy
}

// NewBuilder validates the config and resolves its profile.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	profile, err := cfg.Profile()
	if err != nil {
		return nil, err
	}
	policy, err := ParseClearPolicy(string(cfg.ClearPolicy))
	if err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, profile: profile, policy: policy}, nil
}

// Profile returns the resolved difficulty profile.
func (b *Builder) Profile() Profile {
	return b.profile
}

// Build samples a scenario from rng. Every random choice is drawn from rng
// in a fixed order, so the same source state yields the same scenario.
//
// Each attempt fills the terrain and then picks the landed piece (and, for
// hard, the scheduled drop) among the candidates the clear policy accepts:
// a shape uniformly, one of its orientations uniformly, then a column
// uniformly. An attempt is spent only when the terrain is rejected or no
// candidate satisfies the policy; once the budget is gone the last reason is
// reported wrapped in ErrGenerationExhausted.
func (b *Builder) Build(rng *rand.Rand) (*Scenario, error) {
	limit := b.cfg.attempts()
	reason := "no attempts allowed"

	for attempt := 1; attempt <= limit; attempt++ {
		board := engine.NewBoard(b.profile.Width, b.profile.Height)

		if !b.fillRows(board, rng) {
			reason = "pre-filled row came out full"
			continue
		}

		first, ok := choose(rng, board, func(pl engine.Placement) bool {
			return b.landingAccepted(board, pl)
		})
		if !ok {
			reason = fmt.Sprintf("no landing satisfies clear policy %q", b.policy)
			continue
		}

		sc := &Scenario{
			Profile:  b.profile,
			Seed:     b.cfg.Seed,
			Policy:   b.policy,
			Initial:  board.Snapshot(),
			First:    first,
			Attempts: attempt,
		}

		if b.profile.SecondDrop {
			after := board.Clone()
			cleared, err := commit(after, first)
			if err != nil {
				return nil, err
			}
			drop, ok := choose(rng, after, func(pl engine.Placement) bool {
				return b.policy.accepts(len(cleared) + completes(after, pl))
			})
			if !ok {
				return nil, fmt.Errorf("%w: accepted landing %s has no drop", ErrInvariantViolation, first)
			}
			sc.Next = append(sc.Next, Drop{Piece: drop.Piece, Column: drop.Anchor.Col})
		}

		res, err := Resolve(sc)
		if err != nil {
			return nil, err
		}
		if !b.policy.accepts(res.LinesCleared()) {
			return nil, fmt.Errorf("%w: clear policy %q rejected a planned scenario clearing %d lines",
				ErrInvariantViolation, b.policy, res.LinesCleared())
		}

		return sc, nil
	}

	return nil, fmt.Errorf("%w: %s after %d attempts (%s, seed %d)",
		ErrGenerationExhausted, reason, limit, b.profile, b.cfg.Seed)
}

// landingAccepted reports whether the first piece can rest at pl and still
// end in a resolution the policy accepts. For hard difficulty that needs at
// least one legal drop on the settled board.
func (b *Builder) landingAccepted(board *engine.Board, pl engine.Placement) bool {
	lines := completes(board, pl)
	if !b.profile.SecondDrop {
		return b.policy.accepts(lines)
	}

	after := board.Clone()
	if _, err := commit(after, pl); err != nil {
		return false
	}
	for _, pieces := range catalogPieces {
		for _, p := range pieces {
			cols, rows := legalColumns(after, p)
			for i, col := range cols {
				drop := engine.Placement{Piece: p, Anchor: engine.Pos{Row: rows[i], Col: col}}
				if b.policy.accepts(lines + completes(after, drop)) {
					return true
				}
			}
		}
	}
	return false
}

// fillRows seeds the bottom rows. The bottom row picks k columns; each row
// above picks only among columns filled directly below it, so no cell floats.
// Returns false if any row came out completely full.
func (b *Builder) fillRows(board *engine.Board, rng *rand.Rand) bool {
	w, h := board.Width(), board.Height()
	colors := engine.PieceCells()

	for i := range b.profile.PreFilledRows {
		row := h - 1 - i

		jitter := (rng.Float64()*2 - 1) * b.cfg.FillJitter
		k := int(float64(w)*b.cfg.FillRatio + jitter*float64(w))
		k = max(0, min(w, k))

		candidates := make([]int, 0, w)
		for col := range w {
			if i == 0 {
				candidates = append(candidates, col)
				continue
			}
			if below, _ := board.At(row+1, col); below.Filled() {
				candidates = append(candidates, col)
			}
		}
		k = min(k, len(candidates))

		for _, idx := range rng.Perm(len(candidates))[:k] {
			// Coordinates come from the board's own bounds.
			_ = board.Set(row, candidates[idx], colors[rng.Intn(len(colors))])
		}

		if k == w {
			return false
		}
	}
	return true
}

// catalogPieces holds every orientation of every shape, grouped by shape in
// catalog order.
var catalogPieces = func() [][]engine.Piece {
	var out [][]engine.Piece
	for _, shape := range engine.AllShapes() {
		var pieces []engine.Piece
		for o := range engine.OrientationCount(shape) {
			p, err := engine.NewPiece(shape, o)
			if err != nil {
				// Unreachable: shape and orientation come from the catalog itself.
				panic(err)
			}
			pieces = append(pieces, p)
		}
		out = append(out, pieces)
	}
	return out
}()

// legalColumns returns the columns where the piece can spawn and drop,
// each paired with its landing row.
func legalColumns(board *engine.Board, p engine.Piece) (cols []int, rows []int) {
	for col := 0; col+p.Width() <= board.Width(); col++ {
		if row, ok := board.DropRow(p, col); ok {
			cols = append(cols, col)
			rows = append(rows, row)
		}
	}
	return cols, rows
}

// choose picks a landed placement among those accept allows: a shape
// uniformly among shapes with any accepted landing, then an orientation of
// it the same way, then one of its accepted columns.
func choose(rng *rand.Rand, board *engine.Board, accept func(engine.Placement) bool) (engine.Placement, bool) {
	var shapes [][][]engine.Placement
	for _, pieces := range catalogPieces {
		var orientations [][]engine.Placement
		for _, p := range pieces {
			var fits []engine.Placement
			cols, rows := legalColumns(board, p)
			for i, col := range cols {
				pl := engine.Placement{Piece: p, Anchor: engine.Pos{Row: rows[i], Col: col}}
				if accept(pl) {
					fits = append(fits, pl)
				}
			}
			if len(fits) > 0 {
				orientations = append(orientations, fits)
			}
		}
		if len(orientations) > 0 {
			shapes = append(shapes, orientations)
		}
	}
	if len(shapes) == 0 {
		return engine.Placement{}, false
	}

	orientations := shapes[rng.Intn(len(shapes))]
	fits := orientations[rng.Intn(len(orientations))]
	return fits[rng.Intn(len(fits))], true
}

// completes counts the rows pl would fill if it locked. The board must hold
// no full row, which is true of fresh terrain and of any board after a clear.
func completes(board *engine.Board, pl engine.Placement) int {
	added := make(map[int]int, 4)
	for _, c := range pl.Cells() {
		added[c.Row]++
	}
	full := 0
	for row, n := range added {
		for col := range board.Width() {
			if c, _ := board.At(row, col); c.Filled() {
				n++
			}
		}
		if n == board.Width() {
			full++
		}
	}
	return full
}

// Build is a convenience wrapper: validate cfg and build from cfg.Seed.
func Build(cfg Config) (*Scenario, error) {
	b, err := NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	return b.Build(rand.New(rand.NewSource(cfg.Seed)))
}
