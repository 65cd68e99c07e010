package engine

import "errors"

// Errors returned by board and catalog operations. Callers match them with
// errors.Is; the returned errors wrap them with coordinates and shape names.
var (
	// ErrOutOfBounds is returned for a coordinate or row outside the grid.
	ErrOutOfBounds = errors.New("engine: out of bounds")

	// ErrInvalidPlacement is returned by Place when CanPlace does not hold.
	ErrInvalidPlacement = errors.New("engine: invalid placement")

	// ErrInvalidShape is returned for a shape name or orientation outside the catalog.
	ErrInvalidShape = errors.New("engine: invalid shape")

	// ErrDuplicateRow is returned by ClearRows when a row index repeats.
	ErrDuplicateRow = errors.New("engine: duplicate row")
)
