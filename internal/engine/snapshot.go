package engine

// Snapshot is an immutable copy of a board grid.
// It is what renderers, templaters and the task index consume.
type Snapshot struct {
	width  int
	height int
	cells  []Cell
}

// Width returns the number of columns.
func (s Snapshot) Width() int {
	return s.width
}

// Height returns the number of rows.
func (s Snapshot) Height() int {
	return s.height
}

// At returns the cell at the given coordinate.
// Returns CellEmpty for out-of-bounds coordinates.
func (s Snapshot) At(row, col int) Cell {
	if row < 0 || row >= s.height || col < 0 || col >= s.width {
		return CellEmpty
	}
	return s.cells[row*s.width+col]
}

// Rows returns a copy of the grid as a slice of rows.
func (s Snapshot) Rows() [][]Cell {
	rows := make([][]Cell, s.height)
	for r := range rows {
		rows[r] = make([]Cell, s.width)
		copy(rows[r], s.cells[r*s.width:(r+1)*s.width])
	}
	return rows
}

// Lines returns the grid as one string per row (see Cell.Char).
func (s Snapshot) Lines() []string {
	lines := make([]string, s.height)
	for r := range lines {
		runes := make([]rune, s.width)
		for c := range runes {
			runes[c] = s.At(r, c).Char()
		}
		lines[r] = string(runes)
	}
	return lines
}

// Equal returns true if two snapshots have the same dimensions and contents.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.width != other.width || s.height != other.height {
		return false
	}
	for i, c := range s.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// FilledCount returns the number of non-empty cells.
func (s Snapshot) FilledCount() int {
	count := 0
	for _, c := range s.cells {
		if c != CellEmpty {
			count++
		}
	}
	return count
}

// Board returns a new mutable board holding a copy of the snapshot.
func (s Snapshot) Board() *Board {
	cells := make([]Cell, len(s.cells))
	copy(cells, s.cells)
	return &Board{width: s.width, height: s.height, cells: cells}
}

// Overlay returns a copy with the placement's cells drawn on top.
// Cells outside the grid are skipped. Used to depict a piece that is
// visible but not yet merged into the grid.
func (s Snapshot) Overlay(pl Placement) Snapshot {
	out := s.Board()
	color := pl.Piece.Color()
	for _, at := range pl.Cells() {
		if out.InBounds(at.Row, at.Col) {
			out.cells[out.index(at.Row, at.Col)] = color
		}
	}
	return out.Snapshot()
}

// WithRowsCleared returns a copy where the given rows are emptied in place,
// without gravity. Used for the "rows disappear" animation frame.
func (s Snapshot) WithRowsCleared(rows []int) Snapshot {
	out := s.Board()
	for _, r := range rows {
		if r < 0 || r >= s.height {
			continue
		}
		for c := range s.width {
			out.cells[out.index(r, c)] = CellEmpty
		}
	}
	return out.Snapshot()
}

// String renders the snapshot as rows of cell characters.
func (s Snapshot) String() string {
	return renderCells(s.cells, s.width, s.height)
}
