package engine

import (
	"fmt"
	"strings"
)

// Board is a mutable grid of cells with fixed dimensions.
// Cells are stored in row-major order: index = row*width + col. Row 0 is the top.
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard creates an empty board. Dimensions must be positive.
func NewBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// ParseBoard builds a board from rows of cell characters (see ParseCell).
// All rows must have the same length.
func ParseBoard(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("engine: empty board")
	}
	width := len([]rune(rows[0]))
	b := NewBoard(width, len(rows))
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("engine: row %d has width %d, want %d", r, len(runes), width)
		}
		for c, ch := range runes {
			cell, ok := ParseCell(ch)
			if !ok {
				return nil, fmt.Errorf("engine: row %d col %d: unknown cell %q", r, c, ch)
			}
			b.cells[b.index(r, c)] = cell
		}
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

func (b *Board) index(row, col int) int {
	return row*b.width + col
}

// InBounds returns true if the coordinate is inside the grid.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

func (b *Board) outOfBounds(row, col int) error {
	return fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, row, col, b.width, b.height)
}

// At returns the cell at the given coordinate.
func (b *Board) At(row, col int) (Cell, error) {
	if !b.InBounds(row, col) {
		return CellEmpty, b.outOfBounds(row, col)
	}
	return b.cells[b.index(row, col)], nil
}

// IsEmpty reports whether the cell holds the empty tag.
func (b *Board) IsEmpty(row, col int) (bool, error) {
	c, err := b.At(row, col)
	if err != nil {
		return false, err
	}
	return c == CellEmpty, nil
}

// Set writes a tag into a single cell. Used to pre-seed terrain.
func (b *Board) Set(row, col int, c Cell) error {
	if !b.InBounds(row, col) {
		return b.outOfBounds(row, col)
	}
	if !c.Valid() {
		return fmt.Errorf("engine: invalid cell tag %d", c)
	}
	b.cells[b.index(row, col)] = c
	return nil
}

// CanPlace reports whether every cell of the piece, translated by anchor,
// is inside the grid and currently empty.
func (b *Board) CanPlace(p Piece, anchor Pos) bool {
	for _, o := range p.Offsets {
		at := anchor.Add(o)
		if !b.InBounds(at.Row, at.Col) {
			return false
		}
		if b.cells[b.index(at.Row, at.Col)] != CellEmpty {
			return false
		}
	}
	return true
}

// Place writes the piece color into every covered cell.
// The board is left untouched when CanPlace does not hold.
func (b *Board) Place(p Piece, anchor Pos) error {
	if !p.Shape.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidShape, p.Shape)
	}
	if !b.CanPlace(p, anchor) {
		return fmt.Errorf("%w: %s at %s", ErrInvalidPlacement, p.Shape, anchor)
	}
	color := p.Color()
	for _, o := range p.Offsets {
		at := anchor.Add(o)
		b.cells[b.index(at.Row, at.Col)] = color
	}
	return nil
}

// IsRowFull reports whether the row has no empty cell.
func (b *Board) IsRowFull(row int) (bool, error) {
	if row < 0 || row >= b.height {
		return false, b.outOfBounds(row, 0)
	}
	return b.rowFull(row), nil
}

func (b *Board) rowFull(row int) bool {
	start := b.index(row, 0)
	for _, c := range b.cells[start : start+b.width] {
		if c == CellEmpty {
			return false
		}
	}
	return true
}

// FullRows returns every full row index, scanned top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for r := range b.height {
		if b.rowFull(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// ClearRows deletes the given rows as one simultaneous event.
//
// Surviving rows keep their relative order and are packed against the
// bottom; height-len(survivors) empty rows are prepended at the top. The
// new grid is computed in a single pass over the full index set, so no row
// ever shifts twice and the order of rows in the argument does not matter.
func (b *Board) ClearRows(rows []int) error {
	if len(rows) == 0 {
		return nil
	}

	removed := make([]bool, b.height)
	for _, r := range rows {
		if r < 0 || r >= b.height {
			return b.outOfBounds(r, 0)
		}
		if removed[r] {
			return fmt.Errorf("%w: %d", ErrDuplicateRow, r)
		}
		removed[r] = true
	}

	survivors := make([]int, 0, b.height)
	for r := range b.height {
		if !removed[r] {
			survivors = append(survivors, r)
		}
	}

	// The first height-len(survivors) rows stay zero, which is CellEmpty.
	cells := make([]Cell, len(b.cells))
	top := b.height - len(survivors)
	for i, src := range survivors {
		dst := top + i
		copy(cells[dst*b.width:(dst+1)*b.width], b.cells[src*b.width:(src+1)*b.width])
	}
	b.cells = cells
	return nil
}

// DropRow returns the anchor row where the piece comes to rest when it
// spawns with its top at row 0 in the given column and falls straight down.
// Returns false if the spawn position itself is blocked or out of bounds.
func (b *Board) DropRow(p Piece, col int) (int, bool) {
	at := Pos{Row: 0, Col: col}
	if !b.CanPlace(p, at) {
		return 0, false
	}
	for b.CanPlace(p, Pos{Row: at.Row + 1, Col: col}) {
		at.Row++
	}
	return at.Row, true
}

// FilledCount returns the number of non-empty cells.
func (b *Board) FilledCount() int {
	count := 0
	for _, c := range b.cells {
		if c != CellEmpty {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{width: b.width, height: b.height, cells: cells}
}

// Snapshot returns an immutable copy of the grid.
func (b *Board) Snapshot() Snapshot {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Snapshot{width: b.width, height: b.height, cells: cells}
}

// String renders the board as rows of cell characters.
func (b *Board) String() string {
	return renderCells(b.cells, b.width, b.height)
}

func renderCells(cells []Cell, width, height int) string {
	var sb strings.Builder
	sb.Grow(width*height + height)
	for r := range height {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range cells[r*width : (r+1)*width] {
			sb.WriteRune(c.Char())
		}
	}
	return sb.String()
}
