package engine

import (
	"fmt"
	"strings"
)

// Shape names one of the seven tetrominoes.
type Shape uint8

const (
	ShapeI Shape = iota + 1
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// String returns the letter name of the shape.
func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
	return string(Cell(s).Char())
}

// Valid reports whether s is one of the seven catalog shapes.
func (s Shape) Valid() bool {
	return s >= ShapeI && s <= ShapeL
}

// ParseShape converts a letter name ("I", "t", ...) to a Shape.
func ParseShape(name string) (Shape, error) {
	if len(name) == 1 {
		if c, ok := ParseCell(rune(name[0])); ok && c.Filled() {
			return Shape(c), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShape, name)
}

// AllShapes returns the catalog shapes in fixed order.
func AllShapes() []Shape {
	return []Shape{ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL}
}

// Offset is a cell position relative to a piece anchor.
type Offset struct {
	DRow int
	DCol int
}

// Pos is an absolute board coordinate. Row 0 is the top row.
type Pos struct {
	Row int
	Col int
}

// Add returns p translated by o.
func (p Pos) Add(o Offset) Pos {
	return Pos{Row: p.Row + o.DRow, Col: p.Col + o.DCol}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// orientations holds every static orientation of each shape as (dRow, dCol)
// offsets. Index 0 is the canonical spawn orientation. The tables are
// normalised in init so the minimum dRow and dCol of each orientation are 0.
var orientations = map[Shape][][4]Offset{
	ShapeI: {
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	},
	ShapeO: {
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	ShapeT: {
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
	},
	ShapeS: {
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	ShapeZ: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	},
	ShapeJ: {
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
	},
	ShapeL: {
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	},
}

func init() {
	for shape, list := range orientations {
		for i := range list {
			list[i] = normalize(list[i])
			if !distinct(list[i]) {
				panic(fmt.Sprintf("engine: shape %s orientation %d has duplicate cells", shape, i))
			}
		}
	}
}

// normalize shifts offsets so the minimum dRow and dCol are zero.
func normalize(cells [4]Offset) [4]Offset {
	minRow, minCol := cells[0].DRow, cells[0].DCol
	for _, o := range cells[1:] {
		minRow = min(minRow, o.DRow)
		minCol = min(minCol, o.DCol)
	}
	for i := range cells {
		cells[i].DRow -= minRow
		cells[i].DCol -= minCol
	}
	return cells
}

func distinct(cells [4]Offset) bool {
	seen := make(map[Offset]bool, len(cells))
	for _, o := range cells {
		if seen[o] {
			return false
		}
		seen[o] = true
	}
	return true
}

// Piece is a catalog shape in one static orientation.
// Pieces are values; the catalog never hands out shared slices.
type Piece struct {
	Shape       Shape
	Orientation int
	Offsets     [4]Offset
}

// NewPiece returns the piece for a shape in the given orientation.
func NewPiece(shape Shape, orientation int) (Piece, error) {
	list, ok := orientations[shape]
	if !ok {
		return Piece{}, fmt.Errorf("%w: %s", ErrInvalidShape, shape)
	}
	if orientation < 0 || orientation >= len(list) {
		return Piece{}, fmt.Errorf("%w: %s has no orientation %d", ErrInvalidShape, shape, orientation)
	}
	return Piece{Shape: shape, Orientation: orientation, Offsets: list[orientation]}, nil
}

// ShapeOf returns the canonical offsets of the named shape.
func ShapeOf(name string) ([4]Offset, error) {
	shape, err := ParseShape(name)
	if err != nil {
		return [4]Offset{}, err
	}
	return orientations[shape][0], nil
}

// ColorOf returns the cell tag written by the named shape.
func ColorOf(name string) (Cell, error) {
	shape, err := ParseShape(name)
	if err != nil {
		return CellEmpty, err
	}
	return shape.Cell(), nil
}

// Cell returns the color tag of the shape.
func (s Shape) Cell() Cell {
	if !s.Valid() {
		return CellEmpty
	}
	return Cell(s)
}

// Orientations returns every static orientation of the named shape,
// canonical orientation first.
func Orientations(name string) ([][4]Offset, error) {
	shape, err := ParseShape(name)
	if err != nil {
		return nil, err
	}
	list := orientations[shape]
	out := make([][4]Offset, len(list))
	copy(out, list)
	return out, nil
}

// ShapeFor maps a color tag back to the shape that writes it.
func ShapeFor(c Cell) (Shape, error) {
	if !c.Filled() || !c.Valid() {
		return 0, fmt.Errorf("%w: no shape writes %s", ErrInvalidShape, c)
	}
	return Shape(c), nil
}

// OrientationCount returns how many static orientations the shape has.
func OrientationCount(shape Shape) int {
	return len(orientations[shape])
}

// Color returns the cell tag the piece writes.
func (p Piece) Color() Cell {
	return p.Shape.Cell()
}

// Width returns the number of columns spanned by the piece.
func (p Piece) Width() int {
	w := 0
	for _, o := range p.Offsets {
		w = max(w, o.DCol+1)
	}
	return w
}

// Height returns the number of rows spanned by the piece.
func (p Piece) Height() int {
	h := 0
	for _, o := range p.Offsets {
		h = max(h, o.DRow+1)
	}
	return h
}

// String draws the piece as rows of letters and dots.
func (p Piece) String() string {
	var sb strings.Builder
	for r := range p.Height() {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range p.Width() {
			ch := '.'
			for _, o := range p.Offsets {
				if o.DRow == r && o.DCol == c {
					ch = p.Color().Char()
				}
			}
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// Placement is a piece anchored at a board position.
type Placement struct {
	Piece  Piece
	Anchor Pos
}

// Cells returns the absolute coordinates covered by the placement.
func (pl Placement) Cells() []Pos {
	cells := make([]Pos, len(pl.Piece.Offsets))
	for i, o := range pl.Piece.Offsets {
		cells[i] = pl.Anchor.Add(o)
	}
	return cells
}

// String returns e.g. "T@(3,1)".
func (pl Placement) String() string {
	return fmt.Sprintf("%s@%s", pl.Piece.Shape, pl.Anchor)
}
