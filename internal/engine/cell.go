// Package engine provides the board simulation core: cell tags, the
// tetromino catalog and the mutable board with placement, line detection
// and clear/gravity operations.
//
// The package is pure and deterministic. It never logs, never touches the
// filesystem and holds no global mutable state.
package engine

import "image/color"

// Cell is the tag stored in one board cell: empty or one of the seven piece colors.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellI
	CellO
	CellT
	CellS
	CellZ
	CellJ
	CellL
	cellCount // Sentinel value for iteration
)

// String returns the single-letter name of the cell, "." for empty.
func (c Cell) String() string {
	return string(c.Char())
}

// Char returns a single character representation of the cell for ASCII rendering.
func (c Cell) Char() rune {
	switch c {
	case CellEmpty:
		return '.'
	case CellI:
		return 'I'
	case CellO:
		return 'O'
	case CellT:
		return 'T'
	case CellS:
		return 'S'
	case CellZ:
		return 'Z'
	case CellJ:
		return 'J'
	case CellL:
		return 'L'
	default:
		return '?'
	}
}

// Filled reports whether the cell holds a piece color.
func (c Cell) Filled() bool {
	return c != CellEmpty
}

// Valid reports whether c is one of the defined tags.
func (c Cell) Valid() bool {
	return c < cellCount
}

// RGB returns the raster color of the cell.
func (c Cell) RGB() color.RGBA {
	switch c {
	case CellI:
		return color.RGBA{R: 0, G: 255, B: 255, A: 255} // cyan
	case CellO:
		return color.RGBA{R: 255, G: 255, B: 0, A: 255} // yellow
	case CellT:
		return color.RGBA{R: 128, G: 0, B: 128, A: 255} // purple
	case CellS:
		return color.RGBA{R: 0, G: 255, B: 0, A: 255} // green
	case CellZ:
		return color.RGBA{R: 255, G: 0, B: 0, A: 255} // red
	case CellJ:
		return color.RGBA{R: 0, G: 0, B: 255, A: 255} // blue
	case CellL:
		return color.RGBA{R: 255, G: 165, B: 0, A: 255} // orange
	case CellEmpty:
		return color.RGBA{R: 30, G: 30, B: 30, A: 255}
	default:
		return color.RGBA{R: 100, G: 100, B: 100, A: 255}
	}
}

// ANSI returns the ANSI 256 terminal color code of the cell.
func (c Cell) ANSI() uint8 {
	switch c {
	case CellI:
		return 51
	case CellO:
		return 226
	case CellT:
		return 129
	case CellS:
		return 46
	case CellZ:
		return 196
	case CellJ:
		return 21
	case CellL:
		return 214
	case CellEmpty:
		return 236
	default:
		return 244
	}
}

// ParseCell converts a board character back to a Cell.
// Accepts '.', '0', ' ' and '_' for empty. Returns false for unknown characters.
func ParseCell(r rune) (Cell, bool) {
	switch r {
	case '.', '0', ' ', '_':
		return CellEmpty, true
	case 'I', 'i':
		return CellI, true
	case 'O', 'o':
		return CellO, true
	case 'T', 't':
		return CellT, true
	case 'S', 's':
		return CellS, true
	case 'Z', 'z':
		return CellZ, true
	case 'J', 'j':
		return CellJ, true
	case 'L', 'l':
		return CellL, true
	default:
		return CellEmpty, false
	}
}

// PieceCells returns the seven non-empty tags in catalog order.
func PieceCells() []Cell {
	return []Cell{CellI, CellO, CellT, CellS, CellZ, CellJ, CellL}
}
