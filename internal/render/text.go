package render

import (
	"github.com/vovakirdan/lineclear/internal/core"
	"github.com/vovakirdan/lineclear/internal/engine"
)

// Terminal glyphs. Each board cell is two characters wide so cells look
// roughly square in a terminal.
const (
	filledGlyph = "██"
	emptyGlyph  = "· "
)

// CellColor maps a cell tag to its terminal color.
func CellColor(c engine.Cell) core.Color {
	return core.Color(c.ANSI())
}

// BoardSize returns the screen area DrawBoard needs for a w x h board,
// frame included.
func BoardSize(w, h int) (cols, rows int) {
	return 2*w + 2, h + 2
}

// DrawBoard draws the frame's board inside a box whose top-left corner is
// at (x, y). Highlighted rows are drawn fully lit.
func DrawBoard(s *core.Screen, x, y int, f Frame) {
	b := f.Board
	cols, rows := BoardSize(b.Width(), b.Height())
	s.DrawBox(core.NewRect(x, y, cols, rows), core.ColorFrame)

	flashed := make(map[int]bool, len(f.Flash))
	for _, r := range f.Flash {
		flashed[r] = true
	}

	for row := range b.Height() {
		for col := range b.Width() {
			cell := b.At(row, col)
			px, py := x+1+2*col, y+1+row
			switch {
			case flashed[row]:
				s.DrawTextColored(px, py, filledGlyph, core.ColorFlash)
			case cell.Filled():
				s.DrawTextColored(px, py, filledGlyph, CellColor(cell))
			default:
				s.DrawTextColored(px, py, emptyGlyph, core.ColorDim)
			}
		}
	}
}

// Screen returns a screen holding just the framed board.
func Screen(f Frame) *core.Screen {
	cols, rows := BoardSize(f.Board.Width(), f.Board.Height())
	s := core.NewScreen(cols, rows)
	DrawBoard(s, 0, 0, f)
	return s
}
