package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position of the screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a fixed-size character buffer. Boards and preview chrome are
// drawn into it and the platform layer turns it into terminal output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen returns a blank width x height screen.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: max(0, width), height: max(0, height)}
	s.cells = grid(s.width, s.height)
	return s
}

func grid(width, height int) [][]Cell {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = blank
		}
	}
	return cells
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Bounds returns the whole screen as a rectangle.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Resize changes the screen dimensions. The overlapping top-left area keeps
// its content.
func (s *Screen) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if width == s.width && height == s.height {
		return
	}
	cells := grid(width, height)
	for y := range min(s.height, height) {
		copy(cells[y], s.cells[y][:min(s.width, width)])
	}
	s.width, s.height, s.cells = width, height, cells
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// GetCell returns the cell at (x, y), blank outside the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blank
	}
	return s.cells[y][x]
}

// DrawTextColored writes text from (x, y) rightwards, one rune per cell.
// Runes falling outside the screen are dropped.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	if y < 0 || y >= s.height {
		return
	}
	for _, r := range text {
		if x >= 0 && x < s.width {
			s.cells[y][x] = Cell{Rune: r, Color: c}
		}
		x++
	}
}

// DrawTextCentered writes text horizontally centered on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawTextColored((s.width-utf8.RuneCountInString(text))/2, y, text, c)
}

// DrawLines writes lines top-down from (x, y), stopping at the bottom edge.
// It returns the number of lines that fit.
func (s *Screen) DrawLines(x, y int, lines []string, c Color) int {
	n := 0
	for _, line := range lines {
		if y+n >= s.height {
			break
		}
		s.DrawTextColored(x, y+n, strings.TrimRight(line, " "), c)
		n++
	}
	return n
}

// DrawBox outlines r with box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	inner := strings.Repeat("─", r.W-2)
	s.DrawTextColored(r.X, r.Y, "┌"+inner+"┐", c)
	s.DrawTextColored(r.X, r.Bottom()-1, "└"+inner+"┘", c)
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.DrawTextColored(r.X, y, "│", c)
		s.DrawTextColored(r.Right()-1, y, "│", c)
	}
}

// String returns the screen as plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow((s.width + 1) * s.height)
	for y, row := range s.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}
