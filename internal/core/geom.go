// Package core holds the terminal drawing primitives shared by the board
// views and the preview. It imports nothing outside the standard library so
// a frame can be drawn and inspected without a terminal.
package core

// Rect is an area of the screen in character cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect returns the w x h rectangle with its top-left corner at (x, y).
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether inner lies entirely inside r.
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X && inner.Y >= r.Y &&
		inner.Right() <= r.Right() && inner.Bottom() <= r.Bottom()
}
