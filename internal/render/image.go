package render

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"

	"github.com/vovakirdan/lineclear/internal/engine"
)

// DefaultSize is the edge of a rendered frame in pixels.
const DefaultSize = 400

const (
	outlineWidth = 2
	flashMix     = 0.45 // Share of white blended into highlighted rows
)

var (
	background = color.RGBA{A: 255}
	outline    = color.RGBA{R: 50, G: 50, B: 50, A: 255}
)

// Renderer draws board frames as square paletted images. Every color it
// can emit is in its palette, so PNG and GIF output is lossless.
type Renderer struct {
	size    int
	palette color.Palette
	fill    [2][]uint8 // [flash][cell] -> palette index
	edge    [2]uint8   // [flash] -> outline palette index
}

// NewRenderer returns a renderer producing size x size images.
func NewRenderer(size int) *Renderer {
	if size <= 0 {
		size = DefaultSize
	}
	r := &Renderer{size: size, palette: color.Palette{background}}

	add := func(c color.RGBA) uint8 {
		r.palette = append(r.palette, c)
		return uint8(len(r.palette) - 1)
	}

	r.edge[0] = add(outline)
	r.edge[1] = add(lighten(outline))
	tags := append([]engine.Cell{engine.CellEmpty}, engine.PieceCells()...)
	for flash := range 2 {
		r.fill[flash] = make([]uint8, len(tags))
	}
	for _, c := range tags {
		r.fill[0][c] = add(c.RGB())
		r.fill[1][c] = add(lighten(c.RGB()))
	}
	return r
}

// Size returns the image edge in pixels.
func (r *Renderer) Size() int {
	return r.size
}

// CellSize returns the pixel edge of one cell on a w x h board.
func (r *Renderer) CellSize(w, h int) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	return min(r.size/w, r.size/h)
}

// Image renders a board without highlights.
func (r *Renderer) Image(s engine.Snapshot) *image.Paletted {
	return r.Frame(Frame{Board: s})
}

// Frame renders one animation frame. Cells are drawn from the top-left
// corner with a 2 pixel outline; space left over by the integer cell size
// stays black.
func (r *Renderer) Frame(f Frame) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, r.size, r.size), r.palette)

	b := f.Board
	cs := r.CellSize(b.Width(), b.Height())
	if cs == 0 {
		return img
	}

	flashed := make([]bool, b.Height())
	for _, row := range f.Flash {
		if row >= 0 && row < b.Height() {
			flashed[row] = true
		}
	}

	for row := range b.Height() {
		lit := 0
		if flashed[row] {
			lit = 1
		}
		for col := range b.Width() {
			x0, y0 := col*cs, row*cs
			fillRect(img, image.Rect(x0, y0, x0+cs, y0+cs), r.edge[lit])

			inner := image.Rect(x0+outlineWidth, y0+outlineWidth, x0+cs-outlineWidth, y0+cs-outlineWidth)
			cell := b.At(row, col)
			if !cell.Valid() {
				cell = engine.CellEmpty
			}
			fillRect(img, inner, r.fill[lit][cell])
		}
	}
	return img
}

// WritePNG encodes the board as a PNG image.
func (r *Renderer) WritePNG(w io.Writer, s engine.Snapshot) error {
	if err := png.Encode(w, r.Image(s)); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// WriteGIF encodes the frames as a looping animation at fps frames per second.
func (r *Renderer) WriteGIF(w io.Writer, frames []Frame, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("render: no frames to encode")
	}
	delay := 100 / max(1, fps) // hundredths of a second
	anim := &gif.GIF{
		Image: make([]*image.Paletted, len(frames)),
		Delay: make([]int, len(frames)),
	}
	for i, f := range frames {
		anim.Image[i] = r.Frame(f)
		anim.Delay[i] = max(1, delay)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("render: encode gif: %w", err)
	}
	return nil
}

func fillRect(img *image.Paletted, rect image.Rectangle, idx uint8) {
	rect = rect.Intersect(img.Rect)
	if rect.Empty() {
		return
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		start := img.PixOffset(rect.Min.X, y)
		row := img.Pix[start : start+rect.Dx()]
		for i := range row {
			row[i] = idx
		}
	}
}

// lighten blends c toward white.
func lighten(c color.RGBA) color.RGBA {
	mix := func(v uint8) uint8 {
		return v + uint8(float64(255-v)*flashMix)
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
