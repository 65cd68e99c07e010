package render_test

import (
	"bytes"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/lineclear/internal/core"
	"github.com/vovakirdan/lineclear/internal/engine"
	"github.com/vovakirdan/lineclear/internal/render"
	"github.com/vovakirdan/lineclear/internal/scenario"
)

// clearingResult drops a vertical I into the right-hand well of a 5x5
// board, clearing the two bottom rows.
func clearingResult(t *testing.T) *scenario.Result {
	t.Helper()
	terrain, err := engine.ParseBoard([]string{
		".....",
		".....",
		".....",
		"JJJJ.",
		"JJJJ.",
	})
	require.NoError(t, err)
	piece, err := engine.NewPiece(engine.ShapeI, 1)
	require.NoError(t, err)

	res, err := scenario.Resolve(&scenario.Scenario{
		Profile: scenario.DefaultProfile(scenario.DifficultyEasy),
		Initial: terrain.Snapshot(),
		First:   engine.Placement{Piece: piece, Anchor: engine.Pos{Row: 1, Col: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, [][]int{{3, 4}}, res.ClearedRows())
	return res
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestCellSize(t *testing.T) {
	r := render.NewRenderer(render.DefaultSize)
	assert.Equal(t, 40, r.CellSize(10, 10))
	assert.Equal(t, 80, r.CellSize(5, 5))
	assert.Equal(t, 40, r.CellSize(10, 5), "limited by the wider side")
	assert.Equal(t, 0, r.CellSize(0, 5))
	assert.Equal(t, render.DefaultSize, render.NewRenderer(0).Size())
}

func TestImageGeometry(t *testing.T) {
	board, err := engine.ParseBoard([]string{
		"I.........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		".........L",
	})
	require.NoError(t, err)

	img := render.NewRenderer(render.DefaultSize).Image(board.Snapshot())
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())

	outline := color.RGBA{R: 50, G: 50, B: 50, A: 255}
	assert.Equal(t, outline, toRGBA(img.At(0, 0)), "outline at the cell corner")
	assert.Equal(t, outline, toRGBA(img.At(1, 20)), "outline is 2px wide")
	assert.Equal(t, engine.CellI.RGB(), toRGBA(img.At(2, 2)), "fill starts inside the outline")
	assert.Equal(t, engine.CellI.RGB(), toRGBA(img.At(20, 20)))
	assert.Equal(t, engine.CellEmpty.RGB(), toRGBA(img.At(60, 20)))
	assert.Equal(t, engine.CellL.RGB(), toRGBA(img.At(380, 380)))
	assert.Equal(t, outline, toRGBA(img.At(399, 399)))
}

func TestImageLeftoverIsBlack(t *testing.T) {
	img := render.NewRenderer(400).Image(engine.NewBoard(7, 7).Snapshot())
	// 7 cells of 57px cover 399px.
	assert.Equal(t, color.RGBA{A: 255}, toRGBA(img.At(399, 10)))
	assert.Equal(t, engine.CellEmpty.RGB(), toRGBA(img.At(10, 10)))
}

func TestFlashBrightensRows(t *testing.T) {
	res := clearingResult(t)
	r := render.NewRenderer(400)

	plain := r.Frame(render.Frame{Board: res.Steps[0].Locked})
	lit := r.Frame(render.Frame{Board: res.Steps[0].Locked, Flash: []int{3, 4}})

	// Blue J at row 4 brightens; an untouched empty cell at row 0 does not.
	assert.NotEqual(t, toRGBA(plain.At(40, 360)), toRGBA(lit.At(40, 360)))
	assert.Equal(t, toRGBA(plain.At(40, 40)), toRGBA(lit.At(40, 40)))
}

func TestWritePNG(t *testing.T) {
	res := clearingResult(t)
	var buf bytes.Buffer
	require.NoError(t, render.NewRenderer(400).WritePNG(&buf, res.Display()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	// Display shows the falling I in column 4, rows 1 to 4.
	assert.Equal(t, engine.CellI.RGB(), toRGBA(img.At(4*80+40, 1*80+40)))
	assert.Equal(t, engine.CellJ.RGB(), toRGBA(img.At(40, 4*80+40)))
}

func TestWriteGIF(t *testing.T) {
	res := clearingResult(t)
	frames := render.Timeline(res, render.DefaultTiming())

	var buf bytes.Buffer
	require.NoError(t, render.NewRenderer(100).WriteGIF(&buf, frames, 10))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	assert.Len(t, anim.Image, len(frames))
	assert.Equal(t, 10, anim.Delay[0])
	assert.Equal(t, 100, anim.Config.Width)

	assert.Error(t, render.NewRenderer(100).WriteGIF(&buf, nil, 10))
}

func TestTimelineWithClear(t *testing.T) {
	res := clearingResult(t)
	timing := render.DefaultTiming()
	frames := render.Timeline(res, timing)

	require.Len(t, frames, timing.Hold+timing.Flash+timing.Clear+timing.Hold)
	assert.True(t, frames[0].Board.Equal(res.Display()))
	assert.Equal(t, render.PhaseInitial, frames[0].Phase)
	assert.True(t, frames[len(frames)-1].Board.Equal(res.Final))
	assert.Equal(t, render.PhaseFinal, frames[len(frames)-1].Phase)

	counts := map[render.Phase]int{}
	flashes := 0
	for _, f := range frames {
		counts[f.Phase]++
		if len(f.Flash) > 0 {
			flashes++
			assert.Equal(t, []int{3, 4}, f.Flash)
		}
	}
	assert.Equal(t, timing.Flash, counts[render.PhaseFlash])
	assert.Equal(t, timing.Flash/2, flashes, "flash alternates on and off")
	assert.Equal(t, timing.Clear/2, counts[render.PhaseClear])

	// The clear frame empties rows in place before gravity.
	for _, f := range frames {
		if f.Phase == render.PhaseClear {
			assert.Equal(t, ".....\n....I\n....I\n.....\n.....", f.Board.String())
			break
		}
	}
}

func TestTimelinePadsToMinimum(t *testing.T) {
	terrain, err := engine.ParseBoard([]string{".....", ".....", ".....", "J....", "JJ..."})
	require.NoError(t, err)
	o, err := engine.NewPiece(engine.ShapeO, 0)
	require.NoError(t, err)
	res, err := scenario.Resolve(&scenario.Scenario{
		Initial: terrain.Snapshot(),
		First:   engine.Placement{Piece: o, Anchor: engine.Pos{Row: 3, Col: 3}},
	})
	require.NoError(t, err)
	require.Zero(t, res.LinesCleared())

	frames := render.Timeline(res, render.Timing{Hold: 3, Flash: 4, Clear: 4, Fall: 1})
	assert.Len(t, frames, render.MinFrames)
	assert.True(t, frames[len(frames)-4].Board.Equal(res.Display()), "padding repeats the last frame before the final hold")
}

func TestTimelineDropsSecondPiece(t *testing.T) {
	terrain, err := engine.ParseBoard([]string{"..J..", "JJJJ.", "JJJJ.", "JJJJ.", "JJJJ."})
	require.NoError(t, err)
	vertical, err := engine.NewPiece(engine.ShapeI, 1)
	require.NoError(t, err)
	square, err := engine.NewPiece(engine.ShapeO, 0)
	require.NoError(t, err)

	res, err := scenario.Resolve(&scenario.Scenario{
		Profile: scenario.DefaultProfile(scenario.DifficultyHard),
		Initial: terrain.Snapshot(),
		First:   engine.Placement{Piece: vertical, Anchor: engine.Pos{Row: 1, Col: 4}},
		Next:    []scenario.Drop{{Piece: square, Column: 1}},
	})
	require.NoError(t, err)

	frames := render.Timeline(res, render.Timing{Hold: 1, Flash: 2, Clear: 2, Fall: 1})

	var drops []string
	for _, f := range frames {
		if f.Phase == render.PhaseDrop {
			drops = append(drops, f.Board.String())
		}
	}
	// The square lands at row 2, so it is shown at rows 0, 1 and 2.
	require.Len(t, drops, 3)
	assert.True(t, strings.HasPrefix(drops[0], ".OO..\n.OO.."))
	assert.Equal(t, res.Final.String(), drops[2])
}

func TestDrawBoard(t *testing.T) {
	res := clearingResult(t)
	cols, rows := render.BoardSize(5, 5)
	assert.Equal(t, 12, cols)
	assert.Equal(t, 7, rows)

	s := render.Screen(render.Frame{Board: res.Display()})
	assert.Equal(t, cols, s.Width())
	assert.Equal(t, rows, s.Height())

	assert.Equal(t, '┌', s.GetCell(0, 0).Rune)
	// Row 1 col 4 holds the falling I.
	cell := s.GetCell(1+2*4, 1+1)
	assert.Equal(t, '█', cell.Rune)
	assert.Equal(t, render.CellColor(engine.CellI), cell.Color)
	assert.Equal(t, core.ColorDim, s.GetCell(1, 1).Color)

	lit := render.Screen(render.Frame{Board: res.Steps[0].Locked, Flash: []int{3}})
	assert.Equal(t, core.ColorFlash, lit.GetCell(1, 1+3).Color)
	assert.Equal(t, render.CellColor(engine.CellJ), lit.GetCell(1, 1+4).Color)
}
