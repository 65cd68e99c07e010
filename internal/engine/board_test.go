package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/lineclear/internal/engine"
)

func mustBoard(t *testing.T, rows ...string) *engine.Board {
	t.Helper()
	b, err := engine.ParseBoard(rows)
	require.NoError(t, err)
	return b
}

func mustPiece(t *testing.T, shape engine.Shape, orientation int) engine.Piece {
	t.Helper()
	p, err := engine.NewPiece(shape, orientation)
	require.NoError(t, err)
	return p
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := engine.NewBoard(5, 4)
	assert.Equal(t, 5, b.Width())
	assert.Equal(t, 4, b.Height())
	assert.Equal(t, 0, b.FilledCount())

	for r := range 4 {
		for c := range 5 {
			empty, err := b.IsEmpty(r, c)
			require.NoError(t, err)
			assert.True(t, empty, "(%d,%d)", r, c)
		}
	}
}

func TestIsEmptyOutOfBounds(t *testing.T) {
	b := engine.NewBoard(5, 5)

	testCases := []struct {
		row, col int
	}{
		{-1, 0},
		{0, -1},
		{5, 0},
		{0, 5},
		{5, 5},
	}
	for _, tc := range testCases {
		_, err := b.IsEmpty(tc.row, tc.col)
		assert.ErrorIs(t, err, engine.ErrOutOfBounds, "IsEmpty(%d, %d)", tc.row, tc.col)
	}

	_, err := b.IsRowFull(5)
	assert.ErrorIs(t, err, engine.ErrOutOfBounds)
	assert.ErrorIs(t, b.Set(0, 9, engine.CellI), engine.ErrOutOfBounds)
}

func TestCanPlace(t *testing.T) {
	b := mustBoard(t,
		".....",
		".....",
		".....",
		"..Z..",
		"ZZZ.Z",
	)
	o := mustPiece(t, engine.ShapeO, 0)
	i := mustPiece(t, engine.ShapeI, 0)

	testCases := []struct {
		name   string
		piece  engine.Piece
		anchor engine.Pos
		want   bool
	}{
		{"open area", o, engine.Pos{Row: 0, Col: 0}, true},
		{"resting on terrain", o, engine.Pos{Row: 2, Col: 0}, true},
		{"overlaps filled cell", o, engine.Pos{Row: 2, Col: 1}, false},
		{"off right edge", o, engine.Pos{Row: 0, Col: 4}, false},
		{"off left edge", o, engine.Pos{Row: 0, Col: -1}, false},
		{"off top", o, engine.Pos{Row: -1, Col: 0}, false},
		{"off bottom", o, engine.Pos{Row: 4, Col: 3}, false},
		{"I fits row 0", i, engine.Pos{Row: 0, Col: 1}, true},
		{"I too wide", i, engine.Pos{Row: 0, Col: 2}, false},
		{"I blocked by Z", i, engine.Pos{Row: 3, Col: 0}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.CanPlace(tc.piece, tc.anchor))
		})
	}
}

func TestPlaceWritesColor(t *testing.T) {
	b := engine.NewBoard(5, 5)
	tp := mustPiece(t, engine.ShapeT, 0)

	require.NoError(t, b.Place(tp, engine.Pos{Row: 3, Col: 1}))
	assert.Equal(t, ".....\n.....\n.....\n..T..\n.TTT.", b.String())
	assert.Equal(t, 4, b.FilledCount())
}

func TestPlaceInvalidLeavesBoardUntouched(t *testing.T) {
	b := mustBoard(t,
		".....",
		".....",
		".....",
		".....",
		"I....",
	)
	before := b.Snapshot()
	o := mustPiece(t, engine.ShapeO, 0)

	err := b.Place(o, engine.Pos{Row: 3, Col: 0})
	assert.ErrorIs(t, err, engine.ErrInvalidPlacement)

	err = b.Place(o, engine.Pos{Row: 0, Col: 4})
	assert.ErrorIs(t, err, engine.ErrInvalidPlacement)

	assert.True(t, before.Equal(b.Snapshot()))
}

func TestIsRowFullAndFullRows(t *testing.T) {
	b := mustBoard(t,
		".....",
		"IIIII",
		"OO.OO",
		"TTTTT",
		"SSSS.",
	)

	want := []bool{false, true, false, true, false}
	for r, full := range want {
		got, err := b.IsRowFull(r)
		require.NoError(t, err)
		assert.Equal(t, full, got, "row %d", r)
	}
	assert.Equal(t, []int{1, 3}, b.FullRows())
}

func TestFullRowsNeverIncludesGaps(t *testing.T) {
	b := mustBoard(t,
		"IIII.",
		".IIII",
		"II.II",
		"IIIII",
	)
	assert.Equal(t, []int{3}, b.FullRows())
}

// Rows {2,4} of a 5x5 board are full; after the clear the original rows
// 0, 1, 3 sit at the bottom in their original order and rows 0, 1 are empty.
func TestClearRowsSimultaneous(t *testing.T) {
	b := mustBoard(t,
		"I....",
		".O...",
		"TTTTT",
		"...S.",
		"ZZZZZ",
	)

	require.NoError(t, b.ClearRows([]int{2, 4}))

	want := mustBoard(t,
		".....",
		".....",
		"I....",
		".O...",
		"...S.",
	)
	assert.Equal(t, want.String(), b.String())
	assert.Equal(t, 5, b.Width())
	assert.Equal(t, 5, b.Height())
}

func TestClearRowsOrderIndependent(t *testing.T) {
	rows := []string{
		"J....",
		"LLLLL",
		"..T..",
		"OOOOO",
		"IIIII",
	}
	a := mustBoard(t, rows...)
	b := mustBoard(t, rows...)

	require.NoError(t, a.ClearRows([]int{1, 3, 4}))
	require.NoError(t, b.ClearRows([]int{4, 1, 3}))

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, ".....\n.....\n.....\nJ....\n..T..", a.String())
}

func TestClearRowsAdjacent(t *testing.T) {
	b := mustBoard(t,
		"..Z..",
		"IIIII",
		"IIIII",
		".O.O.",
	)
	require.NoError(t, b.ClearRows(b.FullRows()))
	assert.Equal(t, ".....\n.....\n..Z..\n.O.O.", b.String())
}

func TestClearRowsRejectsBadInput(t *testing.T) {
	b := mustBoard(t,
		"...",
		"III",
	)
	before := b.Snapshot()

	assert.ErrorIs(t, b.ClearRows([]int{1, 1}), engine.ErrDuplicateRow)
	assert.ErrorIs(t, b.ClearRows([]int{2}), engine.ErrOutOfBounds)
	assert.ErrorIs(t, b.ClearRows([]int{-1}), engine.ErrOutOfBounds)
	assert.True(t, before.Equal(b.Snapshot()), "failed clear must not mutate")

	require.NoError(t, b.ClearRows(nil))
	assert.True(t, before.Equal(b.Snapshot()))
}

func TestDimensionsNeverChange(t *testing.T) {
	b := engine.NewBoard(6, 7)
	ip := mustPiece(t, engine.ShapeI, 1)

	for col := range 6 {
		row, ok := b.DropRow(ip, col)
		require.True(t, ok)
		require.NoError(t, b.Place(ip, engine.Pos{Row: row, Col: col}))
		require.NoError(t, b.ClearRows(b.FullRows()))

		assert.Equal(t, 6, b.Width())
		assert.Equal(t, 7, b.Height())
		assert.Len(t, b.Snapshot().Rows(), 7)
	}
	// Six vertical I pieces fill rows 3..6 completely and are cleared together.
	assert.Equal(t, 0, b.FilledCount())
}

func TestDropRow(t *testing.T) {
	b := mustBoard(t,
		".....",
		".....",
		".....",
		"..L..",
		"LLL.L",
	)
	o := mustPiece(t, engine.ShapeO, 0)

	row, ok := b.DropRow(o, 0)
	require.True(t, ok)
	assert.Equal(t, 2, row)

	row, ok = b.DropRow(o, 3)
	require.True(t, ok)
	assert.Equal(t, 2, row, "O is caught by the floor cell under its right column")

	_, ok = b.DropRow(o, 4)
	assert.False(t, ok, "O does not fit in the last column")

	full := mustBoard(t,
		"I....",
		".....",
	)
	_, ok = full.DropRow(o, 0)
	assert.False(t, ok, "blocked spawn")
}

func TestSnapshotIdempotentAndIsolated(t *testing.T) {
	b := mustBoard(t,
		"..",
		"S.",
	)
	s1 := b.Snapshot()
	s2 := b.Snapshot()
	assert.True(t, s1.Equal(s2))
	assert.Equal(t, s1.String(), s2.String())

	require.NoError(t, b.Set(0, 0, engine.CellJ))
	assert.Equal(t, engine.CellEmpty, s1.At(0, 0), "snapshot must not see later mutations")
	assert.False(t, s1.Equal(b.Snapshot()))
}

func TestSnapshotOverlayAndClearedView(t *testing.T) {
	b := mustBoard(t,
		"....",
		"....",
		"I..I",
	)
	o := mustPiece(t, engine.ShapeO, 0)
	pl := engine.Placement{Piece: o, Anchor: engine.Pos{Row: 1, Col: 1}}

	display := b.Snapshot().Overlay(pl)
	assert.Equal(t, "....\n.OO.\nIOOI", display.String())
	assert.Equal(t, "....\n....\nI..I", b.String(), "overlay must not merge into the board")

	cleared := display.WithRowsCleared([]int{2})
	assert.Equal(t, "....\n.OO.\n....", cleared.String())
	assert.Equal(t, []string{"....", ".OO.", "...."}, cleared.Lines())
}

func TestParseBoardErrors(t *testing.T) {
	_, err := engine.ParseBoard(nil)
	assert.Error(t, err)

	_, err = engine.ParseBoard([]string{"...", ".."})
	assert.Error(t, err)

	_, err = engine.ParseBoard([]string{"..X"})
	assert.Error(t, err)
}
