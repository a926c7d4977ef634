package board_test

import (
	"testing"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRow(b *board.Board, y int, c piece.Color) {
	for x := 0; x < board.Width; x++ {
		b.SetCell(piece.Point{X: x, Y: y}, c)
	}
}

// partialRow fills row y with a pattern that always leaves holes.
func partialRow(b *board.Board, y int) {
	for x := 0; x < board.Width; x++ {
		if (x+y)%3 != 0 {
			b.SetCell(piece.Point{X: x, Y: y}, piece.Colors[y%len(piece.Colors)])
		}
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := board.New()

	w, h := b.Dimensions()
	assert.Equal(t, 10, w)
	assert.Equal(t, 16, h)
	assert.False(t, b.HasActivePiece())

	for _, c := range b.Snapshot() {
		assert.Equal(t, piece.ColorNone, c)
	}
}

func TestSetCell(t *testing.T) {
	b := board.New()
	p := piece.Point{X: 3, Y: 7}

	b.SetCell(p, piece.ColorRed)
	assert.Equal(t, piece.ColorRed, b.Cell(p))

	b.SetCell(p, piece.ColorNone)
	assert.Equal(t, piece.ColorNone, b.Cell(p))
}

func TestSetCellOutOfBoundsPanics(t *testing.T) {
	b := board.New()

	for _, p := range []piece.Point{{X: -1, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 16}} {
		assert.Panics(t, func() { b.SetCell(p, piece.ColorRed) }, p.String())
		assert.Panics(t, func() { b.Cell(p) }, p.String())
	}
}

func TestReset(t *testing.T) {
	b := board.New()
	fillRow(b, 15, piece.ColorBlue)
	b.SetActivePiece(piece.Point{X: 4}, piece.ColorYellow, piece.Cube)

	b.Reset()

	assert.False(t, b.HasActivePiece())
	assert.Equal(t, [board.Width * board.Height]piece.Color{}, b.Snapshot())
}

func TestActivePiece(t *testing.T) {
	b := board.New()

	_, ok := b.ActivePiece()
	assert.False(t, ok)

	b.SetActivePiece(piece.Point{X: 2, Y: 3}, piece.ColorPurple, piece.T0)
	active, ok := b.ActivePiece()
	require.True(t, ok)
	assert.Equal(t, board.Active{Anchor: piece.Point{X: 2, Y: 3}, Color: piece.ColorPurple, Shape: piece.T0}, active)

	b.MoveActivePiece(piece.Point{X: 3, Y: 4})
	active, _ = b.ActivePiece()
	assert.Equal(t, piece.Point{X: 3, Y: 4}, active.Anchor)

	b.ClearActivePiece()
	assert.False(t, b.HasActivePiece())
}

func TestLayers(t *testing.T) {
	b := board.New()
	b.SetCell(piece.Point{X: 0, Y: 15}, piece.ColorGreen)

	layers := b.Layers()
	require.Len(t, layers, 1)
	assert.Equal(t, piece.Point{}, layers[0].Origin)
	assert.Equal(t, board.Width, layers[0].Width)
	assert.Equal(t, board.Height, layers[0].Height)
	assert.Equal(t, piece.ColorGreen, layers[0].At(0, 15))

	b.SetActivePiece(piece.Point{X: 4, Y: 1}, piece.ColorOrange, piece.L0)
	layers = b.Layers()
	require.Len(t, layers, 2)

	top := layers[1]
	assert.Equal(t, piece.Point{X: 4, Y: 1}, top.Origin)
	assert.Equal(t, 3, top.Width)
	assert.Equal(t, 2, top.Height)
	assert.Equal(t, []piece.Color{
		piece.ColorNone, piece.ColorNone, piece.ColorOrange,
		piece.ColorOrange, piece.ColorOrange, piece.ColorOrange,
	}, top.Cells)
}

func TestOverlaps(t *testing.T) {
	b := board.New()
	b.SetCell(piece.Point{X: 5, Y: 10}, piece.ColorRed)

	// T0 occupies (1,0) (0,1) (1,1) (2,1) locally.
	assert.True(t, b.Overlaps(piece.Point{X: 4, Y: 10}, piece.T0))
	assert.True(t, b.Overlaps(piece.Point{X: 3, Y: 9}, piece.T0))
	// The hole at local (0,0) sits on the locked cell.
	assert.False(t, b.Overlaps(piece.Point{X: 5, Y: 10}, piece.T0))
	assert.False(t, b.Overlaps(piece.Point{X: 0, Y: 0}, piece.T0))
}

func TestFits(t *testing.T) {
	assert.True(t, board.Fits(piece.Point{X: 6, Y: 15}, piece.LineHorizontal))
	assert.False(t, board.Fits(piece.Point{X: 7, Y: 15}, piece.LineHorizontal))
	assert.False(t, board.Fits(piece.Point{X: -1, Y: 0}, piece.Cube))
	assert.True(t, board.Fits(piece.Point{X: 9, Y: 12}, piece.LineVertical))
	assert.False(t, board.Fits(piece.Point{X: 9, Y: 13}, piece.LineVertical))
}

func TestMergeSkipsTransparentCells(t *testing.T) {
	b := board.New()
	// The hole of T0 at local (0,0) must keep the locked cell beneath it.
	b.SetCell(piece.Point{X: 2, Y: 14}, piece.ColorBlue)
	b.SetActivePiece(piece.Point{X: 2, Y: 14}, piece.ColorPurple, piece.T0)

	require.True(t, b.Merge())
	assert.False(t, b.HasActivePiece())

	assert.Equal(t, piece.ColorBlue, b.Cell(piece.Point{X: 2, Y: 14}))
	assert.Equal(t, piece.ColorPurple, b.Cell(piece.Point{X: 3, Y: 14}))
	assert.Equal(t, piece.ColorNone, b.Cell(piece.Point{X: 4, Y: 14}))
	for x := 2; x <= 4; x++ {
		assert.Equal(t, piece.ColorPurple, b.Cell(piece.Point{X: x, Y: 15}))
	}

	assert.False(t, b.Merge(), "nothing left to merge")
}

func TestClearLinesBottomTwoRows(t *testing.T) {
	b := board.New()
	for y := 0; y < 14; y++ {
		partialRow(b, y)
	}
	fillRow(b, 14, piece.ColorRed)
	fillRow(b, 15, piece.ColorBlue)

	before := b.Snapshot()
	require.Equal(t, []int{14, 15}, b.FullRows())

	cleared := b.ClearLines()
	assert.Equal(t, 2, cleared)

	after := b.Snapshot()
	for x := 0; x < board.Width; x++ {
		assert.Equal(t, piece.ColorNone, after[x], "row 0 must be empty")
		assert.Equal(t, piece.ColorNone, after[board.Width+x], "row 1 must be empty")
	}
	for y := 2; y < board.Height; y++ {
		assert.Equal(t,
			before[(y-2)*board.Width:(y-1)*board.Width],
			after[y*board.Width:(y+1)*board.Width],
			"row %d must hold former row %d", y, y-2)
	}
	assert.Empty(t, b.FullRows())
}

func TestClearLinesInterleaved(t *testing.T) {
	b := board.New()
	// Rows 13 and 15 are full, 12 and 14 are marked partial rows.
	b.SetCell(piece.Point{X: 0, Y: 12}, piece.ColorGreen)
	fillRow(b, 13, piece.ColorRed)
	b.SetCell(piece.Point{X: 1, Y: 14}, piece.ColorCyan)
	fillRow(b, 15, piece.ColorRed)

	assert.Equal(t, 2, b.ClearLines())

	assert.Equal(t, piece.ColorCyan, b.Cell(piece.Point{X: 1, Y: 15}), "row 14 drops by one")
	assert.Equal(t, piece.ColorGreen, b.Cell(piece.Point{X: 0, Y: 14}), "row 12 drops by two")
	assert.Equal(t, piece.ColorNone, b.Cell(piece.Point{X: 0, Y: 12}))
	assert.Equal(t, piece.ColorNone, b.Cell(piece.Point{X: 0, Y: 13}))
}

func TestClearLinesWholeBoard(t *testing.T) {
	b := board.New()
	for y := 0; y < board.Height; y++ {
		fillRow(b, y, piece.ColorYellow)
	}

	assert.Equal(t, board.Height, b.ClearLines())
	assert.Equal(t, [board.Width * board.Height]piece.Color{}, b.Snapshot())
}

func TestClearLinesWithoutFullRowsIsIdentity(t *testing.T) {
	b := board.New()
	for y := 0; y < board.Height; y++ {
		partialRow(b, y)
	}
	before := b.Snapshot()

	assert.Zero(t, b.ClearLines())
	assert.Equal(t, before, b.Snapshot())
}

func TestLayout(t *testing.T) {
	x, y := board.CellOrigin(piece.Point{})
	assert.Equal(t, board.Margin, x)
	assert.Equal(t, board.Margin, y)

	x, y = board.CellOrigin(piece.Point{X: 1, Y: 2})
	assert.Equal(t, 10+42, x)
	assert.Equal(t, 10+84, y)

	w, h := board.WindowSize()
	assert.Equal(t, 438, w)
	assert.Equal(t, 690, h)
}

func BenchmarkClearLines(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		bd := board.New()
		for y := 0; y < board.Height; y++ {
			if y%2 == 0 {
				fillRow(bd, y, piece.ColorRed)
			} else {
				partialRow(bd, y)
			}
		}
		b.StartTimer()

		bd.ClearLines()
	}
}
