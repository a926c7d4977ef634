package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/piece"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func background(t *testing.T, s tcell.SimulationScreen, x, y int) tcell.Color {
	t.Helper()
	_, _, style, _ := s.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func text(s tcell.SimulationScreen, x, y, n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i], _, _, _ = s.GetContent(x+i, y)
	}
	return string(runes)
}

func TestRendererDrawsBoard(t *testing.T) {
	screen := newScreen(t)
	b := board.New()
	b.SetCell(piece.Point{X: 0, Y: 15}, piece.ColorRed)
	b.SetActivePiece(piece.Point{X: 4, Y: 0}, piece.ColorYellow, piece.Cube)

	r := NewRenderer(screen, b)
	r.Draw(loop.Summary{Lines: 3, Spawned: 7, Level: 1, Gravity: 720 * time.Millisecond})

	assert.Equal(t, CellColor(piece.ColorRed), background(t, screen, originX, originY+15))
	assert.Equal(t, CellColor(piece.ColorRed), background(t, screen, originX+1, originY+15))
	assert.Equal(t, CellColor(piece.ColorYellow), background(t, screen, originX+4*cellCols, originY))
	assert.Equal(t, CellColor(piece.ColorYellow), background(t, screen, originX+5*cellCols+1, originY+1))

	ch, _, _, _ := screen.GetContent(originX+1, originY)
	assert.Equal(t, '.', ch, "empty cells are dotted")

	corner, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, tcell.RuneULCorner, corner)
	edge, _, _, _ := screen.GetContent(originX+board.Width*cellCols, originY+3)
	assert.Equal(t, tcell.RuneVLine, edge)

	assert.Equal(t, "lines  3", text(screen, statusX, originY, 8))
	assert.Equal(t, "pieces 7", text(screen, statusX, originY+1, 8))
	assert.Equal(t, "speed  720ms", text(screen, statusX, originY+3, 12))
}

func TestRendererBanners(t *testing.T) {
	screen := newScreen(t)
	r := NewRenderer(screen, board.New())

	r.FrameDone(loop.Summary{Paused: true})
	assert.Equal(t, "PAUSED", text(screen, statusX, originY+5, 6))

	r.FrameDone(loop.Summary{Over: true})
	assert.Equal(t, "GAME OVER", text(screen, statusX, originY+5, 9))
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want input.Key
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), input.KeyLeft},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), input.KeyDown},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.KeyEscape},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), input.KeyEscape},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), input.KeySpace},
		{tcell.NewEventKey(tcell.KeyRune, 'P', tcell.ModNone), input.KeyP},
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), input.KeyW},
	}
	for _, tt := range tests {
		got, ok := MapKey(tt.ev)
		require.True(t, ok, tt.want.String())
		assert.Equal(t, tt.want, got)
	}

	_, ok := MapKey(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone))
	assert.False(t, ok)
	_, ok = MapKey(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone))
	assert.False(t, ok)
}

func TestKeyReaderHoldWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewKeyReader(90 * time.Millisecond)
	r.now = func() time.Time { return now }

	assert.True(t, r.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)))
	assert.False(t, r.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone)))
	assert.False(t, r.HandleEvent(tcell.NewEventResize(10, 10)))
	assert.Equal(t, input.NewKeySet(input.KeyLeft), r.Keys())

	now = now.Add(50 * time.Millisecond)
	r.Press(input.KeyUp)
	assert.Equal(t, input.NewKeySet(input.KeyLeft, input.KeyUp), r.Keys())

	now = now.Add(40 * time.Millisecond)
	assert.Equal(t, input.NewKeySet(input.KeyUp), r.Keys())

	now = now.Add(time.Second)
	assert.Zero(t, r.Keys())
}

func TestKeyReaderRun(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	r := NewKeyReader(time.Minute)

	done := make(chan struct{})
	go func() {
		r.Run(screen)
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.Eventually(t, func() bool {
		return r.Keys().Has(input.KeyQ)
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, r.WaitFor(context.Background(), input.NewKeySet(input.KeyQ)))

	screen.Fini()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Fini")
	}
}

func TestWaitForHonorsContext(t *testing.T) {
	r := NewKeyReader(10 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := r.WaitFor(ctx, input.NewKeySet(input.KeyQ))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
