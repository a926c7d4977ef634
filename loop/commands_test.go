package loop

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/event"
	"github.com/plus3/blockfall/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boxIn fills every free cell except column 0 so the active piece can
// neither move nor fall, and the next spawn overlaps.
func boxIn(t *testing.T, e *engine.Engine) {
	t.Helper()
	b := e.Board()
	a, ok := b.ActivePiece()
	require.True(t, ok)

	occupied := map[piece.Point]bool{}
	for c := range a.Shape.Cells() {
		occupied[a.Anchor.Add(c)] = true
	}
	for y := 0; y < board.Height; y++ {
		for x := 1; x < board.Width; x++ {
			if p := (piece.Point{X: x, Y: y}); !occupied[p] {
				b.SetCell(p, piece.ColorRed)
			}
		}
	}
}

func TestFlushAppliesInOrder(t *testing.T) {
	e := engine.NewSeeded(engine.DefaultConfig(), 5)
	e.Start()
	start, _ := e.Board().ActivePiece()

	c := newCommands()
	var order []string
	c.Push(event.MoveRight)
	c.Defer(func() { order = append(order, "deferred") })
	c.Push(event.MoveLeft)
	c.Push(event.SoftDrop)

	out := c.Flush(e)
	require.Len(t, out, 3)
	assert.Equal(t, event.MoveRight, out[0].Event)
	assert.Equal(t, engine.Moved, out[0].Result.Status)
	assert.Equal(t, event.SoftDrop, out[2].Event)
	assert.Equal(t, []string{"deferred"}, order)

	a, _ := e.Board().ActivePiece()
	assert.Equal(t, start.Anchor.Add(piece.Point{Y: 1}), a.Anchor)

	assert.Empty(t, c.Pending())
	assert.Empty(t, c.Flush(e))
	assert.Len(t, order, 1)
}

func TestDiscardRunsDefersOnly(t *testing.T) {
	e := engine.NewSeeded(engine.DefaultConfig(), 5)
	e.Start()
	start, _ := e.Board().ActivePiece()

	c := newCommands()
	ran := 0
	c.Push(event.MoveRight)
	c.Defer(func() { ran++ })
	c.Discard()

	assert.Equal(t, 1, ran)
	assert.Empty(t, c.Pending())
	a, _ := e.Board().ActivePiece()
	assert.Equal(t, start.Anchor, a.Anchor)

	assert.Empty(t, c.Flush(e))
	assert.Equal(t, 1, ran)
}

func TestFlushStopsAtGameOver(t *testing.T) {
	e := engine.NewSeeded(engine.DefaultConfig(), 5)
	e.Start()
	boxIn(t, e)

	c := newCommands()
	ran := false
	c.Push(event.SoftDrop)
	c.Push(event.MoveLeft)
	c.Push(event.GravityTick)
	c.Defer(func() { ran = true })

	out := c.Flush(e)
	require.Len(t, out, 1)
	assert.Equal(t, engine.GameOver, out[0].Result.Status)
	assert.True(t, e.Over())
	assert.True(t, ran)
	assert.Empty(t, c.Pending())
}

type orderSystem struct {
	name string
	log  *[]string
	push event.Event
}

func (s *orderSystem) Execute(f *Frame) {
	*s.log = append(*s.log, s.name)
	if s.push != event.Unknown {
		f.Commands.Push(s.push)
	}
}

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	e := engine.NewSeeded(engine.DefaultConfig(), 5)
	e.Start()

	var calls []string
	s := NewScheduler()
	s.Register(&orderSystem{name: "a", log: &calls})
	s.Register(&orderSystem{name: "b", log: &calls, push: event.RotateClockwise})
	s.Register(&orderSystem{name: "c", log: &calls})

	frame := &Frame{Engine: e, State: &State{}, Commands: newCommands()}
	out := s.Once(frame)
	s.Once(frame)

	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, calls)
	require.Len(t, out, 1)
	assert.Equal(t, event.RotateClockwise, out[0].Event)

	timings := s.Timings()
	require.Len(t, timings, 3)
	for _, st := range timings {
		assert.Equal(t, "orderSystem", st.Name)
		assert.Equal(t, int64(2), st.Runs)
		assert.LessOrEqual(t, st.Last, st.Max)
	}
}

func TestConfigFloorAbovePeriod(t *testing.T) {
	cfg := Config{GravityPeriod: 200 * time.Millisecond, MinGravityPeriod: 500 * time.Millisecond}.withDefaults()
	assert.Equal(t, 200*time.Millisecond, cfg.MinGravityPeriod)

	cfg = Config{GravityPeriod: 50 * time.Millisecond}.withDefaults()
	assert.Equal(t, 50*time.Millisecond, cfg.MinGravityPeriod)

	cfg = Config{}.withDefaults()
	assert.Equal(t, DefaultConfig().MinGravityPeriod, cfg.MinGravityPeriod)
}
