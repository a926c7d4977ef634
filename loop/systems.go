package loop

import (
	"github.com/plus3/blockfall/event"
	"github.com/plus3/blockfall/input"
)

// InputSystem polls the controller. Pause and quit are handled here; every
// other event is queued for the engine unless the game is paused.
type InputSystem struct {
	Controller *input.Controller
}

func (s *InputSystem) Execute(f *Frame) {
	for _, ev := range s.Controller.Poll(f.Now, f.Keys) {
		switch ev {
		case event.Pause:
			f.State.Paused = !f.State.Paused
			if !f.State.Paused {
				// Resume with a full gravity period ahead.
				f.State.LastGravity = f.Now
			}
			paused := f.State.Paused
			f.Commands.Defer(func() {
				f.Log.Debug("pause toggled", "paused", paused)
			})
		case event.Quit:
			f.State.Quit = true
		default:
			if !f.State.Paused && !f.State.Quit {
				f.Commands.Push(ev)
			}
		}
	}
}

// GravitySystem queues a gravity tick whenever the current period has
// elapsed since the previous one.
type GravitySystem struct {
	Ticks int64
}

func (s *GravitySystem) Execute(f *Frame) {
	if f.State.Paused || f.State.Quit {
		return
	}
	if f.State.LastGravity.IsZero() {
		f.State.LastGravity = f.Now
		return
	}

	if f.Now.Sub(f.State.LastGravity) >= f.State.Difficulty.Period {
		f.State.LastGravity = f.Now
		f.Commands.Push(event.GravityTick)
		s.Ticks++
	}
}

// DifficultySystem compares the spawn count against the next milestone once
// per frame.
type DifficultySystem struct{}

func (s *DifficultySystem) Execute(f *Frame) {
	d := &f.State.Difficulty
	if !d.Update(f.Engine.Spawned()) {
		return
	}

	level, period := d.Level, d.Period
	f.Commands.Defer(func() {
		f.Log.Info("speed up", "level", level, "gravity", period)
	})
}
