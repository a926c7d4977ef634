package loop

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/input"
)

// System is one stage of the per-frame update. Systems run in registration
// order and queue engine events through the frame's Commands rather than
// calling the engine directly.
type System interface {
	Execute(frame *Frame)
}

// Frame is the per-iteration context handed to every system.
type Frame struct {
	Now      time.Time
	Delta    time.Duration
	Keys     input.KeySet
	Engine   *engine.Engine
	State    *State
	Commands *Commands
	Log      *log.Logger
}

// State is the loop state that persists between frames.
type State struct {
	Paused      bool
	Quit        bool
	Over        bool
	Frames      int64
	LastGravity time.Time
	Difficulty  Difficulty
}

// Running reports whether the loop should keep iterating.
func (s State) Running() bool {
	return !s.Quit && !s.Over
}
