package loop

import (
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/event"
)

// Summary is the per-frame view handed to observers.
type Summary struct {
	Session  uuid.UUID
	Duration time.Duration
	Gravity  time.Duration
	Level    int
	Spawned  int
	Lines    int
	Paused   bool
	Over     bool
}

// Observer is notified of every event applied to the engine and of the end
// of every frame. Observers run on the loop goroutine and must not block.
type Observer interface {
	Observe(ev event.Event, res engine.Result)
	FrameDone(s Summary)
}
