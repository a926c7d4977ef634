package loop

import (
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/event"
)

// Outcome is one event applied to the engine and what it did.
type Outcome struct {
	Event  event.Event
	Result engine.Result
}

// Commands buffers the game events systems produce during a frame. They are
// applied to the engine together once every system has run, so systems
// observe a stable engine for the whole frame.
type Commands struct {
	events  []event.Event
	defers  []func()
	applied []Outcome
}

func newCommands() *Commands {
	return &Commands{}
}

// Push queues ev for the engine.
func (c *Commands) Push(ev event.Event) {
	c.events = append(c.events, ev)
}

// Defer queues fn to run after the frame's events are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the events queued so far.
func (c *Commands) Pending() []event.Event {
	return c.events
}

// Flush applies the queued events in order, stopping at game over, then runs
// the deferred functions and resets the buffer. The returned slice is reused
// by the next Flush.
func (c *Commands) Flush(e *engine.Engine) []Outcome {
	c.applied = c.applied[:0]

	for _, ev := range c.events {
		res := e.Handle(ev)
		c.applied = append(c.applied, Outcome{Event: ev, Result: res})
		if res.Status == engine.GameOver {
			break
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.events = c.events[:0]
	c.defers = c.defers[:0]
	return c.applied
}

// Discard drops the queued events without applying them, then runs the
// deferred functions and resets the buffer.
func (c *Commands) Discard() {
	for _, fn := range c.defers {
		fn()
	}
	c.events = c.events[:0]
	c.defers = c.defers[:0]
}
