package input

import (
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/event"
)

// DefaultRepeat is the repeat interval for held movement keys.
const DefaultRepeat = 100 * time.Millisecond

type trigger struct {
	held  bool
	fired time.Time
}

// Controller converts the keys held each frame into events.
//
// Edge events fire once when one of their keys goes down. Repeat events fire
// on key-down and again each time the repeat interval has elapsed while a
// key stays held; releasing every bound key resets the throttle. Level
// events fire on every frame a key is held.
type Controller struct {
	repeat   time.Duration
	bindings *intmap.Map[event.Event, KeySet]
	triggers *intmap.Map[event.Event, trigger]
}

// NewController builds a controller for keymap. A non-positive repeat uses
// DefaultRepeat.
func NewController(keymap Keymap, repeat time.Duration) *Controller {
	if repeat <= 0 {
		repeat = DefaultRepeat
	}

	c := &Controller{
		repeat:   repeat,
		bindings: intmap.New[event.Event, KeySet](len(event.Bindable)),
		triggers: intmap.New[event.Event, trigger](len(event.Bindable)),
	}
	for _, ev := range event.Bindable {
		if keys := keymap.Keys(ev); keys != 0 {
			c.bindings.Put(ev, keys)
		}
	}
	return c
}

// Repeat returns the repeat interval.
func (c *Controller) Repeat() time.Duration {
	return c.repeat
}

// Bound returns the keys bound to ev.
func (c *Controller) Bound(ev event.Event) KeySet {
	keys, _ := c.bindings.Get(ev)
	return keys
}

// Reset forgets all held state, as if every key had been released.
func (c *Controller) Reset() {
	c.triggers.Clear()
}

// Poll returns the events produced by the keys held at now, in
// event.Bindable order.
func (c *Controller) Poll(now time.Time, keys KeySet) []event.Event {
	var out []event.Event

	for _, ev := range event.Bindable {
		bound, ok := c.bindings.Get(ev)
		if !ok {
			continue
		}

		down := keys.Any(bound)
		st, _ := c.triggers.Get(ev)

		fire := false
		if down {
			switch ev.Trigger() {
			case event.Edge:
				fire = !st.held
			case event.Repeat:
				fire = !st.held || now.Sub(st.fired) >= c.repeat
			case event.Level:
				fire = true
			}
		}

		if fire {
			st.fired = now
			out = append(out, ev)
		}
		if st.held != down || fire {
			st.held = down
			c.triggers.Put(ev, st)
		}
	}

	return out
}
