package input

import (
	"fmt"
	"sort"

	"github.com/plus3/blockfall/event"
)

// Keymap binds keys to the events they produce. Several keys may share an
// event; a key produces at most one event.
type Keymap map[Key]event.Event

// DefaultKeymap binds the arrow keys and WASD, with X and Z as extra rotate
// keys, space for hard drop, P to pause and Escape or Q to quit.
func DefaultKeymap() Keymap {
	return Keymap{
		KeyLeft:   event.MoveLeft,
		KeyA:      event.MoveLeft,
		KeyRight:  event.MoveRight,
		KeyD:      event.MoveRight,
		KeyUp:     event.RotateClockwise,
		KeyW:      event.RotateClockwise,
		KeyX:      event.RotateClockwise,
		KeyZ:      event.RotateClockwise,
		KeyDown:   event.SoftDrop,
		KeyS:      event.SoftDrop,
		KeySpace:  event.HardDrop,
		KeyP:      event.Pause,
		KeyEscape: event.Quit,
		KeyQ:      event.Quit,
	}
}

// Bind replaces every binding of ev with keys.
func (m Keymap) Bind(ev event.Event, keys ...Key) {
	for k, bound := range m {
		if bound == ev {
			delete(m, k)
		}
	}
	for _, k := range keys {
		m[k] = ev
	}
}

// Keys returns the set of keys bound to ev.
func (m Keymap) Keys(ev event.Event) KeySet {
	var s KeySet
	for k, bound := range m {
		if bound == ev {
			s = s.With(k)
		}
	}
	return s
}

// ParseBindings applies a table of event name to key names, as found in a
// config file, on top of m. A key may appear under only one event. m is
// left unchanged when the table is invalid.
func (m Keymap) ParseBindings(table map[string][]string) error {
	type binding struct {
		name string
		ev   event.Event
		keys []Key
	}

	bindings := make([]binding, 0, len(table))
	for name, keyNames := range table {
		ev, ok := event.Parse(name)
		if !ok {
			return fmt.Errorf("unknown event %q", name)
		}

		keys := make([]Key, 0, len(keyNames))
		for _, kn := range keyNames {
			k, err := ParseKey(kn)
			if err != nil {
				return fmt.Errorf("binding %s: %w", name, err)
			}
			keys = append(keys, k)
		}
		bindings = append(bindings, binding{name: name, ev: ev, keys: keys})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].ev < bindings[j].ev })

	owner := make(map[Key]string)
	for _, b := range bindings {
		for _, k := range b.keys {
			if prev, ok := owner[k]; ok && prev != b.name {
				return fmt.Errorf("binding %s: key %s is already bound to %s", b.name, k, prev)
			}
			owner[k] = b.name
		}
	}

	for _, b := range bindings {
		m.Bind(b.ev, b.keys...)
	}
	return nil
}
