// Package input turns per-frame key state into discrete game events.
//
// Frontends translate their native key codes into Key values and report the
// set of keys held this frame. A Controller applies edge and repeat
// triggering to produce the events the engine consumes.
package input

import (
	"fmt"
	"strings"
)

// Key is a device-independent key.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEscape
	KeyP
	KeyQ
	KeyA
	KeyD
	KeyS
	KeyW
	KeyX
	KeyZ

	keyCount
)

var keyNames = [keyCount]string{
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyUp:     "up",
	KeyDown:   "down",
	KeySpace:  "space",
	KeyEscape: "escape",
	KeyP:      "p",
	KeyQ:      "q",
	KeyA:      "a",
	KeyD:      "d",
	KeyS:      "s",
	KeyW:      "w",
	KeyX:      "x",
	KeyZ:      "z",
}

// Keys lists every key in declaration order.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

func (k Key) String() string {
	if k >= keyCount {
		return fmt.Sprintf("key(%d)", k)
	}
	return keyNames[k]
}

// ParseKey returns the key named s. Matching ignores case.
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range keyNames {
		if name == s {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", s)
}

// KeySet is the set of keys held during one frame.
type KeySet uint32

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// With returns s with k added.
func (s KeySet) With(k Key) KeySet {
	return s | 1<<k
}

// Without returns s with k removed.
func (s KeySet) Without(k Key) KeySet {
	return s &^ (1 << k)
}

// Has reports whether k is in s.
func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

// Any reports whether s and o share a key.
func (s KeySet) Any(o KeySet) bool {
	return s&o != 0
}

func (s KeySet) String() string {
	var names []string
	for k := Key(0); k < keyCount; k++ {
		if s.Has(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
