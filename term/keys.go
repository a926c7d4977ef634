package term

import (
	"context"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/input"
)

// DefaultHold is how long a key counts as held after a terminal key
// event. Terminals report presses and autorepeats but never releases, so
// holding is approximated by recent presses. It stays below the movement
// repeat interval so one tap moves once.
const DefaultHold = 90 * time.Millisecond

// KeyReader turns tcell key events into a per-frame KeySet. Events arrive on
// the reader goroutine while Keys is called from the game loop.
type KeyReader struct {
	hold time.Duration
	now  func() time.Time

	mu      sync.Mutex
	pressed map[input.Key]time.Time
}

// NewKeyReader returns a reader. A non-positive hold uses DefaultHold.
func NewKeyReader(hold time.Duration) *KeyReader {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyReader{
		hold:    hold,
		now:     time.Now,
		pressed: make(map[input.Key]time.Time),
	}
}

// MapKey translates a tcell key event. Ctrl-C maps to Escape.
func MapKey(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.KeyEscape, true
	case tcell.KeyRune:
	default:
		return 0, false
	}

	switch unicode.ToLower(ev.Rune()) {
	case ' ':
		return input.KeySpace, true
	case 'p':
		return input.KeyP, true
	case 'q':
		return input.KeyQ, true
	case 'a':
		return input.KeyA, true
	case 'd':
		return input.KeyD, true
	case 's':
		return input.KeyS, true
	case 'w':
		return input.KeyW, true
	case 'x':
		return input.KeyX, true
	case 'z':
		return input.KeyZ, true
	}
	return 0, false
}

// Press records k as pressed now.
func (r *KeyReader) Press(k input.Key) {
	r.mu.Lock()
	r.pressed[k] = r.now()
	r.mu.Unlock()
}

// HandleEvent records a key event and reports whether it was a game key.
func (r *KeyReader) HandleEvent(ev tcell.Event) bool {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	k, ok := MapKey(kev)
	if ok {
		r.Press(k)
	}
	return ok
}

// Keys returns the keys pressed within the hold window.
func (r *KeyReader) Keys() input.KeySet {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	var s input.KeySet
	for k, at := range r.pressed {
		if now.Sub(at) < r.hold {
			s = s.With(k)
		} else {
			delete(r.pressed, k)
		}
	}
	return s
}

// Run reads events from screen until it is finalized. Resize events
// resync the screen.
func (r *KeyReader) Run(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		default:
			r.HandleEvent(ev)
		}
	}
}

// WaitFor blocks until one of keys is held or ctx is done.
func (r *KeyReader) WaitFor(ctx context.Context, keys input.KeySet) error {
	ticker := time.NewTicker(r.hold / 2)
	defer ticker.Stop()

	for {
		if r.Keys().Any(keys) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
