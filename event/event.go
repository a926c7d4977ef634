// Package event defines the discrete inputs the engine and game loop consume.
package event

// Event is one discrete input to the game.
type Event int

const (
	Unknown Event = iota
	MoveLeft
	MoveRight
	RotateClockwise
	SoftDrop
	HardDrop
	GravityTick
	Pause
	Quit
)

// Bindable lists the events a key can produce, in polling order.
var Bindable = [...]Event{
	Pause,
	Quit,
	MoveLeft,
	MoveRight,
	RotateClockwise,
	SoftDrop,
	HardDrop,
}

// Trigger describes how a held key turns into events.
type Trigger int

const (
	// Edge fires once on the key-down transition.
	Edge Trigger = iota
	// Repeat fires on key-down and then at most once per repeat interval
	// while the key stays held.
	Repeat
	// Level fires on every frame the key is held.
	Level
)

// Trigger returns the triggering mode used for e.
func (e Event) Trigger() Trigger {
	switch e {
	case MoveLeft, MoveRight, SoftDrop:
		return Repeat
	case Quit:
		return Level
	default:
		return Edge
	}
}

func (e Event) String() string {
	switch e {
	case MoveLeft:
		return "move_left"
	case MoveRight:
		return "move_right"
	case RotateClockwise:
		return "rotate"
	case SoftDrop:
		return "soft_drop"
	case HardDrop:
		return "hard_drop"
	case GravityTick:
		return "gravity_tick"
	case Pause:
		return "pause"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Parse returns the event named s, as produced by String.
func Parse(s string) (Event, bool) {
	for _, e := range Bindable {
		if e.String() == s {
			return e, true
		}
	}
	return Unknown, false
}
