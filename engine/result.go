package engine

// Status is the outcome of one engine operation.
type Status int

const (
	// Rejected means nothing changed.
	Rejected Status = iota
	// Moved means the active piece changed position or rotation.
	Moved
	// Locked means the active piece grounded, full rows were cleared and
	// the next piece spawned.
	Locked
	// GameOver means a freshly spawned piece overlapped the board. It is
	// terminal: every later operation reports it again.
	GameOver
)

func (s Status) String() string {
	switch s {
	case Rejected:
		return "rejected"
	case Moved:
		return "moved"
	case Locked:
		return "locked"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Result describes what an operation did.
type Result struct {
	Status Status
	// Cleared is the number of rows removed by a lock.
	Cleared int
	// Dropped is the number of rows the piece descended.
	Dropped int
}
