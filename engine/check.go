package engine

import (
	"errors"
	"fmt"

	"github.com/plus3/blockfall/board"
)

// ErrCorrupt is wrapped by every error returned from Check.
var ErrCorrupt = errors.New("engine: corrupt state")

// Check verifies the board invariants: no full row survives a lock, a
// running game has an active piece inside the grid, and with strict
// rotation that piece covers no locked cell.
func (e *Engine) Check() error {
	for y := 0; y < board.Height; y++ {
		if e.board.RowFull(y) {
			return fmt.Errorf("%w: row %d is full", ErrCorrupt, y)
		}
	}

	a, ok := e.board.ActivePiece()
	if !ok {
		if e.over || e.spawned == 0 {
			return nil
		}
		return fmt.Errorf("%w: no active piece while running", ErrCorrupt)
	}
	if !board.Fits(a.Anchor, a.Shape) {
		return fmt.Errorf("%w: %s at %s is outside the grid", ErrCorrupt, a.Shape, a.Anchor)
	}
	if e.cfg.StrictRotation && e.board.Overlaps(a.Anchor, a.Shape) {
		return fmt.Errorf("%w: %s at %s overlaps locked cells", ErrCorrupt, a.Shape, a.Anchor)
	}
	return nil
}
