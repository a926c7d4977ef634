package board

import "github.com/plus3/blockfall/piece"

// Merge writes the active piece into the locked grid at its current anchor
// and removes it. Transparent overlay cells never overwrite the grid.
// It returns false when there is no active piece.
func (b *Board) Merge() bool {
	if !b.present {
		return false
	}

	w := b.active.Shape.Width()
	for i, c := range b.overlay.cells {
		if c == piece.ColorNone {
			continue
		}
		p := b.active.Anchor.Add(piece.Point{X: i % w, Y: i / w})
		b.cells[index(p)] = c
	}

	b.present = false
	return true
}
