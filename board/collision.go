package board

import "github.com/plus3/blockfall/piece"

// Overlaps reports whether shape placed at anchor covers any locked cell.
// It does not test the outer boundary; callers bound the candidate anchor
// first, and an out-of-bounds cell panics.
func (b *Board) Overlaps(anchor piece.Point, shape piece.Shape) bool {
	for p := range shape.Cells() {
		if b.cells[index(anchor.Add(p))] != piece.ColorNone {
			return true
		}
	}
	return false
}

// Fits reports whether the bounding box of shape at anchor lies inside the grid.
func Fits(anchor piece.Point, shape piece.Shape) bool {
	w, h := shape.Size()
	return anchor.X >= 0 && anchor.Y >= 0 && anchor.X+w <= Width && anchor.Y+h <= Height
}
