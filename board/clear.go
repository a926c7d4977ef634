package board

import "github.com/plus3/blockfall/piece"

// RowFull reports whether every cell of row y is locked.
func (b *Board) RowFull(y int) bool {
	row := b.cells[y*Width : (y+1)*Width]
	for _, c := range row {
		if c == piece.ColorNone {
			return false
		}
	}
	return true
}

// FullRows returns the indices of all full rows, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for y := 0; y < Height; y++ {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearLines removes every full row at once and drops the rows above by the
// number of rows removed beneath them. It returns the number of rows removed.
//
// The grid is compacted in place in one backwards pass: offset is the
// distance, in cells, between a destination cell and its source.
func (b *Board) ClearLines() int {
	if len(b.FullRows()) == 0 {
		return 0
	}

	offset := 0
	for i := len(b.cells) - 1; i >= 0; i-- {
		if i%Width == Width-1 {
			// Entering a new destination row: skip every full source row.
			for src := i - offset; src >= 0 && b.RowFull(src/Width); src = i - offset {
				offset += Width
			}
		}

		if src := i - offset; src >= 0 {
			b.cells[i] = b.cells[src]
		} else {
			b.cells[i] = piece.ColorNone
		}
	}

	return offset / Width
}
