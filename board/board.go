// Package board holds the fixed playfield grid and the active piece overlay.
//
// The grid is row-major and addresses cells with piece.Point. Addressing a
// cell outside the grid is a programming error and panics.
package board

import (
	"fmt"

	"github.com/plus3/blockfall/piece"
)

const (
	Width  = 10
	Height = 16
)

// Active is the currently falling piece.
type Active struct {
	Anchor piece.Point
	Color  piece.Color
	Shape  piece.Shape
}

// overlay caches the per-cell colors of the active piece's bounding box.
// It depends only on shape and color, never on position.
type overlay struct {
	shape    piece.Shape
	color    piece.Color
	cells    []piece.Color
	valid    bool
	rebuilds int
}

func (o *overlay) update(shape piece.Shape, color piece.Color) {
	if o.valid && o.shape == shape && o.color == color {
		return
	}

	bitmap := shape.Bitmap()
	if cap(o.cells) < len(bitmap) {
		o.cells = make([]piece.Color, len(bitmap))
	}
	o.cells = o.cells[:len(bitmap)]
	for i, filled := range bitmap {
		if filled {
			o.cells[i] = color
		} else {
			o.cells[i] = piece.ColorNone
		}
	}

	o.shape = shape
	o.color = color
	o.valid = true
	o.rebuilds++
}

// Board is the grid of locked cells plus at most one active piece.
type Board struct {
	cells   [Width * Height]piece.Color
	active  Active
	present bool
	overlay overlay
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// Reset clears every cell and removes the active piece.
func (b *Board) Reset() {
	b.cells = [Width * Height]piece.Color{}
	b.present = false
}

// Dimensions returns the fixed grid size.
func (b *Board) Dimensions() (int, int) {
	return Width, Height
}

// InBounds reports whether p addresses a grid cell.
func InBounds(p piece.Point) bool {
	return p.X >= 0 && p.X < Width && p.Y >= 0 && p.Y < Height
}

func index(p piece.Point) int {
	if !InBounds(p) {
		panic(fmt.Sprintf("board: cell %s out of bounds (%dx%d)", p, Width, Height))
	}
	return p.Y*Width + p.X
}

// SetCell writes one locked cell. ColorNone empties it.
func (b *Board) SetCell(p piece.Point, c piece.Color) {
	b.cells[index(p)] = c
}

// Cell returns the locked color at p.
func (b *Board) Cell(p piece.Point) piece.Color {
	return b.cells[index(p)]
}

// Snapshot returns a copy of the locked grid.
func (b *Board) Snapshot() [Width * Height]piece.Color {
	return b.cells
}

// SetActivePiece installs or replaces the active piece. The overlay is only
// rebuilt when the shape or color differs from the previous one.
func (b *Board) SetActivePiece(anchor piece.Point, color piece.Color, shape piece.Shape) {
	b.overlay.update(shape, color)
	b.active = Active{Anchor: anchor, Color: color, Shape: shape}
	b.present = true
}

// MoveActivePiece changes the anchor of the active piece. It is a no-op
// without an active piece.
func (b *Board) MoveActivePiece(anchor piece.Point) {
	if b.present {
		b.active.Anchor = anchor
	}
}

// ClearActivePiece removes the active piece without locking it.
func (b *Board) ClearActivePiece() {
	b.present = false
}

// HasActivePiece reports whether a piece is falling.
func (b *Board) HasActivePiece() bool {
	return b.present
}

// ActivePiece returns the falling piece, if any.
func (b *Board) ActivePiece() (Active, bool) {
	if !b.present {
		return Active{}, false
	}
	return b.active, true
}
