package board

import "github.com/plus3/blockfall/piece"

// Fixed layout of the board on a renderer surface, in surface units.
const (
	CellSize = 40
	Spacing  = 2
	Margin   = 10
)

// CellOrigin returns the top-left surface position of grid cell p.
func CellOrigin(p piece.Point) (int, int) {
	return Margin + p.X*(CellSize+Spacing), Margin + p.Y*(CellSize+Spacing)
}

// WindowSize returns the surface size needed to show the whole board.
func WindowSize() (int, int) {
	w := 2*Margin + Width*CellSize + (Width-1)*Spacing
	h := 2*Margin + Height*CellSize + (Height-1)*Spacing
	return w, h
}
