package board

import "github.com/plus3/blockfall/piece"

// Layer is a rectangular block of cells placed at Origin on the grid.
// ColorNone cells are transparent.
type Layer struct {
	Origin piece.Point
	Width  int
	Height int
	Cells  []piece.Color
}

// At returns the color of the layer-local cell (x, y).
func (l Layer) At(x, y int) piece.Color {
	return l.Cells[y*l.Width+x]
}

// Layers returns the board in bottom-to-top painter's order: the locked grid
// followed by the active piece overlay when one exists. The cell slices are
// views into the board and are only valid until the next mutation.
func (b *Board) Layers() []Layer {
	layers := make([]Layer, 0, 2)
	layers = append(layers, Layer{
		Width:  Width,
		Height: Height,
		Cells:  b.cells[:],
	})

	if b.present {
		w, h := b.active.Shape.Size()
		layers = append(layers, Layer{
			Origin: b.active.Anchor,
			Width:  w,
			Height: h,
			Cells:  b.overlay.cells,
		})
	}

	return layers
}
