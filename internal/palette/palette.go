// Package palette maps piece colors to concrete RGB values shared by the
// frontends.
package palette

import (
	"image/color"

	"github.com/plus3/blockfall/piece"
)

var (
	// Background fills the window behind the grid.
	Background = color.RGBA{R: 0x12, G: 0x12, B: 0x18, A: 0xff}
	// Empty is drawn for unoccupied grid cells.
	Empty = color.RGBA{R: 0x2a, G: 0x2a, B: 0x33, A: 0xff}
	// Text is used for status lines.
	Text = color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}
)

var cells = [...]color.RGBA{
	piece.ColorNone:   {R: 0x2a, G: 0x2a, B: 0x33, A: 0xff},
	piece.ColorCyan:   {R: 0x00, G: 0xd8, B: 0xe0, A: 0xff},
	piece.ColorYellow: {R: 0xf5, G: 0xd0, B: 0x20, A: 0xff},
	piece.ColorPurple: {R: 0xa0, G: 0x40, B: 0xe0, A: 0xff},
	piece.ColorGreen:  {R: 0x40, G: 0xd0, B: 0x50, A: 0xff},
	piece.ColorRed:    {R: 0xe8, G: 0x30, B: 0x30, A: 0xff},
	piece.ColorBlue:   {R: 0x30, G: 0x60, B: 0xf0, A: 0xff},
	piece.ColorOrange: {R: 0xf5, G: 0x90, B: 0x20, A: 0xff},
}

// RGBA returns the display color of c. ColorNone maps to Empty.
func RGBA(c piece.Color) color.RGBA {
	if int(c) >= len(cells) {
		panic("palette: no color for " + c.String())
	}
	return cells[c]
}
