// Package term is a terminal frontend built on tcell. Each board cell is
// two columns wide so cells look roughly square.
package term

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/event"
	"github.com/plus3/blockfall/internal/palette"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/piece"
)

const (
	originX  = 1
	originY  = 1
	cellCols = 2

	// statusX is the first column right of the board's border.
	statusX = originX + board.Width*cellCols + 2
)

var (
	emptyStyle  = tcell.StyleDefault.Foreground(rgb(palette.Empty))
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault.Foreground(rgb(palette.Text))
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// CellColor returns the terminal background used for a piece color.
func CellColor(c piece.Color) tcell.Color {
	return rgb(palette.RGBA(c))
}

// Renderer draws a board and a status panel to a tcell screen. It is a
// loop.Observer and redraws at the end of every frame.
type Renderer struct {
	screen tcell.Screen
	board  *board.Board
}

var _ loop.Observer = (*Renderer)(nil)

func NewRenderer(screen tcell.Screen, b *board.Board) *Renderer {
	return &Renderer{screen: screen, board: b}
}

func (r *Renderer) Observe(event.Event, engine.Result) {}

func (r *Renderer) FrameDone(s loop.Summary) {
	r.Draw(s)
}

// Draw paints the full frame and shows it.
func (r *Renderer) Draw(s loop.Summary) {
	r.screen.Clear()
	r.drawBorder()

	for i, layer := range r.board.Layers() {
		for y := 0; y < layer.Height; y++ {
			for x := 0; x < layer.Width; x++ {
				c := layer.At(x, y)
				if i > 0 && c == piece.ColorNone {
					continue
				}
				r.drawCell(layer.Origin.X+x, layer.Origin.Y+y, c)
			}
		}
	}

	r.drawStatus(s)
	r.screen.Show()
}

func (r *Renderer) drawCell(x, y int, c piece.Color) {
	sx, sy := originX+x*cellCols, originY+y
	if c == piece.ColorNone {
		r.screen.SetContent(sx, sy, ' ', nil, emptyStyle)
		r.screen.SetContent(sx+1, sy, '.', nil, emptyStyle)
		return
	}

	st := tcell.StyleDefault.Background(CellColor(c))
	r.screen.SetContent(sx, sy, ' ', nil, st)
	r.screen.SetContent(sx+1, sy, ' ', nil, st)
}

func (r *Renderer) drawBorder() {
	right := originX + board.Width*cellCols
	bottom := originY + board.Height

	for x := originX; x < right; x++ {
		r.screen.SetContent(x, originY-1, tcell.RuneHLine, nil, borderStyle)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, borderStyle)
	}
	for y := originY; y < bottom; y++ {
		r.screen.SetContent(originX-1, y, tcell.RuneVLine, nil, borderStyle)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, borderStyle)
	}
	r.screen.SetContent(originX-1, originY-1, tcell.RuneULCorner, nil, borderStyle)
	r.screen.SetContent(right, originY-1, tcell.RuneURCorner, nil, borderStyle)
	r.screen.SetContent(originX-1, bottom, tcell.RuneLLCorner, nil, borderStyle)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, borderStyle)
}

func (r *Renderer) drawStatus(s loop.Summary) {
	lines := []string{
		fmt.Sprintf("lines  %d", s.Lines),
		fmt.Sprintf("pieces %d", s.Spawned),
		fmt.Sprintf("level  %d", s.Level),
		fmt.Sprintf("speed  %s", s.Gravity),
	}
	for i, line := range lines {
		r.drawText(statusX, originY+i, line, textStyle)
	}

	switch {
	case s.Over:
		r.drawText(statusX, originY+len(lines)+1, "GAME OVER", alertStyle)
		r.drawText(statusX, originY+len(lines)+2, "q to exit", textStyle)
	case s.Paused:
		r.drawText(statusX, originY+len(lines)+1, "PAUSED", alertStyle)
	}
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
