// Package render is the windowed frontend. It implements ebiten.Game,
// steps the game loop from Update and draws the board's layers as filled
// rectangles.
package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/internal/palette"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/piece"
)

// Overlay is an immediate-mode UI drawn above the board.
type Overlay interface {
	Begin()
	End()
	Render(screen *ebiten.Image)
	Resize(width, height int)
	WantsKeyboard() bool
}

var keys = [...]struct {
	key    input.Key
	ebiten ebiten.Key
}{
	{input.KeyLeft, ebiten.KeyArrowLeft},
	{input.KeyRight, ebiten.KeyArrowRight},
	{input.KeyUp, ebiten.KeyArrowUp},
	{input.KeyDown, ebiten.KeyArrowDown},
	{input.KeySpace, ebiten.KeySpace},
	{input.KeyEscape, ebiten.KeyEscape},
	{input.KeyP, ebiten.KeyP},
	{input.KeyQ, ebiten.KeyQ},
	{input.KeyA, ebiten.KeyA},
	{input.KeyD, ebiten.KeyD},
	{input.KeyS, ebiten.KeyS},
	{input.KeyW, ebiten.KeyW},
	{input.KeyX, ebiten.KeyX},
	{input.KeyZ, ebiten.KeyZ},
}

// PressedKeys reports the game keys ebiten sees held this tick.
func PressedKeys() input.KeySet {
	var s input.KeySet
	for _, k := range keys {
		if ebiten.IsKeyPressed(k.ebiten) {
			s = s.With(k.key)
		}
	}
	return s
}

// Rect is one filled cell in window coordinates.
type Rect struct {
	X, Y, W, H float32
	Color      piece.Color
}

// Rects returns the rectangles for every grid cell followed by the active
// piece's occupied cells, in painter's order.
func Rects(b *board.Board) []Rect {
	rects := make([]Rect, 0, board.Width*board.Height+4)
	for i, layer := range b.Layers() {
		for y := 0; y < layer.Height; y++ {
			for x := 0; x < layer.Width; x++ {
				c := layer.At(x, y)
				if i > 0 && c == piece.ColorNone {
					continue
				}
				px, py := board.CellOrigin(layer.Origin.Add(piece.Point{X: x, Y: y}))
				rects = append(rects, Rect{
					X: float32(px), Y: float32(py),
					W: board.CellSize, H: board.CellSize,
					Color: c,
				})
			}
		}
	}
	return rects
}

// Game adapts a loop.Game to ebiten.
type Game struct {
	loop    *loop.Game
	overlay Overlay
	keys    func() input.KeySet
}

var _ ebiten.Game = (*Game)(nil)

// New wraps g. overlay may be nil.
func New(g *loop.Game, overlay Overlay) *Game {
	return &Game{loop: g, overlay: overlay, keys: PressedKeys}
}

func (g *Game) pollKeys() input.KeySet {
	if g.overlay != nil && g.overlay.WantsKeyboard() {
		return 0
	}
	return g.keys()
}

func (g *Game) Update() error {
	if g.overlay != nil {
		g.overlay.Begin()
		defer g.overlay.End()
	}

	keys := g.pollKeys()
	if g.loop.State().Over {
		// The final board stays up until the player quits.
		g.loop.Idle(keys)
		if keys.Has(input.KeyQ) || keys.Has(input.KeyEscape) {
			return ebiten.Termination
		}
		return nil
	}

	if !g.loop.Step(keys) && g.loop.State().Quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(palette.Background)

	for _, r := range Rects(g.loop.Engine().Board()) {
		vector.DrawFilledRect(screen, r.X, r.Y, r.W, r.H, palette.RGBA(r.Color), false)
	}

	s := g.loop.Summary()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("lines %d  level %d", s.Lines, s.Level), board.Margin, board.Margin)
	switch {
	case s.Over:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press Q", board.Margin, board.Margin+16)
	case s.Paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", board.Margin, board.Margin+16)
	}

	if g.overlay != nil {
		g.overlay.Render(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := board.WindowSize()
	if g.overlay != nil {
		g.overlay.Resize(w, h)
	}
	return w, h
}

// Run opens the window and blocks until the player quits. When an
// overlay is used it has already created the window.
func Run(g *Game, title string) error {
	if g.overlay == nil {
		w, h := board.WindowSize()
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle(title)
	}
	return ebiten.RunGame(g)
}
