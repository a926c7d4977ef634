package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/internal/palette"
	"github.com/plus3/blockfall/piece"
)

// EngineInspector returns a window showing the active piece, the running
// totals and how full each row is.
func EngineInspector(e *engine.Engine) func() {
	return func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(320, 340), imgui.CondOnce)

		if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		cfg := e.Config()
		imgui.Text(fmt.Sprintf("Spawned: %d  Lines: %d  Over: %t", e.Spawned(), e.Lines(), e.Over()))
		imgui.Text(fmt.Sprintf("Random colors: %t  Strict rotation: %t", cfg.RandomColors, cfg.StrictRotation))
		imgui.Separator()

		b := e.Board()
		if a, ok := b.ActivePiece(); ok {
			next, shift := a.Shape.Rotate()
			imgui.PushStyleColorVec4(imgui.ColText, colorVec(a.Color))
			imgui.Text(fmt.Sprintf("Active: %s (%s)", a.Shape, a.Color))
			imgui.PopStyleColor()
			imgui.Text(fmt.Sprintf("Anchor: %s", a.Anchor))
			imgui.Text(fmt.Sprintf("Rotates to: %s shifted by %s", next, shift))
		} else {
			imgui.Text("No active piece")
		}

		if imgui.TreeNodeStr("Rows") {
			w, h := b.Dimensions()
			for y := 0; y < h; y++ {
				filled := 0
				for x := 0; x < w; x++ {
					if b.Cell(piece.Point{X: x, Y: y}) != piece.ColorNone {
						filled++
					}
				}
				if filled > 0 {
					imgui.BulletText(fmt.Sprintf("row %2d: %d/%d", y, filled, w))
				}
			}
			imgui.TreePop()
		}

		imgui.End()
	}
}

func colorVec(c piece.Color) imgui.Vec4 {
	rgba := palette.RGBA(c)
	return imgui.NewVec4(
		float32(rgba.R)/255.0,
		float32(rgba.G)/255.0,
		float32(rgba.B)/255.0,
		1.0,
	)
}
