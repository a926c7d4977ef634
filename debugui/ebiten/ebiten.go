// Package ebiten provides the Dear ImGui backend for the windowed frontend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend and satisfies
// render.Overlay.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	input *debugui.InputState
}

// NewImguiBackend creates the backend together with the game window. input
// is the capture state refreshed by a debugui.System.
func NewImguiBackend(title string, width, height int, input *debugui.InputState) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{EbitenBackend: backend, input: input}
}

func (b *ImguiBackend) Begin() {
	b.EbitenBackend.BeginFrame()
}

func (b *ImguiBackend) End() {
	b.EbitenBackend.EndFrame()
}

func (b *ImguiBackend) Render(screen *ebiten.Image) {
	b.EbitenBackend.Draw(screen)
}

func (b *ImguiBackend) Resize(width, height int) {
	b.EbitenBackend.Layout(width, height)
}

func (b *ImguiBackend) WantsKeyboard() bool {
	return b.input != nil && b.input.WantCaptureKeyboard
}
