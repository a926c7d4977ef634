package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// StatsWindow shows frame timing and per-system durations for a game.
type StatsWindow struct {
	game          *loop.Game
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	last          time.Time
}

func NewStatsWindow(game *loop.Game, historyFrames int) *StatsWindow {
	return &StatsWindow{
		game:          game,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		last:          time.Now(),
	}
}

func (w *StatsWindow) Render() {
	now := time.Now()
	w.frameHistory[w.frameIndex] = float32(now.Sub(w.last).Seconds() * 1000)
	w.last = now
	w.frameIndex = (w.frameIndex + 1) % w.historyFrames

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 300), imgui.CondOnce)

	if !imgui.BeginV("Loop Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := w.game.Summary()
	st := w.game.State()
	imgui.Text(fmt.Sprintf("Session: %s", s.Session))
	imgui.Text(fmt.Sprintf("Frames: %d", st.Frames))
	imgui.Text(fmt.Sprintf("Gravity: %s (level %d, next at %d)", s.Gravity, s.Level, st.Difficulty.Next()))
	imgui.Text(fmt.Sprintf("Gravity ticks: %d", w.game.GravityTicks()))

	var avg float32
	for _, ft := range w.frameHistory {
		avg += ft
	}
	avg /= float32(w.historyFrames)
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &w.frameHistory[0], int32(len(w.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemTimings", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, st := range w.game.Timings() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(st.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", st.Runs))
				imgui.TableNextColumn()
				imgui.Text(st.Last.String())
				imgui.TableNextColumn()
				imgui.Text(st.Avg().String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
