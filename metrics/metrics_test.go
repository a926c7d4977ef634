package metrics_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/event"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/metrics"
)

func TestRecorderCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.Observe(event.MoveLeft, engine.Result{Status: engine.Moved})
	r.Observe(event.MoveLeft, engine.Result{Status: engine.Rejected})
	r.Observe(event.HardDrop, engine.Result{Status: engine.Locked, Cleared: 2, Dropped: 12})
	r.Observe(event.GravityTick, engine.Result{Status: engine.GameOver, Cleared: 1})

	expected := `
# HELP blockfall_lines_cleared_total Rows removed by line clears.
# TYPE blockfall_lines_cleared_total counter
blockfall_lines_cleared_total 3
# HELP blockfall_pieces_locked_total Pieces merged into the board.
# TYPE blockfall_pieces_locked_total counter
blockfall_pieces_locked_total 2
# HELP blockfall_game_overs_total Games ended by a blocked spawn.
# TYPE blockfall_game_overs_total counter
blockfall_game_overs_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"blockfall_lines_cleared_total", "blockfall_pieces_locked_total", "blockfall_game_overs_total"))

	n, err := testutil.GatherAndCount(reg, "blockfall_events_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRecorderFrameGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	r.FrameDone(loop.Summary{Level: 3, Gravity: 250 * time.Millisecond, Duration: time.Millisecond})
	r.FrameDone(loop.Summary{Level: 4, Gravity: 200 * time.Millisecond, Duration: 2 * time.Millisecond})

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		m := mf.GetMetric()[0]
		switch {
		case m.GetGauge() != nil:
			values[mf.GetName()] = m.GetGauge().GetValue()
		case m.GetHistogram() != nil:
			values[mf.GetName()] = float64(m.GetHistogram().GetSampleCount())
		}
	}
	assert.Equal(t, 4.0, values["blockfall_level"])
	assert.InDelta(t, 0.2, values["blockfall_gravity_period_seconds"], 1e-9)
	assert.Equal(t, 2.0, values["blockfall_frame_duration_seconds"])
}

func TestRecorderObservesGame(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)

	clock := loop.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	e := engine.NewSeeded(engine.DefaultConfig(), 11)
	g := loop.New(e, loop.DefaultConfig(), loop.WithClock(clock), loop.WithObserver(r))

	for i := 0; i < 200 && g.Step(input.KeySet(0)); i++ {
		if i%2 == 0 {
			g.Step(input.NewKeySet(input.KeySpace))
		}
		clock.Advance(10 * time.Millisecond)
	}

	require.True(t, e.Over())
	assert.Equal(t, 1.0, gatherValue(t, reg, "blockfall_game_overs_total"))
	assert.Equal(t, float64(e.Spawned()), gatherValue(t, reg, "blockfall_pieces_locked_total"))
}

func gatherValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.NewRecorder(reg)
	r.Observe(event.RotateClockwise, engine.Result{Status: engine.Moved})

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `blockfall_events_total{event="rotate",status="moved"} 1`)
}
