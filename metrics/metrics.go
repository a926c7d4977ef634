// Package metrics exports game loop activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/event"
	"github.com/plus3/blockfall/loop"
)

const namespace = "blockfall"

// Recorder is a loop.Observer that updates Prometheus collectors. One
// Recorder may observe many games in turn.
type Recorder struct {
	events    *prometheus.CounterVec
	lines     prometheus.Counter
	locks     prometheus.Counter
	gameOvers prometheus.Counter
	level     prometheus.Gauge
	gravity   prometheus.Gauge
	frames    prometheus.Histogram
}

var _ loop.Observer = (*Recorder)(nil)

// NewRecorder registers the collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Events applied to the engine, by event and outcome.",
		}, []string{"event", "status"}),
		lines: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_cleared_total",
			Help:      "Rows removed by line clears.",
		}),
		locks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pieces_locked_total",
			Help:      "Pieces merged into the board.",
		}),
		gameOvers: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "game_overs_total",
			Help:      "Games ended by a blocked spawn.",
		}),
		level: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "level",
			Help:      "Difficulty level of the current game.",
		}),
		gravity: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gravity_period_seconds",
			Help:      "Current auto-drop period.",
		}),
		frames: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent stepping one frame.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
}

func (r *Recorder) Observe(ev event.Event, res engine.Result) {
	r.events.WithLabelValues(ev.String(), res.Status.String()).Inc()

	switch res.Status {
	case engine.Locked:
		r.locks.Inc()
		r.lines.Add(float64(res.Cleared))
	case engine.GameOver:
		// The piece that triggered the failed spawn still locked.
		r.locks.Inc()
		r.lines.Add(float64(res.Cleared))
		r.gameOvers.Inc()
	}
}

func (r *Recorder) FrameDone(s loop.Summary) {
	r.level.Set(float64(s.Level))
	r.gravity.Set(s.Gravity.Seconds())
	r.frames.Observe(s.Duration.Seconds())
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
