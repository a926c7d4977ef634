package cli

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/plus3/blockfall/engine"
)

// GameResult is the outcome of one soak game.
type GameResult struct {
	Session uuid.UUID
	Seed    uint64
	Frames  int64
	Spawned int
	Lines   int
	Level   int
	Gravity time.Duration
	Over    bool
}

// Report is the soak summary rendered by Generate.
type Report struct {
	// Configuration
	Games         int
	FrameLimit    int
	FrameInterval time.Duration
	BaseSeed      uint64
	Engine        engine.Config

	// Results
	Results       []GameResult
	TotalTime     time.Duration
	FrameTime     Stats
	Frames        IntStats
	Spawned       IntStats
	Lines         IntStats
	Finished      int
	MaxLevel      int
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// IntStats summarizes a per-game counter.
type IntStats struct {
	Min   int64
	Max   int64
	Avg   float64
	Total int64
}

func (s *IntStats) add(n int, v int64) {
	if n == 0 || v < s.Min {
		s.Min = v
	}
	if n == 0 || v > s.Max {
		s.Max = v
	}
	s.Total += v
	s.Avg = float64(s.Total) / float64(n+1)
}

// Finalize computes the per-game and frame time aggregates.
func (r *Report) Finalize() {
	r.FrameTime.Finalize()

	r.Frames, r.Spawned, r.Lines = IntStats{}, IntStats{}, IntStats{}
	r.Finished, r.MaxLevel = 0, 0
	for i, res := range r.Results {
		r.Frames.add(i, res.Frames)
		r.Spawned.add(i, int64(res.Spawned))
		r.Lines.add(i, int64(res.Lines))
		if res.Over {
			r.Finished++
		}
		r.MaxLevel = max(r.MaxLevel, res.Level)
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Soak Report

## Configuration
- **Games:** {{.Games}}
- **Frame Limit:** {{.FrameLimit}} at {{.FrameInterval}}
- **Base Seed:** {{.BaseSeed}}
- **Random Colors:** {{.Engine.RandomColors}}
- **Strict Rotation:** {{.Engine.StrictRotation}}

## Results
- **Total Time:** {{.TotalTime}}
- **Games Over:** {{.Finished}} of {{len .Results}}
- **Highest Level:** {{.MaxLevel}}
- **Frames:** avg {{printf "%.1f" .Frames.Avg}}, min {{.Frames.Min}}, max {{.Frames.Max}}, total {{.Frames.Total}}
- **Pieces:** avg {{printf "%.1f" .Spawned.Avg}}, min {{.Spawned.Min}}, max {{.Spawned.Max}}, total {{.Spawned.Total}}
- **Lines:** avg {{printf "%.1f" .Lines.Avg}}, min {{.Lines.Min}}, max {{.Lines.Max}}, total {{.Lines.Total}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Games
| # | Session | Seed | Frames | Pieces | Lines | Level | Gravity | Over |
|---|---------|------|--------|--------|-------|-------|---------|------|
{{- range $i, $g := .Results}}
| {{$i}} | {{$g.Session}} | {{$g.Seed}} | {{$g.Frames}} | {{$g.Spawned}} | {{$g.Lines}} | {{$g.Level}} | {{$g.Gravity}} | {{$g.Over}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- Total GC Pause: {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns int64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
