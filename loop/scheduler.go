package loop

import (
	"reflect"
	"time"
)

// SystemTiming is how long one system has taken across frames.
type SystemTiming struct {
	Name  string
	Runs  int64
	Total time.Duration
	Max   time.Duration
	Last  time.Duration
}

// Avg returns the mean run time, or zero before the first run.
func (t SystemTiming) Avg() time.Duration {
	if t.Runs == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Runs)
}

func (t *SystemTiming) record(d time.Duration) {
	t.Runs++
	t.Last = d
	t.Total += d
	t.Max = max(t.Max, d)
}

// Scheduler runs systems in order once per frame.
type Scheduler struct {
	systems []System
	timings []SystemTiming
}

// NewScheduler returns a scheduler with no systems.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register appends a system. It runs after every system registered before it.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, SystemTiming{Name: systemName(system)})
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Once executes every system against frame and then flushes the frame's
// commands into the engine.
func (s *Scheduler) Once(frame *Frame) []Outcome {
	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.timings[i].record(time.Since(start))
	}

	return frame.Commands.Flush(frame.Engine)
}

// Timings returns a copy of the per-system timings in registration order.
func (s *Scheduler) Timings() []SystemTiming {
	return append([]SystemTiming(nil), s.timings...)
}
