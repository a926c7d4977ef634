// Package loop drives an engine one frame at a time: it polls input, runs
// the gravity timer and the difficulty ramp, and applies the resulting
// events in order.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/input"
)

// DefaultFrameInterval is the polling interval used by Run.
const DefaultFrameInterval = 16 * time.Millisecond

// Config holds the timing and key settings of a game.
type Config struct {
	Keymap           input.Keymap
	Repeat           time.Duration
	GravityPeriod    time.Duration
	MinGravityPeriod time.Duration
	SpeedUpEvery     int
	SpeedUpFactor    float64
}

// DefaultConfig returns the stock timing with the default keymap.
func DefaultConfig() Config {
	return Config{
		Keymap:           input.DefaultKeymap(),
		Repeat:           input.DefaultRepeat,
		GravityPeriod:    800 * time.Millisecond,
		MinGravityPeriod: 100 * time.Millisecond,
		SpeedUpEvery:     10,
		SpeedUpFactor:    0.9,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Keymap == nil {
		c.Keymap = d.Keymap
	}
	if c.Repeat <= 0 {
		c.Repeat = d.Repeat
	}
	if c.GravityPeriod <= 0 {
		c.GravityPeriod = d.GravityPeriod
	}
	if c.MinGravityPeriod <= 0 {
		c.MinGravityPeriod = d.MinGravityPeriod
	}
	c.MinGravityPeriod = min(c.MinGravityPeriod, c.GravityPeriod)
	if c.SpeedUpFactor <= 0 || c.SpeedUpFactor >= 1 {
		c.SpeedUpFactor = d.SpeedUpFactor
	}
	return c
}

// KeySource reports the keys held right now.
type KeySource interface {
	Keys() input.KeySet
}

// KeySourceFunc adapts a function to KeySource.
type KeySourceFunc func() input.KeySet

func (f KeySourceFunc) Keys() input.KeySet {
	return f()
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(g *Game) { g.observers = append(g.observers, o) }
}

// WithSystem registers an extra system after the built-in ones.
func WithSystem(s System) Option {
	return func(g *Game) { g.extra = append(g.extra, s) }
}

// Game is a single-threaded game loop around one engine.
type Game struct {
	cfg       Config
	engine    *engine.Engine
	clock     Clock
	log       *log.Logger
	observers []Observer
	extra     []System

	scheduler *Scheduler
	gravity   *GravitySystem
	input     *InputSystem
	commands  *Commands

	state   State
	session uuid.UUID
	started bool
	last    time.Time
}

// New builds a game loop for e. The game starts on the first Step or on an
// explicit Start.
func New(e *engine.Engine, cfg Config, opts ...Option) *Game {
	g := &Game{
		cfg:      cfg.withDefaults(),
		engine:   e,
		clock:    SystemClock{},
		commands: newCommands(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = log.New(io.Discard)
	}

	g.input = &InputSystem{Controller: input.NewController(g.cfg.Keymap, g.cfg.Repeat)}
	g.gravity = &GravitySystem{}

	g.scheduler = NewScheduler()
	g.scheduler.Register(g.input)
	g.scheduler.Register(g.gravity)
	g.scheduler.Register(&DifficultySystem{})
	for _, s := range g.extra {
		g.scheduler.Register(s)
	}

	return g
}

// Start resets the engine and loop state and spawns the first piece.
func (g *Game) Start() {
	now := g.clock.Now()

	g.session = uuid.New()
	g.started = true
	g.last = now
	g.input.Controller.Reset()
	g.gravity.Ticks = 0
	g.state = State{
		LastGravity: now,
		Difficulty: NewDifficulty(
			g.cfg.GravityPeriod,
			g.cfg.MinGravityPeriod,
			g.cfg.SpeedUpFactor,
			g.cfg.SpeedUpEvery,
		),
	}

	res := g.engine.Start()
	g.log.Info("game started", "session", g.session, "gravity", g.cfg.GravityPeriod)
	if res.Status == engine.GameOver {
		g.over()
	}
}

// Step runs one frame with keys held and reports whether the game is
// still running.
func (g *Game) Step(keys input.KeySet) bool {
	if !g.started {
		g.Start()
	}
	if !g.state.Running() {
		return false
	}

	began := time.Now()
	now := g.clock.Now()

	frame := &Frame{
		Now:      now,
		Delta:    now.Sub(g.last),
		Keys:     keys,
		Engine:   g.engine,
		State:    &g.state,
		Commands: g.commands,
		Log:      g.log,
	}
	g.last = now

	for _, o := range g.scheduler.Once(frame) {
		g.apply(o)
	}
	if g.state.Quit {
		g.log.Info("quit", "session", g.session, "spawned", g.engine.Spawned(), "lines", g.engine.Lines())
	}
	g.state.Frames++

	summary := g.Summary()
	summary.Duration = time.Since(began)
	for _, obs := range g.observers {
		obs.FrameDone(summary)
	}

	return g.state.Running()
}

func (g *Game) apply(o Outcome) {
	for _, obs := range g.observers {
		obs.Observe(o.Event, o.Result)
	}

	switch o.Result.Status {
	case engine.Locked:
		g.log.Debug("piece locked",
			"event", o.Event,
			"cleared", o.Result.Cleared,
			"lines", g.engine.Lines(),
			"spawned", g.engine.Spawned(),
		)
	case engine.GameOver:
		g.over()
	}
}

func (g *Game) over() {
	if g.state.Over {
		return
	}
	g.state.Over = true
	g.log.Info("game over", "session", g.session, "spawned", g.engine.Spawned(), "lines", g.engine.Lines(), "frames", g.state.Frames)
}

// Idle runs a frame in which the game does not advance, such as the final
// board after game over. Only systems added with WithSystem execute; the
// events they queue are dropped and their deferred functions still run.
func (g *Game) Idle(keys input.KeySet) {
	now := g.clock.Now()
	frame := &Frame{
		Now:      now,
		Delta:    now.Sub(g.last),
		Keys:     keys,
		Engine:   g.engine,
		State:    &g.state,
		Commands: g.commands,
		Log:      g.log,
	}
	g.last = now

	for _, s := range g.extra {
		s.Execute(frame)
	}
	g.commands.Discard()
}

// Run steps the game every interval with keys read from src until the game
// ends or ctx is done.
func (g *Game) Run(ctx context.Context, src KeySource, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !g.Step(src.Keys()) {
				return nil
			}
		}
	}
}

// Engine returns the engine driven by g.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// State returns a copy of the loop state.
func (g *Game) State() State {
	return g.state
}

// Session returns the id of the current game.
func (g *Game) Session() uuid.UUID {
	return g.session
}

// GravityTicks returns the number of gravity ticks queued so far.
func (g *Game) GravityTicks() int64 {
	return g.gravity.Ticks
}

// Summary describes the game as of the last frame.
func (g *Game) Summary() Summary {
	return Summary{
		Session: g.session,
		Gravity: g.state.Difficulty.Period,
		Level:   g.state.Difficulty.Level,
		Spawned: g.engine.Spawned(),
		Lines:   g.engine.Lines(),
		Paused:  g.state.Paused,
		Over:    g.state.Over,
	}
}

// Timings returns per-system run times.
func (g *Game) Timings() []SystemTiming {
	return g.scheduler.Timings()
}
