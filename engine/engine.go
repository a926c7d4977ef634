// Package engine implements the rules of the falling-block game on top of a
// board: movement, rotation, gravity, locking, line clearing and spawning.
//
// An Engine is single-threaded and owns its board exclusively. All
// randomness comes from the rand.Source passed to New, so a fixed seed
// reproduces a game exactly.
package engine

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/event"
	"github.com/plus3/blockfall/piece"
)

// Config selects rule variants.
type Config struct {
	// RandomColors draws each spawned piece's color independently of its
	// shape instead of using the shape's canonical color.
	RandomColors bool
	// StrictRotation rejects a rotation whose destination overlaps locked
	// cells. Without it a rotation is only clamped into the grid.
	StrictRotation bool
}

// DefaultConfig returns canonical colors with occupancy-checked rotation.
func DefaultConfig() Config {
	return Config{StrictRotation: true}
}

// Engine is one game session.
type Engine struct {
	cfg   Config
	board *board.Board
	rng   *rand.Rand

	spawned int
	lines   int
	over    bool
}

// New creates an engine with an empty board and no active piece. Call
// Start to spawn the first piece.
func New(cfg Config, src rand.Source) *Engine {
	return &Engine{
		cfg:   cfg,
		board: board.New(),
		rng:   rand.New(src),
	}
}

// NewSeeded creates an engine whose randomness is derived from seed.
func NewSeeded(cfg Config, seed uint64) *Engine {
	return New(cfg, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Start clears the board and counters and spawns the first piece.
func (e *Engine) Start() Result {
	e.board.Reset()
	e.spawned = 0
	e.lines = 0
	e.over = false
	return e.Spawn()
}

// Board returns the engine's board. Callers must treat it as read-only.
func (e *Engine) Board() *board.Board {
	return e.board
}

// Config returns the rule variants in use.
func (e *Engine) Config() Config {
	return e.cfg
}

// Spawned returns the number of pieces spawned since Start.
func (e *Engine) Spawned() int {
	return e.spawned
}

// Lines returns the number of rows cleared since Start.
func (e *Engine) Lines() int {
	return e.lines
}

// Over reports whether the game has ended.
func (e *Engine) Over() bool {
	return e.over
}

func (e *Engine) nextShape() piece.Shape {
	return piece.Shape(e.rng.IntN(piece.Count))
}

func (e *Engine) nextColor(s piece.Shape) piece.Color {
	if e.cfg.RandomColors {
		return piece.Colors[e.rng.IntN(len(piece.Colors))]
	}
	return s.Color()
}

// Spawn draws a shape uniformly from the catalog and installs it at the top
// of the board. If it would overlap locked cells the game is over and the
// board is left untouched.
func (e *Engine) Spawn() Result {
	if e.over {
		return Result{Status: GameOver}
	}
	s := e.nextShape()
	return e.spawnShape(s, e.nextColor(s))
}

func (e *Engine) spawnShape(s piece.Shape, c piece.Color) Result {
	anchor := piece.Point{X: board.Width / 2}.Add(s.SpawnOffset())
	if e.board.Overlaps(anchor, s) {
		e.board.ClearActivePiece()
		e.over = true
		return Result{Status: GameOver}
	}

	e.board.SetActivePiece(anchor, c, s)
	e.spawned++
	return Result{Status: Moved}
}

func (e *Engine) active() (board.Active, bool) {
	if e.over {
		return board.Active{}, false
	}
	return e.board.ActivePiece()
}

func (e *Engine) shift(dx int) bool {
	a, ok := e.active()
	if !ok {
		return false
	}

	candidate := a.Anchor.Add(piece.Point{X: dx})
	if candidate.X < 0 || candidate.X+a.Shape.Width() > board.Width {
		return false
	}
	if e.board.Overlaps(candidate, a.Shape) {
		return false
	}

	e.board.MoveActivePiece(candidate)
	return true
}

// MoveLeft shifts the active piece one column left if the destination is
// inside the grid and free.
func (e *Engine) MoveLeft() bool {
	return e.shift(-1)
}

// MoveRight shifts the active piece one column right if the destination is
// inside the grid and free.
func (e *Engine) MoveRight() bool {
	return e.shift(1)
}

// Rotate replaces the active piece with its clockwise successor. The new
// anchor is clamped into the grid rather than rejected; with StrictRotation
// an overlap with locked cells rejects the rotation.
func (e *Engine) Rotate() bool {
	a, ok := e.active()
	if !ok {
		return false
	}

	next, shift := a.Shape.Rotate()
	if next == a.Shape && shift == (piece.Point{}) {
		return false
	}

	w, h := next.Size()
	anchor := a.Anchor.Add(shift)
	anchor.X = clamp(anchor.X, 0, board.Width-w)
	anchor.Y = clamp(anchor.Y, 0, board.Height-h)

	if e.cfg.StrictRotation && e.board.Overlaps(anchor, next) {
		return false
	}

	e.board.SetActivePiece(anchor, a.Color, next)
	return true
}

// SoftDrop moves the active piece one row down. When it cannot descend it
// locks in place, full rows are cleared and the next piece spawns.
func (e *Engine) SoftDrop() Result {
	if e.over {
		return Result{Status: GameOver}
	}
	a, ok := e.board.ActivePiece()
	if !ok {
		return Result{Status: Rejected}
	}

	candidate := a.Anchor.Add(piece.Point{Y: 1})
	if a.Anchor.Y+a.Shape.Height() < board.Height && !e.board.Overlaps(candidate, a.Shape) {
		e.board.MoveActivePiece(candidate)
		return Result{Status: Moved, Dropped: 1}
	}

	return e.lock()
}

// Tick applies one step of gravity. It behaves exactly like SoftDrop.
func (e *Engine) Tick() Result {
	return e.SoftDrop()
}

// HardDrop drops the active piece as far as it goes and locks it.
func (e *Engine) HardDrop() Result {
	dropped := 0
	for {
		res := e.SoftDrop()
		if res.Status != Moved {
			res.Dropped = dropped
			return res
		}
		dropped++
	}
}

func (e *Engine) lock() Result {
	e.board.Merge()

	cleared := e.board.ClearLines()
	e.lines += cleared

	res := e.Spawn()
	if res.Status == GameOver {
		return Result{Status: GameOver, Cleared: cleared}
	}
	return Result{Status: Locked, Cleared: cleared}
}

// Handle applies one discrete input. Pause and Quit belong to the game loop
// and are rejected here.
func (e *Engine) Handle(ev event.Event) Result {
	if e.over {
		return Result{Status: GameOver}
	}

	switch ev {
	case event.MoveLeft:
		return moved(e.MoveLeft())
	case event.MoveRight:
		return moved(e.MoveRight())
	case event.RotateClockwise:
		return moved(e.Rotate())
	case event.SoftDrop:
		return e.SoftDrop()
	case event.HardDrop:
		return e.HardDrop()
	case event.GravityTick:
		return e.Tick()
	default:
		return Result{Status: Rejected}
	}
}

func moved(ok bool) Result {
	if ok {
		return Result{Status: Moved}
	}
	return Result{Status: Rejected}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
