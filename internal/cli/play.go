package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plus3/blockfall/board"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/term"
)

type playOptions struct {
	term  bool
	debug bool
	seed  uint64
}

func newPlayCmd(root *rootOptions) *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in a window or in the terminal",
		Long: `Play a game of blockfall.

Arrows or WASD move and soft drop, Up/W/X/Z rotate, Space hard drops,
P pauses and Escape or Q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = opts.seed
			}
			return runPlay(cmd.Context(), root.stderr, cfg, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.term, "term", false, "play in the terminal instead of a window")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "show the debug overlay (window only)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")

	return cmd
}

// resolveSeed returns seed, or a random one when seed is zero.
func resolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return seed
}

func runPlay(ctx context.Context, stderr io.Writer, cfg config.Config, opts playOptions) error {
	logger := loggerFromContext(ctx)

	loopCfg, err := cfg.Loop()
	if err != nil {
		return err
	}

	seed := resolveSeed(cfg.Seed)
	logger.Info("new game", "seed", seed, "random_colors", cfg.RandomColors, "strict_rotation", cfg.StrictRotation)
	e := engine.NewSeeded(cfg.Engine(), seed)

	if opts.term {
		if opts.debug {
			logger.Warn("debug overlay is only available in a window")
		}
		return playTerm(ctx, stderr, logger, e, loopCfg, cfg)
	}
	return playWindow(logger, e, loopCfg, opts.debug)
}

func playWindow(logger *log.Logger, e *engine.Engine, loopCfg loop.Config, debug bool) error {
	if !debug {
		g := loop.New(e, loopCfg, loop.WithLogger(logger))
		return render.Run(render.New(g, nil), "blockfall")
	}

	ui := &debugui.System{}

	// The imgui backend owns the window and must exist before any imgui call.
	w, h := board.WindowSize()
	overlay := debugui_ebiten.NewImguiBackend("blockfall", w, h, &ui.Input)

	g := loop.New(e, loopCfg, loop.WithLogger(logger), loop.WithSystem(ui))
	ui.Add(debugui.NewStatsWindow(g, 240).Render)
	ui.Add(debugui.EngineInspector(e))

	return render.Run(render.New(g, overlay), "blockfall")
}

func playTerm(ctx context.Context, stderr io.Writer, logger *log.Logger, e *engine.Engine, loopCfg loop.Config, cfg config.Config) error {
	screen, err := term.Open()
	if err != nil {
		return err
	}

	// Log lines would tear the screen, so hold them until it is closed.
	var buf lockedBuffer
	gameLog := logger.With()
	gameLog.SetOutput(&buf)
	defer func() {
		screen.Fini()
		_, _ = io.Copy(stderr, &buf)
	}()

	reader := term.NewKeyReader(term.DefaultHold)
	go reader.Run(screen)

	renderer := term.NewRenderer(screen, e.Board())
	g := loop.New(e, loopCfg, loop.WithLogger(gameLog), loop.WithObserver(renderer))

	if err := term.Play(ctx, g, renderer, reader, cfg.FrameInterval.Duration); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

// lockedBuffer is a bytes.Buffer safe for the logger and the final flush.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Read(p)
}
