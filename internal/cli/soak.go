package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/event"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/metrics"
)

type soakOptions struct {
	games       int
	frames      int
	seed        uint64
	metricsAddr string
}

func newSoakCmd(root *rootOptions) *cobra.Command {
	opts := soakOptions{games: 100, frames: 20000}

	cmd := &cobra.Command{
		Use:   "soak",
		Short: "Run many headless games with random input",
		Long: `Run games back to back on a simulated clock, feeding each one random
held keys, and print a Markdown report of frame timings, pieces, lines
and memory use. Every game is checked against the board invariants.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = opts.seed
			}
			return runSoak(cmd.Context(), cfg, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&opts.games, "games", opts.games, "number of games to play")
	cmd.Flags().IntVar(&opts.frames, "frames", opts.frames, "frame limit per game")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed of the first game (0 picks one)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	return cmd
}

func runSoak(ctx context.Context, cfg config.Config, opts soakOptions, w io.Writer) error {
	if opts.games <= 0 || opts.frames <= 0 {
		return errors.New("soak: --games and --frames must be positive")
	}

	logger := loggerFromContext(ctx)

	loopCfg, err := cfg.Loop()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(reg)

	if opts.metricsAddr != "" {
		stop, err := serveMetrics(logger, opts.metricsAddr, reg)
		if err != nil {
			return err
		}
		defer stop()
	}

	interval := cfg.FrameInterval.Duration
	report := &Report{
		Games:         opts.games,
		FrameLimit:    opts.frames,
		FrameInterval: interval,
		BaseSeed:      resolveSeed(cfg.Seed),
		Engine:        cfg.Engine(),
	}

	logger.Info("soak started", "games", opts.games, "frames", opts.frames, "seed", report.BaseSeed)

	runtime.GC()
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	for i := range opts.games {
		if err := ctx.Err(); err != nil {
			return err
		}

		seed := report.BaseSeed + uint64(i)
		res, err := soakGame(cfg.Engine(), loopCfg, seed, opts.frames, interval, recorder, &report.FrameTime)
		if err != nil {
			return fmt.Errorf("soak: game %d (seed %d): %w", i, seed, err)
		}
		logger.Debug("game finished", "session", res.Session, "seed", seed, "frames", res.Frames, "spawned", res.Spawned, "lines", res.Lines, "over", res.Over)
		report.Results = append(report.Results, res)
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Finalize()

	logger.Info("soak finished", "games", opts.games, "took", report.TotalTime)
	return report.Generate(w)
}

// soakKeys picks held keys for one frame. Pause and quit are never pressed.
func soakKeys(rng *rand.Rand) input.KeySet {
	var keys input.KeySet
	switch rng.IntN(6) {
	case 0:
		keys = keys.With(input.KeyLeft)
	case 1:
		keys = keys.With(input.KeyRight)
	case 2:
		keys = keys.With(input.KeyUp)
	case 3:
		keys = keys.With(input.KeyDown)
	}
	if rng.IntN(40) == 0 {
		keys = keys.With(input.KeySpace)
	}
	return keys
}

// frameSampler collects frame durations for the report.
type frameSampler struct {
	stats *Stats
}

func (f frameSampler) Observe(event.Event, engine.Result) {}

func (f frameSampler) FrameDone(s loop.Summary) {
	f.stats.Samples = append(f.stats.Samples, s.Duration)
}

func soakGame(engineCfg engine.Config, loopCfg loop.Config, seed uint64, frames int, interval time.Duration, recorder *metrics.Recorder, frameTime *Stats) (GameResult, error) {
	e := engine.NewSeeded(engineCfg, seed)
	clock := loop.NewManualClock(time.Unix(0, 0))
	g := loop.New(e, loopCfg,
		loop.WithClock(clock),
		loop.WithObserver(recorder),
		loop.WithObserver(frameSampler{stats: frameTime}),
	)
	rng := rand.New(rand.NewPCG(seed, 0x50a4))

	g.Start()
	for range frames {
		clock.Advance(interval)
		running := g.Step(soakKeys(rng))
		if err := e.Check(); err != nil {
			return GameResult{}, err
		}
		if !running {
			break
		}
	}

	s := g.Summary()
	return GameResult{
		Session: s.Session,
		Seed:    seed,
		Frames:  g.State().Frames,
		Spawned: s.Spawned,
		Lines:   s.Lines,
		Level:   s.Level,
		Gravity: s.Gravity,
		Over:    s.Over,
	}, nil
}

// serveMetrics starts an HTTP server for /metrics and returns a function
// that shuts it down.
func serveMetrics(logger *log.Logger, addr string, g prometheus.Gatherer) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("soak: listen %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
