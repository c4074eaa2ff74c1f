package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
	"github.com/vovakirdan/brickbreaker/internal/metrics"
	"github.com/vovakirdan/brickbreaker/internal/registry"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

var (
	flagSimMaxTicks int
	flagSimSway     bool
	flagSimSave     bool
	flagSimRender   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [mode]",
	Short: "Run a headless game under the autopilot",
	Long: `Play a game without a terminal UI. The autopilot launches the ball and
keeps the paddle under the most urgent ball. The same seed always produces
the same run, and the printed state hash can be compared between builds.

With --metrics-addr the final counters stay available for scraping until
the process is interrupted.

Examples:
  breaker sim
  breaker sim pyramid --seed 7 --max-ticks 50000
  breaker sim --no-sway --render`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 20000, "Stop after this many steps")
	simCmd.Flags().BoolVar(&flagSimSway, "sway", true, "Let the autopilot vary where the ball meets the paddle")
	simCmd.Flags().BoolVar(&flagSimSave, "save", true, "Record the run in the database")
	simCmd.Flags().BoolVar(&flagSimRender, "render", false, "Print the final frame")
}

func runSim(cmd *cobra.Command, args []string) error {
	modeID := "classic"
	if len(args) == 1 {
		modeID = args[0]
	}
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q, run 'breaker list' to see available modes", modeID)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(modeID, cfg)
	if err != nil {
		return err
	}
	g, ok := game.(*breakout.Game)
	if !ok {
		return fmt.Errorf("mode %q cannot be simulated", modeID)
	}

	opts := []breakout.Option{breakout.WithLogger(logger)}
	var collector *metrics.Collector
	if flagMetricsAddr != "" {
		collector = metrics.New()
		opts = append(opts, breakout.WithObserver(collector))
	}
	g.Configure(opts...)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.DefaultConfig()
	rt.TickRate = int(time.Second / cfg.Timing.Tick())
	rt.Seed = seed
	if err := g.Reset(rt); err != nil {
		return err
	}

	pilot := breakout.Autopilot{Sway: flagSimSway}
	start := time.Now()
	for range flagSimMaxTicks {
		if g.Step(pilot.Commands(g.Loop())).State.GameOver {
			break
		}
	}
	elapsed := time.Since(start)

	state := g.State()
	outcome := "timeout"
	if state.GameOver {
		outcome = "lost"
		if state.Won {
			outcome = "won"
		}
	}
	snap := g.Snapshot()
	logger.Debug("simulation finished", "mode", modeID, "steps", g.Steps(), "elapsed", elapsed)

	out := cmd.OutOrStdout()
	if flagSimRender {
		screen := core.NewScreen(rt.ScreenW, rt.ScreenH)
		g.Render(screen)
		fmt.Fprintln(out, screen.String())
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Mode:        %s\n", modeID)
	fmt.Fprintf(out, "Seed:        %d\n", seed)
	fmt.Fprintf(out, "Outcome:     %s\n", outcome)
	fmt.Fprintf(out, "Score:       %d\n", state.Score)
	fmt.Fprintf(out, "Lives left:  %d\n", state.Lives)
	fmt.Fprintf(out, "Bricks left: %d\n", state.BricksLeft)
	fmt.Fprintf(out, "Ticks:       %d (%d steps, virtual %s)\n", state.Ticks, g.Steps(), time.Duration(snap.ClockMS)*time.Millisecond)
	fmt.Fprintf(out, "State hash:  %016x\n", snap.Hash())

	if flagSimSave && state.Score > 0 {
		if err := saveSimRun(storage.Run{
			Mode:       modeID,
			Outcome:    outcome,
			Score:      state.Score,
			LivesLeft:  state.Lives,
			BricksLeft: state.BricksLeft,
			Ticks:      state.Ticks,
			Seed:       seed,
		}, out); err != nil {
			logger.Warn("run not saved", "err", err)
		}
	}

	if collector != nil {
		srv := collector.StartHTTP(flagMetricsAddr, logger)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(out, "Serving metrics on %s, press Ctrl+C to exit\n", flagMetricsAddr)
		<-ctx.Done()
		shutdownMetrics(srv, logger)
	}
	return nil
}

func saveSimRun(r storage.Run, out io.Writer) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(r)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Run ID:      %s\n", id)
	return nil
}
