package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
	"github.com/vovakirdan/brickbreaker/internal/metrics"
	"github.com/vovakirdan/brickbreaker/internal/platform/tui"
	"github.com/vovakirdan/brickbreaker/internal/registry"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode. Without a mode, an interactive menu lets
you pick one and returns after each game.

Controls:
  Left/Right/a/d - Move paddle
  Mouse drag     - Drag paddle
  Space          - Launch ball
  P/Esc          - Pause
  R              - Restart (after game over)
  Ctrl+S         - Save screenshot
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - 5 lives, wide paddle, slow ball
  normal - values from the configuration
  hard   - 2 lives, narrow paddle, fast ball

Examples:
  breaker play
  breaker play classic
  breaker play fortress --difficulty hard
  breaker play --config ./my-breaker.yaml --metrics-addr :9090`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// session holds what every game in one play invocation shares.
type session struct {
	cfg       config.BreakerConfig
	runtime   core.RuntimeConfig
	store     *storage.Store
	logger    *log.Logger
	collector *metrics.Collector
}

func runPlay(_ *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown mode %q, run 'breaker list' to see available modes", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: int(time.Second / cfg.Timing.Tick()),
		Seed:     flagSeed,
	}
	s := &session{cfg: cfg, runtime: runtime, logger: logger}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}
	s.store = store

	if flagMetricsAddr != "" {
		s.collector = metrics.New()
		srv := s.collector.StartHTTP(flagMetricsAddr, logger)
		defer shutdownMetrics(srv, logger)
	}

	if len(args) == 1 {
		return s.play(args[0])
	}
	return s.menu()
}

// menu loops between the mode picker, the scoreboard and games.
func (s *session) menu() error {
	for {
		res, err := tui.RunMenu(s.store, s.runtime)
		if err != nil {
			return err
		}

		// Update config with any size changes
		s.runtime = res.Config

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(s.store, s.runtime.ScreenW, s.runtime.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		if res.ModeID == "" {
			return nil
		}
		if err := s.play(res.ModeID); err != nil {
			s.logger.Error("game failed", "mode", res.ModeID, "err", err)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

// play runs one mode until the player quits.
func (s *session) play(modeID string) error {
	game, err := registry.Create(modeID, s.cfg)
	if err != nil {
		return err
	}
	if bg, ok := game.(*breakout.Game); ok {
		opts := []breakout.Option{breakout.WithLogger(s.logger)}
		if s.collector != nil {
			opts = append(opts, breakout.WithObserver(s.collector))
		}
		bg.Configure(opts...)
	}

	state, err := tui.Run(game, s.runtime, tui.Options{
		Store:  s.store,
		Logger: s.logger,
		Tick:   s.cfg.Timing.Tick(),
	})
	if err != nil {
		return err
	}
	s.logger.Info("game closed", "mode", modeID, "phase", state.Phase, "score", state.Score)
	return nil
}

func shutdownMetrics(srv *metrics.Server, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("metrics shutdown", "err", err)
	}
}
