// breaker is a terminal brick breaker with a deterministic simulation core.
//
// Usage:
//
//	breaker list             - List available modes
//	breaker play [mode]      - Play a mode (menu when no mode is given)
//	breaker sim [mode]       - Run a headless autopilot game
//	breaker scores [mode]    - Show run history
//	breaker config           - Print the effective configuration
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.breaker/runs.db)
//	--config <path>       - Load a custom breaker.yaml
//	--difficulty <name>   - Apply a preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
//	--metrics-addr <addr> - Serve Prometheus metrics (e.g. :9090)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreaker/internal/config"

	// Import modes to register them
	_ "github.com/vovakirdan/brickbreaker/internal/games/breakout"
)

var (
	// Global flags
	flagSeed        int64
	flagDBPath      string
	flagConfig      string
	flagDifficulty  string
	flagLogLevel    string
	flagLogFile     string
	flagMetricsAddr string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breaker",
	Short: "Brick Breaker - a deterministic brick breaker for your terminal",
	Long: `Brick Breaker runs a fixed-tick ball, paddle and brick simulation and
renders it in the terminal.

Available commands:
  list     - Show all available modes
  play     - Play a mode (interactive menu without arguments)
  sim      - Run a headless game under the autopilot
  scores   - View run history
  config   - Print the effective configuration

Examples:
  breaker play
  breaker play pyramid --difficulty hard
  breaker sim --seed 42 --max-ticks 20000
  breaker scores classic`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breaker/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom breaker.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration from --config and --difficulty and
// validates the result.
func loadConfig() (config.BreakerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.BreakerConfig{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.BreakerConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.BreakerConfig{}, err
	}
	return cfg, nil
}

// newLogger builds the process logger. Without --log-file it writes to
// fallback; interactive commands pass io.Discard so logs never reach the
// alt screen. The returned closer releases the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	w := fallback
	closer := func() {}
	if flagLogFile != "" {
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "breaker",
		Level:           level,
	})
	return logger, closer, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
