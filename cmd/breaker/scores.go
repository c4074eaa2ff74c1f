package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickbreaker/internal/platform/tui"
	"github.com/vovakirdan/brickbreaker/internal/registry"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show run history",
	Long: `Display the best runs for a mode, or a summary of every mode plus the
most recent runs when no mode is given.

Examples:
  breaker scores
  breaker scores classic --limit 20
  breaker scores --tui
  breaker scores pyramid --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse runs in the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every run of the given mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown mode %q, run 'breaker list' to see available modes", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagScoresClear:
		if len(args) == 0 {
			return errors.New("--clear needs a mode")
		}
		if err := store.ClearRuns(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared runs for %s.\n", args[0])
		return nil

	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		_, err := tui.RunScoreboard(store, width, height)
		return err

	case len(args) == 1:
		return printTopRuns(out, store, args[0])

	default:
		return printSummary(out, store)
	}
}

func printTopRuns(out io.Writer, store *storage.Store, modeID string) error {
	runs, err := store.TopRuns(modeID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Best runs - %s\n\n", modeID)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'breaker play %s' to set the first score!\n", modeID)
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-7s  %-7s  %-5s  %-6s  %s\n", "Rank", "Score", "Result", "Lives", "Bricks", "Date")
	fmt.Fprintf(out, "  %-4s  %-7s  %-7s  %-5s  %-6s  %s\n", "----", "-----", "------", "-----", "------", "----")

	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-7d  %-7s  %-5d  %-6d  %s\n",
			i+1, r.Score, r.Outcome, r.LivesLeft, r.BricksLeft, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSummary(out io.Writer, store *storage.Store) error {
	stats, err := store.AllModeStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(out, "  %-10s  %-5s  %-5s  %-6s  %-7s  %s\n", "Mode", "Runs", "Wins", "Best", "Average", "Last played")
	fmt.Fprintf(out, "  %-10s  %-5s  %-5s  %-6s  %-7s  %s\n", "----", "----", "----", "----", "-------", "-----------")
	for _, id := range ids {
		st := stats[id]
		fmt.Fprintf(out, "  %-10s  %-5d  %-5d  %-6d  %-7.1f  %s\n",
			id, st.Runs, st.Wins, st.BestScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}

	recent, err := store.RecentRuns(flagScoresLimit)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent runs:")
	for _, r := range recent {
		fmt.Fprintf(out, "  %s  %-10s  %-7s  %d\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, r.Outcome, r.Score)
	}
	return nil
}
