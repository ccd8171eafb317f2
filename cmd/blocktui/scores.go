package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagWorld       bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best games stored on this machine.

With --world the shared Redis leaderboard is listed instead (requires --redis).
With --interactive the scores open in a scrollable table with one tab per board.

Examples:
  blocktui scores
  blocktui scores --limit 25
  blocktui scores --world --redis redis://localhost:6379/0
  blocktui scores --interactive
  blocktui scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Browse scores in a table")
	scoresCmd.Flags().BoolVar(&flagWorld, "world", false, "Show the shared leaderboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all local scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	if flagWorld && flagRedis == "" {
		return errors.New("--world needs --redis")
	}
	rules, err := loadRules()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	logger := newStderrLogger("blocktui")

	src, err := openSources(ctx, logger, rules)
	if err != nil {
		return err
	}
	defer src.Close()

	if flagClear {
		if err := src.store.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("Local scores cleared.")
		return nil
	}

	if flagInteractive {
		boards := []tui.Board{{Title: "Local", Source: src.store}}
		if world := src.worldSource(); world != nil {
			boards = append(boards, tui.Board{Title: "World", Source: world})
		}
		return tui.RunScoreboard(ctx, boards)
	}

	title, source := "High Scores", storage.Source(src.store)
	if flagWorld {
		world := src.worldSource()
		if world == nil {
			return errors.New("leaderboard unavailable")
		}
		title, source = "World Leaderboard", world
	}
	scores, err := source.TopN(ctx, flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}
	printScores(os.Stdout, title, scores)

	if flagWorld {
		if n, err := src.world.Len(ctx); err == nil {
			fmt.Printf("\n%d games on the leaderboard\n", n)
		}
		return nil
	}
	printStats(ctx, os.Stdout, src.store)
	return nil
}

func printScores(w io.Writer, title string, scores []core.ScoreRecord) {
	bold := color.New(color.Bold)
	gold := color.New(color.FgYellow, color.Bold)
	dim := color.New(color.Faint)

	bold.Fprintln(w, title)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'blocktui' to set the first high score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-10s  %-5s  %-5s  %s\n", "Rank", "Name", "Score", "Level", "Lines", "Date")
	dim.Fprintf(w, "  %-4s  %-16s  %-10s  %-5s  %-5s  %s\n", "----", "----", "-----", "-----", "-----", "----")

	for i, rec := range scores {
		line := fmt.Sprintf("  %-4d  %-16s  %-10d  %-5d  %-5d  %s",
			i+1, rec.Name, rec.Score, rec.Level, rec.Lines, rec.At.Local().Format("2006-01-02 15:04"))
		if i == 0 {
			gold.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, line)
	}
}

func printStats(ctx context.Context, w io.Writer, store *storage.Store) {
	high, err := store.HighScore(ctx)
	if err != nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d\n", high)

	stats, err := store.Stats(ctx)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "Games: %d  Average: %.0f  Lines: %d  Last played: %s\n",
		stats.Games, stats.AvgScore, stats.TotalLines, stats.LastPlayed.Local().Format("2006-01-02 15:04"))
}
