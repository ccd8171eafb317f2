// blocktui is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blocktui                 - Play a game
//	blocktui scores          - Show high scores
//	blocktui serve           - Start SSH server for remote play
//	blocktui config          - Print the effective rules
//
// Global flags:
//
//	--seed <value>        - Set bag seed for reproducible games
//	--db <path>           - Set database path (default: ~/.blocktui/scores.db)
//	--config <path>       - Custom rules YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--redis <url>         - Mirror scores to a shared Redis leaderboard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagName       string
	flagRedis      string
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocktui",
	Short: "Falling-block puzzle game for your terminal",
	Long: `blocktui is a falling-block puzzle game played in the terminal.

Running it without a subcommand starts a new game.

Controls:
  ←/h  →/l     - Move
  ↑/x  z       - Rotate clockwise / counter-clockwise
  ↓/j          - Soft drop
  Space        - Hard drop
  P/Esc        - Pause
  Enter        - New game (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at level 1
  normal - Start at level 5
  hard   - Start at level 10
  fixed  - Keep the configured start level for the whole game

Examples:
  blocktui
  blocktui --difficulty hard
  blocktui --seed 42 --name ada
  blocktui scores --limit 20
  blocktui serve --ssh :2222 --http :8080`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int64Var(&flagSeed, "seed", 0, "Bag seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", "~/.blocktui/scores.db", "Path to scores database")
	flags.StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.StringVar(&flagName, "name", "", "Player name stored with scores (default $USER)")
	flags.StringVar(&flagRedis, "redis", "", "Redis URL of the shared leaderboard (e.g. redis://localhost:6379/0)")
	flags.StringVar(&flagLogFile, "log-file", "", "Log file for the game (default ~/.blocktui/blocktui.log)")
	flags.BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
