// arcade is a terminal arcade of Christmas games.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade sim               - Run the sleigh simulation headless
//
// Global flags:
//
//	--fps <rate>              - Set tick rate (default: 60)
//	--seed <value>            - Set RNG seed for reproducible gameplay
//	--db <path>               - Set database path (default: ~/.arcade/scores.db)
//	--config <path>           - Custom game config YAML
//	--difficulty <preset>     - easy, normal, hard or fixed
//	--mute                    - Disable audio
//	--spectate <addr>         - Stream snapshots to WebSocket spectators
//	--highscore-file <path>   - Keep the best score in a 4-byte file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/santa-arcade/internal/games/jingle"
	_ "github.com/vovakirdan/santa-arcade/internal/games/sleigh"
)

var (
	// Global flags
	flagFPS           int
	flagSeed          int64
	flagDBPath        string
	flagConfig        string
	flagDifficulty    string
	flagMute          bool
	flagSpectate      string
	flagHighScoreFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Santa Arcade - Christmas games in your terminal",
	Long: `Santa Arcade is a terminal arcade. Fly the sleigh, drop gifts down
chimneys and keep the naughty meter low before Krampus comes.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Headless deterministic sleigh run

Examples:
  arcade list
  arcade play sleigh
  arcade play jingle --difficulty hard
  arcade menu --spectate :8080
  arcade serve --ssh :2222
  arcade sim --frames 3600 --seed 42 --autopilot`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.BoolVar(&flagMute, "mute", false, "Start with audio disabled")
	pf.StringVar(&flagSpectate, "spectate", "", "Serve a WebSocket spectator stream on this address (e.g. :8080)")
	pf.StringVar(&flagHighScoreFile, "highscore-file", "", "Keep the best score in this file instead of the database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
