package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-arcade/internal/platform/tui"
	"github.com/vovakirdan/santa-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (sleigh when omitted).

Controls:
  W/S or Up/Down   - Fly (sleigh) / move (jingle, plus A/D)
  Space            - Drop a gift / start
  Enter            - Start / restart
  P                - Pause
  M                - Mute
  Esc/B            - Back to the menu
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More health, a later Krampus, gentle progression
  normal - Default tunables
  hard   - Less health, an early Krampus
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play
  arcade play jingle --difficulty easy
  arcade play sleigh --difficulty hard --mute
  arcade play sleigh --config ./my-sleigh.yaml
  arcade play sleigh --highscore-file ./best.bin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "sleigh"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	applyGameFlags()
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Info("game started", "game", gameID, "seed", flagSeed)
	if _, err := tui.Run(game, runtimeConfig(), s.opts); err != nil {
		s.logger.Error("game failed", "game", gameID, "error", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		return err
	}
	return nil
}
