package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-arcade/internal/platform/tui"
	"github.com/vovakirdan/santa-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Leaving a game with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	applyGameFlags()

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(s.opts.Store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(s.opts.Store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			s.logger.Error("cannot create game", "game", menuResult.GameID, "error", err)
			continue
		}

		// A fresh seed for each game unless --seed pins it.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		s.logger.Info("game started", "game", menuResult.GameID)
		back, err := tui.Run(game, cfg, s.opts)
		if err != nil {
			s.logger.Error("game failed", "game", menuResult.GameID, "error", err)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			return nil
		}
	}
}
