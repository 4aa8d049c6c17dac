package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-arcade/internal/registry"
	"github.com/vovakirdan/santa-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for the specified game, or a summary of
every game played when no game is given.

Examples:
  arcade scores
  arcade scores sleigh
  arcade scores jingle --limit 5
  arcade scores sleigh --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded score for the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		return printSummary(out, store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", gameID)
		return nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n", game.Title())
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Fprintln(out)
	if highScore, err := store.HighScore(gameID); err == nil {
		fmt.Fprintf(out, "Best: %d\n", highScore)
	}
	return nil
}

// printSummary lists aggregate statistics for every game with a record.
func printSummary(out io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(out, "  %-10s  %-6s  %-8s  %-8s  %s\n", "Game", "Runs", "Best", "Average", "Last played")
	fmt.Fprintf(out, "  %-10s  %-6s  %-8s  %-8s  %s\n", "----", "----", "----", "-------", "-----------")
	for _, id := range ids {
		gs := stats[id]
		best, _ := store.HighScore(id)
		fmt.Fprintf(out, "  %-10s  %-6d  %-8d  %-8.1f  %s\n",
			id, gs.GamesCount, best, gs.AvgScore, gs.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
