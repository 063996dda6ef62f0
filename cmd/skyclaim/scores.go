package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclaim/internal/registry"
	"github.com/vovakirdan/skyclaim/internal/storage"
)

const topScoresShown = 10

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Print the best scores of a mode (default: skyclaim) with its totals.
--clear deletes the mode's scores and run history.

Examples:
  skyclaim scores
  skyclaim scores skyclaim_calm
  skyclaim scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores and runs of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "skyclaim"
	if len(args) == 1 {
		gameID = args[0]
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (see 'skyclaim list')", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clear scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, topScoresShown)
	if err != nil {
		return fmt.Errorf("read scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Printf("No scores recorded yet. Play 'skyclaim play %s' to set one.\n", gameID)
		return nil
	}
	printScores(scores)

	if stats, err := store.GetGameStats(gameID); err == nil && stats != nil {
		fmt.Printf("\nBest: %d  |  Rounds: %d  |  Completed: %d  |  Most tiles: %d\n",
			stats.HighScore, stats.GamesCount, stats.Completed, stats.BestTiles)
	}
	return nil
}

func printScores(scores []storage.ScoreEntry) {
	const row = "  %4v  %-10v  %v\n"
	fmt.Printf(row, "Rank", "Score", "Date")
	for i, s := range scores {
		fmt.Printf(row, i+1, s.Score, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}
