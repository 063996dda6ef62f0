package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclaim/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [game]",
	Short: "Show recent rounds",
	Long: `List the most recent finished rounds, newest first. Without a game ID
every mode is listed.

Each run records its seed and final state hash; replaying with the same
--seed, --config and --difficulty reproduces the round.

Examples:
  skyclaim runs
  skyclaim runs skyclaim --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
}

func runRuns(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.RecentRuns(gameID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	if len(runs) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-14s  %-7s  %-5s  %-6s  %-10s  %-20s  %s\n",
		"Date", "Mode", "Score", "Tiles", "Time", "Result", "Seed", "Hash")
	for _, r := range runs {
		secs := int(r.Elapsed)
		fmt.Printf("  %-16s  %-14s  %-7d  %-5d  %-6s  %-10s  %-20d  %016x\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.GameID,
			r.Score,
			r.ClaimedTiles,
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
			r.Outcome,
			r.Seed,
			r.Hash,
		)
	}

	if gameID == "" {
		return
	}
	if best, err := store.BestRun(gameID); err == nil && best != nil {
		fmt.Println()
		fmt.Printf("Best run: %d points, %d tiles (seed %d)\n", best.Score, best.ClaimedTiles, best.Seed)
	}
}
