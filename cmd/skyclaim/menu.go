package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/platform/tui"
	"github.com/vovakirdan/skyclaim/internal/registry"
	"github.com/vovakirdan/skyclaim/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from the menu",
	Long: `Open the mode picker. Finished rounds return here.

Controls:
  Up/Down/j/k  - Move
  Enter/Space  - Play the selected mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  skyclaim menu
  skyclaim menu --fps 30 --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: scores will not be saved: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		next, ok := menuRound(store, cfg)
		if !ok {
			return
		}
		cfg = next
	}
}

// menuRound shows the menu once and plays whatever was picked. It returns
// false when the player is done.
func menuRound(store *storage.Store, cfg core.RuntimeConfig) (core.RuntimeConfig, bool) {
	picked, err := tui.RunMenu(store, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cfg, false
	}
	cfg = picked.Config

	switch {
	case picked.Quit, picked.GameID == "" && !picked.WantsScoreboard:
		return cfg, false
	case picked.WantsScoreboard:
		back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return cfg, back
	}

	game, err := registry.Create(picked.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cfg, true
	}
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := tui.Run(game, store, cfg); err != nil {
		logger.Error("round failed", "mode", picked.GameID, "error", err)
		fmt.Fprintf(os.Stderr, "Error running %s: %v\n", picked.GameID, err)
	}
	return cfg, true
}
