package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/games/skyclaim"
)

var (
	flagPreviewWidth  int
	flagPreviewHeight int
	flagPreviewCalm   bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the layout generated for a seed",
	Long: `Build a round without starting the game loop and print its first frame.
Useful to compare layouts between seeds and config files.

Examples:
  skyclaim preview --seed 42
  skyclaim preview --seed 42 --config ./my-skyclaim.yaml`,
	Args: cobra.NoArgs,
	Run:  runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&flagPreviewWidth, "width", 80, "Screen width in characters")
	previewCmd.Flags().IntVar(&flagPreviewHeight, "height", 24, "Screen height in characters")
	previewCmd.Flags().BoolVar(&flagPreviewCalm, "calm", false, "Preview the calm mode")
}

func runPreview(_ *cobra.Command, _ []string) {
	game := skyclaim.New()
	if flagPreviewCalm {
		game = skyclaim.NewCalm()
	}

	cfg := core.RuntimeConfig{
		ScreenW:  flagPreviewWidth,
		ScreenH:  flagPreviewHeight,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	game.Reset(cfg)

	if err := game.ConfigError(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	game.Render(screen)
	fmt.Println(screen.String())

	snap := game.Snapshot()
	fmt.Printf("seed %d  hash %016x\n", flagSeed, snap.Hash())
}
