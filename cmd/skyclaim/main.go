// skyclaim is a terminal arcade game: fly a spaceship over a grid of tiles,
// charge them with an energy beam and hold them against storms until the
// round timer runs out.
//
// Usage:
//
//	skyclaim                  - Start the menu
//	skyclaim play [game]      - Play a round directly
//	skyclaim list             - List available modes
//	skyclaim scores <game>    - Show high scores
//	skyclaim runs [game]      - Show recent rounds
//	skyclaim preview          - Print the layout generated for a seed
//	skyclaim config           - Print or check a config file
//	skyclaim serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.skyclaim/scores.db)
//	--config <path>      - Load a custom config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log <path>         - Write simulation logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclaim/internal/config"
	"github.com/vovakirdan/skyclaim/internal/games/skyclaim"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagLogLevel   string
)

// logger receives simulation logs. It discards everything unless --log is set
// so the terminal UI is never overwritten.
var logger = log.New(io.Discard)

// logFile is closed on exit when --log is set.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyclaim",
	Short: "Skyclaim - claim the sky tile by tile",
	Long: `Skyclaim is a terminal arcade game. Fly your ship over the grid, hold
the energy beam over tiles until they flip to your side, and keep them
charged while storms drain them away. Land on a claimed tile to recharge.

Available commands:
  play     - Play a round directly
  menu     - Interactive mode picker (default)
  list     - Show all modes
  scores   - View high scores
  runs     - View recent rounds
  preview  - Print the layout generated for a seed
  config   - Print the default config or check a custom one
  serve    - Start SSH server for remote play

Examples:
  skyclaim
  skyclaim play --difficulty hard
  skyclaim play skyclaim_calm --seed 42
  skyclaim play --feed :8090
  skyclaim serve --ssh :2222`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Run:               runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyclaim/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write simulation logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup validates the global flags and configures the game package.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "skyclaim",
			Level:           level,
		})
	}

	skyclaim.SetConfigPath(flagConfig)
	skyclaim.SetDifficultyPreset(flagDifficulty)
	skyclaim.SetLogger(logger)
	return nil
}
