package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/games/skyclaim"
	"github.com/vovakirdan/skyclaim/internal/games/skyclaim/sim"
	"github.com/vovakirdan/skyclaim/internal/platform/feed"
	"github.com/vovakirdan/skyclaim/internal/platform/tui"
	"github.com/vovakirdan/skyclaim/internal/registry"
	"github.com/vovakirdan/skyclaim/internal/storage"
)

var flagFeedAddr string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a round",
	Long: `Start a round of the given mode (default: skyclaim).

Controls:
  W/S, Up/Down      - Thrust forward/backward (forward takes off when landed)
  A/D, Left/Right   - Turn
  Space             - Toggle the energy beam
  E                 - Land on a claimed tile / take off
  P/Esc             - Pause
  R                 - Restart (after the round ends)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Storms start weak and grow to full strength
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Live feed:
  --feed :8090 serves the round's events as JSON over a WebSocket at
  ws://localhost:8090/feed

Examples:
  skyclaim play
  skyclaim play skyclaim_calm
  skyclaim play --difficulty hard --seed 7
  skyclaim play --config ./my-skyclaim.yaml
  skyclaim play --feed :8090`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Serve a live event feed over WebSocket at this address")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "skyclaim"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'skyclaim list' to see available modes.")
		os.Exit(1)
	}

	if flagFeedAddr != "" {
		stop, err := startFeed(flagFeedAddr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting feed: %v\n", err)
			os.Exit(1)
		}
		defer stop()
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// startFeed serves a WebSocket feed of every world the game builds.
// The returned function stops the server.
func startFeed(addr string) (stop func(), err error) {
	hub := feed.NewHub(logger)

	var (
		detach func()
		world  *sim.World
	)
	skyclaim.SetWorldObserver(func(w *sim.World) {
		if detach != nil {
			detach()
		}
		world = w
		detach = hub.Attach(w)
	})

	mux := http.NewServeMux()
	mux.Handle("/feed", hub)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Surface bind errors before the terminal switches to the alt screen.
	select {
	case err := <-errCh:
		hub.Close()
		skyclaim.SetWorldObserver(nil)
		return nil, err
	case <-time.After(100 * time.Millisecond):
	}
	logger.Info("feed listening", "addr", addr)

	return func() {
		skyclaim.SetWorldObserver(nil)
		if detach != nil {
			detach()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var tick uint64
		if world != nil {
			tick = world.Ticks()
		}
		if err := hub.Shutdown(ctx, tick); err != nil {
			logger.Warn("feed closing notice", "error", err)
		}
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("feed shutdown", "error", err)
		}
	}, nil
}
