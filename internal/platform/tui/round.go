package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/registry"
	"github.com/vovakirdan/skyclaim/internal/storage"
)

// round is the state shared by the local and SSH game models: one game
// instance, its screen, the pending input and the once-per-round record.
type round struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	renderer   *ScreenRenderer
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	recorded   bool
	started    bool // a step has run since the model was built
}

func newRound(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) round {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return round{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		renderer:   defaultScreenRenderer,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// resizer is implemented by games that can fit a running round to a new
// screen without rebuilding it.
type resizer interface {
	Resize(w, h int)
}

// resize fits the round to a new terminal size. A game that cannot re-fit
// is reset to the new size only until its first step; after that it keeps
// the old layout rather than losing the round.
func (r *round) resize(w, h int) {
	r.config.ScreenW, r.config.ScreenH = w, h
	r.screen.Resize(w, h)
	if g, ok := r.game.(resizer); ok {
		g.Resize(w, h)
		return
	}
	if !r.started {
		r.game.Reset(r.config)
	}
}

// step advances the game one tick and records the round the first time it
// reports game over. A restart request re-arms the record.
func (r *round) step() {
	if r.gameState.GameOver && r.inputFrame.Has(core.ActionRestart) {
		r.recorded = false
	}

	r.gameState = r.game.Step(r.inputFrame).State
	r.started = true
	if r.gameState.GameOver && !r.recorded {
		recordRound(r.store, r.game, r.gameState, r.config.Seed)
		r.recorded = true
	}
	r.inputFrame.Clear()
}

func (r *round) view() string {
	r.game.Render(r.screen)
	return r.renderer.Render(r.screen)
}

// screenshot writes the current frame as plain text into dir and returns
// the file path.
func (r *round) screenshot(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	r.game.Render(r.screen)
	name := fmt.Sprintf("%s_%s.txt", r.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(r.screen.String()+"\n"), 0o600)
}

// summarizer is implemented by games that can describe a finished round.
type summarizer interface {
	Summary() core.RunSummary
}

// recordRound persists a finished round. Scores of zero are not kept on the
// leaderboard but still land in the run history.
func recordRound(store *storage.Store, game registry.Game, state core.GameState, seed int64) {
	if store == nil {
		return
	}
	if state.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		store.SaveScore(game.ID(), state.Score)
	}

	sg, ok := game.(summarizer)
	if !ok {
		return
	}
	sum := sg.Summary()
	//nolint:errcheck // Best-effort save, game continues regardless
	store.SaveRun(storage.Run{
		GameID:       game.ID(),
		Seed:         seed,
		Score:        state.Score,
		ClaimedTiles: sum.ClaimedTiles,
		Outcome:      sum.Outcome,
		Elapsed:      sum.Elapsed,
		Ticks:        sum.Ticks,
		Difficulty:   sum.Difficulty,
		Hash:         sum.Hash,
	})
}
