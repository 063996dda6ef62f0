// Package skyclaim plugs the tile-claiming simulation into the arcade
// registry: it loads configuration, maps input to ship controls, resolves
// trigger overlaps and renders the world to a character screen.
package skyclaim

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclaim/internal/config"
	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/games/skyclaim/sim"
	"github.com/vovakirdan/skyclaim/internal/registry"
)

// Mode represents the game mode.
type Mode int

const (
	ModeStorm Mode = iota // Timed round with storms
	ModeCalm              // Endless, no storms
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

var logger = log.New(io.Discard)

// observer is called with every world a game builds.
var observer func(*sim.World)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger routes simulation logs to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetWorldObserver registers fn to be called whenever a game builds a new
// world, e.g. to attach a live feed. Pass nil to remove it.
func SetWorldObserver(fn func(*sim.World)) {
	observer = fn
}

// Game implements the registry game on top of sim.World.
type Game struct {
	mode Mode

	runtime    core.RuntimeConfig
	cfg        config.SkyclaimConfig
	difficulty *config.DifficultyManager
	loadErr    error

	pool     *sim.EntityPool
	world    *sim.World
	triggers *Triggers

	dt        float64
	holdTicks int
	held      map[core.Action]int

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a timed round with storms.
func New() *Game {
	return &Game{mode: ModeStorm}
}

// NewCalm creates an endless round without storms.
func NewCalm() *Game {
	return &Game{mode: ModeCalm}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeCalm {
		return "skyclaim_calm"
	}
	return "skyclaim"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeCalm {
		return "Skyclaim (Calm)"
	}
	return "Skyclaim"
}

// Reset builds a fresh world from the loaded configuration and starts it.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSkyclaim(configPath)
	g.loadErr = err
	if err != nil {
		logger.Warn("falling back to default config", "path", configPath, "error", err)
		cfg = config.DefaultSkyclaimConfig()
	}

	if difficultyPreset != "" {
		config.ApplySkyclaimPreset(&cfg, difficultyPreset)
	}
	if g.mode == ModeCalm {
		cfg.Storms.Enabled = false
		cfg.Round.Time = 0
	}

	simCfg, err := SimConfig(cfg, uint64(runtime.Seed)) //#nosec G115 -- seed bits are reinterpreted, not measured
	if err != nil {
		g.loadErr = err
		logger.Warn("falling back to default config", "error", err)
		cfg = config.DefaultSkyclaimConfig()
		simCfg, _ = SimConfig(cfg, uint64(runtime.Seed)) //#nosec G115
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.dt = runtime.TickDuration()
	g.holdTicks = max(1, int(0.25/g.dt))
	g.held = make(map[core.Action]int)

	span := cfg.Grid.MaxLength + 2 // grid plus boundary ring
	g.minScreenW = max(span*2+2, 40)
	g.minScreenH = span + hudHeight + 1
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	if g.world != nil {
		if err := g.world.Destroy(); err != nil {
			logger.Debug("previous world already destroyed", "error", err)
		}
	}
	if g.triggers == nil {
		g.triggers = NewTriggers()
	}
	g.triggers.Reset()

	g.pool = sim.NewEntityPool(simCfg.Templates()...)
	g.world = sim.NewWorld(simCfg, g.pool, sim.WithLogger(logger))
	g.world.Events().Phase.Subscribe(func(ev sim.PhaseEvent) {
		if ev.Phase == sim.PhaseLoading {
			g.triggers.Reset()
		}
	})
	if observer != nil {
		observer(g.world)
	}
	if err := g.world.Start(); err != nil {
		logger.Error("cannot start world", "error", err)
	}
}

// Resize fits the running round to a new screen. The viewport is derived
// from the screen every frame, so only the size check changes; a round that
// no longer fits is held until the window grows again.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.world == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.world.Phase() == sim.PhaseEnded {
		clear(g.held)
		if err := g.world.Restart(); err != nil {
			logger.Error("cannot restart", "error", err)
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		var err error
		switch g.world.Phase() {
		case sim.PhaseStarted, sim.PhaseResumed:
			err = g.world.Pause()
		case sim.PhasePaused:
			err = g.world.Resume()
		}
		if err != nil {
			logger.Error("cannot toggle pause", "error", err)
		}
	}

	if !g.world.Running() {
		return core.StepResult{State: g.State()}
	}

	controls := g.controls(in)

	progress := config.Progress{
		Score: int(g.world.Score().Total()), //#nosec G115 -- scores stay far below MaxInt
		Ticks: int(g.world.Ticks()),         //#nosec G115
		Tiles: g.world.Score().ClaimedTiles(),
	}
	g.world.SetStormScaling(
		g.difficulty.StormStrength(progress),
		g.difficulty.SpawnDelay(g.cfg.Storms.SpawnDelay, progress),
	)

	g.world.Tick(g.dt, controls)
	g.triggers.Update(g.world, g.world)

	return core.StepResult{State: g.State()}
}

// controls turns one frame of key presses into ship intent. Terminals only
// report repeats for held keys, so movement keys stay active for a short
// hold window after each press.
func (g *Game) controls(in core.InputFrame) sim.Controls {
	for _, a := range []core.Action{core.ActionForward, core.ActionBackward, core.ActionTurnLeft, core.ActionTurnRight} {
		if in.Has(a) {
			g.held[a] = g.holdTicks
		}
	}
	active := func(a core.Action) float64 {
		if g.held[a] <= 0 {
			return 0
		}
		g.held[a]--
		return 1
	}

	return sim.Controls{
		Move:       active(core.ActionForward) - active(core.ActionBackward),
		Turn:       active(core.ActionTurnRight) - active(core.ActionTurnLeft),
		ToggleLift: in.Has(core.ActionLand),
		ToggleBeam: in.Has(core.ActionBeam),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    int(g.world.Score().Total()), //#nosec G115 -- scores stay far below MaxInt
		GameOver: g.world.Phase() == sim.PhaseEnded,
		Paused:   g.world.Phase() == sim.PhasePaused,
	}
}

// World exposes the running simulation.
func (g *Game) World() *sim.World { return g.world }

// Snapshot returns the current world state.
func (g *Game) Snapshot() sim.Snapshot { return g.world.Snapshot() }

// Outcome returns how the last round ended.
func (g *Game) Outcome() sim.Outcome {
	if g.world == nil {
		return sim.OutcomeNone
	}
	return g.world.Outcome()
}

// Summary describes the current round for the run history.
func (g *Game) Summary() core.RunSummary {
	if g.world == nil {
		return core.RunSummary{}
	}
	snap := g.world.Snapshot()
	preset := string(difficultyPreset)
	if preset == "" {
		preset = string(config.DifficultyNormal)
	}
	return core.RunSummary{
		ClaimedTiles: g.world.Score().ClaimedTiles(),
		Outcome:      g.world.Outcome().String(),
		Elapsed:      g.world.Elapsed(),
		Ticks:        int64(g.world.Ticks()), //#nosec G115 -- rounds never reach MaxInt64 ticks
		Difficulty:   preset,
		Hash:         snap.Hash(),
	}
}

// ConfigError returns the error that forced a fallback to the default
// configuration on the last Reset, if any.
func (g *Game) ConfigError() error { return g.loadErr }

// Register the games with the registry
func init() {
	registry.Register("skyclaim", func() registry.Game {
		return New()
	})
	registry.Register("skyclaim_calm", func() registry.Game {
		return NewCalm()
	})
}
