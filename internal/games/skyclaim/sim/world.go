package sim

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclaim/internal/core"
)

// Config gathers every component's tuning and the generator seeds.
type Config struct {
	Grid         GridParams
	Ship         ShipParams
	Beam         BeamParams
	Storms       StormParams
	Collectables CollectableParams
	Score        ScoreParams

	GridSeed        uint64
	StormSeed       uint64
	CollectableSeed uint64
	RunSeed         uint64 // mixed into every generator seed

	StormsEnabled bool
	RoundTime     float64 // seconds, 0 = endless
}

// DefaultConfig returns the stock game.
func DefaultConfig() Config {
	return Config{
		Grid:            DefaultGridParams(),
		Ship:            DefaultShipParams(),
		Beam:            DefaultBeamParams(),
		Storms:          DefaultStormParams(),
		Collectables:    DefaultCollectableParams(),
		Score:           DefaultScoreParams(),
		GridSeed:        1234,
		StormSeed:       1234,
		CollectableSeed: 1234,
		StormsEnabled:   true,
		RoundTime:       180,
	}
}

// Templates lists every template the world may spawn.
func (c Config) Templates() []string {
	out := c.Grid.Templates()
	out = append(out, c.Storms.Template)
	out = append(out, c.Collectables.Templates()...)
	return out
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the world logger.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithOverlapQuery replaces the grid lookup used to resolve landing targets.
func WithOverlapQuery(q GroundQuery) Option {
	return func(w *World) {
		w.ground = q
	}
}

// World owns one game: its components, their buses and the phase sequence.
type World struct {
	cfg     Config
	log     *log.Logger
	spawner Spawner
	ground  GroundQuery

	events  Events
	seq     *Sequencer
	grid    *Grid
	ship    *Ship
	beam    *Beam
	storms  *StormSpawner
	pickups *CollectablePool
	score   *Score

	elapsed float64
	ticks   uint64
}

// NewWorld builds the components, wires their notifications and moves the
// game to PhaseCreated. It panics when spawner is nil.
func NewWorld(cfg Config, spawner Spawner, opts ...Option) *World {
	if spawner == nil {
		panic("sim: NewWorld requires a spawner")
	}

	w := &World{
		cfg:     cfg,
		log:     log.New(io.Discard),
		spawner: spawner,
	}
	for _, opt := range opts {
		opt(w)
	}

	ev := &w.events
	w.seq = NewSequencer(ev)
	w.grid = NewGrid(cfg.Grid, core.MixSeed(cfg.GridSeed, cfg.RunSeed), spawner, ev, w.log)
	if w.ground == nil {
		w.ground = w.grid
	}
	w.ship = NewShip(cfg.Ship, w.ground, ev)
	w.beam = NewBeam(cfg.Beam, w.grid, w.ship)
	w.storms = NewStormSpawner(cfg.Storms, core.MixSeed(cfg.StormSeed, cfg.RunSeed), spawner, w, w.grid.Bounds, w.log)
	w.pickups = NewCollectablePool(cfg.Collectables, core.MixSeed(cfg.CollectableSeed, cfg.RunSeed), spawner, w.grid, ev, w.log)
	w.score = NewScore(cfg.Score, ev)

	ev.Phase.Subscribe(w.onPhase)
	ev.Ship.Subscribe(w.beam.OnShip)
	ev.Tiles.Subscribe(w.score.OnTile)
	ev.Pickups.Subscribe(func(p Pickup) {
		w.ship.Pickup(p)
		w.grid.Pickup(p)
		w.score.AddPoints(p.Points)
	})

	if err := w.seq.Transition(PhaseCreated); err != nil {
		w.log.Error("cannot create world", "error", err)
	}
	return w
}

// onPhase fans a transition out to the components in a fixed order.
func (w *World) onPhase(ev PhaseEvent) {
	w.log.Debug("phase", "phase", ev.Phase, "outcome", ev.Outcome)

	switch ev.Phase {
	case PhaseCreated:
		w.grid.Activate()
	case PhaseLoading:
		w.grid.OnLoading()
		landing := InvalidTileID
		pos := core.Vec2{}
		if t, ok := w.grid.LandingTile(); ok {
			landing = t.ID()
			pos = t.Position()
		}
		w.ship.SetBounds(w.grid.Bounds())
		w.ship.Reset(pos, landing)
		w.beam.Reset()
		w.storms.Clear()
		w.pickups.Clear()
		w.score.Reset()
		w.elapsed = 0
		w.ticks = 0
	case PhaseStarted:
		w.pickups.Start()
	case PhasePaused:
		w.grid.Pause()
	case PhaseResumed:
		w.grid.Resume()
	case PhaseEnded:
		w.grid.End()
		w.beam.TurnOff()
		w.pickups.Stop()
	case PhaseDestroyed:
		w.pickups.Stop()
		w.pickups.Clear()
		w.storms.Clear()
		w.grid.Destroy()
	}
}

// Start loads a fresh layout and starts play. Valid from Created or Ended.
func (w *World) Start() error {
	if err := w.seq.Transition(PhaseLoading); err != nil {
		return err
	}
	return w.seq.Transition(PhaseStarted)
}

// Pause suspends play.
func (w *World) Pause() error { return w.seq.Transition(PhasePaused) }

// Resume continues a paused game.
func (w *World) Resume() error { return w.seq.Transition(PhaseResumed) }

// End finishes the current game.
func (w *World) End(o Outcome) error { return w.seq.End(o) }

// Restart aborts a running game, if any, and starts a new one.
func (w *World) Restart() error {
	if w.seq.Phase() != PhaseEnded && w.seq.Phase() != PhaseCreated {
		if err := w.seq.End(OutcomeAborted); err != nil {
			return err
		}
	}
	return w.Start()
}

// Destroy tears the world down. Every spawned entity is released and every
// subscriber dropped, so the world cannot be used afterwards.
func (w *World) Destroy() error {
	if err := w.seq.Transition(PhaseDestroyed); err != nil {
		return err
	}
	// Observers hold closures over the world; drop them with it.
	w.events.Reset()
	return nil
}

// Tick simulates one frame. It does nothing unless the game is running.
func (w *World) Tick(dt float64, c Controls) {
	if !w.seq.Running() || dt <= 0 {
		return
	}
	w.elapsed += dt
	w.ticks++

	w.ship.Tick(dt, c)
	if c.ToggleBeam {
		w.beam.Toggle()
	}
	w.beam.Tick(dt)
	if w.cfg.StormsEnabled {
		w.storms.Tick(dt)
	}
	w.pickups.Tick(dt)
	w.grid.Tick(dt)
	w.score.Tick(dt)

	switch {
	case w.ship.Depleted() && !w.ship.Grounded():
		w.end(OutcomeFailed)
	case w.cfg.RoundTime > 0 && w.elapsed >= w.cfg.RoundTime:
		w.end(OutcomeCompleted)
	}
}

func (w *World) end(o Outcome) {
	if err := w.seq.End(o); err != nil {
		w.log.Error("cannot end game", "error", err)
	}
}

// BeamEnter reports a tile entering the beam volume.
func (w *World) BeamEnter(id TileID) {
	if w.seq.Running() {
		w.beam.Enter(id)
	}
}

// BeamExit reports a tile leaving the beam volume.
func (w *World) BeamExit(id TileID) { w.beam.Exit(id) }

// StormEnter reports the ship or a tile entering a storm.
func (w *World) StormEnter(id StormID, t StormTarget) { w.storms.Enter(id, t) }

// StormExit reports the ship or a tile leaving a storm.
func (w *World) StormExit(id StormID, t StormTarget) { w.storms.Exit(id, t) }

// CollectableEnter reports the ship touching a collectable.
func (w *World) CollectableEnter(id CollectableID) bool {
	if !w.seq.Running() {
		return false
	}
	return w.pickups.Collect(id)
}

func (w *World) tileClaimed(id TileID) bool {
	t, ok := w.grid.Tile(id)
	return ok && t.Claimed()
}

func (w *World) damageTile(id TileID, amount float64) {
	if t, ok := w.grid.Tile(id); ok {
		t.SubtractEnergy(amount)
	}
}

func (w *World) damageShip(amount float64) { w.ship.SubtractEnergy(amount) }

// SetStormScaling applies difficulty to storms spawned from now on.
func (w *World) SetStormScaling(strength, spawnDelay float64) {
	w.storms.SetStrengthScale(strength)
	if spawnDelay > 0 {
		w.storms.SetSpawnDelay(spawnDelay)
	}
}

// Config returns the world configuration.
func (w *World) Config() Config { return w.cfg }

// Events exposes the notification buses for observers.
func (w *World) Events() *Events { return &w.events }

// Phase returns the current phase.
func (w *World) Phase() Phase { return w.seq.Phase() }

// Outcome returns how the last game ended.
func (w *World) Outcome() Outcome { return w.seq.Outcome() }

// Running reports whether the simulation advances on Tick.
func (w *World) Running() bool { return w.seq.Running() }

// Elapsed returns the seconds simulated in the current game.
func (w *World) Elapsed() float64 { return w.elapsed }

// Ticks returns the frames simulated in the current game.
func (w *World) Ticks() uint64 { return w.ticks }

// Remaining returns the round time left, or -1 for endless rounds.
func (w *World) Remaining() float64 {
	if w.cfg.RoundTime <= 0 {
		return -1
	}
	return max(w.cfg.RoundTime-w.elapsed, 0)
}

// Grid returns the tile grid.
func (w *World) Grid() *Grid { return w.grid }

// Ship returns the spaceship.
func (w *World) Ship() *Ship { return w.ship }

// Beam returns the beam.
func (w *World) Beam() *Beam { return w.beam }

// Storms returns the storm spawner.
func (w *World) Storms() *StormSpawner { return w.storms }

// Collectables returns the collectable pool.
func (w *World) Collectables() *CollectablePool { return w.pickups }

// Score returns the score keeper.
func (w *World) Score() *Score { return w.score }
