package sim

import (
	"errors"
	"reflect"
	"testing"
)

func newTestWorld(t *testing.T, mutate func(*Config)) (*World, *EntityPool) {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	pool := NewEntityPool(cfg.Templates()...)
	return NewWorld(cfg, pool, WithLogger(discardLogger())), pool
}

// fly starts the game and lifts the ship to cruising height.
func fly(t *testing.T, w *World) {
	t.Helper()
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Tick(0.1, Controls{Move: 1})
	for range 6 {
		w.Tick(0.1, Controls{})
	}
	if w.Ship().Grounded() || w.Beam().Locked() {
		t.Fatal("ship did not take off")
	}
}

func TestWorldLifecycle(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	if w.Phase() != PhaseCreated {
		t.Fatalf("Phase() = %v, want created", w.Phase())
	}
	if w.Grid().Length() != w.Config().Grid.InitialLength {
		t.Errorf("first activation length = %d", w.Grid().Length())
	}

	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if w.Phase() != PhaseStarted || !w.Running() {
		t.Fatalf("Phase() = %v after Start", w.Phase())
	}
	if w.Grid().Length() != w.Config().Grid.MaxLength {
		t.Errorf("loaded length = %d, want %d", w.Grid().Length(), w.Config().Grid.MaxLength)
	}
	landing, ok := w.Grid().LandingTile()
	if !ok {
		t.Fatal("no landing tile")
	}
	if w.Ship().Position() != landing.Position() || w.Ship().LandedTile() != landing.ID() {
		t.Error("ship not parked on the landing tile")
	}
	if !w.Beam().Locked() {
		t.Error("beam usable while parked")
	}

	if err := w.Pause(); err != nil {
		t.Fatal(err)
	}
	w.Tick(1, Controls{Move: 1})
	if w.Elapsed() != 0 {
		t.Error("paused world advanced")
	}
	if err := w.Resume(); err != nil {
		t.Fatal(err)
	}
	w.Tick(1, Controls{})
	if w.Elapsed() != 1 {
		t.Errorf("Elapsed() = %v, want 1", w.Elapsed())
	}

	if err := w.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start while running: %v, want ErrInvalidTransition", err)
	}
}

func TestWorldClaimThroughBeam(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	fly(t, w)

	var target *Tile
	for _, tile := range w.Grid().Tiles() {
		if !tile.LandingArea() {
			target = tile
			break
		}
	}

	w.Tick(0.1, Controls{ToggleBeam: true})
	if !w.Beam().Enabled() {
		t.Fatal("beam did not turn on")
	}
	w.BeamEnter(target.ID())
	for range 40 {
		w.Tick(0.1, Controls{})
	}

	if !target.Claimed() {
		t.Fatalf("tile not claimed, energy=%v", target.Energy())
	}
	if w.Score().ClaimedTiles() != 1 || w.Score().DisplayedClaimedTiles() != 2 {
		t.Errorf("claimed=%d displayed=%d", w.Score().ClaimedTiles(), w.Score().DisplayedClaimedTiles())
	}
	if w.Ship().Energy() >= w.Config().Ship.MaxEnergy-3 {
		t.Errorf("beam did not drain the ship: %v", w.Ship().Energy())
	}
}

func TestWorldFailsWhenDepletedInFlight(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	fly(t, w)

	w.Ship().SubtractEnergy(20)
	w.Tick(0.1, Controls{})

	if w.Phase() != PhaseEnded || w.Outcome() != OutcomeFailed {
		t.Errorf("phase=%v outcome=%v, want ended/failed", w.Phase(), w.Outcome())
	}
	if w.Beam().Enabled() {
		t.Error("beam still on after the game ended")
	}
}

func TestWorldRoundTimer(t *testing.T) {
	w, _ := newTestWorld(t, func(c *Config) { c.RoundTime = 1 })
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	for range 11 {
		w.Tick(0.1, Controls{})
	}
	if w.Phase() != PhaseEnded || w.Outcome() != OutcomeCompleted {
		t.Errorf("phase=%v outcome=%v, want ended/completed", w.Phase(), w.Outcome())
	}
	if w.Remaining() != 0 {
		t.Errorf("Remaining() = %v, want 0", w.Remaining())
	}

	endless, _ := newTestWorld(t, func(c *Config) { c.RoundTime = 0 })
	if endless.Remaining() != -1 {
		t.Errorf("endless Remaining() = %v, want -1", endless.Remaining())
	}
}

func TestWorldRestart(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	var phases []PhaseEvent
	w.Events().Phase.Subscribe(func(ev PhaseEvent) { phases = append(phases, ev) })

	if err := w.Restart(); err != nil {
		t.Fatal(err)
	}
	if err := w.Restart(); err != nil {
		t.Fatal(err)
	}

	want := []PhaseEvent{
		{Phase: PhaseLoading},
		{Phase: PhaseStarted},
		{Phase: PhaseEnded, Outcome: OutcomeAborted},
		{Phase: PhaseLoading},
		{Phase: PhaseStarted},
	}
	if !reflect.DeepEqual(phases, want) {
		t.Errorf("phases = %+v, want %+v", phases, want)
	}
}

func TestWorldPickupsApply(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	landing, _ := w.Grid().LandingTile()

	c := w.Collectables().Spawn(landing.ID(), CollectableKind{
		Type: CollectableLargePoints, Template: "pickup.large_points", Points: 50,
	}, 10)
	if c == nil {
		t.Fatal("spawn failed")
	}
	if !w.CollectableEnter(c.ID) {
		t.Fatal("CollectableEnter failed")
	}
	if w.Score().Total() != 50 {
		t.Errorf("Total() = %d, want 50", w.Score().Total())
	}

	d := w.Collectables().Spawn(landing.ID(), CollectableKind{
		Type: CollectableShipDamage, Template: "pickup.ship_damage", Amount: 4,
	}, 10)
	w.CollectableEnter(d.ID)
	if !almostEqual(w.Ship().Energy(), w.Config().Ship.MaxEnergy-4) {
		t.Errorf("ship energy = %v after damage pickup", w.Ship().Energy())
	}
}

func TestWorldStormHitsShip(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	s := w.Storms().Spawn()
	w.StormEnter(s.ID(), ShipTarget)
	w.Tick(0.1, Controls{})
	if w.Ship().Energy() >= w.Config().Ship.MaxEnergy {
		t.Error("storm did not damage the ship")
	}

	calm, _ := newTestWorld(t, func(c *Config) {
		c.StormsEnabled = false
		c.Storms.SpawnDelay = 0.1
	})
	if err := calm.Start(); err != nil {
		t.Fatal(err)
	}
	for range 20 {
		calm.Tick(0.1, Controls{})
	}
	if len(calm.Storms().Storms()) != 0 {
		t.Error("storms spawned with storms disabled")
	}
}

func TestWorldDestroyReleasesEntities(t *testing.T) {
	w, pool := newTestWorld(t, nil)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.Storms().Spawn()
	if pool.Live() == 0 {
		t.Fatal("nothing spawned")
	}
	if err := w.Destroy(); err != nil {
		t.Fatal(err)
	}
	if pool.Live() != 0 {
		t.Errorf("live entities after destroy = %d", pool.Live())
	}
}

func TestWorldDestroyDropsSubscribers(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	var phases []Phase
	cancel := w.Events().Phase.Subscribe(func(e PhaseEvent) { phases = append(phases, e.Phase) })
	w.Events().Score.Subscribe(func(ScoreEvent) {})

	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Destroy(); err != nil {
		t.Fatal(err)
	}
	if len(phases) == 0 || phases[len(phases)-1] != PhaseDestroyed {
		t.Errorf("phases = %v, want destroyed last", phases)
	}
	if n := w.Events().Phase.Len() + w.Events().Score.Len(); n != 0 {
		t.Errorf("subscribers after destroy = %d, want 0", n)
	}
	cancel() // already dropped; must not panic
}

func TestWorldDeterminism(t *testing.T) {
	script := func(i int) Controls {
		c := Controls{}
		switch {
		case i < 20:
			c.Move = 1
		case i < 60:
			c.Move = 1
			c.Turn = 1
		case i == 60:
			c.ToggleBeam = true
		default:
			c.Move = -1
		}
		return c
	}

	run := func() Snapshot {
		w, _ := newTestWorld(t, func(c *Config) {
			c.RunSeed = 42
			c.Storms.SpawnDelay = 2
		})
		if err := w.Start(); err != nil {
			t.Fatal(err)
		}
		for i := range 300 {
			w.Tick(1.0/30, script(i))
		}
		return w.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("hashes differ: %d vs %d", a.Hash(), b.Hash())
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("snapshots differ")
	}
	if len(a.Storms) == 0 {
		t.Error("expected storms in the scripted run")
	}
}

func TestWorldRunSeedChangesLayout(t *testing.T) {
	layout := func(seed uint64) []CellIndex {
		w, _ := newTestWorld(t, func(c *Config) { c.RunSeed = seed })
		if err := w.Start(); err != nil {
			t.Fatal(err)
		}
		return w.Snapshot().Obstacles
	}
	if reflect.DeepEqual(layout(1), layout(2)) && reflect.DeepEqual(layout(2), layout(3)) {
		t.Error("run seed does not affect generation")
	}
}

func TestNewWorldPanicsWithoutSpawner(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewWorld(nil spawner) did not panic")
		}
	}()
	NewWorld(DefaultConfig(), nil)
}
