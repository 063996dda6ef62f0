package sim

import (
	"testing"

	"github.com/vovakirdan/skyclaim/internal/core"
)

type stormHostStub struct {
	claimed    map[TileID]bool
	tileDamage map[TileID]float64
	shipDamage float64
}

func newStormHostStub(claimed ...TileID) *stormHostStub {
	h := &stormHostStub{claimed: make(map[TileID]bool), tileDamage: make(map[TileID]float64)}
	for _, id := range claimed {
		h.claimed[id] = true
	}
	return h
}

func (h *stormHostStub) tileClaimed(id TileID) bool           { return h.claimed[id] }
func (h *stormHostStub) damageTile(id TileID, amount float64) { h.tileDamage[id] += amount }
func (h *stormHostStub) damageShip(amount float64)            { h.shipDamage += amount }

func testArea() core.RectF {
	return core.RectF{Min: core.Vec2{X: -5, Y: -5}, Max: core.Vec2{X: 5, Y: 5}}
}

func newTestSpawner(params StormParams, host stormHost) (*StormSpawner, *EntityPool) {
	pool := NewEntityPool(params.Template)
	return NewStormSpawner(params, 77, pool, host, testArea, discardLogger()), pool
}

func TestStormSpawnerTiming(t *testing.T) {
	params := DefaultStormParams()
	params.SpawnDelay = 2
	sp, pool := newTestSpawner(params, newStormHostStub())

	sp.Tick(1)
	if len(sp.Storms()) != 0 {
		t.Fatal("storm spawned before the delay")
	}
	sp.Tick(1)
	if len(sp.Storms()) != 1 {
		t.Fatalf("storms = %d after the delay, want 1", len(sp.Storms()))
	}

	sp.Tick(4.5)
	storms := sp.Storms()
	if len(storms) != 2 || storms[1].ID() != 2 {
		t.Fatalf("a long frame spawned %d storms, want exactly one more", len(storms))
	}
	if !almostEqual(sp.TimeToNext(), 1.5) {
		t.Errorf("TimeToNext() = %v, want 1.5", sp.TimeToNext())
	}
	if pool.Live() != 2 {
		t.Errorf("live entities = %d, want 2", pool.Live())
	}
}

func TestStormSpawnerDisabled(t *testing.T) {
	params := DefaultStormParams()
	params.SpawnDelay = 0
	sp, _ := newTestSpawner(params, newStormHostStub())

	for range 100 {
		sp.Tick(1)
	}
	if len(sp.Storms()) != 0 {
		t.Errorf("storms = %d with spawning disabled", len(sp.Storms()))
	}
}

func TestStormRandomizedWithinRanges(t *testing.T) {
	params := DefaultStormParams()
	sp, _ := newTestSpawner(params, newStormHostStub())
	sp.SetStrengthScale(2)

	for range 50 {
		s := sp.Spawn()
		if s.Duration() < params.MinDuration || s.Duration() >= params.MaxDuration {
			t.Errorf("duration %v out of range", s.Duration())
		}
		if s.Speed() < params.MinSpeed || s.Speed() >= params.MaxSpeed {
			t.Errorf("speed %v out of range", s.Speed())
		}
		if s.Strength() < 2*params.MinStrength || s.Strength() >= 2*params.MaxStrength {
			t.Errorf("scaled strength %v out of range", s.Strength())
		}
		if !almostEqual(s.Direction().Len(), 1) {
			t.Errorf("direction %v is not a unit vector", s.Direction())
		}
		if !testArea().Contains(s.Position()) {
			t.Errorf("spawned outside the area at %v", s.Position())
		}
	}
}

func TestStormDeterminism(t *testing.T) {
	a, _ := newTestSpawner(DefaultStormParams(), newStormHostStub())
	b, _ := newTestSpawner(DefaultStormParams(), newStormHostStub())

	for range 5 {
		sa, sb := a.Spawn(), b.Spawn()
		if sa.Position() != sb.Position() || sa.Direction() != sb.Direction() ||
			sa.Strength() != sb.Strength() || sa.Duration() != sb.Duration() {
			t.Fatal("same seed produced different storms")
		}
	}
}

func TestStormDamagesOverlaps(t *testing.T) {
	host := newStormHostStub(1)
	sp, _ := newTestSpawner(DefaultStormParams(), host)
	s := sp.Spawn()

	sp.Enter(s.ID(), ShipTarget)
	sp.Enter(s.ID(), TileTarget(1))
	sp.Enter(s.ID(), TileTarget(2))

	if got := s.HitTiles(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("HitTiles() = %v, want only the claimed tile", got)
	}

	start := s.Position()
	s.tick(0.5, host)
	want := 0.5 * s.Strength()
	if !almostEqual(host.shipDamage, want) || !almostEqual(host.tileDamage[1], want) {
		t.Errorf("damage ship=%v tile=%v, want %v", host.shipDamage, host.tileDamage[1], want)
	}
	if host.tileDamage[2] != 0 {
		t.Error("unclaimed tile took damage")
	}
	moved := s.Position().Sub(start).Len()
	if !almostEqual(moved, 0.5*s.Speed()) {
		t.Errorf("moved %v, want %v", moved, 0.5*s.Speed())
	}

	sp.Exit(s.ID(), ShipTarget)
	sp.Exit(s.ID(), TileTarget(1))
	s.tick(0.5, host)
	if !almostEqual(host.shipDamage, want) || !almostEqual(host.tileDamage[1], want) {
		t.Error("damage continued after exit")
	}
}

func TestStormExpiresWithoutDamage(t *testing.T) {
	host := newStormHostStub()
	params := DefaultStormParams()
	params.SpawnDelay = 1000
	sp, pool := newTestSpawner(params, host)
	s := sp.Spawn()
	sp.Enter(s.ID(), ShipTarget)

	sp.Tick(s.Duration() + 0.1)
	if len(sp.Storms()) != 0 || pool.Live() != 0 {
		t.Fatalf("expired storm still alive: storms=%d live=%d", len(sp.Storms()), pool.Live())
	}
	if host.shipDamage != 0 {
		t.Errorf("expired storm dealt %v damage", host.shipDamage)
	}

	sp.Enter(s.ID(), ShipTarget)
}

func TestStormMissingTemplate(t *testing.T) {
	params := DefaultStormParams()
	sp := NewStormSpawner(params, 1, NewEntityPool(), newStormHostStub(), testArea, discardLogger())
	if s := sp.Spawn(); s != nil {
		t.Error("storm spawned without a template")
	}
}

func TestStormSpawnerClear(t *testing.T) {
	sp, pool := newTestSpawner(DefaultStormParams(), newStormHostStub())
	sp.Spawn()
	sp.Spawn()
	sp.Clear()
	if len(sp.Storms()) != 0 || pool.Live() != 0 {
		t.Errorf("Clear left storms=%d live=%d", len(sp.Storms()), pool.Live())
	}
	if sp.TimeToNext() != sp.Params().SpawnDelay {
		t.Errorf("TimeToNext() = %v, want a full delay", sp.TimeToNext())
	}
}
