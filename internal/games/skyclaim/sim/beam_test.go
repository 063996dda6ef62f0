package sim

import (
	"reflect"
	"testing"
)

func newTestBeam(t *testing.T) (*Beam, *Ship, *Grid) {
	t.Helper()
	g, events, _ := newTestGrid(smallGridParams(), 2)
	g.Activate()
	ship := NewShip(DefaultShipParams(), g, events)
	beam := NewBeam(DefaultBeamParams(), g, ship)
	events.Ship.Subscribe(beam.OnShip)
	return beam, ship, g
}

func TestBeamSplitsTransfer(t *testing.T) {
	beam, ship, g := newTestBeam(t)
	airborne(ship)
	beam.Reset()

	if !beam.TurnOn() {
		t.Fatal("beam refused to turn on while flying")
	}
	beam.Enter(0)
	beam.Enter(1)
	beam.Enter(1)

	if got := beam.Selected(); !reflect.DeepEqual(got, []TileID{0, 1}) {
		t.Fatalf("Selected() = %v, want [0 1]", got)
	}

	beam.Tick(1)
	for _, id := range []TileID{0, 1} {
		tile, _ := g.Tile(id)
		if !almostEqual(tile.Energy(), 0.5) {
			t.Errorf("tile %d energy = %v, want 0.5", id, tile.Energy())
		}
		if !tile.Selected() {
			t.Errorf("tile %d not marked selected", id)
		}
	}
	if !almostEqual(ship.Energy(), 9) {
		t.Errorf("ship energy = %v, want 9", ship.Energy())
	}

	beam.Exit(0)
	beam.Tick(1)
	tile, _ := g.Tile(1)
	if !almostEqual(tile.Energy(), 1.5) {
		t.Errorf("remaining tile energy = %v, want 1.5", tile.Energy())
	}
}

func TestBeamIgnoresTilesWhileOff(t *testing.T) {
	beam, ship, g := newTestBeam(t)
	airborne(ship)
	beam.Reset()

	beam.Enter(3)
	beam.Tick(1)
	if len(beam.Selected()) != 0 {
		t.Errorf("Selected() = %v while off", beam.Selected())
	}
	if ship.Energy() != ship.Params().MaxEnergy {
		t.Error("disabled beam drained the ship")
	}

	beam.TurnOn()
	beam.Enter(3)
	beam.TurnOff()
	tile, _ := g.Tile(3)
	if tile.Selected() || len(beam.Selected()) != 0 {
		t.Error("TurnOff kept the selection")
	}
}

func TestBeamSavingModeLock(t *testing.T) {
	beam, ship, _ := newTestBeam(t)
	airborne(ship)
	beam.Reset()
	beam.TurnOn()

	ship.SubtractEnergy(9)
	if beam.Enabled() || !beam.Locked() {
		t.Fatal("beam still usable in saving mode")
	}
	if beam.TurnOn() {
		t.Error("TurnOn succeeded while locked")
	}

	ship.AddEnergy(5)
	if beam.Locked() {
		t.Error("beam still locked after saving mode ended")
	}
	if !beam.TurnOn() {
		t.Error("TurnOn failed after unlock")
	}
}

func TestBeamLandingLock(t *testing.T) {
	beam, ship, g := newTestBeam(t)
	landing, _ := g.LandingTile()
	ship.Reset(landing.Position(), landing.ID())
	beam.Reset()

	if !beam.Locked() {
		t.Fatal("beam unlocked on the landing pad")
	}

	ship.TakeOff()
	if !beam.Locked() {
		t.Fatal("beam unlocked before take-off ended")
	}
	for range 10 {
		ship.Tick(0.1, Controls{})
	}
	if beam.Locked() {
		t.Fatal("beam locked after take-off ended")
	}

	beam.TurnOn()
	ship.ToggleLift()
	if !ship.Landing() {
		t.Fatal("landing did not start over the landing tile")
	}
	if beam.Enabled() || !beam.Locked() {
		t.Error("beam usable during landing")
	}
}

func TestBeamToggle(t *testing.T) {
	beam, ship, _ := newTestBeam(t)
	airborne(ship)
	beam.Reset()

	beam.Toggle()
	if !beam.Enabled() {
		t.Fatal("Toggle did not turn the beam on")
	}
	beam.Toggle()
	if beam.Enabled() {
		t.Fatal("Toggle did not turn the beam off")
	}
}
