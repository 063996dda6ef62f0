package sim

import (
	"testing"

	"github.com/vovakirdan/skyclaim/internal/core"
)

type groundStub struct {
	id TileID
	ok bool
}

func (g groundStub) ClaimedTileUnder(core.Vec2) (TileID, bool) { return g.id, g.ok }

func newTestShip(params ShipParams) (*Ship, *Events, map[ShipEventKind]int) {
	events := &Events{}
	counts := make(map[ShipEventKind]int)
	events.Ship.Subscribe(func(ev ShipEvent) { counts[ev.Kind]++ })
	return NewShip(params, groundStub{}, events), events, counts
}

func airborne(s *Ship) {
	s.lift = 1
	s.liftDir = 0
}

func TestShipMovementDrain(t *testing.T) {
	tests := []struct {
		name      string
		maxEnergy float64
		threshold float64
		want      float64
	}{
		{"full tank", 10, 2, 8},
		{"small tank clamps at zero", 1.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultShipParams()
			p.MaxEnergy = tt.maxEnergy
			p.LowEnergyThreshold = tt.threshold
			s, _, _ := newTestShip(p)
			airborne(s)

			for range 80 {
				s.Tick(0.05, Controls{Move: 1})
			}
			if !almostEqual(s.Energy(), tt.want) {
				t.Errorf("Energy() = %v, want %v", s.Energy(), tt.want)
			}
		})
	}
}

func TestShipSavingModeEdgeTriggered(t *testing.T) {
	s, _, counts := newTestShip(DefaultShipParams())
	s.SubtractEnergy(5)
	if counts[ShipSavingModeActivated] != 0 {
		t.Fatal("saving mode entered above the threshold")
	}

	for range 8 {
		s.SubtractEnergy(0.5)
	}
	if !s.LowEnergy() {
		t.Fatal("ship not in saving mode at energy 1")
	}
	for range 8 {
		s.AddEnergy(0.5)
	}

	if counts[ShipSavingModeActivated] != 1 || counts[ShipSavingModeDeactivated] != 1 {
		t.Errorf("activated=%d deactivated=%d, want 1 and 1",
			counts[ShipSavingModeActivated], counts[ShipSavingModeDeactivated])
	}
	if s.LowEnergy() {
		t.Error("ship still in saving mode at energy 5")
	}
}

func TestShipSavingModeSuspendsDrain(t *testing.T) {
	s, _, _ := newTestShip(DefaultShipParams())
	airborne(s)
	s.SubtractEnergy(8.5)

	start := s.Position()
	for range 20 {
		s.Tick(0.1, Controls{Move: 1})
	}
	if !almostEqual(s.Energy(), 1.5) {
		t.Errorf("Energy() = %v, want 1.5", s.Energy())
	}

	moved := s.Position().Sub(start).Len()
	want := 2 * s.Params().MoveSpeed * s.Params().LowEnergySpeedMultiplier
	if !almostEqual(moved, want) {
		t.Errorf("moved %v, want %v at the saving-mode speed", moved, want)
	}
}

func TestShipEnergyFloor(t *testing.T) {
	s, _, _ := newTestShip(DefaultShipParams())
	s.SubtractEnergy(50)
	if s.Energy() != -1 {
		t.Errorf("Energy() = %v, want -1", s.Energy())
	}
	if !s.Depleted() {
		t.Error("Depleted() = false at the floor")
	}
	if s.EnergyRatio() != 0 {
		t.Errorf("EnergyRatio() = %v, want 0", s.EnergyRatio())
	}
}

func TestShipRechargeSignals(t *testing.T) {
	s, _, counts := newTestShip(DefaultShipParams())
	s.SubtractEnergy(5)

	for range 100 {
		s.Tick(0.1, Controls{})
	}

	if !almostEqual(s.Energy(), s.Params().MaxEnergy) {
		t.Errorf("Energy() = %v, want full", s.Energy())
	}
	if counts[ShipRechargeStarted] != 1 || counts[ShipRechargeEnded] != 1 {
		t.Errorf("recharge started=%d ended=%d, want 1 and 1",
			counts[ShipRechargeStarted], counts[ShipRechargeEnded])
	}
}

func TestShipLandingNeedsClaimedTile(t *testing.T) {
	s, _, counts := newTestShip(DefaultShipParams())
	airborne(s)

	s.ToggleLift()
	if s.Landing() {
		t.Fatal("landed without a claimed tile below")
	}

	s.SetGround(groundStub{id: 6, ok: true})
	s.ToggleLift()
	if !s.Landing() {
		t.Fatal("landing did not start over a claimed tile")
	}
	for range 10 {
		s.Tick(0.1, Controls{Turn: 1})
	}
	if !s.Grounded() || s.LandedTile() != 6 {
		t.Errorf("Grounded()=%v LandedTile()=%d", s.Grounded(), s.LandedTile())
	}
	if counts[ShipLandingStarted] != 1 || counts[ShipLandingEnded] != 1 {
		t.Errorf("landing started=%d ended=%d", counts[ShipLandingStarted], counts[ShipLandingEnded])
	}
}

func TestShipForcedTakeOffOnTileLoss(t *testing.T) {
	s, events, counts := newTestShip(DefaultShipParams())
	s.Reset(core.Vec2{}, 3)

	events.Tile.Publish(4, TileEvent{Kind: TileLost, ID: 4})
	if s.TakingOff() {
		t.Fatal("took off for a different tile")
	}

	events.Tile.Publish(3, TileEvent{Kind: TileLost, ID: 3})
	if !s.TakingOff() {
		t.Fatal("no forced take-off after the landed tile was lost")
	}
	if s.LandedTile() != InvalidTileID {
		t.Errorf("LandedTile() = %d after take-off", s.LandedTile())
	}
	if events.Tile.Has(3) {
		t.Error("still subscribed to the lost tile")
	}

	for range 10 {
		s.Tick(0.1, Controls{})
	}
	if counts[ShipTakeOffEnded] != 1 || s.Grounded() {
		t.Errorf("take-off ended=%d grounded=%v", counts[ShipTakeOffEnded], s.Grounded())
	}
}

func TestShipForwardInputTakesOff(t *testing.T) {
	s, _, _ := newTestShip(DefaultShipParams())
	start := s.Position()

	s.Tick(0.1, Controls{Move: 1})
	if !s.TakingOff() {
		t.Fatal("forward input did not start a take-off")
	}
	if s.Position() != start {
		t.Error("ship moved before reaching cruising height")
	}
}

func TestShipSpeedPickup(t *testing.T) {
	s, _, _ := newTestShip(DefaultShipParams())
	s.Pickup(Pickup{Type: CollectableSpeedUp, Multiplier: 1.5, Duration: 1})
	if s.SpeedMultiplier() != 1.5 {
		t.Fatalf("SpeedMultiplier() = %v, want 1.5", s.SpeedMultiplier())
	}
	for range 11 {
		s.Tick(0.1, Controls{})
	}
	if s.SpeedMultiplier() != 1 {
		t.Errorf("SpeedMultiplier() = %v after expiry, want 1", s.SpeedMultiplier())
	}

	s.Pickup(Pickup{Type: CollectableShipDamage, Amount: 9})
	if s.SpeedMultiplier() != s.Params().LowEnergySpeedMultiplier {
		t.Errorf("SpeedMultiplier() = %v in saving mode", s.SpeedMultiplier())
	}
}

func TestShipStaysInBounds(t *testing.T) {
	s, _, _ := newTestShip(DefaultShipParams())
	s.SetBounds(core.RectF{Min: core.Vec2{X: -2, Y: -2}, Max: core.Vec2{X: 2, Y: 2}})
	airborne(s)

	for range 50 {
		s.Tick(0.1, Controls{Move: 1})
	}
	if p := s.Position(); p.Y < -2 || p.Y > 2 || p.X < -2 || p.X > 2 {
		t.Errorf("ship left the bounds: %v", p)
	}
}
