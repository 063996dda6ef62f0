package sim

import (
	"math"

	"github.com/vovakirdan/skyclaim/internal/core"
)

// ShipParams holds the spaceship tuning.
type ShipParams struct {
	MoveSpeed                float64 // units per second
	TurnSpeed                float64 // degrees per second
	LiftSpeed                float64 // lift cycles per second
	MinHeight                float64
	MaxHeight                float64
	MaxEnergy                float64
	ConsumptionRate          float64 // energy per second while moving airborne
	RechargeRate             float64 // energy per second while grounded
	LowEnergyThreshold       float64
	LowEnergySpeedMultiplier float64
	Radius                   float64 // collision footprint
}

// DefaultShipParams returns the stock spaceship tuning.
func DefaultShipParams() ShipParams {
	return ShipParams{
		MoveSpeed:                5,
		TurnSpeed:                25,
		LiftSpeed:                2,
		MinHeight:                0,
		MaxHeight:                2,
		MaxEnergy:                10,
		ConsumptionRate:          0.5,
		RechargeRate:             1,
		LowEnergyThreshold:       2,
		LowEnergySpeedMultiplier: 0.5,
		Radius:                   0.4,
	}
}

// minShipEnergy is the floor of the energy track. Damage may push energy
// slightly below zero so "at or below empty" can be tested with Epsilon.
const minShipEnergy = -1

// GroundQuery finds the claimed tile under a point.
type GroundQuery interface {
	ClaimedTileUnder(pos core.Vec2) (TileID, bool)
}

// Controls is the per-tick player intent.
type Controls struct {
	Move       float64 // -1 backward, 0 idle, +1 forward
	Turn       float64 // -1 left, +1 right
	ToggleLift bool
	ToggleBeam bool
}

// Ship is the player's spaceship and the single owner of its energy.
type Ship struct {
	params ShipParams
	events *Events
	ground GroundQuery
	bounds core.RectF

	pos     core.Vec2
	heading float64 // radians, 0 faces +x, y grows downward

	lift    float64 // 0 grounded .. 1 cruising height
	liftDir float64

	energy     float64
	lowEnergy  bool
	recharging bool

	boost      float64
	boostTimer float64

	landed       TileID
	cancelLanded func()
}

// NewShip creates a grounded spaceship with full energy.
func NewShip(params ShipParams, ground GroundQuery, events *Events) *Ship {
	s := &Ship{
		params: params,
		events: events,
		ground: ground,
		landed: InvalidTileID,
	}
	s.Reset(core.Vec2{}, InvalidTileID)
	return s
}

// SetBounds limits where the ship can fly.
func (s *Ship) SetBounds(b core.RectF) { s.bounds = b }

// SetGround replaces the claimed-tile query used for landing.
func (s *Ship) SetGround(q GroundQuery) { s.ground = q }

// Reset places the ship, grounded and fully charged, on the given tile.
func (s *Ship) Reset(pos core.Vec2, landedOn TileID) {
	s.unsubscribeLanded()
	s.pos = pos
	s.heading = -math.Pi / 2
	s.lift = 0
	s.liftDir = 0
	s.energy = s.params.MaxEnergy
	s.lowEnergy = s.energy < s.params.LowEnergyThreshold
	s.recharging = false
	s.boost = 1
	s.boostTimer = -1
	s.landed = InvalidTileID
	if landedOn != InvalidTileID {
		s.subscribeLanded(landedOn)
	}
}

// Position returns the ship position.
func (s *Ship) Position() core.Vec2 { return s.pos }

// Heading returns the facing angle in radians.
func (s *Ship) Heading() float64 { return s.heading }

// Energy returns the stored energy.
func (s *Ship) Energy() float64 { return s.energy }

// EnergyRatio returns energy / maxEnergy, clamped at 0.
func (s *Ship) EnergyRatio() float64 {
	if s.params.MaxEnergy <= 0 {
		return 0
	}
	return math.Max(s.energy, 0) / s.params.MaxEnergy
}

// Params returns the ship tuning.
func (s *Ship) Params() ShipParams { return s.params }

// LowEnergy reports whether energy-saving mode is active.
func (s *Ship) LowEnergy() bool { return s.lowEnergy }

// Recharging reports whether a recharge is in progress.
func (s *Ship) Recharging() bool { return s.recharging }

// Depleted reports whether energy is at or below zero.
func (s *Ship) Depleted() bool { return s.energy <= Epsilon }

// Grounded reports whether the ship sits on a tile.
func (s *Ship) Grounded() bool { return s.lift < Epsilon }

// Landing reports whether a landing descent is in progress.
func (s *Ship) Landing() bool { return s.liftDir < 0 }

// TakingOff reports whether a take-off climb is in progress.
func (s *Ship) TakingOff() bool { return s.liftDir > 0 }

// Height returns the current flight height.
func (s *Ship) Height() float64 {
	return core.Lerp(s.params.MinHeight, s.params.MaxHeight, s.lift)
}

// LandedTile returns the tile the ship is landing on or parked on.
func (s *Ship) LandedTile() TileID { return s.landed }

// SpeedMultiplier is the pickup boost combined with the low-energy penalty.
func (s *Ship) SpeedMultiplier() float64 {
	m := s.boost
	if s.lowEnergy {
		m *= s.params.LowEnergySpeedMultiplier
	}
	return m
}

// AddEnergy changes stored energy. Every energy change of the ship goes
// through here so saving-mode transitions are detected in one place.
func (s *Ship) AddEnergy(amount float64) {
	if amount == 0 {
		return
	}
	s.energy = core.Clamp(s.energy+amount, minShipEnergy, s.params.MaxEnergy)

	low := s.energy < s.params.LowEnergyThreshold
	if low != s.lowEnergy {
		s.lowEnergy = low
		if low {
			s.publish(ShipSavingModeActivated)
		} else {
			s.publish(ShipSavingModeDeactivated)
		}
	}
	s.publish(ShipEnergyChanged)
}

// SubtractEnergy is AddEnergy(-amount).
func (s *Ship) SubtractEnergy(amount float64) {
	s.AddEnergy(-amount)
}

// ApplySpeed sets a temporary speed multiplier.
func (s *Ship) ApplySpeed(multiplier, duration float64) {
	s.boost = multiplier
	s.boostTimer = duration
	if duration <= 0 {
		s.boost = 1
		s.boostTimer = -1
	}
}

// Pickup applies ship-side collectable effects.
func (s *Ship) Pickup(p Pickup) {
	switch p.Type {
	case CollectableShipEnergy:
		s.AddEnergy(p.Amount)
	case CollectableShipDamage:
		s.SubtractEnergy(p.Amount)
	case CollectableSpeedUp, CollectableSpeedDown:
		s.ApplySpeed(p.Multiplier, p.Duration)
	}
}

// Tick applies one frame of input, lift animation, movement and energy flow.
func (s *Ship) Tick(dt float64, c Controls) {
	if c.ToggleLift {
		s.ToggleLift()
	} else if c.Move > 0 && s.Grounded() && s.liftDir == 0 {
		s.TakeOff()
	}

	s.updateLift(dt)
	s.updateSpeedTimer(dt)

	if s.Grounded() {
		if s.liftDir == 0 {
			s.recharge(dt)
		}
		return
	}
	if s.liftDir != 0 {
		return
	}

	rad := s.params.TurnSpeed * math.Pi / 180
	s.heading = math.Remainder(s.heading+c.Turn*rad*dt, 2*math.Pi)

	if c.Move != 0 {
		fwd := core.Vec2{X: math.Cos(s.heading), Y: math.Sin(s.heading)}
		step := fwd.Scale(c.Move * s.params.MoveSpeed * s.SpeedMultiplier() * dt)
		s.pos = s.pos.Add(step)
		if s.bounds != (core.RectF{}) {
			s.pos = s.bounds.Clamp(s.pos)
		}
		s.consume(dt)
	}
}

// ToggleLift lands on the claimed tile below when flying, or takes off when
// grounded. Requests during a lift animation are ignored.
func (s *Ship) ToggleLift() {
	if s.liftDir != 0 {
		return
	}
	if s.Grounded() {
		s.TakeOff()
		return
	}
	if s.ground == nil {
		return
	}
	if id, ok := s.ground.ClaimedTileUnder(s.pos); ok {
		s.Land(id)
	}
}

// TakeOff starts climbing. It is allowed while grounded or while landing.
func (s *Ship) TakeOff() {
	if s.liftDir > 0 || (!s.Grounded() && s.liftDir == 0) {
		return
	}
	s.unsubscribeLanded()
	s.landed = InvalidTileID
	if s.recharging {
		s.recharging = false
		s.publish(ShipRechargeEnded)
	}
	s.liftDir = 1
	s.publish(ShipTakeOffStarted)
}

// Land starts descending onto tile id.
func (s *Ship) Land(id TileID) {
	if s.Grounded() || s.liftDir != 0 {
		return
	}
	s.subscribeLanded(id)
	s.liftDir = -1
	s.publish(ShipLandingStarted)
}

func (s *Ship) subscribeLanded(id TileID) {
	s.unsubscribeLanded()
	s.landed = id
	s.cancelLanded = s.events.Tile.Subscribe(id, func(ev TileEvent) {
		if ev.Kind == TileLost {
			s.TakeOff()
		}
	})
}

func (s *Ship) unsubscribeLanded() {
	if s.cancelLanded != nil {
		s.cancelLanded()
		s.cancelLanded = nil
	}
}

func (s *Ship) updateLift(dt float64) {
	if s.liftDir == 0 {
		return
	}
	s.lift += s.liftDir * s.params.LiftSpeed * dt
	switch {
	case s.lift >= 1:
		s.lift = 1
		s.liftDir = 0
		s.publish(ShipTakeOffEnded)
	case s.lift <= 0:
		s.lift = 0
		s.liftDir = 0
		s.publish(ShipLandingEnded)
	}
}

func (s *Ship) updateSpeedTimer(dt float64) {
	if s.boostTimer <= 0 {
		return
	}
	s.boostTimer -= dt
	if s.boostTimer <= 0 {
		s.boost = 1
		s.boostTimer = -1
	}
}

func (s *Ship) recharge(dt float64) {
	if s.energy >= s.params.MaxEnergy {
		if s.recharging {
			s.recharging = false
			s.publish(ShipRechargeEnded)
		}
		return
	}
	if !s.recharging {
		s.recharging = true
		s.publish(ShipRechargeStarted)
	}
	s.AddEnergy(s.params.RechargeRate * dt)
	if s.energy >= s.params.MaxEnergy {
		s.recharging = false
		s.publish(ShipRechargeEnded)
	}
}

// consume drains movement energy. Saving mode suspends the drain and the
// drain never pushes energy below zero.
func (s *Ship) consume(dt float64) {
	if s.lowEnergy {
		return
	}
	drain := math.Min(s.params.ConsumptionRate*dt, math.Max(s.energy, 0))
	if drain <= 0 {
		return
	}
	s.AddEnergy(-drain)
}

func (s *Ship) publish(kind ShipEventKind) {
	s.events.Ship.Publish(ShipEvent{Kind: kind, Ratio: s.EnergyRatio()})
}
