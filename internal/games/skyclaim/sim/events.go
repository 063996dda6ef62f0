package sim

import "github.com/vovakirdan/skyclaim/internal/bus"

// Epsilon is the tolerance used for "empty", "grounded" and "depleted" checks.
const Epsilon = 1e-6

// TileID identifies a tile as row*gridLength + col.
type TileID int

// InvalidTileID marks "no tile".
const InvalidTileID TileID = -1

// TileEventKind enumerates tile notifications.
type TileEventKind uint8

const (
	TileClaimed TileEventKind = iota + 1
	TileLost
	TileSelected
	TileDeselected
	TileEnergyChanged
)

// String returns the notification name.
func (k TileEventKind) String() string {
	switch k {
	case TileClaimed:
		return "tile_claimed"
	case TileLost:
		return "tile_lost"
	case TileSelected:
		return "tile_selected"
	case TileDeselected:
		return "tile_deselected"
	case TileEnergyChanged:
		return "tile_energy_changed"
	default:
		return "tile_unknown"
	}
}

// TileEvent is published by a tile on the global tile channel and, for
// claim changes, on its own addressed channel.
type TileEvent struct {
	Kind  TileEventKind
	ID    TileID
	Ratio float64 // energy / maxEnergy, set for TileEnergyChanged
}

// ShipEventKind enumerates spaceship notifications.
type ShipEventKind uint8

const (
	ShipSavingModeActivated ShipEventKind = iota + 1
	ShipSavingModeDeactivated
	ShipRechargeStarted
	ShipRechargeEnded
	ShipLandingStarted
	ShipLandingEnded
	ShipTakeOffStarted
	ShipTakeOffEnded
	ShipEnergyChanged
)

// String returns the notification name.
func (k ShipEventKind) String() string {
	switch k {
	case ShipSavingModeActivated:
		return "saving_mode_activated"
	case ShipSavingModeDeactivated:
		return "saving_mode_deactivated"
	case ShipRechargeStarted:
		return "recharge_started"
	case ShipRechargeEnded:
		return "recharge_ended"
	case ShipLandingStarted:
		return "landing_started"
	case ShipLandingEnded:
		return "landing_ended"
	case ShipTakeOffStarted:
		return "takeoff_started"
	case ShipTakeOffEnded:
		return "takeoff_ended"
	case ShipEnergyChanged:
		return "ship_energy_changed"
	default:
		return "ship_unknown"
	}
}

// ShipEvent is published by the spaceship.
type ShipEvent struct {
	Kind  ShipEventKind
	Ratio float64 // energy / maxEnergy, clamped at 0
}

// ScoreEventKind enumerates score notifications.
type ScoreEventKind uint8

const (
	ScoreChanged ScoreEventKind = iota + 1
	ClaimedTilesChanged
)

// ScoreEvent carries the current totals.
type ScoreEvent struct {
	Kind         ScoreEventKind
	Total        uint64
	ClaimedTiles int
}

// LayoutEvent is published once a grid generation pass finishes.
type LayoutEvent struct {
	GridLength int
	Tiles      int
	Obstacles  int
}

// PhaseEvent is published on every game phase transition.
type PhaseEvent struct {
	Phase   Phase
	Outcome Outcome
}

// Pickup describes an applied collectable effect.
type Pickup struct {
	Type       CollectableType
	Amount     float64
	Duration   float64
	Multiplier float64
	Points     uint64
}

// Events groups the notification channels of one world.
type Events struct {
	Phase   bus.Bus[PhaseEvent]
	Layout  bus.Bus[LayoutEvent]
	Tiles   bus.Bus[TileEvent]
	Tile    bus.Keyed[TileID, TileEvent]
	Ship    bus.Bus[ShipEvent]
	Pickups bus.Bus[Pickup]
	Score   bus.Bus[ScoreEvent]
}

// Reset drops every subscriber from every channel.
func (e *Events) Reset() {
	e.Phase.Reset()
	e.Layout.Reset()
	e.Tiles.Reset()
	e.Tile.Reset()
	e.Ship.Reset()
	e.Pickups.Reset()
	e.Score.Reset()
}
