package sim

// BeamParams holds the beam tuning.
type BeamParams struct {
	TransferSpeed float64 // energy per second drawn from the ship
	Radius        float64 // trigger volume under the ship
}

// DefaultBeamParams returns the stock beam tuning.
func DefaultBeamParams() BeamParams {
	return BeamParams{TransferSpeed: 1, Radius: 0.9}
}

type tileLookup interface {
	Tile(id TileID) (*Tile, bool)
}

// Beam moves ship energy into the tiles inside its trigger volume.
//
// It is locked while the ship is in energy-saving mode and from the start of
// a landing until the following take-off completes.
type Beam struct {
	params  BeamParams
	tiles   tileLookup
	ship    *Ship
	enabled bool

	savingLock  bool
	landingLock bool

	selected *idSet[TileID]
}

// NewBeam creates a disabled beam fed by ship.
func NewBeam(params BeamParams, tiles tileLookup, ship *Ship) *Beam {
	return &Beam{
		params:   params,
		tiles:    tiles,
		ship:     ship,
		selected: newIDSet[TileID](),
	}
}

// Enabled reports whether the beam is on.
func (b *Beam) Enabled() bool { return b.enabled }

// Locked reports whether turning on is currently refused.
func (b *Beam) Locked() bool { return b.savingLock || b.landingLock }

// Params returns the beam tuning.
func (b *Beam) Params() BeamParams { return b.params }

// Selected returns the targeted tiles in selection order.
func (b *Beam) Selected() []TileID {
	return append([]TileID(nil), b.selected.items...)
}

// Toggle flips the beam on or off.
func (b *Beam) Toggle() {
	if b.enabled {
		b.TurnOff()
	} else {
		b.TurnOn()
	}
}

// TurnOn enables the beam unless it is locked.
func (b *Beam) TurnOn() bool {
	if b.Locked() {
		return false
	}
	b.enabled = true
	return true
}

// TurnOff disables the beam and drops the selection.
func (b *Beam) TurnOff() {
	b.enabled = false
	for _, id := range b.selected.items {
		if t, ok := b.tiles.Tile(id); ok {
			t.SetSelected(false)
		}
	}
	b.selected.clear()
}

// Enter is called when a tile enters the beam volume.
func (b *Beam) Enter(id TileID) {
	if !b.enabled {
		return
	}
	t, ok := b.tiles.Tile(id)
	if !ok {
		return
	}
	if b.selected.add(id) {
		t.SetSelected(true)
	}
}

// Exit is called when a tile leaves the beam volume.
func (b *Beam) Exit(id TileID) {
	if !b.selected.remove(id) {
		return
	}
	if t, ok := b.tiles.Tile(id); ok {
		t.SetSelected(false)
	}
}

// Tick splits this frame's transfer evenly across the selected tiles and
// charges the ship the full amount.
func (b *Beam) Tick(dt float64) {
	n := b.selected.len()
	if !b.enabled || n == 0 {
		return
	}
	sent := b.params.TransferSpeed * dt
	per := sent / float64(n)
	for _, id := range b.selected.items {
		if t, ok := b.tiles.Tile(id); ok {
			t.AddEnergy(per)
		}
	}
	b.ship.SubtractEnergy(sent)
}

// OnShip reacts to spaceship notifications.
func (b *Beam) OnShip(ev ShipEvent) {
	switch ev.Kind {
	case ShipSavingModeActivated:
		b.savingLock = true
		b.TurnOff()
	case ShipSavingModeDeactivated:
		b.savingLock = false
	case ShipLandingStarted:
		b.landingLock = true
		b.TurnOff()
	case ShipTakeOffEnded:
		b.landingLock = false
	}
}

// Reset turns the beam off for a new game. The ship starts parked, so the
// beam stays locked until the first take-off completes.
func (b *Beam) Reset() {
	b.TurnOff()
	b.savingLock = b.ship.LowEnergy()
	b.landingLock = b.ship.Grounded()
}
