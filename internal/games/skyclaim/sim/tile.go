package sim

import (
	"math"

	"github.com/vovakirdan/skyclaim/internal/core"
)

// MaxNeighbors is the size of a tile's 8-connected neighborhood.
const MaxNeighbors = 8

// Animation is the visual state machine of a tile.
type Animation uint8

const (
	AnimNone Animation = iota
	AnimFlip
	AnimShake
)

// String returns the animation name.
func (a Animation) String() string {
	switch a {
	case AnimFlip:
		return "flip"
	case AnimShake:
		return "shake"
	default:
		return "none"
	}
}

// TileParams holds the per-tile tuning values.
type TileParams struct {
	MaxEnergy       float64
	ToggleThreshold float64 // claim above, lose below
	AlertThreshold  float64 // shake below while claimed
	DecaySpeed      float64 // energy per second with no claimed neighbors
	FlipSpeed       float64 // flips per second
	ShakeSpeed      float64 // shake sweeps per second
	MaxShakeHeight  float64
}

// DefaultTileParams returns the stock tile tuning.
func DefaultTileParams() TileParams {
	return TileParams{
		MaxEnergy:       10,
		ToggleThreshold: 2.5,
		AlertThreshold:  3.5,
		DecaySpeed:      1,
		FlipSpeed:       2,
		ShakeSpeed:      2,
		MaxShakeHeight:  1,
	}
}

// tileHost receives the side effects a tile cannot resolve on its own.
type tileHost interface {
	activate(id TileID)
	flipped(t *Tile)
}

// Tile is one claimable cell of the grid.
//
// Claim state changes only when a flip animation completes. While a flip is
// in progress the tile reasons about thresholds against the pending value,
// so feeding or draining energy mid-flip reverses the flip instead of
// starting a second one.
type Tile struct {
	id       TileID
	row, col int
	pos      core.Vec2
	variant  int
	handle   Handle
	params   TileParams
	host     tileHost
	events   *Events
	landing  bool
	locked   bool
	selected bool

	energy       float64
	claimed      bool
	pendingClaim bool
	recharging   bool
	noDecayTimer float64

	claimedNeighbors int
	neighbors        []TileID

	anim        Animation
	animParam   float64
	startHeight float64
	endHeight   float64
	height      float64
}

func newTile(id TileID, row, col int, pos core.Vec2, params TileParams, host tileHost, events *Events) *Tile {
	return &Tile{
		id:           id,
		row:          row,
		col:          col,
		pos:          pos,
		params:       params,
		host:         host,
		events:       events,
		noDecayTimer: -1,
	}
}

// makeLanding turns the tile into the permanently claimed start tile.
func (t *Tile) makeLanding() {
	t.landing = true
	t.locked = true
	t.claimed = true
	t.pendingClaim = true
}

// ID returns the tile identifier.
func (t *Tile) ID() TileID { return t.id }

// Row returns the grid row.
func (t *Tile) Row() int { return t.row }

// Col returns the grid column.
func (t *Tile) Col() int { return t.col }

// Position returns the tile center in world units.
func (t *Tile) Position() core.Vec2 { return t.pos }

// Variant returns the index of the variant template the tile was built from.
func (t *Tile) Variant() int { return t.variant }

// Handle returns the spawned entity handle.
func (t *Tile) Handle() Handle { return t.handle }

// Energy returns the stored energy.
func (t *Tile) Energy() float64 { return t.energy }

// EnergyRatio returns energy / maxEnergy.
func (t *Tile) EnergyRatio() float64 {
	if t.params.MaxEnergy <= 0 {
		return 0
	}
	return t.energy / t.params.MaxEnergy
}

// Params returns the tile tuning.
func (t *Tile) Params() TileParams { return t.params }

// Claimed reports the committed claim state.
func (t *Tile) Claimed() bool { return t.claimed }

// Locked reports whether energy changes are ignored.
func (t *Tile) Locked() bool { return t.locked }

// LandingArea reports whether this is the start tile.
func (t *Tile) LandingArea() bool { return t.landing }

// Selected reports whether a beam currently targets the tile.
func (t *Tile) Selected() bool { return t.selected }

// ClaimedNeighbors returns how many neighbors are claimed, in [0, 8].
func (t *Tile) ClaimedNeighbors() int { return t.claimedNeighbors }

// Neighbors returns the registered neighbor ids.
func (t *Tile) Neighbors() []TileID { return t.neighbors }

// Animation returns the running animation.
func (t *Tile) Animation() Animation { return t.anim }

// AnimationParam returns the animation progress in [0, 1].
func (t *Tile) AnimationParam() float64 { return t.animParam }

// Rotation returns the flip angle in radians.
func (t *Tile) Rotation() float64 {
	if t.anim != AnimFlip {
		return 0
	}
	return t.animParam * math.Pi
}

// Height returns the shake offset.
func (t *Tile) Height() float64 { return t.height }

// NoDecayRemaining returns the remaining stop-decay time, or a negative value.
func (t *Tile) NoDecayRemaining() float64 { return t.noDecayTimer }

// AddEnergy changes stored energy by amount and runs the claim state machine.
func (t *Tile) AddEnergy(amount float64) {
	if t.locked || amount == 0 {
		return
	}

	t.energy = core.Clamp(t.energy+amount, 0, t.params.MaxEnergy)
	if amount < 0 && t.energy < Epsilon {
		t.energy = 0
	}

	if amount > 0 {
		t.recharging = true
		if !t.pendingClaim && t.energy > t.params.ToggleThreshold {
			t.toggle()
		} else if t.pendingClaim && t.anim == AnimShake && t.energy > t.params.AlertThreshold {
			t.stopAnimation()
		}
	} else if t.pendingClaim {
		if t.energy < t.params.ToggleThreshold {
			t.toggle()
		} else if t.energy < t.params.AlertThreshold {
			t.alert()
		}
	}

	t.events.Tiles.Publish(TileEvent{Kind: TileEnergyChanged, ID: t.id, Ratio: t.EnergyRatio()})
	t.host.activate(t.id)
}

// SubtractEnergy is AddEnergy(-amount).
func (t *Tile) SubtractEnergy(amount float64) {
	t.AddEnergy(-amount)
}

// Decay drains energy, slowed by each claimed neighbor.
func (t *Tile) Decay(dt float64) {
	if t.energy <= 0 {
		return
	}
	factor := 1 - float64(t.claimedNeighbors)/MaxNeighbors
	t.AddEnergy(-t.params.DecaySpeed * factor * dt)
}

// Tick advances timers, decay and animation. It reports whether the tile
// still needs per-tick updates.
func (t *Tile) Tick(dt float64) bool {
	if t.noDecayTimer > 0 {
		t.noDecayTimer -= dt
	}

	if t.recharging {
		t.recharging = false
	} else if t.noDecayTimer <= 0 {
		t.Decay(dt)
	}

	t.animate(dt)

	return t.active()
}

// active reports whether the tile needs per-tick updates.
func (t *Tile) active() bool {
	return t.anim != AnimNone || t.energy >= Epsilon
}

// SetSelected marks the tile as targeted by a beam.
func (t *Tile) SetSelected(selected bool) {
	if t.selected == selected {
		return
	}
	t.selected = selected
	kind := TileDeselected
	if selected {
		kind = TileSelected
	}
	t.events.Tiles.Publish(TileEvent{Kind: kind, ID: t.id})
}

// StopDecay suspends decay of a claimed tile for duration seconds.
func (t *Tile) StopDecay(duration float64) {
	if !t.claimed || t.locked {
		return
	}
	t.noDecayTimer = duration
	t.host.activate(t.id)
}

func (t *Tile) neighborClaimed() {
	if t.claimedNeighbors < MaxNeighbors {
		t.claimedNeighbors++
	}
}

func (t *Tile) neighborLost() {
	if t.claimedNeighbors > 0 {
		t.claimedNeighbors--
	}
}

func (t *Tile) toggle() {
	if t.anim == AnimFlip {
		t.animParam = 1 - t.animParam
	} else {
		t.stopAnimation()
		t.anim = AnimFlip
		t.animParam = 0
	}
	t.pendingClaim = !t.pendingClaim
}

func (t *Tile) alert() {
	if t.anim != AnimNone {
		return
	}
	t.anim = AnimShake
	t.animParam = 0.5
	t.startHeight = -t.params.MaxShakeHeight
	t.endHeight = t.params.MaxShakeHeight
	t.height = 0
}

func (t *Tile) stopAnimation() {
	t.anim = AnimNone
	t.animParam = 0
	t.height = 0
}

func (t *Tile) animate(dt float64) {
	switch t.anim {
	case AnimFlip:
		t.animParam += t.params.FlipSpeed * dt
		if t.animParam >= 1 {
			t.stopAnimation()
			t.completeFlip()
		}
	case AnimShake:
		t.animParam += t.params.ShakeSpeed * dt
		if t.animParam > 1 {
			t.animParam = 0
			t.startHeight, t.endHeight = t.endHeight, t.startHeight
		}
		t.height = core.Lerp(t.startHeight, t.endHeight, t.animParam)
	}
}

func (t *Tile) completeFlip() {
	if t.pendingClaim == t.claimed {
		return
	}
	t.claimed = t.pendingClaim

	kind := TileLost
	if t.claimed {
		kind = TileClaimed
	}
	t.host.flipped(t)
	ev := TileEvent{Kind: kind, ID: t.id}
	t.events.Tile.Publish(t.id, ev)
	t.events.Tiles.Publish(ev)
}
