package sim

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclaim/internal/core"
)

// CollectableType enumerates pickup effects.
type CollectableType uint8

const (
	CollectableStopDecay CollectableType = iota
	CollectableShipDamage
	CollectableShipEnergy
	CollectableTileDamage
	CollectableTileEnergy
	CollectableSmallPoints
	CollectableMediumPoints
	CollectableLargePoints
	CollectableSpeedUp
	CollectableSpeedDown
)

var collectableNames = [...]string{
	CollectableStopDecay:    "stop_decay",
	CollectableShipDamage:   "ship_damage",
	CollectableShipEnergy:   "ship_energy",
	CollectableTileDamage:   "tile_damage",
	CollectableTileEnergy:   "tile_energy",
	CollectableSmallPoints:  "small_points",
	CollectableMediumPoints: "medium_points",
	CollectableLargePoints:  "large_points",
	CollectableSpeedUp:      "speed_up",
	CollectableSpeedDown:    "speed_down",
}

// String returns the collectable name.
func (c CollectableType) String() string {
	if int(c) < len(collectableNames) {
		return collectableNames[c]
	}
	return "unknown"
}

// ParseCollectableType maps a name back to its type.
func ParseCollectableType(name string) (CollectableType, bool) {
	for i, n := range collectableNames {
		if n == name {
			return CollectableType(i), true
		}
	}
	return 0, false
}

// CollectableKind is one entry of the spawn table.
type CollectableKind struct {
	Type       CollectableType
	Template   string
	Amount     float64
	Duration   float64
	Multiplier float64
	Points     uint64
}

// Pickup returns the effect applied when this kind is collected.
func (k CollectableKind) Pickup() Pickup {
	return Pickup{
		Type:       k.Type,
		Amount:     k.Amount,
		Duration:   k.Duration,
		Multiplier: k.Multiplier,
		Points:     k.Points,
	}
}

// CollectableParams holds the pool tuning.
type CollectableParams struct {
	Probability   float64 // chance a newly claimed tile spawns a collectable
	Height        float64
	MinExpiration float64
	MaxExpiration float64
	Radius        float64
	Kinds         []CollectableKind
}

// DefaultCollectableParams returns the stock spawn table.
func DefaultCollectableParams() CollectableParams {
	return CollectableParams{
		Probability:   0.25,
		Height:        1.5,
		MinExpiration: 3,
		MaxExpiration: 20,
		Radius:        0.35,
		Kinds: []CollectableKind{
			{Type: CollectableStopDecay, Template: "pickup.stop_decay", Duration: 5},
			{Type: CollectableShipDamage, Template: "pickup.ship_damage", Amount: 2},
			{Type: CollectableShipEnergy, Template: "pickup.ship_energy", Amount: 3},
			{Type: CollectableTileDamage, Template: "pickup.tile_damage", Amount: 2},
			{Type: CollectableTileEnergy, Template: "pickup.tile_energy", Amount: 2},
			{Type: CollectableSmallPoints, Template: "pickup.small_points", Points: 5},
			{Type: CollectableMediumPoints, Template: "pickup.medium_points", Points: 15},
			{Type: CollectableLargePoints, Template: "pickup.large_points", Points: 50},
			{Type: CollectableSpeedUp, Template: "pickup.speed_up", Multiplier: 1.5, Duration: 5},
			{Type: CollectableSpeedDown, Template: "pickup.speed_down", Multiplier: 0.5, Duration: 5},
		},
	}
}

// Templates lists the template of every kind.
func (p CollectableParams) Templates() []string {
	out := make([]string, 0, len(p.Kinds))
	for _, k := range p.Kinds {
		out = append(out, k.Template)
	}
	return out
}

// CollectableID identifies a live collectable.
type CollectableID int

// Collectable is a pickup hovering above a tile.
type Collectable struct {
	ID       CollectableID
	Kind     CollectableKind
	Tile     TileID
	Position core.Vec2
	Height   float64
	Expires  float64 // seconds left
	Handle   Handle
}

// CollectablePool spawns pickups over freshly claimed tiles and expires them.
type CollectablePool struct {
	params  CollectableParams
	rng     *core.RNG
	spawner Spawner
	events  *Events
	tiles   tileLookup
	log     *log.Logger

	live   []*Collectable
	nextID CollectableID
	cancel func()
}

// NewCollectablePool creates a stopped pool.
func NewCollectablePool(params CollectableParams, seed uint64, spawner Spawner, tiles tileLookup, events *Events, logger *log.Logger) *CollectablePool {
	return &CollectablePool{
		params:  params,
		rng:     core.NewRNG(seed),
		spawner: spawner,
		events:  events,
		tiles:   tiles,
		log:     logger,
	}
}

// Params returns the pool tuning.
func (p *CollectablePool) Params() CollectableParams { return p.params }

// Live returns the live collectables in spawn order.
func (p *CollectablePool) Live() []*Collectable { return p.live }

// Start listens for claimed tiles.
func (p *CollectablePool) Start() {
	if p.cancel != nil {
		return
	}
	p.cancel = p.events.Tiles.Subscribe(func(ev TileEvent) {
		if ev.Kind == TileClaimed {
			p.onClaimed(ev.ID)
		}
	})
}

// Stop stops listening. Live collectables stay until Clear.
func (p *CollectablePool) Stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Running reports whether the pool reacts to claims.
func (p *CollectablePool) Running() bool { return p.cancel != nil }

func (p *CollectablePool) onClaimed(id TileID) {
	if len(p.params.Kinds) == 0 {
		return
	}
	if p.rng.Float() >= p.params.Probability {
		return
	}
	kind := p.params.Kinds[p.rng.Intn(len(p.params.Kinds))]
	expires := p.rng.Range(p.params.MinExpiration, p.params.MaxExpiration)
	p.Spawn(id, kind, expires)
}

// Spawn places a collectable of kind above tile id.
func (p *CollectablePool) Spawn(id TileID, kind CollectableKind, expires float64) *Collectable {
	t, ok := p.tiles.Tile(id)
	if !ok {
		return nil
	}
	h, err := p.spawner.Spawn(kind.Template, t.Position())
	if err != nil {
		p.log.Error("cannot spawn collectable", "type", kind.Type, "error", err)
		return nil
	}
	p.nextID++
	c := &Collectable{
		ID:       p.nextID,
		Kind:     kind,
		Tile:     id,
		Position: t.Position(),
		Height:   p.params.Height,
		Expires:  expires,
		Handle:   h,
	}
	p.live = append(p.live, c)
	return c
}

// Tick counts down expirations.
func (p *CollectablePool) Tick(dt float64) {
	alive := p.live[:0]
	for _, c := range p.live {
		c.Expires -= dt
		if c.Expires <= 0 {
			p.spawner.Despawn(c.Handle)
			continue
		}
		alive = append(alive, c)
	}
	clear(p.live[len(alive):])
	p.live = alive
}

// Collect removes collectable id and publishes its effect.
func (p *CollectablePool) Collect(id CollectableID) bool {
	for i, c := range p.live {
		if c.ID != id {
			continue
		}
		p.live = append(p.live[:i], p.live[i+1:]...)
		p.spawner.Despawn(c.Handle)
		p.events.Pickups.Publish(c.Kind.Pickup())
		return true
	}
	return false
}

// Clear despawns every live collectable.
func (p *CollectablePool) Clear() {
	for _, c := range p.live {
		p.spawner.Despawn(c.Handle)
	}
	p.live = nil
}
