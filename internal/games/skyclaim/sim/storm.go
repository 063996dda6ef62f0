package sim

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclaim/internal/core"
)

// StormID identifies a storm within one world.
type StormID int

// StormParams holds the storm spawner tuning.
type StormParams struct {
	SpawnDelay  float64
	Height      float64
	MinDuration float64
	MaxDuration float64
	MinSpeed    float64
	MaxSpeed    float64
	MinStrength float64
	MaxStrength float64
	Radius      float64
	Template    string
}

// DefaultStormParams returns the stock storm tuning.
func DefaultStormParams() StormParams {
	return StormParams{
		SpawnDelay:  15,
		Height:      1,
		MinDuration: 5,
		MaxDuration: 15,
		MinSpeed:    1,
		MaxSpeed:    4,
		MinStrength: 5,
		MaxStrength: 10,
		Radius:      1.5,
		Template:    "storm",
	}
}

// StormTarget is something a storm can hit: the ship, or a tile.
type StormTarget struct {
	Ship bool
	Tile TileID
}

// ShipTarget is the StormTarget for the spaceship.
var ShipTarget = StormTarget{Ship: true, Tile: InvalidTileID}

// TileTarget returns the StormTarget for a tile.
func TileTarget(id TileID) StormTarget {
	return StormTarget{Tile: id}
}

// stormHost resolves what a storm touches.
type stormHost interface {
	tileClaimed(id TileID) bool
	damageTile(id TileID, amount float64)
	damageShip(amount float64)
}

// stormSpin is the visual rotation speed in radians per second.
const stormSpin = math.Pi

// Storm is a drifting hazard that drains whatever it overlaps.
type Storm struct {
	id       StormID
	handle   Handle
	pos      core.Vec2
	dir      core.Vec2
	speed    float64
	strength float64
	duration float64
	timer    float64
	radius   float64
	rotation float64

	hitShip bool
	hits    *idSet[TileID]
}

// ID returns the storm id.
func (s *Storm) ID() StormID { return s.id }

// Position returns the storm center.
func (s *Storm) Position() core.Vec2 { return s.pos }

// Direction returns the unit travel direction.
func (s *Storm) Direction() core.Vec2 { return s.dir }

// Speed returns the travel speed.
func (s *Storm) Speed() float64 { return s.speed }

// Strength returns damage per second.
func (s *Storm) Strength() float64 { return s.strength }

// Remaining returns the remaining lifetime.
func (s *Storm) Remaining() float64 { return s.timer }

// Duration returns the initial lifetime.
func (s *Storm) Duration() float64 { return s.duration }

// Radius returns the trigger radius.
func (s *Storm) Radius() float64 { return s.radius }

// Rotation returns the visual spin angle.
func (s *Storm) Rotation() float64 { return s.rotation }

// HitsShip reports whether the ship is inside the storm.
func (s *Storm) HitsShip() bool { return s.hitShip }

// HitTiles returns the tiles currently being damaged.
func (s *Storm) HitTiles() []TileID {
	return append([]TileID(nil), s.hits.items...)
}

func (s *Storm) enter(t StormTarget, host stormHost) {
	if t.Ship {
		s.hitShip = true
		return
	}
	if host.tileClaimed(t.Tile) {
		s.hits.add(t.Tile)
	}
}

func (s *Storm) exit(t StormTarget) {
	if t.Ship {
		s.hitShip = false
		return
	}
	s.hits.remove(t.Tile)
}

// tick returns false once the storm has expired.
func (s *Storm) tick(dt float64, host stormHost) bool {
	s.timer -= dt
	if s.timer < 0 {
		return false
	}

	s.pos = s.pos.Add(s.dir.Scale(s.speed * dt))
	s.rotation = math.Mod(s.rotation+stormSpin*dt, 2*math.Pi)

	damage := s.strength * dt
	if s.hitShip {
		host.damageShip(damage)
	}
	for _, id := range s.hits.items {
		host.damageTile(id, damage)
	}
	return true
}

// StormSpawner creates storms on a fixed delay and ticks them.
type StormSpawner struct {
	params  StormParams
	rng     *core.RNG
	spawner Spawner
	host    stormHost
	area    func() core.RectF
	log     *log.Logger

	timer         float64
	strengthScale float64
	storms        []*Storm
	nextID        StormID
	warned        bool
}

// NewStormSpawner creates a spawner. area returns the rectangle storms may
// appear in.
func NewStormSpawner(params StormParams, seed uint64, spawner Spawner, host stormHost, area func() core.RectF, logger *log.Logger) *StormSpawner {
	return &StormSpawner{
		params:        params,
		rng:           core.NewRNG(seed),
		spawner:       spawner,
		host:          host,
		area:          area,
		log:           logger,
		timer:         params.SpawnDelay,
		strengthScale: 1,
	}
}

// SetStrengthScale multiplies the strength of storms spawned from now on.
func (sp *StormSpawner) SetStrengthScale(k float64) {
	if k <= 0 {
		k = 1
	}
	sp.strengthScale = k
}

// SetSpawnDelay changes the delay between storms.
func (sp *StormSpawner) SetSpawnDelay(d float64) {
	sp.params.SpawnDelay = d
}

// Params returns the spawner tuning.
func (sp *StormSpawner) Params() StormParams { return sp.params }

// Storms returns the live storms in spawn order.
func (sp *StormSpawner) Storms() []*Storm { return sp.storms }

// TimeToNext returns the countdown to the next spawn.
func (sp *StormSpawner) TimeToNext() float64 { return sp.timer }

// Tick advances live storms, removes expired ones and spawns a new storm
// when the countdown runs out. A countdown that overshoots by several delays
// still spawns a single storm.
func (sp *StormSpawner) Tick(dt float64) {
	alive := sp.storms[:0]
	for _, s := range sp.storms {
		if s.tick(dt, sp.host) {
			alive = append(alive, s)
			continue
		}
		sp.spawner.Despawn(s.handle)
	}
	clear(sp.storms[len(alive):])
	sp.storms = alive

	if sp.params.SpawnDelay <= 0 {
		if !sp.warned {
			sp.log.Warn("storm spawn delay is not positive, storms disabled", "delay", sp.params.SpawnDelay)
			sp.warned = true
		}
		return
	}

	sp.timer -= dt
	if sp.timer > 0 {
		return
	}
	for sp.timer <= 0 {
		sp.timer += sp.params.SpawnDelay
	}
	sp.Spawn()
}

// Spawn creates one storm with randomized parameters.
func (sp *StormSpawner) Spawn() *Storm {
	p := sp.params
	duration := sp.rng.Range(p.MinDuration, p.MaxDuration)
	strength := sp.rng.Range(p.MinStrength, p.MaxStrength) * sp.strengthScale
	dir := sp.rng.UnitVector()
	speed := sp.rng.Range(p.MinSpeed, p.MaxSpeed)

	area := sp.area()
	pos := core.Vec2{
		X: sp.rng.Range(area.Min.X, area.Max.X),
		Y: sp.rng.Range(area.Min.Y, area.Max.Y),
	}

	h, err := sp.spawner.Spawn(p.Template, pos)
	if err != nil {
		sp.log.Error("cannot spawn storm", "error", err)
		return nil
	}

	sp.nextID++
	s := &Storm{
		id:       sp.nextID,
		handle:   h,
		pos:      pos,
		dir:      dir,
		speed:    speed,
		strength: strength,
		duration: duration,
		timer:    duration,
		radius:   p.Radius,
		hits:     newIDSet[TileID](),
	}
	sp.storms = append(sp.storms, s)
	return s
}

// Enter routes a trigger-enter to storm id.
func (sp *StormSpawner) Enter(id StormID, t StormTarget) {
	if s := sp.find(id); s != nil {
		s.enter(t, sp.host)
	}
}

// Exit routes a trigger-exit to storm id.
func (sp *StormSpawner) Exit(id StormID, t StormTarget) {
	if s := sp.find(id); s != nil {
		s.exit(t)
	}
}

func (sp *StormSpawner) find(id StormID) *Storm {
	for _, s := range sp.storms {
		if s.id == id {
			return s
		}
	}
	return nil
}

// Clear despawns every storm and restarts the countdown.
func (sp *StormSpawner) Clear() {
	for _, s := range sp.storms {
		sp.spawner.Despawn(s.handle)
	}
	sp.storms = nil
	sp.timer = sp.params.SpawnDelay
}
