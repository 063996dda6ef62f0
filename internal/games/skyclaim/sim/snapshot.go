package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/skyclaim/internal/core"
)

// ShipSnapshot is the observable spaceship state.
type ShipSnapshot struct {
	Position  core.Vec2
	Heading   float64
	Energy    float64
	Height    float64
	LowEnergy bool
	Landed    TileID
}

// TileSnapshot is the observable tile state.
type TileSnapshot struct {
	ID        TileID
	Variant   int
	Energy    float64
	Claimed   bool
	Animation Animation
}

// StormSnapshot is the observable storm state.
type StormSnapshot struct {
	ID        StormID
	Position  core.Vec2
	Strength  float64
	Remaining float64
}

// Snapshot is a plain copy of the world, used for deterministic comparisons
// and as the payload of external feeds.
type Snapshot struct {
	Phase        Phase
	Outcome      Outcome
	Ticks        uint64
	Elapsed      float64
	Score        uint64
	ClaimedTiles int
	GridLength   int
	Obstacles    []CellIndex
	Tiles        []TileSnapshot
	Ship         ShipSnapshot
	Storms       []StormSnapshot
	Collectables []CollectableType
}

// Snapshot captures the current world state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Phase:        w.seq.Phase(),
		Outcome:      w.seq.Outcome(),
		Ticks:        w.ticks,
		Elapsed:      w.elapsed,
		Score:        w.score.Total(),
		ClaimedTiles: w.score.ClaimedTiles(),
		GridLength:   w.grid.Length(),
		Ship: ShipSnapshot{
			Position:  w.ship.Position(),
			Heading:   w.ship.Heading(),
			Energy:    w.ship.Energy(),
			Height:    w.ship.Height(),
			LowEnergy: w.ship.LowEnergy(),
			Landed:    w.ship.LandedTile(),
		},
	}
	for _, o := range w.grid.Obstacles() {
		s.Obstacles = append(s.Obstacles, o.Cell)
	}
	for _, t := range w.grid.Tiles() {
		s.Tiles = append(s.Tiles, TileSnapshot{
			ID:        t.ID(),
			Variant:   t.Variant(),
			Energy:    t.Energy(),
			Claimed:   t.Claimed(),
			Animation: t.Animation(),
		})
	}
	for _, st := range w.storms.Storms() {
		s.Storms = append(s.Storms, StormSnapshot{
			ID:        st.ID(),
			Position:  st.Position(),
			Strength:  st.Strength(),
			Remaining: st.Remaining(),
		})
	}
	for _, c := range w.pickups.Live() {
		s.Collectables = append(s.Collectables, c.Kind.Type)
	}
	return s
}

// Hash is the FNV-1a digest of the snapshot's deterministic fields, used
// for replay checks. Elapsed time is left out since it is derived from Ticks.
func (s *Snapshot) Hash() uint64 {
	var buf []byte
	u := func(v uint64) { buf = binary.LittleEndian.AppendUint64(buf, v) }
	i := func(v int) { u(uint64(int64(v))) } //#nosec G115 -- bit pattern only
	f := func(v float64) { u(math.Float64bits(v)) }

	u(uint64(s.Phase))
	u(uint64(s.Outcome))
	u(s.Ticks)
	u(s.Score)
	i(s.ClaimedTiles)
	i(s.GridLength)
	for _, c := range s.Obstacles {
		i(c.Row)
		i(c.Col)
	}
	for _, t := range s.Tiles {
		i(int(t.ID))
		i(t.Variant)
		f(t.Energy)
		if t.Claimed {
			u(1)
		} else {
			u(0)
		}
	}
	f(s.Ship.Position.X)
	f(s.Ship.Position.Y)
	f(s.Ship.Energy)
	for _, st := range s.Storms {
		f(st.Position.X)
		f(st.Position.Y)
	}
	for _, c := range s.Collectables {
		u(uint64(c))
	}

	h := fnv.New64a()
	h.Write(buf)
	return h.Sum64()
}
