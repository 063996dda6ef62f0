package skyclaim

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/games/skyclaim/sim"
)

// triggerSink receives overlap changes. *sim.World implements it.
type triggerSink interface {
	BeamEnter(id sim.TileID)
	BeamExit(id sim.TileID)
	StormEnter(id sim.StormID, t sim.StormTarget)
	StormExit(id sim.StormID, t sim.StormTarget)
	CollectableEnter(id sim.CollectableID) bool
}

type stormHit struct {
	storm  sim.StormID
	target sim.StormTarget
}

// Triggers turns per-frame geometry into enter/exit notifications: the beam
// volume against tiles, storms against the ship and claimed tiles, and the
// ship against hovering collectables.
type Triggers struct {
	beam   map[sim.TileID]struct{}
	storms map[stormHit]struct{}
}

// NewTriggers creates an empty overlap tracker.
func NewTriggers() *Triggers {
	return &Triggers{
		beam:   make(map[sim.TileID]struct{}),
		storms: make(map[stormHit]struct{}),
	}
}

// Reset forgets every overlap without notifying. Used when the layout is
// regenerated and old ids are meaningless.
func (t *Triggers) Reset() {
	clear(t.beam)
	clear(t.storms)
}

// Update diffs the overlaps of w against the previous frame and forwards the
// changes to sink in a deterministic order.
func (t *Triggers) Update(w *sim.World, sink triggerSink) {
	t.updateBeam(w, sink)
	t.updateStorms(w, sink)
	t.collect(w, sink)
}

func (t *Triggers) updateBeam(w *sim.World, sink triggerSink) {
	now := make(map[sim.TileID]struct{})
	ship := w.Ship()
	if w.Beam().Enabled() && !ship.Grounded() {
		radius := w.Beam().Params().Radius
		for _, tile := range tilesUnder(w.Grid(), ship.Position(), radius) {
			now[tile.ID()] = struct{}{}
		}
	}
	for _, tile := range w.Grid().Tiles() {
		id := tile.ID()
		_, was := t.beam[id]
		_, is := now[id]
		switch {
		case is && !was:
			sink.BeamEnter(id)
		case was && !is:
			sink.BeamExit(id)
		}
	}
	// Tiles that vanished with a regeneration leave without a notification.
	t.beam = now
}

func (t *Triggers) updateStorms(w *sim.World, sink triggerSink) {
	now := make(map[stormHit]struct{})
	ship := w.Ship()
	var order []stormHit
	for _, s := range w.Storms().Storms() {
		if circlesOverlap(s.Position(), s.Radius(), ship.Position(), ship.Params().Radius) {
			h := stormHit{storm: s.ID(), target: sim.ShipTarget}
			now[h] = struct{}{}
			order = append(order, h)
		}
		for _, tile := range tilesUnder(w.Grid(), s.Position(), s.Radius()) {
			if !tile.Claimed() {
				continue
			}
			h := stormHit{storm: s.ID(), target: sim.TileTarget(tile.ID())}
			now[h] = struct{}{}
			order = append(order, h)
		}
	}

	for _, s := range w.Storms().Storms() {
		for _, h := range t.sortedFor(s.ID()) {
			if _, ok := now[h]; !ok {
				sink.StormExit(h.storm, h.target)
			}
		}
	}
	for _, h := range order {
		if _, ok := t.storms[h]; !ok {
			sink.StormEnter(h.storm, h.target)
		}
	}
	t.storms = now
}

// sortedFor returns the previous hits of one storm, ship first, then tiles
// in id order.
func (t *Triggers) sortedFor(id sim.StormID) []stormHit {
	var ship []stormHit
	var tiles []stormHit
	for h := range t.storms {
		if h.storm != id {
			continue
		}
		if h.target.Ship {
			ship = append(ship, h)
		} else {
			tiles = append(tiles, h)
		}
	}
	slices.SortFunc(tiles, func(a, b stormHit) int {
		return cmp.Compare(a.target.Tile, b.target.Tile)
	})
	return append(ship, tiles...)
}

func (t *Triggers) collect(w *sim.World, sink triggerSink) {
	ship := w.Ship()
	if ship.Grounded() {
		return
	}
	radius := w.Collectables().Params().Radius
	var hit []sim.CollectableID
	for _, c := range w.Collectables().Live() {
		if circlesOverlap(c.Position, radius, ship.Position(), ship.Params().Radius) {
			hit = append(hit, c.ID)
		}
	}
	for _, id := range hit {
		sink.CollectableEnter(id)
	}
}

// tilesUnder returns the tiles whose cell intersects the circle, in grid order.
func tilesUnder(g *sim.Grid, center core.Vec2, radius float64) []*sim.Tile {
	var out []*sim.Tile
	for _, tile := range g.Tiles() {
		if g.CellRect(tile.Row(), tile.Col()).CircleOverlaps(center, radius) {
			out = append(out, tile)
		}
	}
	return out
}

func circlesOverlap(a core.Vec2, ra float64, b core.Vec2, rb float64) bool {
	d := a.Sub(b)
	r := ra + rb
	return d.X*d.X+d.Y*d.Y < r*r
}
