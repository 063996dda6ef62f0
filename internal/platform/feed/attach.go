package feed

import (
	"github.com/vovakirdan/skyclaim/internal/games/skyclaim/sim"
)

// Attach forwards the notifications of w to the hub and returns a function
// that detaches it. Per-frame energy updates are not forwarded.
//
// Handlers run on the simulation goroutine and never block: messages are
// dropped when the queue is full.
func (h *Hub) Attach(w *sim.World) (detach func()) {
	ev := w.Events()
	publish := func(typ string, data map[string]any) {
		if !h.Publish(Message{Type: typ, Tick: w.Ticks(), Data: data}) {
			h.log.Debug("feed message dropped", "type", typ)
		}
	}

	cancels := []func(){
		ev.Phase.Subscribe(func(e sim.PhaseEvent) {
			publish("phase", map[string]any{
				"phase":   e.Phase.String(),
				"outcome": e.Outcome.String(),
			})
		}),
		ev.Layout.Subscribe(func(e sim.LayoutEvent) {
			publish("layout", map[string]any{
				"grid_length": e.GridLength,
				"tiles":       e.Tiles,
				"obstacles":   e.Obstacles,
			})
		}),
		ev.Tiles.Subscribe(func(e sim.TileEvent) {
			if e.Kind != sim.TileClaimed && e.Kind != sim.TileLost {
				return
			}
			publish(e.Kind.String(), map[string]any{"tile": int(e.ID)})
		}),
		ev.Ship.Subscribe(func(e sim.ShipEvent) {
			if e.Kind == sim.ShipEnergyChanged {
				return
			}
			publish(e.Kind.String(), map[string]any{"energy": e.Ratio})
		}),
		ev.Pickups.Subscribe(func(p sim.Pickup) {
			publish("pickup", map[string]any{"kind": p.Type.String()})
		}),
		ev.Score.Subscribe(func(e sim.ScoreEvent) {
			publish("score", map[string]any{
				"total":         e.Total,
				"claimed_tiles": e.ClaimedTiles,
			})
		}),
	}

	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}
