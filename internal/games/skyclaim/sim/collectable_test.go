package sim

import (
	"testing"
)

func newTestPool(t *testing.T, probability float64) (*CollectablePool, *Events, *EntityPool, *Grid) {
	t.Helper()
	g, events, entities := newTestGrid(smallGridParams(), 4)
	g.Activate()

	params := DefaultCollectableParams()
	params.Probability = probability
	for _, tpl := range params.Templates() {
		entities.Register(tpl)
	}
	return NewCollectablePool(params, 99, entities, g, events, discardLogger()), events, entities, g
}

func TestCollectableSpawnsOnClaim(t *testing.T) {
	pool, events, _, g := newTestPool(t, 1)
	pool.Start()

	events.Tiles.Publish(TileEvent{Kind: TileEnergyChanged, ID: 0})
	if len(pool.Live()) != 0 {
		t.Fatal("spawned on a non-claim notification")
	}

	events.Tiles.Publish(TileEvent{Kind: TileClaimed, ID: 6})
	live := pool.Live()
	if len(live) != 1 {
		t.Fatalf("live collectables = %d, want 1", len(live))
	}
	c := live[0]
	tile, _ := g.Tile(6)
	if c.Tile != 6 || c.Position != tile.Position() {
		t.Errorf("collectable placed at %v over tile %d", c.Position, c.Tile)
	}
	p := pool.Params()
	if c.Expires < p.MinExpiration || c.Expires >= p.MaxExpiration {
		t.Errorf("expiration %v out of range", c.Expires)
	}
}

func TestCollectableProbability(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		start       bool
		want        int
	}{
		{"never", 0, true, 0},
		{"always", 1, true, 10},
		{"stopped pool", 1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, events, _, _ := newTestPool(t, tt.probability)
			if tt.start {
				pool.Start()
			}
			for i := range 10 {
				events.Tiles.Publish(TileEvent{Kind: TileClaimed, ID: TileID(i)})
			}
			if got := len(pool.Live()); got != tt.want {
				t.Errorf("live collectables = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCollectableDeterminism(t *testing.T) {
	a, ea, _, _ := newTestPool(t, 0.5)
	b, eb, _, _ := newTestPool(t, 0.5)
	a.Start()
	b.Start()

	for i := range 20 {
		ea.Tiles.Publish(TileEvent{Kind: TileClaimed, ID: TileID(i)})
		eb.Tiles.Publish(TileEvent{Kind: TileClaimed, ID: TileID(i)})
	}
	la, lb := a.Live(), b.Live()
	if len(la) != len(lb) {
		t.Fatalf("live counts differ: %d vs %d", len(la), len(lb))
	}
	for i := range la {
		if la[i].Kind.Type != lb[i].Kind.Type || la[i].Tile != lb[i].Tile || la[i].Expires != lb[i].Expires {
			t.Errorf("collectable %d differs", i)
		}
	}
}

func TestCollectableExpires(t *testing.T) {
	pool, _, entities, _ := newTestPool(t, 0)
	before := entities.Live()
	kind := pool.Params().Kinds[0]
	pool.Spawn(0, kind, 1)
	pool.Spawn(1, kind, 3)

	pool.Tick(1)
	if len(pool.Live()) != 1 {
		t.Fatalf("live collectables = %d, want 1", len(pool.Live()))
	}
	if entities.Live() != before+1 {
		t.Errorf("expired collectable not despawned")
	}
}

func TestCollectableCollect(t *testing.T) {
	pool, events, entities, _ := newTestPool(t, 0)
	var got []Pickup
	events.Pickups.Subscribe(func(p Pickup) { got = append(got, p) })

	before := entities.Live()
	kind := CollectableKind{Type: CollectableLargePoints, Template: "pickup.large_points", Points: 50}
	c := pool.Spawn(3, kind, 10)

	if !pool.Collect(c.ID) {
		t.Fatal("Collect failed")
	}
	if pool.Collect(c.ID) {
		t.Error("collected the same pickup twice")
	}
	if len(got) != 1 || got[0].Type != CollectableLargePoints || got[0].Points != 50 {
		t.Errorf("pickups = %+v", got)
	}
	if entities.Live() != before {
		t.Error("collected pickup not despawned")
	}
}

func TestCollectableMissingTemplate(t *testing.T) {
	pool, _, _, _ := newTestPool(t, 0)
	if c := pool.Spawn(0, CollectableKind{Type: CollectableSpeedUp, Template: "pickup.unknown"}, 5); c != nil {
		t.Error("spawned a collectable without a registered template")
	}
	if c := pool.Spawn(999, pool.Params().Kinds[0], 5); c != nil {
		t.Error("spawned a collectable over a missing tile")
	}
}

func TestCollectableTypeNames(t *testing.T) {
	for typ := CollectableStopDecay; typ <= CollectableSpeedDown; typ++ {
		back, ok := ParseCollectableType(typ.String())
		if !ok || back != typ {
			t.Errorf("ParseCollectableType(%q) = %v, %v", typ.String(), back, ok)
		}
	}
	if _, ok := ParseCollectableType("nope"); ok {
		t.Error("parsed an unknown name")
	}
}
