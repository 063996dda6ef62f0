package sim

import (
	"hash/fnv"
	"testing"
)

func TestSnapshotHash(t *testing.T) {
	base := Snapshot{
		Ticks:      12,
		Score:      40,
		GridLength: 5,
		Tiles:      []TileSnapshot{{ID: 0, Energy: 1.5, Claimed: true}, {ID: 1}},
	}
	want := base.Hash()
	if want == fnv.New64a().Sum64() {
		t.Fatal("Hash() is the empty FNV digest")
	}

	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"ticks", func(s *Snapshot) { s.Ticks++ }},
		{"score", func(s *Snapshot) { s.Score++ }},
		{"claim", func(s *Snapshot) { s.Tiles[1].Claimed = true }},
		{"energy", func(s *Snapshot) { s.Tiles[0].Energy = 1.25 }},
		{"obstacle", func(s *Snapshot) { s.Obstacles = []CellIndex{{Row: 1, Col: 2}} }},
		{"ship", func(s *Snapshot) { s.Ship.Position.X = 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			s.Tiles = append([]TileSnapshot(nil), base.Tiles...)
			tt.mutate(&s)
			if s.Hash() == want {
				t.Errorf("changing %s kept the hash", tt.name)
			}
		})
	}

	again := base
	if again.Hash() != want {
		t.Error("Hash() is not stable")
	}
	// Elapsed is derived from Ticks and is not hashed.
	again.Elapsed = 99
	if again.Hash() != want {
		t.Error("Elapsed changed the hash")
	}
}
