package sim

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyclaim/internal/core"
)

// CellIndex addresses a cell by row and column.
type CellIndex struct {
	Row, Col int
}

// CellSet is a set of cells.
type CellSet map[CellIndex]struct{}

// Has reports whether c is in the set.
func (s CellSet) Has(c CellIndex) bool {
	_, ok := s[c]
	return ok
}

// TileVariant is one random tile template. Zero overrides inherit the
// grid-wide tile tuning.
type TileVariant struct {
	Template   string
	MaxEnergy  float64
	DecaySpeed float64
}

// GridParams describes how the playfield is generated.
//
// Coordinates are centered on the grid middle with y growing downward, so
// row 0 is the top row.
type GridParams struct {
	InitialLength int // side length on first activation
	MaxLength     int // side length for every real game
	MaxObstacles  int

	TileCell     core.Vec2
	BoundaryCell core.Vec2
	ObstacleCell core.Vec2

	LandingTemplate   string
	Variants          []TileVariant // Variants[0] is the empty variant
	BoundaryTemplates []string
	ObstacleTemplates []string

	Tile TileParams
}

// DefaultGridParams returns a 15x15 grid with unit tiles and 2x2 obstacles.
func DefaultGridParams() GridParams {
	return GridParams{
		InitialLength: 5,
		MaxLength:     15,
		MaxObstacles:  6,
		TileCell:      core.Vec2{X: 1, Y: 1},
		BoundaryCell:  core.Vec2{X: 1, Y: 1},
		ObstacleCell:  core.Vec2{X: 2, Y: 2},

		LandingTemplate:   "tile.landing",
		Variants:          []TileVariant{{Template: "tile.empty"}, {Template: "tile.moss", DecaySpeed: 0.8}, {Template: "tile.crystal", MaxEnergy: 12}},
		BoundaryTemplates: []string{"boundary.rock", "boundary.ridge"},
		ObstacleTemplates: []string{"obstacle.spire", "obstacle.crater"},
		Tile:              DefaultTileParams(),
	}
}

// Templates lists every template name the params reference.
func (p GridParams) Templates() []string {
	out := []string{p.LandingTemplate}
	for _, v := range p.Variants {
		out = append(out, v.Template)
	}
	out = append(out, p.BoundaryTemplates...)
	out = append(out, p.ObstacleTemplates...)
	return out
}

// Boundary is a cosmetic edge piece around the grid.
type Boundary struct {
	Position core.Vec2
	Variant  int
	Corner   bool
	Handle   Handle
}

// Obstacle blocks a block of tile cells.
type Obstacle struct {
	Cell     CellIndex // coarse obstacle-grid cell
	Position core.Vec2
	Variant  int
	Covers   []CellIndex
	Handle   Handle
}

// Grid owns the tiles, obstacles and boundary of the playfield.
type Grid struct {
	params  GridParams
	rng     *core.RNG
	spawner Spawner
	events  *Events
	log     *log.Logger

	length     int
	tiles      map[TileID]*Tile
	order      []TileID
	boundaries []Boundary
	obstacles  []Obstacle
	active     *ActiveSet[TileID]
	paused     bool
}

// NewGrid creates an empty grid. Call Activate to build the first layout.
func NewGrid(params GridParams, seed uint64, spawner Spawner, events *Events, logger *log.Logger) *Grid {
	return &Grid{
		params:  params,
		rng:     core.NewRNG(seed),
		spawner: spawner,
		events:  events,
		log:     logger,
		tiles:   make(map[TileID]*Tile),
		active:  NewActiveSet[TileID](),
	}
}

// Length returns the current side length in tiles.
func (g *Grid) Length() int { return g.length }

// Size returns the grid extent in world units.
func (g *Grid) Size() core.Vec2 {
	return g.params.TileCell.Scale(float64(g.length))
}

// Bounds returns the playfield rectangle.
func (g *Grid) Bounds() core.RectF {
	half := g.Size().Scale(0.5)
	return core.RectF{Min: core.Vec2{X: -half.X, Y: -half.Y}, Max: half}
}

// Params returns the generation params.
func (g *Grid) Params() GridParams { return g.params }

// Activate builds the small first-activation layout: boundaries and an
// all-empty tile set with no obstacles.
func (g *Grid) Activate() {
	g.length = g.params.InitialLength
	g.boundaries = g.GenerateBoundaries()
	g.GenerateTiles(g.length, nil, true)
}

// OnLoading rebuilds the layout for a new game. The boundary is only rebuilt
// when the side length changes.
func (g *Grid) OnLoading() {
	g.destroyObstacles()
	g.destroyTiles()
	g.paused = false

	if g.length != g.params.MaxLength {
		g.destroyBoundaries()
		g.length = g.params.MaxLength
		g.boundaries = g.GenerateBoundaries()
	}

	excluded := g.GenerateObstacles(g.params.MaxObstacles)
	g.GenerateTiles(g.length, excluded, false)
}

// CellPosition returns the center of cell (row, col) for a grid of the given
// cell size laid over the current playfield.
func (g *Grid) CellPosition(row, col int, cell core.Vec2) core.Vec2 {
	size := g.Size()
	return core.Vec2{
		X: float64(col)*cell.X - (size.X-cell.X)/2,
		Y: float64(row)*cell.Y - (size.Y-cell.Y)/2,
	}
}

// CellRect returns the world rectangle of tile cell (row, col).
func (g *Grid) CellRect(row, col int) core.RectF {
	c := g.CellPosition(row, col, g.params.TileCell)
	half := g.params.TileCell.Scale(0.5)
	return core.RectF{Min: c.Sub(half), Max: c.Add(half)}
}

// TileIDAt returns the id of cell (row, col) for the current length.
func (g *Grid) TileIDAt(row, col int) TileID {
	return TileID(row*g.length + col)
}

// Center returns the center cell.
func (g *Grid) Center() CellIndex {
	return CellIndex{Row: g.length / 2, Col: g.length / 2}
}

// CalculateNeighbors returns the in-bounds 8-neighborhood of (row, col) in
// the fixed order up-left, up, up-right, left, right, down-left, down,
// down-right.
func (g *Grid) CalculateNeighbors(row, col int) []TileID {
	offsets := [MaxNeighbors]CellIndex{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}

	out := make([]TileID, 0, MaxNeighbors)
	for _, o := range offsets {
		r, c := row+o.Row, col+o.Col
		if r < 0 || r >= g.length || c < 0 || c >= g.length {
			continue
		}
		out = append(out, g.TileIDAt(r, c))
	}
	return out
}

// GenerateBoundaries walks the four edges clockwise from the top-left corner,
// placing one corner piece and then the edge pieces of each side.
func (g *Grid) GenerateBoundaries() []Boundary {
	if len(g.params.BoundaryTemplates) == 0 {
		g.log.Error("no boundary templates configured", "error", ErrMissingTemplate)
		return nil
	}

	cell := g.params.BoundaryCell
	half := g.Size().Scale(0.5)
	length := int(float64(g.length) * g.params.TileCell.X / cell.X)

	pos := core.Vec2{X: -half.X - cell.X/2, Y: -half.Y - cell.Y/2}
	steps := [4]core.Vec2{{X: cell.X}, {Y: cell.Y}, {X: -cell.X}, {Y: -cell.Y}}

	out := make([]Boundary, 0, 4*(length+1))
	for _, step := range steps {
		for i := 0; i <= length; i++ {
			variant := g.rng.Intn(len(g.params.BoundaryTemplates))
			b := Boundary{Position: pos, Variant: variant, Corner: i == 0}
			h, err := g.spawner.Spawn(g.params.BoundaryTemplates[variant], pos)
			if err != nil {
				g.log.Error("cannot spawn boundary", "error", err)
			} else {
				b.Handle = h
				out = append(out, b)
			}
			pos = pos.Add(step)
		}
	}
	return out
}

// GenerateObstacles samples obstacle cells on the coarse obstacle grid and
// returns the tile cells they cover. A sample whose footprint covers the
// center cell, or repeats an occupied cell, is a failed attempt; more than
// maxObstacles consecutive failures end generation early.
func (g *Grid) GenerateObstacles(maxObstacles int) CellSet {
	excluded := make(CellSet)
	g.obstacles = g.obstacles[:0]

	if maxObstacles <= 0 {
		return excluded
	}
	if len(g.params.ObstacleTemplates) == 0 {
		g.log.Error("no obstacle templates configured", "error", ErrMissingTemplate)
		return excluded
	}

	rowScale := g.params.TileCell.Y / g.params.ObstacleCell.Y
	colScale := g.params.TileCell.X / g.params.ObstacleCell.X
	rows := int(rowScale * float64(g.length))
	cols := int(colScale * float64(g.length))
	if rows <= 0 || cols <= 0 {
		return excluded
	}

	center := g.Center()
	taken := make(map[CellIndex]bool)
	attempts := 0

	for placed := 0; placed < maxObstacles; {
		cell := CellIndex{Row: g.rng.Intn(rows), Col: g.rng.Intn(cols)}
		covers := g.footprint(cell, rowScale, colScale)

		if taken[cell] || containsCell(covers, center) {
			attempts++
			if attempts > maxObstacles {
				break
			}
			continue
		}
		attempts = 0
		placed++

		variant := g.rng.Intn(len(g.params.ObstacleTemplates))
		pos := g.CellPosition(cell.Row, cell.Col, g.params.ObstacleCell)
		h, err := g.spawner.Spawn(g.params.ObstacleTemplates[variant], pos)
		if err != nil {
			g.log.Error("cannot spawn obstacle", "error", err)
			continue
		}

		taken[cell] = true
		for _, c := range covers {
			excluded[c] = struct{}{}
		}
		g.obstacles = append(g.obstacles, Obstacle{
			Cell:     cell,
			Position: pos,
			Variant:  variant,
			Covers:   covers,
			Handle:   h,
		})
	}

	return excluded
}

// footprint maps a coarse obstacle cell onto the tile cells it covers.
func (g *Grid) footprint(cell CellIndex, rowScale, colScale float64) []CellIndex {
	r0, r1 := span(cell.Row, rowScale, g.length)
	c0, c1 := span(cell.Col, colScale, g.length)

	out := make([]CellIndex, 0, (r1-r0+1)*(c1-c0+1))
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			out = append(out, CellIndex{Row: r, Col: c})
		}
	}
	return out
}

func span(i int, scale float64, limit int) (int, int) {
	lo := int(float64(i) / scale)
	hi := int(math.Ceil(float64(i+1)/scale)) - 1
	if hi < lo {
		hi = lo
	}
	if hi >= limit {
		hi = limit - 1
	}
	return lo, hi
}

func containsCell(cells []CellIndex, c CellIndex) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}

// GenerateTiles creates one tile per non-excluded cell. The center cell
// becomes the locked, pre-claimed landing tile; every other tile gets a
// random variant, or the empty variant when forceEmpty is set.
func (g *Grid) GenerateTiles(gridLength int, excluded CellSet, forceEmpty bool) {
	g.destroyTiles()
	g.length = gridLength
	center := g.Center()

	for row := 0; row < gridLength; row++ {
		for col := 0; col < gridLength; col++ {
			cell := CellIndex{Row: row, Col: col}
			if excluded.Has(cell) {
				continue
			}

			id := g.TileIDAt(row, col)
			pos := g.CellPosition(row, col, g.params.TileCell)
			t := newTile(id, row, col, pos, g.params.Tile, g, g.events)

			template := g.params.LandingTemplate
			if cell == center {
				t.makeLanding()
			} else {
				variant := 0
				if !forceEmpty {
					variant = g.rng.Intn(len(g.params.Variants))
				}
				if variant >= len(g.params.Variants) {
					g.log.Error("no tile variants configured", "error", ErrMissingTemplate)
					continue
				}
				v := g.params.Variants[variant]
				template = v.Template
				t.variant = variant
				if v.MaxEnergy > 0 {
					t.params.MaxEnergy = v.MaxEnergy
				}
				if v.DecaySpeed > 0 {
					t.params.DecaySpeed = v.DecaySpeed
				}
			}

			h, err := g.spawner.Spawn(template, pos)
			if err != nil {
				g.log.Error("cannot spawn tile", "row", row, "col", col, "error", err)
				continue
			}
			t.handle = h
			t.neighbors = g.CalculateNeighbors(row, col)

			g.tiles[id] = t
			g.order = append(g.order, id)
		}
	}

	g.events.Layout.Publish(LayoutEvent{
		GridLength: gridLength,
		Tiles:      len(g.tiles),
		Obstacles:  len(g.obstacles),
	})
}

// Tile returns the tile with the given id.
func (g *Grid) Tile(id TileID) (*Tile, bool) {
	t, ok := g.tiles[id]
	return t, ok
}

// Tiles returns every tile in id order.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.tiles[id])
	}
	return out
}

// TileCount returns the number of tiles.
func (g *Grid) TileCount() int { return len(g.tiles) }

// ClaimedTiles returns the claimed tiles in id order, landing tile included.
func (g *Grid) ClaimedTiles() []*Tile {
	var out []*Tile
	for _, id := range g.order {
		if t := g.tiles[id]; t.claimed {
			out = append(out, t)
		}
	}
	return out
}

// LandingTile returns the start tile, if it exists.
func (g *Grid) LandingTile() (*Tile, bool) {
	c := g.Center()
	t, ok := g.tiles[g.TileIDAt(c.Row, c.Col)]
	if !ok || !t.landing {
		return nil, false
	}
	return t, true
}

// TileAt returns the tile whose cell contains pos.
func (g *Grid) TileAt(pos core.Vec2) (*Tile, bool) {
	b := g.Bounds()
	if !b.Contains(pos) {
		return nil, false
	}
	col := int((pos.X - b.Min.X) / g.params.TileCell.X)
	row := int((pos.Y - b.Min.Y) / g.params.TileCell.Y)
	return g.Tile(g.TileIDAt(row, col))
}

// ClaimedTileUnder returns the claimed tile directly below pos.
func (g *Grid) ClaimedTileUnder(pos core.Vec2) (TileID, bool) {
	t, ok := g.TileAt(pos)
	if !ok || !t.claimed {
		return InvalidTileID, false
	}
	return t.id, true
}

// Obstacles returns the placed obstacles.
func (g *Grid) Obstacles() []Obstacle { return g.obstacles }

// Boundaries returns the boundary pieces.
func (g *Grid) Boundaries() []Boundary { return g.boundaries }

// ActiveTiles returns how many tiles are scheduled for ticking.
func (g *Grid) ActiveTiles() int { return g.active.Len() }

// Tick updates every active tile.
func (g *Grid) Tick(dt float64) {
	if g.paused {
		return
	}
	for _, id := range g.active.Begin() {
		if !g.active.Active(id) {
			continue
		}
		t, ok := g.tiles[id]
		if !ok || !t.Tick(dt) {
			g.active.Remove(id)
		}
	}
}

// Pause detaches every tile from ticking.
func (g *Grid) Pause() {
	g.paused = true
	g.active.Clear()
}

// Resume reattaches tiles that are animating or hold energy.
func (g *Grid) Resume() {
	g.paused = false
	for _, id := range g.order {
		t := g.tiles[id]
		if t.active() {
			g.active.Add(id)
		}
	}
}

// End detaches every tile for good.
func (g *Grid) End() {
	g.paused = true
	g.active.Clear()
}

// Pickup applies tile-wide collectable effects to every claimed tile.
func (g *Grid) Pickup(p Pickup) {
	switch p.Type {
	case CollectableStopDecay:
		for _, t := range g.ClaimedTiles() {
			t.StopDecay(p.Duration)
		}
	case CollectableTileEnergy:
		for _, t := range g.ClaimedTiles() {
			t.AddEnergy(p.Amount)
		}
	case CollectableTileDamage:
		for _, t := range g.ClaimedTiles() {
			t.SubtractEnergy(p.Amount)
		}
	}
}

// Destroy despawns every entity the grid owns.
func (g *Grid) Destroy() {
	g.destroyObstacles()
	g.destroyTiles()
	g.destroyBoundaries()
}

func (g *Grid) destroyTiles() {
	for _, id := range g.order {
		g.spawner.Despawn(g.tiles[id].handle)
	}
	g.tiles = make(map[TileID]*Tile)
	g.order = g.order[:0]
	g.active.Clear()
}

func (g *Grid) destroyObstacles() {
	for _, o := range g.obstacles {
		g.spawner.Despawn(o.Handle)
	}
	g.obstacles = g.obstacles[:0]
}

func (g *Grid) destroyBoundaries() {
	for _, b := range g.boundaries {
		g.spawner.Despawn(b.Handle)
	}
	g.boundaries = nil
}

func (g *Grid) activate(id TileID) {
	if g.paused {
		return
	}
	g.active.Add(id)
}

func (g *Grid) flipped(t *Tile) {
	for _, id := range t.neighbors {
		n, ok := g.tiles[id]
		if !ok {
			continue
		}
		if t.claimed {
			n.neighborClaimed()
		} else {
			n.neighborLost()
		}
	}
}
