package skyclaim

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/games/skyclaim/sim"
)

// hudHeight is the number of rows above the playfield.
const hudHeight = 2

// Visual characters for rendering
const (
	BoundaryChar  = '▓'
	CornerChar    = '█'
	ObstacleChar  = '▲'
	ClaimedChar   = '█'
	ChargedChar   = '▒'
	FaintChar     = '░'
	EmptyChar     = '·'
	LandingChar   = '▣'
	StormChar     = '≈'
	PickupChar    = '◆'
	GroundedChar  = '■'
	BorderHoriz   = '─'
	energyBarSize = 10
)

// shipGlyphs indexes heading octants clockwise from +X on a y-down screen.
var shipGlyphs = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// flipGlyphs are the frames of a half-turn tile flip, edge-on in the middle.
var flipGlyphs = []rune{'▒', '▐', '│', '▌', '█'}

// stormEyeGlyphs draw the eye's spin, one per 45 degrees of a half turn.
var stormEyeGlyphs = []rune{'─', '╲', '│', '╱'}

// viewport maps world positions to screen cells. One tile is two columns wide.
type viewport struct {
	ox, oy int
	cell   core.Vec2
}

func newViewport(dst *core.Screen, cell core.Vec2) viewport {
	return viewport{
		ox:   dst.Width()/2 - 1,
		oy:   hudHeight + (dst.Height()-hudHeight)/2,
		cell: cell,
	}
}

func (v viewport) project(p core.Vec2) (int, int) {
	col := int(math.Round(p.X / v.cell.X))
	row := int(math.Round(p.Y / v.cell.Y))
	return v.ox + col*2, v.oy + row
}

func (v viewport) put(dst *core.Screen, p core.Vec2, left, right rune, c core.Color) {
	x, y := v.project(p)
	if y < hudHeight {
		return
	}
	dst.SetColored(x, y, left, c)
	dst.SetColored(x+1, y, right, c)
}

// Render draws the current world into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall || g.world == nil {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	grid := g.world.Grid()
	vp := newViewport(dst, grid.Params().TileCell)

	g.renderHUD(dst)
	g.renderBoundaries(dst, vp)
	g.renderTiles(dst, vp)
	g.renderObstacles(dst, vp)
	g.renderCollectables(dst, vp)
	g.renderStorms(dst, vp)
	g.renderShip(dst, vp)
	g.renderOverlay(dst)
}

// renderHUD draws score, claimed tiles, time and the energy gauge.
func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world

	scoreText := fmt.Sprintf("Score: %d", w.Score().Total())
	dst.DrawText(1, 0, scoreText)

	tilesText := fmt.Sprintf("Tiles: %d", w.Score().DisplayedClaimedTiles())
	dst.DrawTextCentered(0, tilesText)

	timeText := "Time: --:--"
	if rem := w.Remaining(); rem >= 0 {
		secs := int(math.Ceil(rem))
		timeText = fmt.Sprintf("Time: %d:%02d", secs/60, secs%60)
	}
	dst.DrawText(dst.Width()-len(timeText)-1, 0, timeText)

	for x := range dst.Width() {
		dst.Set(x, 1, BorderHoriz)
	}

	ship := w.Ship()
	filled := int(math.Round(ship.EnergyRatio() * energyBarSize))
	filled = core.Clamp(filled, 0, energyBarSize)
	bar := strings.Repeat("#", filled) + strings.Repeat("-", energyBarSize-filled)
	color := core.ColorBrightGreen
	if ship.LowEnergy() {
		color = core.ColorBrightRed
	}
	dst.DrawTextColored(1, 1, fmt.Sprintf(" Energy [%s] %4.1f ", bar, math.Max(ship.Energy(), 0)), color)

	if flags := g.statusFlags(); flags != "" {
		text := " " + flags + " "
		dst.DrawText(dst.Width()-len([]rune(text))-1, 1, text)
	}
}

func (g *Game) statusFlags() string {
	ship := g.world.Ship()
	var flags []string
	switch {
	case ship.Landing():
		flags = append(flags, "LANDING")
	case ship.TakingOff():
		flags = append(flags, "LIFTOFF")
	case ship.Recharging():
		flags = append(flags, "RECHARGE")
	case ship.Grounded():
		flags = append(flags, "LANDED")
	}
	if g.world.Beam().Enabled() {
		flags = append(flags, "BEAM")
	}
	if ship.LowEnergy() {
		flags = append(flags, "SAVING")
	}
	if m := ship.SpeedMultiplier(); m > 1 {
		flags = append(flags, "FAST")
	} else if m < 1 && !ship.LowEnergy() {
		flags = append(flags, "SLOW")
	}
	return strings.Join(flags, " ")
}

func (g *Game) renderBoundaries(dst *core.Screen, vp viewport) {
	for _, b := range g.world.Grid().Boundaries() {
		r := BoundaryChar
		if b.Corner {
			r = CornerChar
		}
		vp.put(dst, b.Position, r, r, core.ColorGray)
	}
}

func (g *Game) renderTiles(dst *core.Screen, vp viewport) {
	for _, t := range g.world.Grid().Tiles() {
		r, c := tileGlyph(t)
		left, right := r, r
		if t.Selected() {
			left, right = '[', ']'
		}
		vp.put(dst, t.Position(), left, right, c)
	}
}

// tileGlyph picks a rune and color from the claim state and energy.
func tileGlyph(t *sim.Tile) (rune, core.Color) {
	ratio := t.EnergyRatio()
	switch {
	case t.LandingArea():
		return LandingChar, core.ColorBrightCyan
	case t.Animation() == sim.AnimFlip:
		return flipGlyph(t.Rotation()), core.ColorBrightWhite
	case t.Claimed() && t.Animation() == sim.AnimShake:
		return ClaimedChar, core.ColorOrange
	case t.Claimed() && t.NoDecayRemaining() > 0:
		return ClaimedChar, core.ColorBrightCyan
	case t.Claimed():
		return ClaimedChar, core.ColorGreen
	case ratio >= 0.15:
		return ChargedChar, core.ColorYellow
	case ratio > 0:
		return FaintChar, core.ColorYellow
	default:
		return EmptyChar, core.ColorGray
	}
}

func (g *Game) renderObstacles(dst *core.Screen, vp viewport) {
	grid := g.world.Grid()
	cell := grid.Params().TileCell
	for _, o := range grid.Obstacles() {
		for _, c := range o.Covers {
			vp.put(dst, grid.CellPosition(c.Row, c.Col, cell), ObstacleChar, ObstacleChar, core.ColorGray)
		}
	}
}

func (g *Game) renderCollectables(dst *core.Screen, vp viewport) {
	for _, c := range g.world.Collectables().Live() {
		color := core.ColorBrightYellow
		switch c.Kind.Type {
		case sim.CollectableShipDamage, sim.CollectableTileDamage, sim.CollectableSpeedDown:
			color = core.ColorBrightRed
		case sim.CollectableShipEnergy, sim.CollectableTileEnergy, sim.CollectableStopDecay:
			color = core.ColorBrightCyan
		}
		vp.put(dst, c.Position, PickupChar, ' ', color)
	}
}

func (g *Game) renderStorms(dst *core.Screen, vp viewport) {
	grid := g.world.Grid()
	for _, s := range g.world.Storms().Storms() {
		for _, t := range tilesUnder(grid, s.Position(), s.Radius()) {
			vp.put(dst, t.Position(), StormChar, StormChar, core.ColorBrightMagenta)
		}
		eye := stormEyeGlyph(s.Rotation())
		vp.put(dst, s.Position(), eye, eye, core.ColorMagenta)
	}
}

// flipGlyph picks the frame for a flip angle in [0, π].
func flipGlyph(rotation float64) rune {
	i := int(math.Round(rotation / math.Pi * float64(len(flipGlyphs)-1)))
	return flipGlyphs[core.Clamp(i, 0, len(flipGlyphs)-1)]
}

// stormEyeGlyph picks the spin frame for angle. The glyphs repeat every half
// turn.
func stormEyeGlyph(angle float64) rune {
	i := int(math.Round(angle/(math.Pi/4))) % len(stormEyeGlyphs)
	if i < 0 {
		i += len(stormEyeGlyphs)
	}
	return stormEyeGlyphs[i]
}

func (g *Game) renderShip(dst *core.Screen, vp viewport) {
	ship := g.world.Ship()
	color := core.ColorBrightWhite
	if ship.LowEnergy() {
		color = core.ColorBrightRed
	}
	if ship.Grounded() {
		vp.put(dst, ship.Position(), GroundedChar, GroundedChar, color)
		return
	}
	r := headingGlyph(ship.Heading())
	vp.put(dst, ship.Position(), r, r, color)
}

// headingGlyph returns the arrow closest to heading (radians).
func headingGlyph(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % len(shipGlyphs)
	if octant < 0 {
		octant += len(shipGlyphs)
	}
	return shipGlyphs[octant]
}

// renderOverlay draws pause and end-of-round messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	w := g.world
	switch w.Phase() {
	case sim.PhasePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case sim.PhaseEnded:
		title := "ROUND OVER"
		switch w.Outcome() {
		case sim.OutcomeCompleted:
			title = "ROUND COMPLETE"
		case sim.OutcomeFailed:
			title = "OUT OF ENERGY"
		}
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", w.Score().Total())
		drawCenteredBox(dst, title, subtitle)

	default:
		if g.loadErr != nil {
			dst.DrawTextColored(1, dst.Height()-1, "config error, using defaults", core.ColorRed)
		}
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
