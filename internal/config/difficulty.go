package config

// minSpawnDelay keeps storms from spawning every frame at max difficulty.
const minSpawnDelay = 2.0

// Progression types accepted in difficulty.progression.type.
const (
	ProgressByTime  = "time"  // simulation ticks
	ProgressByScore = "score" // total points
	ProgressByTiles = "tiles" // claimed tiles
	ProgressNone    = "none"
)

// Progress is how far a round has come, in every unit a progression can
// be measured in.
type Progress struct {
	Score int
	Ticks int
	Tiles int
}

// DifficultyManager maps round progress to a level in [0, 1] and the level
// to storm tuning.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a manager starting at cfg.InitialLevel.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clamp01(cfg.InitialLevel),
	}
}

// SetInitialLevel overrides the starting level.
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clamp01(level)
}

// Level rises linearly from the initial level to 1 as the tracked measure
// goes from 0 to Progression.MaxAt. Disabled progression holds the initial
// level.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.cfg.Enabled {
		return d.initialLevel
	}

	var done int
	switch d.cfg.Progression.Type {
	case ProgressByTime:
		done = p.Ticks
	case ProgressByScore:
		done = p.Score
	case ProgressByTiles:
		done = p.Tiles
	default:
		return d.initialLevel
	}

	maxAt := float64(max(1, d.cfg.Progression.MaxAt))
	return d.initialLevel + clamp01(float64(done)/maxAt)*(1-d.initialLevel)
}

// StormStrength is the multiplier applied to every new storm's strength:
// 1 at level 0, 1+Scaling.StormStrength at level 1.
func (d *DifficultyManager) StormStrength(p Progress) float64 {
	return 1 + d.Level(p)*d.cfg.Scaling.StormStrength
}

// SpawnDelay shortens base by up to Scaling.SpawnDelayReduction, never
// below minSpawnDelay unless base already is. A non-positive base, which
// disables storms, is returned unchanged.
func (d *DifficultyManager) SpawnDelay(base float64, p Progress) float64 {
	if base <= 0 {
		return base
	}
	cut := clamp01(d.Level(p) * d.cfg.Scaling.SpawnDelayReduction)
	return max(base*(1-cut), min(minSpawnDelay, base))
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
