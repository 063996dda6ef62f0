// Package config provides YAML-based game configuration loading and
// difficulty management for skyclaim.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// SkyclaimConfig contains all configuration for the game.
type SkyclaimConfig struct {
	Grid         GridConfig        `yaml:"grid"`
	Tile         TileConfig        `yaml:"tile"`
	Ship         ShipConfig        `yaml:"ship"`
	Beam         BeamConfig        `yaml:"beam"`
	Storms       StormConfig       `yaml:"storms"`
	Collectables CollectableConfig `yaml:"collectables"`
	Score        ScoreConfig       `yaml:"score"`
	Round        RoundConfig       `yaml:"round"`
	Seeds        SeedConfig        `yaml:"seeds"`
	Difficulty   DifficultyConfig  `yaml:"difficulty"`
}

// GridConfig defines the playfield layout.
type GridConfig struct {
	InitialLength     int             `yaml:"initial_length"` // side length on first activation
	MaxLength         int             `yaml:"max_length"`
	MaxObstacles      int             `yaml:"max_obstacles"`
	TileCell          float64         `yaml:"tile_cell"`
	BoundaryCell      float64         `yaml:"boundary_cell"`
	ObstacleCell      float64         `yaml:"obstacle_cell"`
	LandingTemplate   string          `yaml:"landing_template"`
	Variants          []VariantConfig `yaml:"variants"`
	BoundaryTemplates []string        `yaml:"boundary_templates"`
	ObstacleTemplates []string        `yaml:"obstacle_templates"`
}

// VariantConfig is one random tile flavour. Zero values inherit the tile defaults.
type VariantConfig struct {
	Template   string  `yaml:"template"`
	MaxEnergy  float64 `yaml:"max_energy"`
	DecaySpeed float64 `yaml:"decay_speed"`
}

// TileConfig defines the claim state machine thresholds.
type TileConfig struct {
	MaxEnergy       float64 `yaml:"max_energy"`
	ToggleThreshold float64 `yaml:"toggle_threshold"`
	AlertThreshold  float64 `yaml:"alert_threshold"`
	DecaySpeed      float64 `yaml:"decay_speed"`
	FlipSpeed       float64 `yaml:"flip_speed"`
	ShakeSpeed      float64 `yaml:"shake_speed"`
	MaxShakeHeight  float64 `yaml:"max_shake_height"`
}

// ShipConfig defines the spaceship handling and energy economy.
type ShipConfig struct {
	MoveSpeed                float64 `yaml:"move_speed"`
	TurnSpeed                float64 `yaml:"turn_speed"` // degrees per second
	LiftSpeed                float64 `yaml:"lift_speed"`
	MinHeight                float64 `yaml:"min_height"`
	MaxHeight                float64 `yaml:"max_height"`
	MaxEnergy                float64 `yaml:"max_energy"`
	ConsumptionRate          float64 `yaml:"consumption_rate"`
	RechargeRate             float64 `yaml:"recharge_rate"`
	LowEnergyThreshold       float64 `yaml:"low_energy_threshold"`
	LowEnergySpeedMultiplier float64 `yaml:"low_energy_speed_multiplier"`
	Radius                   float64 `yaml:"radius"`
}

// BeamConfig defines the energy beam.
type BeamConfig struct {
	TransferSpeed float64 `yaml:"transfer_speed"`
	Radius        float64 `yaml:"radius"`
}

// StormConfig defines storm spawning.
type StormConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SpawnDelay  float64 `yaml:"spawn_delay"`
	Height      float64 `yaml:"height"`
	MinDuration float64 `yaml:"min_duration"`
	MaxDuration float64 `yaml:"max_duration"`
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	MinStrength float64 `yaml:"min_strength"`
	MaxStrength float64 `yaml:"max_strength"`
	Radius      float64 `yaml:"radius"`
	Template    string  `yaml:"template"`
}

// CollectableConfig defines the pickup table.
type CollectableConfig struct {
	Probability   float64      `yaml:"probability"`
	Height        float64      `yaml:"height"`
	MinExpiration float64      `yaml:"min_expiration"`
	MaxExpiration float64      `yaml:"max_expiration"`
	Radius        float64      `yaml:"radius"`
	Kinds         []KindConfig `yaml:"kinds"`
}

// KindConfig is one pickup type.
type KindConfig struct {
	Type       string  `yaml:"type"`
	Template   string  `yaml:"template"`
	Amount     float64 `yaml:"amount"`
	Duration   float64 `yaml:"duration"`
	Multiplier float64 `yaml:"multiplier"`
	Points     uint64  `yaml:"points"`
}

// ScoreConfig defines periodic scoring.
type ScoreConfig struct {
	PointsPerTile uint64  `yaml:"points_per_tile"`
	Period        float64 `yaml:"period"`
}

// RoundConfig defines the round timer.
type RoundConfig struct {
	Time float64 `yaml:"time"` // seconds, 0 = endless
}

// SeedConfig holds the base seed of each generator.
type SeedConfig struct {
	Grid         uint64 `yaml:"grid"`
	Storms       uint64 `yaml:"storms"`
	Collectables uint64 `yaml:"collectables"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time", "score", "tiles" or "none"
	MaxAt int    `yaml:"max_at"` // ticks, points or tiles at which the level reaches 1
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	StormStrength       float64 `yaml:"storm_strength"`        // Added to the storm strength multiplier at max difficulty
	SpawnDelayReduction float64 `yaml:"spawn_delay_reduction"` // Fraction of the spawn delay removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports every inconsistency in the config. Each returned error
// wraps ErrInvalidConfig.
func (c SkyclaimConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	g := c.Grid
	check(g.InitialLength > 0 && g.InitialLength%2 == 1, "grid.initial_length must be odd and positive, got %d", g.InitialLength)
	check(g.MaxLength > 0 && g.MaxLength%2 == 1, "grid.max_length must be odd and positive, got %d", g.MaxLength)
	check(g.InitialLength <= g.MaxLength, "grid.initial_length %d exceeds grid.max_length %d", g.InitialLength, g.MaxLength)
	check(g.MaxObstacles >= 0, "grid.max_obstacles must not be negative")
	check(g.TileCell > 0 && g.BoundaryCell > 0 && g.ObstacleCell > 0, "grid cell sizes must be positive")
	check(g.LandingTemplate != "", "grid.landing_template is required")
	check(len(g.Variants) > 0, "grid.variants needs at least the empty variant")

	t := c.Tile
	check(t.MaxEnergy > 0, "tile.max_energy must be positive")
	check(t.ToggleThreshold > 0 && t.ToggleThreshold < t.AlertThreshold, "tile.toggle_threshold must be positive and below tile.alert_threshold")
	check(t.AlertThreshold <= t.MaxEnergy, "tile.alert_threshold must not exceed tile.max_energy")
	check(t.DecaySpeed >= 0, "tile.decay_speed must not be negative")
	check(t.FlipSpeed > 0 && t.ShakeSpeed > 0, "tile animation speeds must be positive")

	s := c.Ship
	check(s.MaxEnergy > 0, "ship.max_energy must be positive")
	check(s.LowEnergyThreshold < s.MaxEnergy, "ship.low_energy_threshold must be below ship.max_energy")
	check(s.MinHeight <= s.MaxHeight, "ship.min_height exceeds ship.max_height")
	check(s.LiftSpeed > 0, "ship.lift_speed must be positive")
	check(s.ConsumptionRate >= 0 && s.RechargeRate >= 0, "ship energy rates must not be negative")

	check(c.Beam.TransferSpeed >= 0, "beam.transfer_speed must not be negative")

	st := c.Storms
	check(st.MinDuration <= st.MaxDuration, "storms duration range is inverted")
	check(st.MinSpeed <= st.MaxSpeed, "storms speed range is inverted")
	check(st.MinStrength <= st.MaxStrength, "storms strength range is inverted")

	co := c.Collectables
	check(co.Probability >= 0 && co.Probability <= 1, "collectables.probability must be within [0, 1]")
	check(co.MinExpiration <= co.MaxExpiration, "collectables expiration range is inverted")
	for i, k := range co.Kinds {
		check(k.Type != "", "collectables.kinds[%d].type is required", i)
	}

	switch c.Difficulty.Progression.Type {
	case ProgressByTime, ProgressByScore, ProgressByTiles, ProgressNone:
	default:
		check(false, "difficulty.progression.type %q is not time, score, tiles or none", c.Difficulty.Progression.Type)
	}
	check(c.Difficulty.Progression.MaxAt >= 0, "difficulty.progression.max_at must not be negative")

	check(c.Score.Period >= 0, "score.period must not be negative")
	check(c.Round.Time >= 0, "round.time must not be negative")

	return errors.Join(errs...)
}
