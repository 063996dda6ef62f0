package config

import (
	_ "embed"
)

//go:embed defaults/skyclaim.yaml
var defaultSkyclaimYAML []byte

// DefaultSkyclaimConfig returns the default Skyclaim configuration.
func DefaultSkyclaimConfig() SkyclaimConfig {
	return SkyclaimConfig{
		Grid: GridConfig{
			InitialLength:   5,
			MaxLength:       15,
			MaxObstacles:    6,
			TileCell:        1,
			BoundaryCell:    1,
			ObstacleCell:    2,
			LandingTemplate: "tile.landing",
			Variants: []VariantConfig{
				{Template: "tile.empty"},
				{Template: "tile.moss", DecaySpeed: 0.8},
				{Template: "tile.crystal", MaxEnergy: 12},
			},
			BoundaryTemplates: []string{"boundary.rock", "boundary.ridge"},
			ObstacleTemplates: []string{"obstacle.spire", "obstacle.crater"},
		},
		Tile: TileConfig{
			MaxEnergy:       10,
			ToggleThreshold: 2.5,
			AlertThreshold:  3.5,
			DecaySpeed:      1,
			FlipSpeed:       2,
			ShakeSpeed:      2,
			MaxShakeHeight:  1,
		},
		Ship: ShipConfig{
			MoveSpeed:                5,
			TurnSpeed:                25,
			LiftSpeed:                2,
			MinHeight:                0,
			MaxHeight:                2,
			MaxEnergy:                10,
			ConsumptionRate:          0.5,
			RechargeRate:             1,
			LowEnergyThreshold:       2,
			LowEnergySpeedMultiplier: 0.5,
			Radius:                   0.4,
		},
		Beam: BeamConfig{
			TransferSpeed: 1,
			Radius:        0.9,
		},
		Storms: StormConfig{
			Enabled:     true,
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
		},
		Collectables: CollectableConfig{
			Probability:   0.25,
			Height:        1.5,
			MinExpiration: 3,
			MaxExpiration: 20,
			Radius:        0.35,
			Kinds: []KindConfig{
				{Type: "stop_decay", Template: "pickup.stop_decay", Duration: 5},
				{Type: "ship_damage", Template: "pickup.ship_damage", Amount: 2},
				{Type: "ship_energy", Template: "pickup.ship_energy", Amount: 3},
				{Type: "tile_damage", Template: "pickup.tile_damage", Amount: 2},
				{Type: "tile_energy", Template: "pickup.tile_energy", Amount: 2},
				{Type: "small_points", Template: "pickup.small_points", Points: 5},
				{Type: "medium_points", Template: "pickup.medium_points", Points: 15},
				{Type: "large_points", Template: "pickup.large_points", Points: 50},
				{Type: "speed_up", Template: "pickup.speed_up", Multiplier: 1.5, Duration: 5},
				{Type: "speed_down", Template: "pickup.speed_down", Multiplier: 0.5, Duration: 5},
			},
		},
		Score: ScoreConfig{
			PointsPerTile: 1,
			Period:        5,
		},
		Round: RoundConfig{
			Time: 180,
		},
		Seeds: SeedConfig{
			Grid:         1234,
			Storms:       1234,
			Collectables: 1234,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 5400, // 3 minutes at 30fps
			},
			Scaling: ScalingConfig{
				StormStrength:       1.0,
				SpawnDelayReduction: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "skyclaim", "skyclaim_calm":
		return defaultSkyclaimYAML
	default:
		return nil
	}
}
