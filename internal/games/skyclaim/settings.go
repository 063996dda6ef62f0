package skyclaim

import (
	"fmt"

	"github.com/vovakirdan/skyclaim/internal/config"
	"github.com/vovakirdan/skyclaim/internal/core"
	"github.com/vovakirdan/skyclaim/internal/games/skyclaim/sim"
)

// SimConfig maps the YAML configuration onto the simulation tuning.
// Unknown collectable types are reported as config.ErrInvalidConfig.
func SimConfig(cfg config.SkyclaimConfig, runSeed uint64) (sim.Config, error) {
	g := cfg.Grid
	variants := make([]sim.TileVariant, 0, len(g.Variants))
	for _, v := range g.Variants {
		variants = append(variants, sim.TileVariant{
			Template:   v.Template,
			MaxEnergy:  v.MaxEnergy,
			DecaySpeed: v.DecaySpeed,
		})
	}

	kinds := make([]sim.CollectableKind, 0, len(cfg.Collectables.Kinds))
	for i, k := range cfg.Collectables.Kinds {
		typ, ok := sim.ParseCollectableType(k.Type)
		if !ok {
			return sim.Config{}, fmt.Errorf("%w: collectables.kinds[%d]: unknown type %q", config.ErrInvalidConfig, i, k.Type)
		}
		kinds = append(kinds, sim.CollectableKind{
			Type:       typ,
			Template:   k.Template,
			Amount:     k.Amount,
			Duration:   k.Duration,
			Multiplier: k.Multiplier,
			Points:     k.Points,
		})
	}

	t := cfg.Tile
	s := cfg.Ship
	st := cfg.Storms
	co := cfg.Collectables
	return sim.Config{
		Grid: sim.GridParams{
			InitialLength:     g.InitialLength,
			MaxLength:         g.MaxLength,
			MaxObstacles:      g.MaxObstacles,
			TileCell:          square(g.TileCell),
			BoundaryCell:      square(g.BoundaryCell),
			ObstacleCell:      square(g.ObstacleCell),
			LandingTemplate:   g.LandingTemplate,
			Variants:          variants,
			BoundaryTemplates: g.BoundaryTemplates,
			ObstacleTemplates: g.ObstacleTemplates,
			Tile: sim.TileParams{
				MaxEnergy:       t.MaxEnergy,
				ToggleThreshold: t.ToggleThreshold,
				AlertThreshold:  t.AlertThreshold,
				DecaySpeed:      t.DecaySpeed,
				FlipSpeed:       t.FlipSpeed,
				ShakeSpeed:      t.ShakeSpeed,
				MaxShakeHeight:  t.MaxShakeHeight,
			},
		},
		Ship: sim.ShipParams{
			MoveSpeed:                s.MoveSpeed,
			TurnSpeed:                s.TurnSpeed,
			LiftSpeed:                s.LiftSpeed,
			MinHeight:                s.MinHeight,
			MaxHeight:                s.MaxHeight,
			MaxEnergy:                s.MaxEnergy,
			ConsumptionRate:          s.ConsumptionRate,
			RechargeRate:             s.RechargeRate,
			LowEnergyThreshold:       s.LowEnergyThreshold,
			LowEnergySpeedMultiplier: s.LowEnergySpeedMultiplier,
			Radius:                   s.Radius,
		},
		Beam: sim.BeamParams{
			TransferSpeed: cfg.Beam.TransferSpeed,
			Radius:        cfg.Beam.Radius,
		},
		Storms: sim.StormParams{
			SpawnDelay:  st.SpawnDelay,
			Height:      st.Height,
			MinDuration: st.MinDuration,
			MaxDuration: st.MaxDuration,
			MinSpeed:    st.MinSpeed,
			MaxSpeed:    st.MaxSpeed,
			MinStrength: st.MinStrength,
			MaxStrength: st.MaxStrength,
			Radius:      st.Radius,
			Template:    st.Template,
		},
		Collectables: sim.CollectableParams{
			Probability:   co.Probability,
			Height:        co.Height,
			MinExpiration: co.MinExpiration,
			MaxExpiration: co.MaxExpiration,
			Radius:        co.Radius,
			Kinds:         kinds,
		},
		Score: sim.ScoreParams{
			PointsPerTile: cfg.Score.PointsPerTile,
			Period:        cfg.Score.Period,
		},
		GridSeed:        cfg.Seeds.Grid,
		StormSeed:       cfg.Seeds.Storms,
		CollectableSeed: cfg.Seeds.Collectables,
		RunSeed:         runSeed,
		StormsEnabled:   st.Enabled,
		RoundTime:       cfg.Round.Time,
	}, nil
}

func square(side float64) core.Vec2 {
	return core.Vec2{X: side, Y: side}
}
