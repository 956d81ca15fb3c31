package factory

import (
	"math/rand/v2"

	"github.com/automoto/gradius/archetypes"
	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/yohamta/donburi/ecs"
)

// CreateStarfield scatters the background stars over the whole screen.
func CreateStarfield(ecs *ecs.ECS) {
	s := cfg.Starfield
	for range s.Count {
		clr := s.Color
		if rand.Float64() < s.DimChance {
			clr = s.DimColor
		}
		entry := archetypes.Star.Spawn(ecs)
		components.Star.SetValue(entry, components.StarData{
			X:     rand.Float64() * float64(cfg.C.Width),
			Y:     rand.Float64() * float64(cfg.C.Height),
			Speed: s.MinSpeed + rand.Float64()*(s.MaxSpeed-s.MinSpeed),
			Size:  s.MinSize + rand.Float64()*(s.MaxSize-s.MinSize),
			Color: clr,
		})
	}
}
