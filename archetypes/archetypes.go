package archetypes

import (
	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Game = newArchetype(
		components.Game,
		components.HitFlash,
		components.ScreenShake,
	)
	Particle = newArchetype(
		tags.Particle,
		components.Particle,
	)
	Star = newArchetype(
		tags.Star,
		components.Star,
	)
	Banner = newArchetype(
		tags.Banner,
		components.Banner,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
