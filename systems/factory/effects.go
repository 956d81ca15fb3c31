package factory

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/automoto/gradius/archetypes"
	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// SpawnBurst scatters n particles from (x, y) in screen space, picking
// colours from palette.
func SpawnBurst(ecs *ecs.ECS, x, y float64, n int, palette []color.RGBA) {
	if len(palette) == 0 {
		return
	}
	p := cfg.Particles
	for range n {
		angle := rand.Float64() * 2 * math.Pi
		speed := p.MinSpeed + rand.Float64()*(p.MaxSpeed-p.MinSpeed)
		life := p.Lifetime/2 + rand.IntN(p.Lifetime/2+1)

		entry := archetypes.Particle.Spawn(ecs)
		components.Particle.SetValue(entry, components.ParticleData{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Size:    p.Size,
			Color:   palette[rand.IntN(len(palette))],
			Life:    life,
			MaxLife: life,
		})
	}
}

// SpawnExplosion spawns an explosion of n particles centred at (x, y).
func SpawnExplosion(ecs *ecs.ECS, x, y float64, n int) {
	SpawnBurst(ecs, x, y, n, cfg.Particles.ExplosionColors)
}

// SpawnSparks spawns a few white sparks for a non-lethal hit.
func SpawnSparks(ecs *ecs.ECS, x, y float64) {
	SpawnBurst(ecs, x, y, cfg.Particles.HitSparks, []color.RGBA{cfg.Particles.SparkColor})
}

// SpawnPickup spawns the green burst of a collected power-up.
func SpawnPickup(ecs *ecs.ECS, x, y float64) {
	SpawnBurst(ecs, x, y, cfg.Particles.HitSparks*3, []color.RGBA{cfg.Particles.PickupColor})
}

// SpawnBanner slides a text banner in from the right edge of the screen.
func SpawnBanner(ecs *ecs.ECS, msg string, clr color.RGBA) {
	start := float32(cfg.C.Width)
	end := float32(cfg.C.Width) / 2
	entry := archetypes.Banner.Spawn(ecs)
	components.Banner.SetValue(entry, components.BannerData{
		Text:  msg,
		Color: clr,
		Slide: gween.New(start, end, cfg.HUD.BannerDuration, ease.OutQuad),
		X:     float64(start),
		Hold:  cfg.HUD.BannerHold,
	})
}
