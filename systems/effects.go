package systems

import (
	"math"

	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEffects advances the purely visual entities: particles, stars,
// banners, hit flashes and screen shake.
func UpdateEffects(ecs *ecs.ECS) {
	if game, ok := GetGame(ecs); ok && game.Store.Playing() {
		updateStars(ecs)
	}
	updateParticles(ecs)
	updateBanners(ecs)
	updateHitFlash(ecs)
	updateScreenShake(ecs)
}

// updateStars scrolls the starfield left and wraps stars at the edge.
func updateStars(ecs *ecs.ECS) {
	width := float64(cfg.C.Width)
	tags.Star.Each(ecs.World, func(e *donburi.Entry) {
		star := components.Star.Get(e)
		star.X -= star.Speed
		if star.X < 0 {
			star.X += width
		}
	})
}

// updateParticles moves particles with drag and removes expired ones
func updateParticles(ecs *ecs.ECS) {
	var toDestroy []*donburi.Entry

	drag := cfg.Particles.Drag
	tags.Particle.Each(ecs.World, func(e *donburi.Entry) {
		p := components.Particle.Get(e)
		p.X += p.VX
		p.Y += p.VY
		p.VX *= drag
		p.VY *= drag
		p.Life--
		if p.Life <= 0 {
			toDestroy = append(toDestroy, e)
		}
	})

	for _, e := range toDestroy {
		e.Remove()
	}
}

// updateBanners slides banners in, holds them, then removes them
func updateBanners(ecs *ecs.ECS) {
	var toDestroy []*donburi.Entry

	dt := float32(frameDuration().Seconds())
	tags.Banner.Each(ecs.World, func(e *donburi.Entry) {
		b := components.Banner.Get(e)
		x, done := b.Slide.Update(dt)
		b.X = float64(x)
		if !done {
			return
		}
		b.Hold--
		if b.Hold <= 0 {
			toDestroy = append(toDestroy, e)
		}
	})

	for _, e := range toDestroy {
		e.Remove()
	}
}

// updateHitFlash counts down flash timers and forgets expired ones
func updateHitFlash(ecs *ecs.ECS) {
	flash := getHitFlash(ecs)
	for id, frames := range flash.Frames {
		if frames <= 1 {
			delete(flash.Frames, id)
			continue
		}
		flash.Frames[id] = frames - 1
	}
	if flash.Boss > 0 {
		flash.Boss--
	}
}

func updateScreenShake(ecs *ecs.ECS) {
	shake := getScreenShake(ecs)
	if shake.Duration > 0 {
		shake.Duration--
		shake.Elapsed++
	}
}

// TriggerScreenShake starts a shake, keeping the stronger of the current
// and the new one.
func TriggerScreenShake(ecs *ecs.ECS, intensity float64, duration int) {
	shake := getScreenShake(ecs)
	if shake.Duration > 0 && shake.Intensity > intensity {
		return
	}
	shake.Intensity = intensity
	shake.Duration = duration
	shake.Elapsed = 0
}

// ShakeOffset returns the current camera offset in pixels.
func ShakeOffset(ecs *ecs.ECS) (float64, float64) {
	shake := getScreenShake(ecs)
	if shake.Duration <= 0 {
		return 0, 0
	}
	t := float64(shake.Elapsed)
	return math.Sin(t*1.7) * shake.Intensity, math.Cos(t*2.3) * shake.Intensity
}

// clearTransientEffects drops particles, banners and flashes left over from
// a previous session.
func clearTransientEffects(ecs *ecs.ECS) {
	var toDestroy []*donburi.Entry
	tags.Particle.Each(ecs.World, func(e *donburi.Entry) {
		toDestroy = append(toDestroy, e)
	})
	tags.Banner.Each(ecs.World, func(e *donburi.Entry) {
		toDestroy = append(toDestroy, e)
	})
	for _, e := range toDestroy {
		e.Remove()
	}

	flash := getHitFlash(ecs)
	clear(flash.Frames)
	flash.Boss = 0
	*getScreenShake(ecs) = components.ScreenShakeData{}
}

// getHitFlash returns the flash timers stored on the game entity.
func getHitFlash(ecs *ecs.ECS) *components.HitFlashData {
	entry, ok := components.HitFlash.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.HitFlash))
	}
	flash := components.HitFlash.Get(entry)
	if flash.Frames == nil {
		flash.Frames = make(map[string]int)
	}
	return flash
}

func getScreenShake(ecs *ecs.ECS) *components.ScreenShakeData {
	entry, ok := components.ScreenShake.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.ScreenShake))
	}
	return components.ScreenShake.Get(entry)
}
