package systems

import (
	"image/color"

	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/automoto/gradius/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// DrawStars renders the scrolling background.
func DrawStars(ecs *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.Space)
	tags.Star.Each(ecs.World, func(e *donburi.Entry) {
		s := components.Star.Get(e)
		vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.Size), float32(s.Size), s.Color, false)
	})
}

// DrawWorld renders the store's entities, offset by the current screen shake.
func DrawWorld(ecs *ecs.ECS, screen *ebiten.Image) {
	game, ok := GetGame(ecs)
	if !ok || game.Store.Phase() == tuning.PhaseMenu {
		return
	}
	snap := game.Store.Snapshot()
	flash := getHitFlash(ecs)
	ox, oy := ShakeOffset(ecs)

	for _, p := range snap.PowerUps {
		drawPowerUp(screen, p, ox, oy)
	}
	for _, en := range snap.Enemies {
		drawEnemy(screen, en, flash.Frames[en.ID] > 0, ox, oy)
	}
	if snap.Boss.Active {
		drawBoss(screen, snap.Boss, flash.Boss > 0, ox, oy)
	}
	if snap.Phase != tuning.PhaseGameOver {
		drawPlayer(screen, snap.Player, game.Sim.Frames(), ox, oy)
	}
	for _, b := range snap.Bullets {
		drawBullet(screen, b, ox, oy)
	}
}

// DrawParticles renders explosion and spark particles, fading them out.
func DrawParticles(ecs *ecs.ECS, screen *ebiten.Image) {
	ox, oy := ShakeOffset(ecs)
	tags.Particle.Each(ecs.World, func(e *donburi.Entry) {
		p := components.Particle.Get(e)
		clr := p.Color
		clr.A = uint8(255 * p.Life / max(p.MaxLife, 1))
		half := p.Size / 2
		vector.FillRect(screen, float32(p.X-half+ox), float32(p.Y-half+oy), float32(p.Size), float32(p.Size), clr, false)
	})
}

// screenPos maps a world position to pixels including the shake offset.
func screenPos(p dmath.Vec2, ox, oy float64) (float32, float32) {
	x, y := WorldToScreen(p)
	return float32(x + ox), float32(y + oy)
}

func drawPlayer(screen *ebiten.Image, p gamestate.Player, frame uint64, ox, oy float64) {
	blink := uint64(max(cfg.Render.PlayerBlinkFrames, 1))
	if p.Invulnerable && (frame/blink)%2 == 1 {
		return
	}
	x, y := screenPos(p.Position, ox, oy)
	size := float32(UnitsToPixels(tuning.PlayerSize))
	clr := cfg.Render.PlayerColor

	vector.FillRect(screen, x-size/2, y-size/4, size*0.75, size/2, clr, false)
	vector.StrokeLine(screen, x+size/4, y, x+size/2, y, 2, clr, false)
	vector.StrokeLine(screen, x-size/2, y-size/2, x-size/4, y-size/4, 2, clr, false)
	vector.StrokeLine(screen, x-size/2, y+size/2, x-size/4, y+size/4, 2, clr, false)
}

func drawEnemy(screen *ebiten.Image, en gamestate.Enemy, flashing bool, ox, oy float64) {
	x, y := screenPos(en.Position, ox, oy)
	size := float32(UnitsToPixels(tuning.PropsFor(en.Type).Size))
	clr, ok := cfg.Render.EnemyColors[en.Type]
	if !ok {
		clr = cfg.White
	}
	if flashing {
		clr = cfg.White
	}

	switch en.Type {
	case tuning.EnemyMedium:
		vector.FillCircle(screen, x, y, size/2, clr, false)
	case tuning.EnemyLarge:
		vector.FillRect(screen, x-size/2, y-size/2, size, size, clr, false)
		vector.StrokeRect(screen, x-size/2, y-size/2, size, size, 2, cfg.White, false)
	default:
		vector.FillRect(screen, x-size/2, y-size/2, size, size, clr, false)
	}
}

func drawBoss(screen *ebiten.Image, b gamestate.Boss, flashing bool, ox, oy float64) {
	x, y := screenPos(b.Position, ox, oy)
	size := float32(UnitsToPixels(tuning.Enemies[tuning.EnemyBoss].Size))

	clr := cfg.Render.BossColor
	if b.HealthRatio() < tuning.BossPhaseThreshold {
		clr = cfg.Render.BossAngryColor
	}
	if flashing {
		clr = cfg.White
	}
	vector.FillRect(screen, x-size/2, y-size/2, size, size, clr, false)
	vector.FillCircle(screen, x-size/4, y, size/6, cfg.Yellow, false)
}

func drawBullet(screen *ebiten.Image, b gamestate.Bullet, ox, oy float64) {
	x, y := screenPos(b.Position, ox, oy)
	r := float32(UnitsToPixels(tuning.BulletSize)) / 2
	var clr color.RGBA
	if b.IsPlayerBullet {
		clr = cfg.Render.PlayerBulletColor
		vector.FillRect(screen, x-r*1.5, y-r/2, r*3, r, clr, false)
		return
	}
	clr = cfg.Render.EnemyBulletColor
	vector.FillCircle(screen, x, y, r, clr, false)
}

func drawPowerUp(screen *ebiten.Image, p gamestate.PowerUp, ox, oy float64) {
	x, y := screenPos(p.Position, ox, oy)
	size := float32(UnitsToPixels(tuning.PowerUpSize))
	vector.FillCircle(screen, x, y, size/2, cfg.Render.PowerUpColor, false)
	vector.StrokeCircle(screen, x, y, size/2, 1, cfg.White, false)
}
