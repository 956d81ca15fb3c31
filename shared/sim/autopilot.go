package sim

import (
	"math"

	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/tuning"
	dmath "github.com/yohamta/donburi/features/math"
)

// Autopilot produces input for an unattended ship: it lines up with the
// nearest target, dodges enemy bullets that are about to arrive and holds the
// trigger. It drives the headless runner and the attract mode.
type Autopilot struct {
	// DodgeRange is how far ahead (in x) an incoming bullet is considered a
	// threat.
	DodgeRange float64
	// HoldX is the column the ship tries to stay in.
	HoldX float64
}

// NewAutopilot returns an autopilot with default tuning.
func NewAutopilot() *Autopilot {
	return &Autopilot{DodgeRange: 2.5, HoldX: tuning.PlayerStartX + 2}
}

// Input decides the next frame of input from the store.
func (a *Autopilot) Input(store *gamestate.Store) Input {
	in := Input{Shoot: true}
	player := store.PlayerPosition()

	if threat, ok := a.nearestThreat(player, store.Bullets()); ok {
		if threat.Y >= player.Y {
			in.Down = true
		} else {
			in.Up = true
		}
		return in
	}

	targetY, ok := a.targetY(player, store)
	if ok {
		const deadZone = tuning.PlayerSpeed
		switch {
		case targetY > player.Y+deadZone:
			in.Up = true
		case targetY < player.Y-deadZone:
			in.Down = true
		}
	}

	switch {
	case player.X < a.HoldX-tuning.PlayerSpeed:
		in.Right = true
	case player.X > a.HoldX+tuning.PlayerSpeed:
		in.Left = true
	}
	return in
}

func (a *Autopilot) nearestThreat(player dmath.Vec2, bullets []gamestate.Bullet) (dmath.Vec2, bool) {
	best := math.Inf(1)
	var threat dmath.Vec2
	for _, b := range bullets {
		if b.IsPlayerBullet {
			continue
		}
		dx := b.Position.X - player.X
		dy := b.Position.Y - player.Y
		if dx < -tuning.PlayerCollisionRadius || dx > a.DodgeRange || math.Abs(dy) > 2*tuning.PlayerCollisionRadius {
			continue
		}
		if dx < best {
			best = dx
			threat = b.Position
		}
	}
	return threat, !math.IsInf(best, 1)
}

func (a *Autopilot) targetY(player dmath.Vec2, store *gamestate.Store) (float64, bool) {
	if boss := store.Boss(); boss.Active {
		return boss.Position.Y, true
	}
	best := math.Inf(1)
	y := 0.0
	for _, e := range store.Enemies() {
		if e.Position.X < player.X {
			continue
		}
		if d := e.Position.X - player.X; d < best {
			best = d
			y = e.Position.Y
		}
	}
	return y, !math.IsInf(best, 1)
}
