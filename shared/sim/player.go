package sim

import (
	"time"

	"github.com/automoto/gradius/shared/gamemath"
	"github.com/automoto/gradius/shared/tuning"
)

func (s *Simulation) movePlayer(in Input, aspect float64) {
	cur := s.store.PlayerPosition()
	next := cur
	if in.Up {
		next.Y += tuning.PlayerSpeed
	}
	if in.Down {
		next.Y -= tuning.PlayerSpeed
	}
	if in.Left {
		next.X -= tuning.PlayerSpeed
	}
	if in.Right {
		next.X += tuning.PlayerSpeed
	}
	next = gamemath.PlayBounds(aspect).Clamp(next)
	if next != cur {
		s.store.MovePlayer(next.X, next.Y)
	}
}

func (s *Simulation) shoot(in Input, now time.Duration) {
	if !in.Shoot {
		return
	}
	if s.hasShot && now-s.lastShot <= tuning.PlayerShootCooldown {
		return
	}
	s.store.ShootBullet()
	s.lastShot = now
	s.hasShot = true
}
