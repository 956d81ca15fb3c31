package sim

import (
	"math"
	"time"

	"github.com/automoto/gradius/shared/gamemath"
	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	dmath "github.com/yohamta/donburi/features/math"
)

// bossController drives the boss entry tween and battle movement. It is
// rebuilt whenever the store spawns a new boss.
type bossController struct {
	spawnedAt   time.Duration
	tracking    bool
	entry       *gween.Tween
	entering    bool
	battleStart time.Duration
}

// Shot is a single projectile of a boss volley.
type Shot struct {
	Position  dmath.Vec2
	Direction dmath.Vec2
}

func (s *Simulation) updateBoss(now, dt time.Duration) {
	boss := s.store.Boss()
	if !boss.Active {
		s.boss = bossController{}
		return
	}
	if !s.boss.tracking || s.boss.spawnedAt != boss.SpawnedAt {
		s.boss = bossController{
			spawnedAt: boss.SpawnedAt,
			tracking:  true,
			entering:  true,
			entry: gween.New(float32(boss.Position.X), tuning.BossBattleX,
				float32(tuning.BossEntryDuration.Seconds()), ease.OutQuad),
		}
	}

	if s.boss.entering {
		x, done := s.boss.entry.Update(float32(dt.Seconds()))
		s.store.MoveBoss(float64(x), boss.Position.Y)
		if done {
			s.boss.entering = false
			s.boss.battleStart = now
			s.store.MoveBoss(tuning.BossBattleX, boss.Position.Y)
		}
		return
	}

	t := (now - s.boss.battleStart).Seconds()
	s.store.MoveBoss(tuning.BossBattleX, gamemath.SineWave(t, tuning.BossMovementRange, tuning.BossWaveFrequency))

	if s.store.BossDefeatPending() || now-boss.LastShot < tuning.BossShootRate {
		return
	}
	boss = s.store.Boss()
	pattern := s.pickPattern(boss.HealthRatio())
	for _, shot := range BossVolley(pattern, boss.Position, s.store.PlayerPosition()) {
		s.store.SpawnBullet(shot.Position, shot.Direction, false)
	}
	s.store.MarkBossShot(now)
	s.emit(gamestate.Event{Kind: gamestate.EventBossShot, Position: boss.Position})
}

var (
	calmPatterns  = []tuning.BossPattern{tuning.PatternStraight, tuning.PatternSpread}
	angryPatterns = []tuning.BossPattern{tuning.PatternSpread, tuning.PatternCircular, tuning.PatternAimed}
)

// pickPattern chooses the next volley. Below the phase threshold the boss
// draws from the harder set.
func (s *Simulation) pickPattern(healthRatio float64) tuning.BossPattern {
	set := calmPatterns
	if healthRatio <= tuning.BossPhaseThreshold {
		set = angryPatterns
	}
	return set[s.rng.IntN(len(set))]
}

// BossVolley returns the bullets of one boss attack.
func BossVolley(pattern tuning.BossPattern, boss, player dmath.Vec2) []Shot {
	muzzle := dmath.Vec2{X: boss.X - 1, Y: boss.Y}
	switch pattern {
	case tuning.PatternSpread:
		shots := make([]Shot, 0, tuning.BossSpreadCount)
		half := tuning.BossSpreadCount / 2
		for i := -half; i <= half; i++ {
			shots = append(shots, Shot{muzzle, dmath.Vec2{X: -1, Y: float64(i) * tuning.BossSpreadStep}})
		}
		return shots
	case tuning.PatternAimed:
		dir := gamemath.Normalize(dmath.Vec2{X: player.X - boss.X, Y: player.Y - boss.Y})
		if dir.X == 0 && dir.Y == 0 {
			dir.X = -1
		}
		return []Shot{{muzzle, dir}}
	case tuning.PatternCircular:
		shots := make([]Shot, 0, tuning.BossCircularCount)
		for i := range tuning.BossCircularCount {
			angle := float64(i) / tuning.BossCircularCount * 2 * math.Pi
			shots = append(shots, Shot{boss, dmath.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}})
		}
		return shots
	default:
		return []Shot{{muzzle, dmath.Vec2{X: -1}}}
	}
}
