package sim

import (
	"time"

	"github.com/automoto/gradius/shared/tuning"
	dmath "github.com/yohamta/donburi/features/math"
)

// spawnEnemies adds one random enemy every spawn interval while no boss is
// engaged.
func (s *Simulation) spawnEnemies(now time.Duration) {
	if s.store.BossEngaged() {
		s.lastSpawn = now
		return
	}
	if now-s.lastSpawn < tuning.EnemySpawnRate {
		return
	}
	s.lastSpawn = now

	t := RandomEnemyType(s.rng.Float64())
	props := tuning.PropsFor(t)
	pos := dmath.Vec2{
		X: tuning.FieldWidth/2 + s.rng.Float64()*tuning.SpawnMarginX,
		Y: s.rng.Float64()*tuning.FieldHeight - tuning.FieldHeight/2,
	}
	s.store.SpawnEnemy(t, pos, props.Health, props.Speed)
}

// RandomEnemyType maps a uniform roll in [0,1) onto the spawn weights.
func RandomEnemyType(roll float64) tuning.EnemyType {
	cumulative := 0.0
	for _, w := range tuning.SpawnWeights {
		cumulative += w.Weight
		if roll < cumulative {
			return w.Type
		}
	}
	return tuning.EnemySmall
}
