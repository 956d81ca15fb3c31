package sim

import (
	"math"
	"time"

	"github.com/automoto/gradius/shared/gamemath"
	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/tuning"
	dmath "github.com/yohamta/donburi/features/math"
)

var bossRadius = tuning.Enemies[tuning.EnemyBoss].CollisionRadius

// sweepBullets moves the frame-start bullets and resolves their collisions.
func (s *Simulation) sweepBullets(bullets []gamestate.Bullet) {
	if len(bullets) == 0 {
		return
	}
	moved := gamestate.NewBatch()
	hits := gamestate.NewBatch()

	enemies := s.store.Enemies()
	bp := gamemath.NewBroadphase()
	for i, e := range enemies {
		bp.Insert(i, e.Position, tuning.PropsFor(e.Type).CollisionRadius)
	}

	for _, b := range bullets {
		speed := tuning.EnemyBulletSpeed
		if b.IsPlayerBullet {
			speed = tuning.PlayerBulletSpeed
		}
		pos := gamemath.Advance(b.Position, b.Direction, speed)
		if gamemath.OutOfBounds(pos, tuning.OutOfBoundsPad) {
			moved.Remove(b.ID)
			continue
		}
		moved.Move(b.ID, pos)

		if b.IsPlayerBullet {
			if s.bulletHitsEnemy(pos, enemies, bp, hits) {
				moved.Remove(b.ID)
				continue
			}
			if s.bulletHitsBoss(pos) {
				moved.Remove(b.ID)
			}
			continue
		}

		if !s.store.Invulnerable() && gamemath.BulletHitsPlayer(pos, s.store.PlayerPosition()) {
			moved.Remove(b.ID)
			s.store.TakeDamage()
		}
	}

	s.store.ApplyBullets(moved)
	s.store.ApplyEnemies(hits)
}

// bulletHitsEnemy tests one player bullet against the live enemies. The first
// enemy in collection order wins; enemies already killed this frame are
// skipped.
func (s *Simulation) bulletHitsEnemy(pos dmath.Vec2, enemies []gamestate.Enemy, bp *gamemath.Broadphase, hits *gamestate.Batch) bool {
	for _, idx := range bp.Query(pos, tuning.BulletCollisionRadius) {
		e := enemies[idx]
		if hits.Removed(e.ID) {
			continue
		}
		props := tuning.PropsFor(e.Type)
		if !gamemath.BulletHitsEnemy(pos, e.Position, props.CollisionRadius) {
			continue
		}

		hits.Damage(e.ID, 1)
		if e.Health-hits.DamageOf(e.ID) > 0 {
			s.emit(gamestate.Event{Kind: gamestate.EventEnemyHit, ID: e.ID, Position: e.Position, EnemyType: e.Type})
			return true
		}

		hits.Remove(e.ID)
		s.store.IncrementScore(props.ScoreValue)
		s.store.RecordEnemyDefeated()
		s.emit(gamestate.Event{
			Kind:      gamestate.EventEnemyDestroyed,
			ID:        e.ID,
			Position:  e.Position,
			EnemyType: e.Type,
			Points:    props.ScoreValue,
		})
		if s.rng.Float64() < tuning.PowerUpDropChance {
			s.store.ScheduleDeferredPowerUp(e.Position)
		}
		return true
	}
	return false
}

func (s *Simulation) bulletHitsBoss(pos dmath.Vec2) bool {
	boss := s.store.Boss()
	if !boss.Active || s.store.BossDefeatPending() {
		return false
	}
	if !gamemath.CirclesOverlap(pos, tuning.BulletCollisionRadius, boss.Position, bossRadius) {
		return false
	}
	s.store.DamageBoss(1)
	return true
}

type enemyShot struct {
	id  string
	pos dmath.Vec2
}

// sweepEnemies advances every enemy, drops the ones that left the field and
// trades player contact for one life.
func (s *Simulation) sweepEnemies(now time.Duration) {
	enemies := s.store.Enemies()
	if len(enemies) == 0 {
		return
	}
	batch := gamestate.NewBatch()
	player := s.store.PlayerPosition()
	t := now.Seconds()
	var shots []enemyShot

	for _, e := range enemies {
		pos := e.Position
		pos.X -= e.Speed
		switch e.Type {
		case tuning.EnemyMedium:
			pos.Y += math.Sin(t*tuning.MediumWaveFrequency) * tuning.MediumWaveAmplitude
		case tuning.EnemyLarge:
			pos.Y += (player.Y - pos.Y) * tuning.LargeTrackingFactor
		}

		if pos.X < tuning.ExitThresholdX {
			batch.Remove(e.ID)
			continue
		}

		radius := tuning.PropsFor(e.Type).CollisionRadius
		if !s.store.Invulnerable() && gamemath.PlayerHitsEnemy(player, pos, radius) {
			s.store.TakeDamage()
			batch.Remove(e.ID)
			s.emit(gamestate.Event{Kind: gamestate.EventEnemyHit, ID: e.ID, Position: pos, EnemyType: e.Type})
			continue
		}

		batch.Move(e.ID, pos)
		if e.Type == tuning.EnemyLarge && pos.X < tuning.EnemyShootMaxX && now-e.LastShot >= tuning.EnemyShootRate {
			shots = append(shots, enemyShot{id: e.ID, pos: pos})
		}
	}

	s.store.ApplyEnemies(batch)

	for _, shot := range shots {
		origin := dmath.Vec2{X: shot.pos.X - 0.5, Y: shot.pos.Y}
		s.store.SpawnBullet(origin, dmath.Vec2{X: -1}, false)
		s.store.MarkEnemyShot(shot.id, now)
		s.emit(gamestate.Event{Kind: gamestate.EventEnemyShot, Position: origin, EnemyType: tuning.EnemyLarge})
	}
}

// sweepPowerUps drifts pickups left and collects the ones the ship touches.
func (s *Simulation) sweepPowerUps() {
	powerUps := s.store.PowerUps()
	if len(powerUps) == 0 {
		return
	}
	batch := gamestate.NewBatch()
	player := s.store.PlayerPosition()

	for _, p := range powerUps {
		pos := p.Position
		pos.X -= tuning.PowerUpSpeed
		if pos.X < tuning.ExitThresholdX {
			batch.Remove(p.ID)
			continue
		}
		if gamemath.PlayerHitsPowerUp(player, pos) {
			s.store.CollectPowerUp(p.Type)
			batch.Remove(p.ID)
			s.emit(gamestate.Event{Kind: gamestate.EventPowerUpCollected, Position: pos})
			continue
		}
		batch.Move(p.ID, pos)
	}

	s.store.ApplyPowerUps(batch)
}
