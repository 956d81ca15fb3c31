package gamestate

import (
	"math"
	"slices"
	"time"

	"github.com/automoto/gradius/shared/gamemath"
	"github.com/automoto/gradius/shared/tuning"
	dmath "github.com/yohamta/donburi/features/math"
)

// shotPattern is one bullet of a weapon volley, relative to the ship.
type shotPattern struct {
	offset    dmath.Vec2
	direction dmath.Vec2
}

var weaponPatterns = map[tuning.WeaponLevel][]shotPattern{
	tuning.WeaponSingle: {
		{dmath.Vec2{X: 1}, dmath.Vec2{X: 1}},
	},
	tuning.WeaponDouble: {
		{dmath.Vec2{X: 1, Y: -0.3}, dmath.Vec2{X: 1}},
		{dmath.Vec2{X: 1, Y: 0.3}, dmath.Vec2{X: 1}},
	},
	tuning.WeaponTriple: {
		{dmath.Vec2{X: 1}, dmath.Vec2{X: 1}},
		{dmath.Vec2{X: 0.8}, dmath.Vec2{X: 1, Y: -0.2}},
		{dmath.Vec2{X: 0.8}, dmath.Vec2{X: 1, Y: 0.2}},
	},
	tuning.WeaponUltimate: {
		{dmath.Vec2{X: 1}, dmath.Vec2{X: 1}},
		{dmath.Vec2{X: 0.8}, dmath.Vec2{X: 1, Y: -0.2}},
		{dmath.Vec2{X: 0.8}, dmath.Vec2{X: 1, Y: 0.2}},
		{dmath.Vec2{X: -0.5}, dmath.Vec2{X: -1}},
	},
}

// Player

// MovePlayer sets the ship position. Callers clamp.
func (s *Store) MovePlayer(x, y float64) {
	s.player.Position = dmath.Vec2{X: x, Y: y}
}

// ShootBullet fires the volley for the current weapon level and returns the
// new bullet ids.
func (s *Store) ShootBullet() []string {
	pattern := weaponPatterns[s.player.WeaponLevel]
	if pattern == nil {
		pattern = weaponPatterns[tuning.WeaponSingle]
	}
	p := s.player.Position
	ids := make([]string, 0, len(pattern))
	for _, shot := range pattern {
		id := s.newID("bullet")
		s.bullets = append(s.bullets, Bullet{
			ID:             id,
			Position:       dmath.Vec2{X: p.X + shot.offset.X, Y: p.Y + shot.offset.Y},
			Direction:      shot.direction,
			IsPlayerBullet: true,
		})
		ids = append(ids, id)
	}
	s.Emit(Event{Kind: EventShot, Position: p})
	return ids
}

// TakeDamage costs a life and a weapon level and opens the invulnerability
// window. Losing the last life ends the game. Hits outside play are ignored.
func (s *Store) TakeDamage() {
	if s.phase != tuning.PhasePlaying || s.player.Invulnerable {
		return
	}
	s.Emit(Event{Kind: EventPlayerHit, Position: s.player.Position})
	if s.player.Lives <= 1 {
		s.player.Lives = 0
		s.GameOver()
		return
	}
	s.player.Lives--
	if s.player.WeaponLevel > tuning.WeaponSingle {
		s.player.WeaponLevel--
	}
	s.player.Invulnerable = true
	s.after(tuning.InvulnerabilityWindow, "invulnerability", func() {
		s.player.Invulnerable = false
	})
}

// CollectPowerUp applies a pickup effect.
func (s *Store) CollectPowerUp(t tuning.PowerUpType) {
	if t != tuning.PowerUpWeaponUpgrade {
		return
	}
	if s.player.WeaponLevel < tuning.MaxWeaponLevel {
		s.player.WeaponLevel++
	}
	s.log.Debug().Stringer("weapon", s.player.WeaponLevel).Msg("weapon upgraded")
}

// IncrementScore adds points to the score.
func (s *Store) IncrementScore(points int) {
	s.score += points
}

// RecordEnemyDefeated bumps the counter used as the alternate boss trigger.
func (s *Store) RecordEnemyDefeated() {
	s.defeated++
}

// Bullets

// SpawnBullet adds a single bullet, used by enemy and boss fire.
func (s *Store) SpawnBullet(pos, dir dmath.Vec2, isPlayer bool) string {
	if !gamemath.Finite(pos) || !gamemath.Finite(dir) {
		return ""
	}
	id := s.newID("bullet")
	s.bullets = append(s.bullets, Bullet{ID: id, Position: pos, Direction: dir, IsPlayerBullet: isPlayer})
	return id
}

// RemoveBullet drops the bullet with id. Unknown ids are ignored.
func (s *Store) RemoveBullet(id string) {
	s.bullets = slices.DeleteFunc(s.bullets, func(b Bullet) bool { return b.ID == id })
}

// ApplyBullets commits a bullet sweep. Bullets added since the sweep started
// are not in the batch and stay untouched.
func (s *Store) ApplyBullets(b *Batch) {
	if b.Empty() {
		return
	}
	kept := s.bullets[:0]
	for _, bl := range s.bullets {
		if b.Removed(bl.ID) {
			continue
		}
		if pos, ok := b.moves[bl.ID]; ok {
			bl.Position = pos
		}
		kept = append(kept, bl)
	}
	clear(s.bullets[len(kept):])
	s.bullets = kept
}

// Enemies

// SpawnEnemy adds an enemy and returns its id. Non-finite positions fall
// back to the default spawn point; a non-positive health takes the table
// value for the type.
func (s *Store) SpawnEnemy(t tuning.EnemyType, pos dmath.Vec2, health int, speed float64) string {
	if !gamemath.Finite(pos) {
		pos = dmath.Vec2{X: tuning.DefaultSpawnX, Y: tuning.DefaultSpawnY}
	}
	props := tuning.PropsFor(t)
	if health <= 0 {
		health = props.Health
	}
	if speed < 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		speed = props.Speed
	}
	id := s.newID("enemy")
	s.enemies = append(s.enemies, Enemy{
		ID:       id,
		Type:     t,
		Position: pos,
		Health:   health,
		Speed:    speed,
		LastShot: s.clock,
	})
	return id
}

// RemoveEnemy drops the enemy with id. Unknown ids are ignored.
func (s *Store) RemoveEnemy(id string) {
	s.enemies = slices.DeleteFunc(s.enemies, func(e Enemy) bool { return e.ID == id })
}

// MarkEnemyShot records when an enemy last fired.
func (s *Store) MarkEnemyShot(id string, at time.Duration) {
	for i := range s.enemies {
		if s.enemies[i].ID == id {
			s.enemies[i].LastShot = at
			return
		}
	}
}

// ApplyEnemies commits an enemy sweep: removals, then damage and moves.
func (s *Store) ApplyEnemies(b *Batch) {
	if b.Empty() {
		return
	}
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if b.Removed(e.ID) {
			continue
		}
		if dmg, ok := b.damage[e.ID]; ok {
			e.Health -= dmg
		}
		if pos, ok := b.moves[e.ID]; ok {
			e.Position = pos
		}
		kept = append(kept, e)
	}
	clear(s.enemies[len(kept):])
	s.enemies = kept
}

// Power-ups

// SpawnPowerUp adds a weapon upgrade at pos. It skips silently when the
// concurrent cap is reached.
func (s *Store) SpawnPowerUp(pos dmath.Vec2) (string, bool) {
	if len(s.powerUps) >= tuning.MaxPowerUps {
		return "", false
	}
	if !gamemath.Finite(pos) {
		pos = dmath.Vec2{X: tuning.DefaultSpawnX, Y: tuning.DefaultSpawnY}
	}
	id := s.newID("powerup")
	s.powerUps = append(s.powerUps, PowerUp{ID: id, Type: tuning.PowerUpWeaponUpgrade, Position: pos})
	s.Emit(Event{Kind: EventPowerUpSpawned, Position: pos})
	return id, true
}

// ScheduleDeferredPowerUp spawns a power-up at pos after a short delay so the
// removal of whatever dropped it settles first.
func (s *Store) ScheduleDeferredPowerUp(pos dmath.Vec2) {
	s.after(tuning.PowerUpSpawnDelay, "powerup", func() {
		s.SpawnPowerUp(pos)
	})
}

// RemovePowerUp drops the power-up with id. Unknown ids are ignored.
func (s *Store) RemovePowerUp(id string) {
	s.powerUps = slices.DeleteFunc(s.powerUps, func(p PowerUp) bool { return p.ID == id })
}

// ApplyPowerUps commits a power-up sweep.
func (s *Store) ApplyPowerUps(b *Batch) {
	if b.Empty() {
		return
	}
	kept := s.powerUps[:0]
	for _, p := range s.powerUps {
		if b.Removed(p.ID) {
			continue
		}
		if pos, ok := b.moves[p.ID]; ok {
			p.Position = pos
		}
		kept = append(kept, p)
	}
	clear(s.powerUps[len(kept):])
	s.powerUps = kept
}

// Boss

// BeginBossApproach clears the remaining regular enemies in small batches and
// spawns the boss once the field is empty.
func (s *Store) BeginBossApproach() {
	if s.boss.Active || s.boss.Incoming {
		return
	}
	s.boss.Incoming = true
	s.log.Info().Int("score", s.score).Int("defeated", s.defeated).Msg("boss incoming")
	s.Emit(Event{Kind: EventBossIncoming})
	s.clearBatch()
}

func (s *Store) clearBatch() {
	n := min(tuning.BossClearBatch, len(s.enemies))
	clear(s.enemies[:n])
	s.enemies = s.enemies[n:]
	if len(s.enemies) > 0 {
		s.after(tuning.BossClearInterval, "boss-clear", s.clearBatch)
		return
	}
	s.after(tuning.BossClearInterval, "boss-spawn", s.SpawnBoss)
}

// SpawnBoss activates the boss at its entry point with stage-scaled health.
func (s *Store) SpawnBoss() {
	health := tuning.BossHealthFor(s.stage)
	s.boss = Boss{
		Active:    true,
		Health:    health,
		MaxHealth: health,
		Position:  dmath.Vec2{X: tuning.BossEntryX, Y: tuning.BossEntryY},
		SpawnedAt: s.clock,
		LastShot:  s.clock,
	}
	s.bossDefeatPending = false
	s.defeated = 0
	s.log.Info().Int("health", health).Int("stage", s.stage).Msg("boss spawned")
	s.Emit(Event{Kind: EventBossSpawned, Position: s.boss.Position})
}

// DamageBoss applies amount to the boss. Reaching zero awards the defeat
// bonus immediately and clears the stage after a short settle delay.
func (s *Store) DamageBoss(amount int) {
	if !s.boss.Active || s.phase != tuning.PhasePlaying || s.bossDefeatPending {
		return
	}
	s.boss.Health = max(s.boss.Health-amount, 0)
	s.Emit(Event{Kind: EventBossHit, Position: s.boss.Position})
	if s.boss.Health > 0 {
		return
	}
	s.bossDefeatPending = true
	s.IncrementScore(tuning.BossDefeatBonus)
	s.Emit(Event{Kind: EventBossDefeated, Position: s.boss.Position, Points: tuning.BossDefeatBonus})
	s.after(tuning.BossDefeatSettle, "boss-defeat", func() {
		s.boss.Active = false
		s.bossDefeatPending = false
		s.StageClear()
	})
}

// MoveBoss sets the boss position.
func (s *Store) MoveBoss(x, y float64) {
	s.boss.Position = dmath.Vec2{X: x, Y: y}
}

// MarkBossShot records when the boss last fired.
func (s *Store) MarkBossShot(at time.Duration) {
	s.boss.LastShot = at
}
