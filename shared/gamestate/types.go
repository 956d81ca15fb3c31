package gamestate

import (
	"time"

	"github.com/automoto/gradius/shared/tuning"
	dmath "github.com/yohamta/donburi/features/math"
)

// Player is the ship state.
type Player struct {
	Position     dmath.Vec2
	Invulnerable bool
	WeaponLevel  tuning.WeaponLevel
	Lives        int
}

// Bullet is a projectile owned by either the player or the enemies.
type Bullet struct {
	ID             string
	Position       dmath.Vec2
	Direction      dmath.Vec2
	IsPlayerBullet bool
}

// Enemy is a regular (non-boss) foe.
type Enemy struct {
	ID       string
	Type     tuning.EnemyType
	Position dmath.Vec2
	Health   int
	Speed    float64
	LastShot time.Duration
}

// PowerUp is a pickup drifting toward the player.
type PowerUp struct {
	ID       string
	Type     tuning.PowerUpType
	Position dmath.Vec2
}

// Boss is the singleton stage boss. It is not part of the enemy collection.
type Boss struct {
	Active    bool
	Incoming  bool
	Health    int
	MaxHealth int
	Position  dmath.Vec2
	SpawnedAt time.Duration
	LastShot  time.Duration
}

// HealthRatio returns the remaining health in [0,1].
func (b Boss) HealthRatio() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return float64(b.Health) / float64(b.MaxHealth)
}

// Snapshot is a deep copy of the store for presentation layers.
type Snapshot struct {
	Phase           tuning.Phase
	Stage           int
	Score           int
	Player          Player
	Bullets         []Bullet
	Enemies         []Enemy
	PowerUps        []PowerUp
	Boss            Boss
	DefeatedEnemies int
	Time            time.Duration
}

// EventKind classifies a side effect leaving the core.
type EventKind int

const (
	EventPhaseChanged EventKind = iota
	EventShot
	EventEnemyShot
	EventEnemyHit
	EventEnemyDestroyed
	EventPlayerHit
	EventPowerUpSpawned
	EventPowerUpCollected
	EventBossIncoming
	EventBossSpawned
	EventBossHit
	EventBossShot
	EventBossDefeated
)

var eventNames = map[EventKind]string{
	EventPhaseChanged:     "phaseChanged",
	EventShot:             "shot",
	EventEnemyShot:        "enemyShot",
	EventEnemyHit:         "enemyHit",
	EventEnemyDestroyed:   "enemyDestroyed",
	EventPlayerHit:        "playerHit",
	EventPowerUpSpawned:   "powerUpSpawned",
	EventPowerUpCollected: "powerUpCollected",
	EventBossIncoming:     "bossIncoming",
	EventBossSpawned:      "bossSpawned",
	EventBossHit:          "bossHit",
	EventBossShot:         "bossShot",
	EventBossDefeated:     "bossDefeated",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is delivered to subscribers synchronously on the mutator goroutine.
type Event struct {
	Kind      EventKind
	ID        string // entity involved, if any
	Position  dmath.Vec2
	EnemyType tuning.EnemyType
	Points    int
	From      tuning.Phase
	To        tuning.Phase
}
