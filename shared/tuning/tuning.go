// Package tuning holds the entity property tables and gameplay constants
// shared by the simulation, the headless runner and the client. It must have
// zero dependencies on ebiten or any graphics library so the server binaries
// stay headless.
package tuning

import "time"

// Phase is the coarse-grained mode of the game.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
	PhaseStageClear
)

var phaseNames = map[Phase]string{
	PhaseMenu:       "menu",
	PhasePlaying:    "playing",
	PhasePaused:     "paused",
	PhaseGameOver:   "gameOver",
	PhaseStageClear: "stageClear",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// EnemyType identifies a row of the enemy property table.
type EnemyType string

const (
	EnemySmall  EnemyType = "small"
	EnemyMedium EnemyType = "medium"
	EnemyLarge  EnemyType = "large"
	EnemyBoss   EnemyType = "boss"
)

// PowerUpType identifies a pickup effect.
type PowerUpType string

const (
	PowerUpWeaponUpgrade PowerUpType = "weapon_upgrade"
)

// WeaponLevel is the ordinal upgrade tier of the player's gun.
type WeaponLevel int

const (
	WeaponSingle WeaponLevel = iota
	WeaponDouble
	WeaponTriple
	WeaponUltimate

	MaxWeaponLevel = WeaponUltimate
)

func (w WeaponLevel) String() string {
	switch w {
	case WeaponSingle:
		return "single"
	case WeaponDouble:
		return "double"
	case WeaponTriple:
		return "triple"
	case WeaponUltimate:
		return "ultimate"
	}
	return "unknown"
}

// BossPattern names one of the boss attack volleys.
type BossPattern string

const (
	PatternStraight BossPattern = "straight"
	PatternSpread   BossPattern = "spread"
	PatternAimed    BossPattern = "aimed"
	PatternCircular BossPattern = "circular"
)

// EnemyProps contains the static stats of an enemy type.
type EnemyProps struct {
	Health          int
	Size            float64
	Speed           float64
	ScoreValue      int
	CollisionRadius float64
}

// Enemies is the enemy property table.
var Enemies = map[EnemyType]EnemyProps{
	EnemySmall:  {Health: 1, Size: 0.6, Speed: 0.08, ScoreValue: 100, CollisionRadius: 0.3},
	EnemyMedium: {Health: 2, Size: 0.8, Speed: 0.05, ScoreValue: 200, CollisionRadius: 0.4},
	EnemyLarge:  {Health: 4, Size: 1.2, Speed: 0.03, ScoreValue: 400, CollisionRadius: 0.6},
	EnemyBoss:   {Health: 100, Size: 2.5, Speed: 0.02, ScoreValue: 1000, CollisionRadius: 1.2},
}

// PropsFor returns the stats for t, falling back to the small enemy row for
// unknown types.
func PropsFor(t EnemyType) EnemyProps {
	if p, ok := Enemies[t]; ok {
		return p
	}
	return Enemies[EnemySmall]
}

// SpawnWeight pairs an enemy type with its relative spawn probability.
type SpawnWeight struct {
	Type   EnemyType
	Weight float64
}

// SpawnWeights is evaluated in order against a uniform roll in [0,1).
var SpawnWeights = []SpawnWeight{
	{EnemySmall, 0.6},
	{EnemyMedium, 0.3},
	{EnemyLarge, 0.1},
}

// Playfield
const (
	FieldWidth      = 20.0
	FieldHeight     = 10.0
	BoundsHalfX     = 12.0
	BoundsHalfY     = 6.0
	OutOfBoundsPad  = 2.0
	ExitThresholdX  = -12.0
	SpawnMarginX    = 2.0
	BaseClampX      = 9.0
	BaseClampY      = 4.5
	WideAspect      = 2.0
	TallAspect      = 1.0
	TallClampX      = 8.0
	TallClampY      = 6.0
	DefaultAspect   = 16.0 / 9.0
	DefaultSpawnX   = 10.0
	DefaultSpawnY   = 0.0
	ScrollSpeed     = 0.01
	StarCount       = 100
	MaxHighScores   = 10
	MaxNameLength   = 10
	DefaultUserName = "PILOT"
)

// Player
const (
	PlayerStartX          = -8.0
	PlayerStartY          = 0.0
	PlayerSpeed           = 0.2
	PlayerSize            = 0.8
	PlayerCollisionRadius = 0.4
	PlayerStartLives      = 3
	PlayerShootCooldown   = 200 * time.Millisecond
	InvulnerabilityWindow = 2 * time.Second
)

// Bullets
const (
	PlayerBulletSpeed     = 0.3
	EnemyBulletSpeed      = 0.15
	BulletSize            = 0.3
	BulletCollisionRadius = 0.15
)

// Enemies and pickups
const (
	EnemySpawnRate         = 1000 * time.Millisecond
	EnemyShootRate         = 2000 * time.Millisecond
	EnemyShootMaxX         = 10.0
	MediumWaveFrequency    = 2.0
	MediumWaveAmplitude    = 0.01
	LargeTrackingFactor    = 0.005
	PowerUpDropChance      = 0.2
	PowerUpSize            = 0.6
	PowerUpSpeed           = 0.05
	PowerUpCollisionRadius = 0.3
	MaxPowerUps            = 5
	PowerUpSpawnDelay      = 100 * time.Millisecond
)

// Boss
const (
	BossEntryX         = 12.0
	BossEntryY         = 0.0
	BossBattleX        = 8.0
	BossMovementRange  = 3.0
	BossWaveFrequency  = 0.5
	BossEntryDuration  = 2 * time.Second
	BossShootRate      = 1000 * time.Millisecond
	BossPhaseThreshold = 0.5
	BossBaseHealth     = 100
	BossHealthPerStage = 50
	BossDefeatBonus    = 1000
	BossDefeatSettle   = 100 * time.Millisecond
	BossSpawnScore     = 5000
	BossSpawnDefeats   = 30
	BossClearBatch     = 5
	BossClearInterval  = 50 * time.Millisecond
	BossSpreadCount    = 5
	BossSpreadStep     = 0.2
	BossCircularCount  = 8
)

// BossHealthFor returns the boss health for the given stage.
func BossHealthFor(stage int) int {
	return BossBaseHealth + stage*BossHealthPerStage
}
