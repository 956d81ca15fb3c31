package config

import "github.com/automoto/gradius/shared/tuning"

// Type aliases so client code can keep using config.Phase etc.
type Phase = tuning.Phase
type EnemyType = tuning.EnemyType
type WeaponLevel = tuning.WeaponLevel

// Re-export phase constants.
const (
	PhaseMenu       = tuning.PhaseMenu
	PhasePlaying    = tuning.PhasePlaying
	PhasePaused     = tuning.PhasePaused
	PhaseGameOver   = tuning.PhaseGameOver
	PhaseStageClear = tuning.PhaseStageClear
)

// Re-export enemy types.
const (
	EnemySmall  = tuning.EnemySmall
	EnemyMedium = tuning.EnemyMedium
	EnemyLarge  = tuning.EnemyLarge
	EnemyBoss   = tuning.EnemyBoss
)

// Re-export the table (same reference, no copy).
var Enemies = tuning.Enemies
