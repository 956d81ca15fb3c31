// Package sim advances a gamestate.Store by one frame: player input,
// bullet, enemy and power-up kinematics, collisions, damage, enemy spawning,
// the boss fight and the boss trigger.
//
// Every sweep reads a copy of its collection, records moves, damage and
// removals in a gamestate.Batch, and applies the batch once the sweep ends.
package sim

import (
	"math/rand/v2"
	"time"

	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Input is the directional and fire state for one frame.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Shoot bool
}

// Simulation owns the per-session timers that live outside the store.
type Simulation struct {
	store *gamestate.Store
	rng   *rand.Rand
	log   zerolog.Logger

	epoch     uint64
	lastShot  time.Duration
	hasShot   bool
	lastSpawn time.Duration
	boss      bossController
	frames    uint64
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRand sets the random source used for spawns, drops and boss patterns.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulation) { s.rng = r }
}

// WithLogger sets the simulation logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

// New returns a simulation driving store.
func New(store *gamestate.Store, opts ...Option) *Simulation {
	s := &Simulation{
		store: store,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:   log.With().Str("component", "sim").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the driven store.
func (s *Simulation) Store() *gamestate.Store { return s.store }

// Frames returns the number of frames stepped while playing.
func (s *Simulation) Frames() uint64 { return s.frames }

// Step advances the game by one frame of length dt for a viewport with the
// given aspect ratio. It does nothing unless the phase is playing and
// reports whether the frame ran.
func (s *Simulation) Step(dt time.Duration, in Input, aspect float64) bool {
	if !s.store.Playing() {
		return false
	}
	s.syncSession()
	s.store.Advance(dt)
	if !s.store.Playing() {
		return true
	}
	s.frames++
	now := s.store.Now()

	// Bullets fired this frame are not part of this frame's sweep.
	bullets := s.store.Bullets()

	s.movePlayer(in, aspect)
	s.shoot(in, now)
	s.sweepBullets(bullets)
	if !s.store.Playing() {
		return true
	}
	s.sweepEnemies(now)
	if !s.store.Playing() {
		return true
	}
	s.sweepPowerUps()
	s.updateBoss(now, dt)
	s.spawnEnemies(now)
	s.checkBossTrigger()
	return true
}

// syncSession resets local timers when the store started a new session.
func (s *Simulation) syncSession() {
	if s.epoch == s.store.Epoch() {
		return
	}
	s.epoch = s.store.Epoch()
	s.hasShot = false
	s.lastShot = 0
	s.lastSpawn = s.store.Now()
	s.boss = bossController{}
	s.log.Debug().Uint64("epoch", s.epoch).Msg("session reset")
}

func (s *Simulation) emit(ev gamestate.Event) {
	s.store.Emit(ev)
}

func (s *Simulation) checkBossTrigger() {
	if s.store.BossEngaged() {
		return
	}
	if s.store.ScoreThisStage() >= tuning.BossSpawnScore || s.store.DefeatedEnemies() >= tuning.BossSpawnDefeats {
		s.store.BeginBossApproach()
	}
}
