// Package gamestate is the single source of truth for a running game: phase,
// score, lives, weapon level, the player ship, and the live bullet, enemy,
// power-up and boss state. The simulation reads and writes it directly;
// presentation layers read Snapshot and subscribe to events.
//
// A Store is owned by one goroutine and performs no locking.
package gamestate

import (
	"slices"
	"time"

	"github.com/automoto/gradius/shared/schedule"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	dmath "github.com/yohamta/donburi/features/math"
)

// Store holds the canonical mutable game state.
type Store struct {
	phase           tuning.Phase
	stage           int
	score           int
	stageStartScore int
	player          Player

	bullets  []Bullet
	enemies  []Enemy
	powerUps []PowerUp
	boss     Boss

	bossDefeatPending bool
	defeated          int

	// clock only advances through Advance, which the simulation calls while
	// the phase is playing.
	clock  time.Duration
	epoch  uint64
	timers schedule.Queue

	subscribers []func(Event)
	newID       func(prefix string) string
	log         zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDGenerator replaces the uuid based id source.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Store) { s.newID = fn }
}

// New returns a store sitting in the menu with default values.
func New(opts ...Option) *Store {
	s := &Store{
		phase: tuning.PhaseMenu,
		log:   log.With().Str("component", "store").Logger(),
		newID: func(prefix string) string {
			return prefix + "_" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetRun()
	return s
}

// Subscribe registers fn for every event. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subscribers = append(s.subscribers, fn)
	idx := len(s.subscribers) - 1
	return func() {
		if idx < len(s.subscribers) {
			s.subscribers[idx] = nil
		}
	}
}

// Emit delivers ev to all subscribers.
func (s *Store) Emit(ev Event) {
	for _, fn := range s.subscribers {
		if fn != nil {
			fn(ev)
		}
	}
}

// OnPhaseChange registers fn for phase transitions only.
func (s *Store) OnPhaseChange(fn func(from, to tuning.Phase)) func() {
	return s.Subscribe(func(ev Event) {
		if ev.Kind == EventPhaseChanged {
			fn(ev.From, ev.To)
		}
	})
}

func (s *Store) setPhase(to tuning.Phase) {
	from := s.phase
	if from == to {
		return
	}
	s.phase = to
	s.log.Debug().Stringer("from", from).Stringer("to", to).Msg("phase change")
	s.Emit(Event{Kind: EventPhaseChanged, From: from, To: to})
}

// Advance moves the game clock forward by dt and fires due timers.
func (s *Store) Advance(dt time.Duration) schedule.Stats {
	if dt > 0 {
		s.clock += dt
	}
	st := s.timers.Run(s.clock)
	if st.Dropped > 0 {
		s.log.Debug().Int("dropped", st.Dropped).Msg("stale timers dropped")
	}
	return st
}

// after schedules fn on the game clock. The task only runs if the game is
// still playing the same session when it comes due.
func (s *Store) after(delay time.Duration, name string, fn func()) {
	epoch := s.epoch
	guard := func() bool {
		return s.phase == tuning.PhasePlaying && s.epoch == epoch
	}
	s.timers.After(s.clock, delay, name, guard, fn)
}

// resetRun restores every per-run value to its default.
func (s *Store) resetRun() {
	s.stage = 1
	s.score = 0
	s.stageStartScore = 0
	s.player.Lives = tuning.PlayerStartLives
	s.player.WeaponLevel = tuning.WeaponSingle
	s.resetStage(tuning.BossBaseHealth)
}

// resetStage clears per-stage state and starts a new session epoch so
// pending timers from the previous session are dropped.
func (s *Store) resetStage(bossBaseline int) {
	s.epoch++
	s.bullets = nil
	s.enemies = nil
	s.powerUps = nil
	s.boss = Boss{
		Health:    bossBaseline,
		MaxHealth: bossBaseline,
		Position:  dmath.Vec2{X: tuning.BossEntryX, Y: tuning.BossEntryY},
	}
	s.bossDefeatPending = false
	s.defeated = 0
	s.player.Position = dmath.Vec2{X: tuning.PlayerStartX, Y: tuning.PlayerStartY}
	s.player.Invulnerable = false
}

// StartGame begins a fresh run from stage 1.
func (s *Store) StartGame() {
	s.resetRun()
	s.log.Info().Msg("game started")
	s.setPhase(tuning.PhasePlaying)
}

// RestartGame is StartGame issued from the game over screen.
func (s *Store) RestartGame() {
	s.resetRun()
	s.log.Info().Msg("game restarted")
	s.setPhase(tuning.PhasePlaying)
}

// ContinueToNextStage advances the stage and resumes play. Score, lives and
// weapon level carry over.
func (s *Store) ContinueToNextStage() {
	prev := s.stage
	s.resetStage(tuning.BossHealthFor(prev))
	s.stage = prev + 1
	s.stageStartScore = s.score
	s.log.Info().Int("stage", s.stage).Msg("stage started")
	s.setPhase(tuning.PhasePlaying)
}

// GameOver ends the run.
func (s *Store) GameOver() {
	if s.phase != tuning.PhaseGameOver {
		s.log.Info().Int("score", s.score).Int("stage", s.stage).Msg("game over")
	}
	s.setPhase(tuning.PhaseGameOver)
}

// StageClear marks the stage as won.
func (s *Store) StageClear() {
	if s.phase != tuning.PhaseStageClear {
		s.log.Info().Int("score", s.score).Int("stage", s.stage).Msg("stage clear")
	}
	s.setPhase(tuning.PhaseStageClear)
}

// TogglePause switches between playing and paused. Other phases are left
// untouched.
func (s *Store) TogglePause() {
	switch s.phase {
	case tuning.PhasePlaying:
		s.setPhase(tuning.PhasePaused)
	case tuning.PhasePaused:
		s.setPhase(tuning.PhasePlaying)
	}
}

// ReturnToMenu abandons the current run and drops its pending timers.
func (s *Store) ReturnToMenu() {
	s.resetRun()
	s.timers.Clear()
	s.setPhase(tuning.PhaseMenu)
}

// Accessors

func (s *Store) Phase() tuning.Phase { return s.phase }
func (s *Store) Stage() int { return s.stage }
func (s *Store) Score() int { return s.score }
func (s *Store) Lives() int { return s.player.Lives }
func (s *Store) WeaponLevel() tuning.WeaponLevel { return s.player.WeaponLevel }
func (s *Store) PlayerPosition() dmath.Vec2 { return s.player.Position }
func (s *Store) Invulnerable() bool { return s.player.Invulnerable }
func (s *Store) Player() Player { return s.player }
func (s *Store) Boss() Boss { return s.boss }
func (s *Store) BossDefeatPending() bool { return s.bossDefeatPending }
func (s *Store) DefeatedEnemies() int { return s.defeated }
func (s *Store) Now() time.Duration { return s.clock }
func (s *Store) Epoch() uint64 { return s.epoch }
func (s *Store) PendingTimers() []string { return s.timers.Pending() }
func (s *Store) Bullets() []Bullet { return slices.Clone(s.bullets) }
func (s *Store) Enemies() []Enemy { return slices.Clone(s.enemies) }
func (s *Store) PowerUps() []PowerUp { return slices.Clone(s.powerUps) }
func (s *Store) Playing() bool { return s.phase == tuning.PhasePlaying }
func (s *Store) BossEngaged() bool { return s.boss.Active || s.boss.Incoming }
func (s *Store) ScoreThisStage() int { return s.score - s.stageStartScore }

// Snapshot returns a deep copy for presentation.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Phase:           s.phase,
		Stage:           s.stage,
		Score:           s.score,
		Player:          s.player,
		Bullets:         s.Bullets(),
		Enemies:         s.Enemies(),
		PowerUps:        s.PowerUps(),
		Boss:            s.boss,
		DefeatedEnemies: s.defeated,
		Time:            s.clock,
	}
}
