package systems

import (
	"fmt"

	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/leaderboard"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/automoto/gradius/systems/factory"
	"github.com/rs/zerolog/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

// GameEvent carries store events into the ECS world. Events are queued while
// the simulation steps and delivered by ProcessEvents.
var GameEvent = events.NewEventType[gamestate.Event]()

// BridgeEvents forwards every store event into the world's queue and returns
// the function that detaches it.
func BridgeEvents(e *ecs.ECS, store *gamestate.Store) func() {
	return store.Subscribe(func(ev gamestate.Event) {
		GameEvent.Publish(e.World, ev)
	})
}

// DetachEvents stops forwarding store events into the world.
func DetachEvents(e *ecs.ECS) {
	game, ok := GetGame(e)
	if !ok || game.Unsubscribe == nil {
		return
	}
	game.Unsubscribe()
	game.Unsubscribe = nil
}

// RegisterEventHandlers wires the presentation reactions to store events.
func RegisterEventHandlers(e *ecs.ECS) {
	GameEvent.Subscribe(e.World, func(w donburi.World, ev gamestate.Event) {
		handleGameEvent(e, ev)
	})
}

// ProcessEvents delivers the events queued since the last frame.
func ProcessEvents(e *ecs.ECS) {
	GameEvent.ProcessEvents(e.World)
}

func handleGameEvent(e *ecs.ECS, ev gamestate.Event) {
	game, ok := GetGame(e)
	if !ok {
		return
	}
	x, y := WorldToScreen(ev.Position)

	switch ev.Kind {
	case gamestate.EventShot:
		PlaySFX(e, cfg.SoundShoot)
	case gamestate.EventEnemyShot:
		PlaySFX(e, cfg.SoundEnemyShoot)
	case gamestate.EventBossShot:
		PlaySFX(e, cfg.SoundBossShoot)
	case gamestate.EventEnemyHit:
		flashEntity(e, ev.ID)
		factory.SpawnSparks(e, x, y)
		PlaySFX(e, cfg.SoundHit)
	case gamestate.EventEnemyDestroyed:
		delete(getHitFlash(e).Frames, ev.ID)
		factory.SpawnExplosion(e, x, y, cfg.Particles.PerExplosion[ev.EnemyType])
		if ev.EnemyType == tuning.EnemyLarge {
			TriggerScreenShake(e, cfg.ScreenShake.LargeEnemyIntensity, cfg.ScreenShake.LargeEnemyDuration)
		}
		PlaySFX(e, cfg.SoundExplosion)
	case gamestate.EventPlayerHit:
		factory.SpawnExplosion(e, x, y, cfg.Particles.HitSparks*2)
		TriggerScreenShake(e, cfg.ScreenShake.PlayerDamageIntensity, cfg.ScreenShake.PlayerDamageDuration)
		PlaySFX(e, cfg.SoundPlayerHit)
	case gamestate.EventPowerUpCollected:
		factory.SpawnPickup(e, x, y)
		PlaySFX(e, cfg.SoundPowerUp)
	case gamestate.EventBossIncoming:
		factory.SpawnBanner(e, "WARNING", cfg.HUD.AccentColor)
		PlaySFX(e, cfg.SoundBossWarning)
	case gamestate.EventBossHit:
		getHitFlash(e).Boss = cfg.Render.HitFlashFrames
		factory.SpawnSparks(e, x, y)
		PlaySFX(e, cfg.SoundHit)
	case gamestate.EventBossDefeated:
		factory.SpawnExplosion(e, x, y, cfg.Particles.BossExplosion)
		TriggerScreenShake(e, cfg.ScreenShake.BossDefeatIntensity, cfg.ScreenShake.BossDefeatDuration)
		PlaySFX(e, cfg.SoundBossExplosion)
	case gamestate.EventPhaseChanged:
		handlePhaseChange(e, game.Store, ev.From, ev.To)
	}
}

func handlePhaseChange(e *ecs.ECS, store *gamestate.Store, from, to tuning.Phase) {
	log.Debug().
		Str("component", "game").
		Stringer("from", from).
		Stringer("to", to).
		Int("stage", store.Stage()).
		Msg("phase changed")

	switch to {
	case tuning.PhasePlaying:
		if from != tuning.PhasePaused {
			clearTransientEffects(e)
			factory.SpawnBanner(e, fmt.Sprintf("STAGE %d", store.Stage()), cfg.HUD.TextColor)
		}
	case tuning.PhaseGameOver:
		overlay := GetOrCreateOverlay(e)
		overlay.GameOverSelected = components.GameOverRetry
		overlay.HighScore = leaderboard.Qualifies(store.Score(), CachedLeaderboard(), tuning.MaxHighScores)
		RecordScore(store.Score())
		PlaySFX(e, cfg.SoundGameOver)
	case tuning.PhaseStageClear:
		GetOrCreateOverlay(e).StageClearSelected = components.StageClearContinue
		RecordScore(store.Score())
		PlaySFX(e, cfg.SoundStageClear)
	}
}

func flashEntity(e *ecs.ECS, id string) {
	if id == "" {
		return
	}
	getHitFlash(e).Frames[id] = cfg.Render.HitFlashFrames
}

// GetOrCreateOverlay returns the singleton Overlay component, creating if needed.
func GetOrCreateOverlay(e *ecs.ECS) *components.OverlayData {
	entry, ok := components.Overlay.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Overlay))
	}
	return components.Overlay.Get(entry)
}
