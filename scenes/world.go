package scenes

import (
	"image/color"
	"sync"

	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/sim"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/automoto/gradius/systems"
	"github.com/automoto/gradius/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// GameScene runs one play session against a fresh store.
type GameScene struct {
	ecs          *ecs.ECS
	store        *gamestate.Store
	sceneChanger SceneChanger
	once         sync.Once
}

// NewGameScene creates a scene that starts a new run on its first update.
func NewGameScene(sc SceneChanger) *GameScene {
	return &GameScene{sceneChanger: sc}
}

func (gs *GameScene) Update() {
	gs.once.Do(gs.configure)
	gs.ecs.Update()

	// Leaving for the menu or the leaderboard resets the store to the menu
	// phase; stop forwarding its events.
	if gs.store.Phase() == tuning.PhaseMenu {
		systems.DetachEvents(gs.ecs)
	}
}

func (gs *GameScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if gs.ecs == nil {
		return
	}
	gs.ecs.Draw(screen)
}

func (gs *GameScene) configure() {
	// Synthesise sounds up front to avoid lag on first use
	systems.PreloadAllSFX()

	gs.store = gamestate.New()
	simulation := sim.New(gs.store)

	e := ecs.NewECS(donburi.NewWorld())

	createMenuScene := func() interface{} {
		return NewMenuScene(gs.sceneChanger)
	}
	createLeaderboardScene := func(score int) interface{} {
		return NewLeaderboardScene(gs.sceneChanger, score)
	}

	// Audio system (runs first, even when paused for menu sounds)
	e.AddSystem(systems.UpdateAudio)

	e.AddSystem(systems.UpdateInput)
	e.AddSystem(systems.NewUpdatePause(gs.sceneChanger, createMenuScene))
	e.AddSystem(systems.NewUpdateOverlays(gs.sceneChanger, createMenuScene, createLeaderboardScene))
	e.AddSystem(systems.UpdateGame)
	e.AddSystem(systems.ProcessEvents)
	e.AddSystem(systems.UpdateEffects)
	e.AddSystem(systems.UpdateSettingsMenu)

	e.AddRenderer(cfg.Default, systems.DrawStars)
	e.AddRenderer(cfg.Default, systems.DrawWorld)
	e.AddRenderer(cfg.Default, systems.DrawParticles)
	e.AddRenderer(cfg.Default, systems.DrawHUD)
	e.AddRenderer(cfg.Default, systems.DrawBanners)
	e.AddRenderer(cfg.Default, systems.DrawOverlays)
	e.AddRenderer(cfg.Default, systems.DrawPause)
	e.AddRenderer(cfg.Default, systems.DrawSettingsMenu)

	gs.ecs = e

	factory.CreateStarfield(e)
	game := factory.CreateGame(e, gs.store, simulation)
	gameData := components.Game.Get(game)
	if cfg.Debug.Autopilot {
		gameData.Autopilot = sim.NewAutopilot()
	}

	systems.RegisterEventHandlers(e)
	gameData.Unsubscribe = systems.BridgeEvents(e, gs.store)

	log.Info().Str("component", "client").Bool("autopilot", cfg.Debug.Autopilot).Msg("starting run")
	gs.store.StartGame()
}
