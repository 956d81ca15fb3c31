package main

import (
	"flag"
	"image"
	"os"

	"github.com/automoto/gradius/config"
	"github.com/automoto/gradius/fonts"
	"github.com/automoto/gradius/scenes"
	"github.com/automoto/gradius/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame() *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}

	if config.Debug.SkipMenu {
		g.scene = scenes.NewGameScene(g)
	} else {
		g.scene = scenes.NewMenuScene(g)
	}

	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	flag.BoolVar(&config.Debug.SkipMenu, "skip-menu", config.Debug.SkipMenu, "Start a run immediately")
	flag.BoolVar(&config.Debug.Autopilot, "autopilot", config.Debug.Autopilot, "Let the autopilot fly the ship")
	flag.StringVar(&config.Network.LeaderboardURL, "leaderboard", config.Network.LeaderboardURL, "Leaderboard service URL")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(*level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatal().Err(err).Msg("could not load fonts")
	}

	res := config.SettingsMenu.Resolutions[config.SettingsMenu.DefaultResolutionIndex]
	ebiten.SetWindowSize(res.Width, res.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	// Persistence is optional; the game runs with defaults without it
	if err := systems.InitPersistence(); err == nil {
		systems.ApplySavedSettingsGlobal(systems.LoadSettings())
	}

	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
