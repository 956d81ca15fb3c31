package systems

import (
	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/fonts"
	"github.com/automoto/gradius/shared/leaderboard"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdateOverlays drives the game over and stage clear menus.
// createLeaderboardScene receives the score to submit, or 0 to only browse.
func NewUpdateOverlays(sceneChanger SceneChanger, createMenuScene func() interface{}, createLeaderboardScene func(score int) interface{}) ecs.System {
	return func(e *ecs.ECS) {
		game, ok := GetGame(e)
		if !ok || IsSettingsOpen(e) {
			return
		}
		store := game.Store
		overlay := GetOrCreateOverlay(e)
		input := getOrCreateInput(e)

		switch store.Phase() {
		case tuning.PhaseGameOver:
			sel, chosen := navigate(e, input, int(overlay.GameOverSelected), len(cfg.GameOver.MenuOptions))
			overlay.GameOverSelected = components.GameOverOption(sel)
			if !chosen {
				return
			}
			switch overlay.GameOverSelected {
			case components.GameOverRetry:
				store.RestartGame()
			case components.GameOverSubmit:
				score := store.Score()
				store.ReturnToMenu()
				sceneChanger.ChangeScene(createLeaderboardScene(score))
			case components.GameOverMainMenu:
				store.ReturnToMenu()
				sceneChanger.ChangeScene(createMenuScene())
			}

		case tuning.PhaseStageClear:
			sel, chosen := navigate(e, input, int(overlay.StageClearSelected), len(cfg.StageClear.MenuOptions))
			overlay.StageClearSelected = components.StageClearOption(sel)
			if !chosen {
				return
			}
			switch overlay.StageClearSelected {
			case components.StageClearContinue:
				store.ContinueToNextStage()
			case components.StageClearMainMenu:
				store.ReturnToMenu()
				sceneChanger.ChangeScene(createMenuScene())
			}
		}
	}
}

// navigate applies up/down with wrap-around to selected and reports whether
// the selection was confirmed this frame.
func navigate(e *ecs.ECS, input *components.InputData, selected, n int) (int, bool) {
	if GetAction(input, cfg.ActionMenuUp).JustPressed {
		selected = (selected - 1 + n) % n
		PlaySFX(e, cfg.SoundMenuNavigate)
	}
	if GetAction(input, cfg.ActionMenuDown).JustPressed {
		selected = (selected + 1) % n
		PlaySFX(e, cfg.SoundMenuNavigate)
	}
	if GetAction(input, cfg.ActionMenuSelect).JustPressed {
		PlaySFX(e, cfg.SoundMenuSelect)
		return selected, true
	}
	return selected, false
}

// DrawOverlays renders the game over and stage clear screens.
func DrawOverlays(e *ecs.ECS, screen *ebiten.Image) {
	game, ok := GetGame(e)
	if !ok || IsSettingsOpen(e) {
		return
	}
	store := game.Store
	overlay := GetOrCreateOverlay(e)

	switch store.Phase() {
	case tuning.PhaseGameOver:
		subtitle := "FINAL SCORE " + leaderboard.FormatScore(store.Score())
		drawOverlay(screen, cfg.GameOver, subtitle, int(overlay.GameOverSelected))
		if overlay.HighScore {
			drawCentered(screen, "NEW HIGH SCORE!", fonts.Normal.Get(), int(cfg.GameOver.ScoreY)+16, cfg.HUD.AccentColor)
		}
	case tuning.PhaseStageClear:
		subtitle := "STAGE SCORE " + leaderboard.FormatScore(store.ScoreThisStage()) +
			"   TOTAL " + leaderboard.FormatScore(store.Score())
		drawOverlay(screen, cfg.StageClear, subtitle, int(overlay.StageClearSelected))
	}
}

func drawOverlay(screen *ebiten.Image, o cfg.OverlayConfig, subtitle string, selected int) {
	width := float32(screen.Bounds().Dx())
	height := float32(screen.Bounds().Dy())
	vector.FillRect(screen, 0, 0, width, height, o.OverlayColor, false)

	drawCentered(screen, o.Title, fonts.Title.Get(), int(o.TitleY), o.TitleColor)
	drawCentered(screen, subtitle, fonts.Normal.Get(), int(o.ScoreY), o.TextColorNormal)
	drawMenu(screen, o.MenuOptions, selected, o.MenuStartY+16, o.MenuItemHeight, o.MenuItemGap,
		o.TextColorNormal, o.TextColorSelected)
}
