package systems

import (
	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/fonts"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// NewUpdatePause creates the pause system. Pausing itself is a store phase;
// this system only drives the toggle and the overlay menu.
// It should run AFTER UpdateInput but BEFORE UpdateGame.
func NewUpdatePause(sceneChanger SceneChanger, createMenuScene func() interface{}) ecs.System {
	return func(e *ecs.ECS) {
		game, ok := GetGame(e)
		if !ok || IsSettingsOpen(e) {
			return
		}
		store := game.Store
		pause := GetOrCreatePause(e)
		input := getOrCreateInput(e)

		if GetAction(input, cfg.ActionPause).JustPressed {
			store.TogglePause()
			if store.Phase() == tuning.PhasePaused {
				pause.SelectedOption = components.MenuResume
			}
			return
		}

		if store.Phase() != tuning.PhasePaused {
			return
		}

		numOptions := len(cfg.Pause.MenuOptions)
		if GetAction(input, cfg.ActionMenuUp).JustPressed {
			pause.SelectedOption = components.PauseMenuOption(
				(int(pause.SelectedOption) - 1 + numOptions) % numOptions,
			)
			PlaySFX(e, cfg.SoundMenuNavigate)
		}
		if GetAction(input, cfg.ActionMenuDown).JustPressed {
			pause.SelectedOption = components.PauseMenuOption(
				(int(pause.SelectedOption) + 1) % numOptions,
			)
			PlaySFX(e, cfg.SoundMenuNavigate)
		}

		if GetAction(input, cfg.ActionMenuSelect).JustPressed {
			PlaySFX(e, cfg.SoundMenuSelect)
			switch pause.SelectedOption {
			case components.MenuResume:
				store.TogglePause()
			case components.MenuSettings:
				OpenSettings(e, true)
			case components.MenuMainMenu:
				store.ReturnToMenu()
				sceneChanger.ChangeScene(createMenuScene())
			}
		}
	}
}

// DrawPause renders the pause overlay and menu.
func DrawPause(e *ecs.ECS, screen *ebiten.Image) {
	game, ok := GetGame(e)
	if !ok || game.Store.Phase() != tuning.PhasePaused || IsSettingsOpen(e) {
		return
	}
	pause := GetOrCreatePause(e)

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.Pause.OverlayColor, false)

	p := cfg.Pause
	total := float64(len(p.MenuOptions)) * (p.MenuItemHeight + p.MenuItemGap)
	startY := (height - total) / 2
	drawCentered(screen, "PAUSED", fonts.Title.Get(), int(startY)-10, cfg.Menu.TitleColor)
	drawMenu(screen, p.MenuOptions, int(pause.SelectedOption), startY, p.MenuItemHeight, p.MenuItemGap,
		p.TextColorNormal, p.TextColorSelected)

	input := getOrCreateInput(e)
	drawCentered(screen, getPauseHint(input.LastInputMethod), fonts.Small.Get(), int(height)-12, p.TextColorNormal)
}

// getPauseHint returns the appropriate hint for pause menu
func getPauseHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "Left Stick/D-Pad: Navigate   Cross: Select   Options: Resume"
	case components.InputXbox:
		return "Left Stick/D-Pad: Navigate   A: Select   Start: Resume"
	}
	return "Arrows: Navigate   Enter: Select   Esc: Resume"
}

// GetOrCreatePause returns the singleton Pause component, creating if needed.
func GetOrCreatePause(e *ecs.ECS) *components.PauseData {
	entry, ok := components.Pause.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Pause))
	}
	return components.Pause.Get(entry)
}
