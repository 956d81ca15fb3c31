package systems

import (
	"os"

	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// SceneChanger allows systems to trigger scene transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// NewUpdateMenu creates an UpdateMenu system with scene transition capability
func NewUpdateMenu(sceneChanger SceneChanger, createWorldScene func() interface{}, createLeaderboardScene func() interface{}) ecs.System {
	return func(e *ecs.ECS) {
		// Skip menu input if settings is open
		if IsSettingsOpen(e) {
			return
		}

		menu := GetOrCreateMenu(e)
		input := getOrCreateInput(e)

		numOptions := len(menu.VisibleOptions)
		if numOptions == 0 {
			return
		}

		if GetAction(input, cfg.ActionMenuUp).JustPressed {
			PlaySFX(e, cfg.SoundMenuNavigate)
			menu.SelectedIndex = (menu.SelectedIndex - 1 + numOptions) % numOptions
		}
		if GetAction(input, cfg.ActionMenuDown).JustPressed {
			PlaySFX(e, cfg.SoundMenuNavigate)
			menu.SelectedIndex = (menu.SelectedIndex + 1) % numOptions
		}

		if GetAction(input, cfg.ActionMenuSelect).JustPressed {
			PlaySFX(e, cfg.SoundMenuSelect)
			switch menu.VisibleOptions[menu.SelectedIndex] {
			case components.MainMenuStart:
				sceneChanger.ChangeScene(createWorldScene())
			case components.MainMenuLeaderboard:
				sceneChanger.ChangeScene(createLeaderboardScene())
			case components.MainMenuSettings:
				OpenSettings(e, false)
			case components.MainMenuExit:
				os.Exit(0)
			}
		}

		if GetAction(input, cfg.ActionMenuBack).JustPressed {
			os.Exit(0)
		}
	}
}

// DrawMenu renders the main menu screen
func DrawMenu(e *ecs.ECS, screen *ebiten.Image) {
	menu := GetOrCreateMenu(e)

	width := float32(screen.Bounds().Dx())
	height := float32(screen.Bounds().Dy())
	vector.FillRect(screen, 0, 0, width, height, cfg.Menu.BackgroundColor, false)

	drawCentered(screen, cfg.C.Title, fonts.Title.Get(), int(cfg.Menu.TitleY), cfg.Menu.TitleColor)
	drawCentered(screen, "PILOT "+menu.PlayerName, fonts.Normal.Get(), int(cfg.Menu.TitleY)+24, cfg.Menu.TextColorNormal)

	labels := make([]string, len(menu.VisibleOptions))
	for i, opt := range menu.VisibleOptions {
		labels[i] = cfg.Menu.MenuOptions[opt]
	}
	drawMenu(screen, labels, menu.SelectedIndex, cfg.Menu.MenuStartY, cfg.Menu.MenuItemHeight, cfg.Menu.MenuItemGap,
		cfg.Menu.TextColorNormal, cfg.Menu.TextColorSelected)

	input := getOrCreateInput(e)
	drawCentered(screen, getMenuHint(input.LastInputMethod), fonts.Small.Get(), int(height)-12, cfg.Menu.TextColorNormal)
}

// getMenuHint returns the appropriate hint for menu navigation
func getMenuHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "Left Stick/D-Pad: Navigate   Cross: Select"
	case components.InputXbox:
		return "Left Stick/D-Pad: Navigate   A: Select"
	}
	return "Arrows: Navigate   Enter: Select"
}

// GetOrCreateMenu returns the singleton Menu component, creating if needed
func GetOrCreateMenu(e *ecs.ECS) *components.MenuData {
	if _, ok := components.Menu.First(e.World); !ok {
		ent := e.World.Entry(e.World.Create(components.Menu))
		components.Menu.SetValue(ent, components.MenuData{
			VisibleOptions: []components.MainMenuOption{
				components.MainMenuStart,
				components.MainMenuLeaderboard,
				components.MainMenuSettings,
				components.MainMenuExit,
			},
			PlayerName: LoadProfile().Name,
		})
	}

	ent, _ := components.Menu.First(e.World)
	return components.Menu.Get(ent)
}
