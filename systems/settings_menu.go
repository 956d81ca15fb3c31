package systems

import (
	"fmt"

	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const numSettingsOptions = int(components.SettingsOptBack) + 1

// UpdateSettingsMenu handles settings navigation and value changes.
func UpdateSettingsMenu(e *ecs.ECS) {
	settings := GetOrCreateSettingsMenu(e)

	if !settings.IsOpen {
		return
	}

	input := getOrCreateInput(e)

	if GetAction(input, cfg.ActionMenuUp).JustPressed {
		navigateSettings(settings, -1)
		PlaySFX(e, cfg.SoundMenuNavigate)
	}
	if GetAction(input, cfg.ActionMenuDown).JustPressed {
		navigateSettings(settings, +1)
		PlaySFX(e, cfg.SoundMenuNavigate)
	}
	if GetAction(input, cfg.ActionMenuLeft).JustPressed {
		adjustValue(e, settings, -1)
	}
	if GetAction(input, cfg.ActionMenuRight).JustPressed {
		adjustValue(e, settings, +1)
	}
	if GetAction(input, cfg.ActionMenuSelect).JustPressed {
		handleSelect(e, settings)
	}

	if GetAction(input, cfg.ActionMenuBack).JustPressed ||
		GetAction(input, cfg.ActionPause).JustPressed {
		closeSettings(e, settings)
	}
}

// navigateSettings moves the selection with wrap-around, skipping hidden options
func navigateSettings(s *components.SettingsMenuData, step int) {
	for {
		s.SelectedOption = components.SettingsMenuOption(
			(int(s.SelectedOption) + step + numSettingsOptions) % numSettingsOptions,
		)
		if !isOptionHidden(s, s.SelectedOption) {
			return
		}
	}
}

// isOptionHidden returns true if the option should be hidden
func isOptionHidden(s *components.SettingsMenuData, opt components.SettingsMenuOption) bool {
	// Resolution only applies to windowed mode
	return opt == components.SettingsOptResolution && s.Fullscreen
}

// adjustValue changes the value for the selected option
func adjustValue(e *ecs.ECS, s *components.SettingsMenuData, direction int) {
	switch s.SelectedOption {
	case components.SettingsOptSFXVolume:
		s.SFXVolume = adjustVolumeStep(s.SFXVolume, direction)
		if !s.Muted {
			SetSFXVolume(e, s.SFXVolume)
		}
		// Preview
		PlaySFX(e, cfg.SoundMenuSelect)

	case components.SettingsOptMute:
		toggleMute(e, s)
		PlaySFX(e, cfg.SoundMenuSelect)

	case components.SettingsOptFullscreen:
		toggleFullscreen(s)
		PlaySFX(e, cfg.SoundMenuSelect)

	case components.SettingsOptResolution:
		cycleResolution(s, direction)
		PlaySFX(e, cfg.SoundMenuNavigate)
	}
}

// adjustVolumeStep adjusts volume by stepping through predefined values
func adjustVolumeStep(current float64, direction int) float64 {
	steps := cfg.SettingsMenu.VolumeSteps
	idx := findClosestStepIndex(current, steps) + direction
	idx = max(0, min(idx, len(steps)-1))
	return steps[idx]
}

// findClosestStepIndex finds the closest step index for a volume value
func findClosestStepIndex(value float64, steps []float64) int {
	closest := 0
	minDiff := 2.0
	for i, step := range steps {
		diff := value - step
		if diff < 0 {
			diff = -diff
		}
		if diff < minDiff {
			minDiff = diff
			closest = i
		}
	}
	return closest
}

func toggleMute(e *ecs.ECS, s *components.SettingsMenuData) {
	s.Muted = !s.Muted
	if s.Muted {
		s.PreMuteSFXVol = s.SFXVolume
		SetSFXVolume(e, 0)
		return
	}
	s.SFXVolume = s.PreMuteSFXVol
	SetSFXVolume(e, s.SFXVolume)
}

func toggleFullscreen(s *components.SettingsMenuData) {
	s.Fullscreen = !s.Fullscreen
	ebiten.SetFullscreen(s.Fullscreen)
}

// cycleResolution cycles through available window sizes
func cycleResolution(s *components.SettingsMenuData, direction int) {
	n := len(cfg.SettingsMenu.Resolutions)
	s.ResolutionIndex = (s.ResolutionIndex + direction + n) % n

	res := cfg.SettingsMenu.Resolutions[s.ResolutionIndex]
	ebiten.SetWindowSize(res.Width, res.Height)
}

// handleSelect handles the select/enter action
func handleSelect(e *ecs.ECS, s *components.SettingsMenuData) {
	switch s.SelectedOption {
	case components.SettingsOptMute:
		toggleMute(e, s)
		PlaySFX(e, cfg.SoundMenuSelect)

	case components.SettingsOptFullscreen:
		toggleFullscreen(s)
		PlaySFX(e, cfg.SoundMenuSelect)

	case components.SettingsOptBack:
		closeSettings(e, s)
	}
}

// closeSettings closes the settings menu and saves settings
func closeSettings(e *ecs.ECS, s *components.SettingsMenuData) {
	s.IsOpen = false
	PlaySFX(e, cfg.SoundMenuSelect)
	SaveCurrentSettings(s)
}

// DrawSettingsMenu renders the settings overlay.
func DrawSettingsMenu(e *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettingsMenu(e)

	if !settings.IsOpen {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.Menu.BackgroundColor, false)

	fontFace := fonts.Bold.Get()
	drawCentered(screen, "SETTINGS", fonts.Title.Get(), 50, cfg.Menu.TitleColor)

	visibleCount := 0
	for opt := components.SettingsOptSFXVolume; opt <= components.SettingsOptBack; opt++ {
		if !isOptionHidden(settings, opt) {
			visibleCount++
		}
	}

	menuItemHeight := 24.0
	menuItemGap := 10.0
	totalMenuHeight := float64(visibleCount) * (menuItemHeight + menuItemGap)
	startY := (height-totalMenuHeight)/2 + 10

	row := 0
	for opt := components.SettingsOptSFXVolume; opt <= components.SettingsOptBack; opt++ {
		if isOptionHidden(settings, opt) {
			continue
		}

		y := int(startY+float64(row)*(menuItemHeight+menuItemGap)) + int(menuItemHeight)
		textColor := cfg.Pause.TextColorNormal
		if opt == settings.SelectedOption {
			textColor = cfg.Pause.TextColorSelected
		}

		label, value := getOptionDisplay(settings, opt)
		text.Draw(screen, label, fontFace, int(width/2)-140, y, textColor)
		if value != "" {
			text.Draw(screen, value, fontFace, int(width/2)+40, y, textColor)
		}
		row++
	}

	input := getOrCreateInput(e)
	drawCentered(screen, getSettingsHint(input.LastInputMethod), fonts.Small.Get(), int(height)-12, cfg.Pause.TextColorNormal)
}

// getOptionDisplay returns the label and value strings for an option
func getOptionDisplay(s *components.SettingsMenuData, opt components.SettingsMenuOption) (string, string) {
	switch opt {
	case components.SettingsOptSFXVolume:
		return "SFX Volume", fmt.Sprintf("< %d%% >", int(s.SFXVolume*100))
	case components.SettingsOptMute:
		return "Mute", onOff(s.Muted)
	case components.SettingsOptFullscreen:
		return "Fullscreen", onOff(s.Fullscreen)
	case components.SettingsOptResolution:
		return "Window", "< " + cfg.SettingsMenu.Resolutions[s.ResolutionIndex].Label + " >"
	case components.SettingsOptBack:
		return "Back", ""
	}
	return "", ""
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func getSettingsHint(method components.InputMethod) string {
	switch method {
	case components.InputPlayStation:
		return "D-Pad: Navigate/Adjust   Cross: Select   Circle: Back"
	case components.InputXbox:
		return "D-Pad: Navigate/Adjust   A: Select   B: Back"
	}
	return "Arrows: Navigate/Adjust   Enter: Select   Esc: Back"
}

// OpenSettings opens the settings overlay. fromPause records where Back returns.
func OpenSettings(e *ecs.ECS, fromPause bool) {
	settings := GetOrCreateSettingsMenu(e)
	settings.IsOpen = true
	settings.OpenedFromPause = fromPause
	settings.SelectedOption = components.SettingsOptSFXVolume
}

// IsSettingsOpen reports whether the settings overlay is showing.
func IsSettingsOpen(e *ecs.ECS) bool {
	entry, ok := components.SettingsMenu.First(e.World)
	return ok && components.SettingsMenu.Get(entry).IsOpen
}

// GetOrCreateSettingsMenu returns the singleton SettingsMenu component, creating if needed
func GetOrCreateSettingsMenu(e *ecs.ECS) *components.SettingsMenuData {
	if _, ok := components.SettingsMenu.First(e.World); !ok {
		ent := e.World.Entry(e.World.Create(components.SettingsMenu))
		vol := GetSFXVolume()
		data := components.SettingsMenuData{
			SFXVolume:       vol,
			Muted:           vol == 0,
			Fullscreen:      ebiten.IsFullscreen(),
			ResolutionIndex: cfg.SettingsMenu.DefaultResolutionIndex,
			PreMuteSFXVol:   cfg.Audio.DefaultSFXVol,
		}
		components.SettingsMenu.SetValue(ent, data)
		syncSettingsMenu(e, LoadSettings())
	}

	ent, _ := components.SettingsMenu.First(e.World)
	return components.SettingsMenu.Get(ent)
}
