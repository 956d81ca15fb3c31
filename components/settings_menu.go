package components

import (
	"github.com/yohamta/donburi"
)

// SettingsMenuOption represents menu items in the settings menu
type SettingsMenuOption int

const (
	SettingsOptSFXVolume SettingsMenuOption = iota
	SettingsOptMute
	SettingsOptFullscreen
	SettingsOptResolution
	SettingsOptBack
)

// SettingsMenuData stores the current state of the settings menu overlay
type SettingsMenuData struct {
	IsOpen          bool
	SelectedOption  SettingsMenuOption
	OpenedFromPause bool // Track origin for "Back" navigation

	// Current settings values
	SFXVolume       float64
	Muted           bool
	Fullscreen      bool
	ResolutionIndex int

	// For mute restore
	PreMuteSFXVol float64
}

// SettingsMenu is the component type for settings menu state
var SettingsMenu = donburi.NewComponentType[SettingsMenuData]()
