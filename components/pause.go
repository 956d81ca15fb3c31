package components

import "github.com/yohamta/donburi"

// PauseMenuOption represents menu items in the pause menu
type PauseMenuOption int

const (
	MenuResume PauseMenuOption = iota
	MenuSettings
	MenuMainMenu
)

// PauseData stores the pause menu selection. Whether the game is paused
// lives in the game store.
type PauseData struct {
	SelectedOption PauseMenuOption
}

var Pause = donburi.NewComponentType[PauseData]()

// GameOverOption represents menu items on the game over overlay
type GameOverOption int

const (
	GameOverRetry GameOverOption = iota
	GameOverSubmit
	GameOverMainMenu
)

// StageClearOption represents menu items on the stage clear overlay
type StageClearOption int

const (
	StageClearContinue StageClearOption = iota
	StageClearMainMenu
)

// OverlayData stores the selection of the end-of-run overlays.
type OverlayData struct {
	GameOverSelected   GameOverOption
	StageClearSelected StageClearOption
	// HighScore is set when the final score would enter the cached table.
	HighScore bool
}

var Overlay = donburi.NewComponentType[OverlayData]()
