package systems

import (
	"encoding/json"

	"github.com/automoto/gradius/components"
	cfg "github.com/automoto/gradius/config"
	"github.com/automoto/gradius/shared/leaderboard"
	"github.com/automoto/gradius/shared/tuning"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
	"github.com/rs/zerolog/log"
	"github.com/yohamta/donburi/ecs"
)

const (
	settingsKey    = "settings"
	profileKey     = "profile"
	leaderboardKey = "leaderboard"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	SFXVolume       float64 `json:"sfxVolume"`
	Muted           bool    `json:"muted"`
	Fullscreen      bool    `json:"fullscreen"`
	ResolutionIndex int     `json:"resolutionIndex"`
}

// Profile is the local pilot record.
type Profile struct {
	Name      string `json:"name"`
	BestScore int    `json:"bestScore"`
}

var gdataManager *gdata.Manager

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "gradius",
	})
	if err != nil {
		log.Warn().Err(err).Str("component", "persistence").Msg("could not initialize persistence")
		return err
	}
	gdataManager = m
	return nil
}

// loadItem decodes a stored JSON item into v. It reports false when nothing
// usable is stored.
func loadItem(key string, v any) bool {
	if gdataManager == nil {
		return false
	}
	logger := log.With().Str("component", "persistence").Str("item", key).Logger()

	data, err := gdataManager.LoadItem(key)
	if err != nil {
		logger.Warn().Err(err).Msg("could not load item")
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn().Err(err).Msg("could not parse item")
		return false
	}
	return true
}

func saveItem(key string, v any) error {
	if gdataManager == nil {
		return nil
	}
	logger := log.With().Str("component", "persistence").Str("item", key).Logger()

	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn().Err(err).Msg("could not serialize item")
		return err
	}
	if err := gdataManager.SaveItem(key, data); err != nil {
		logger.Warn().Err(err).Msg("could not save item")
		return err
	}
	return nil
}

// LoadSettings loads settings from disk. It returns nil when none are saved.
func LoadSettings() *SavedSettings {
	var s SavedSettings
	if !loadItem(settingsKey, &s) {
		return nil
	}
	return &s
}

// SaveCurrentSettings saves the current settings from the SettingsMenuData component
func SaveCurrentSettings(s *components.SettingsMenuData) {
	saved := SavedSettings{
		SFXVolume:       s.SFXVolume,
		Muted:           s.Muted,
		Fullscreen:      s.Fullscreen,
		ResolutionIndex: s.ResolutionIndex,
	}
	if s.Muted {
		saved.SFXVolume = s.PreMuteSFXVol
	}
	_ = saveItem(settingsKey, saved)
}

// ApplySavedSettingsGlobal applies settings without needing an ECS reference.
// Used during startup before scenes are created.
func ApplySavedSettingsGlobal(saved *SavedSettings) {
	if saved == nil {
		return
	}

	globalSFXVolume = saved.SFXVolume
	if saved.Muted {
		globalSFXVolume = 0
	}

	ebiten.SetFullscreen(saved.Fullscreen)

	if !saved.Fullscreen && saved.ResolutionIndex < len(cfg.SettingsMenu.Resolutions) {
		res := cfg.SettingsMenu.Resolutions[saved.ResolutionIndex]
		ebiten.SetWindowSize(res.Width, res.Height)
	}
}

// syncSettingsMenu copies saved settings into the scene's settings menu.
func syncSettingsMenu(e *ecs.ECS, saved *SavedSettings) {
	if saved == nil {
		return
	}
	settings := GetOrCreateSettingsMenu(e)
	settings.SFXVolume = saved.SFXVolume
	settings.Muted = saved.Muted
	settings.Fullscreen = saved.Fullscreen
	settings.ResolutionIndex = saved.ResolutionIndex
	if saved.Muted {
		settings.PreMuteSFXVol = saved.SFXVolume
		settings.SFXVolume = 0
	}
}

// LoadProfile returns the saved pilot, defaulting the name.
func LoadProfile() Profile {
	p := Profile{Name: tuning.DefaultUserName}
	loadItem(profileKey, &p)
	if p.Name == "" {
		p.Name = tuning.DefaultUserName
	}
	return p
}

// SavePlayerName stores the name used for leaderboard submissions.
func SavePlayerName(name string) {
	p := LoadProfile()
	p.Name = name
	_ = saveItem(profileKey, p)
}

// RecordScore keeps the best score seen on this machine and reports whether
// score beat it.
func RecordScore(score int) bool {
	p := LoadProfile()
	if score <= p.BestScore {
		return false
	}
	p.BestScore = score
	_ = saveItem(profileKey, p)
	return true
}

// LeaderboardCache keeps the last table fetched from the service so the
// leaderboard still works offline.
type LeaderboardCache struct{}

// Load returns the cached table, or false when there is none.
func (LeaderboardCache) Load() ([]leaderboard.Entry, bool) {
	var entries []leaderboard.Entry
	if !loadItem(leaderboardKey, &entries) || len(entries) == 0 {
		return nil, false
	}
	return entries, true
}

// Save replaces the cached table.
func (LeaderboardCache) Save(entries []leaderboard.Entry) {
	_ = saveItem(leaderboardKey, entries)
}

// CachedLeaderboard returns the cached table or the seed entries.
func CachedLeaderboard() []leaderboard.Entry {
	if entries, ok := (LeaderboardCache{}).Load(); ok {
		return entries
	}
	return leaderboard.DefaultEntries()
}
