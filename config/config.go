package config

import (
	"image/color"
	"time"

	"github.com/automoto/gradius/shared/tuning"
	"github.com/yohamta/donburi/ecs"
)

// Default is the single render layer.
const Default ecs.LayerID = 0

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
	// PixelsPerUnit maps playfield units to screen pixels.
	PixelsPerUnit float64
	Title         string
}

// RenderConfig contains entity colours and sizes on screen
type RenderConfig struct {
	PlayerColor       color.RGBA
	PlayerBlinkFrames int // invulnerability blink period
	PlayerBulletColor color.RGBA
	EnemyBulletColor  color.RGBA
	PowerUpColor      color.RGBA
	BossColor         color.RGBA
	BossAngryColor    color.RGBA
	EnemyColors       map[tuning.EnemyType]color.RGBA
	HitFlashFrames    int
}

// HUDConfig contains HUD layout values
type HUDConfig struct {
	Margin         float64
	LineHeight     float64
	TextColor      color.RGBA
	AccentColor    color.RGBA
	LifeIconSize   float64
	LifeIconGap    float64
	BossBarWidth   float64
	BossBarHeight  float64
	BossBarBgColor color.RGBA
	BossBarFgColor color.RGBA
	BannerDuration float32 // seconds the stage banner takes to slide in
	BannerHold     int     // frames the banner stays up
}

// StarfieldConfig contains background star values
type StarfieldConfig struct {
	Count     int
	MinSpeed  float64 // pixels per frame
	MaxSpeed  float64
	MinSize   float64
	MaxSize   float64
	Color     color.RGBA
	DimColor  color.RGBA
	DimChance float64
}

// ParticleConfig contains explosion particle values
type ParticleConfig struct {
	PerExplosion    map[tuning.EnemyType]int
	BossExplosion   int
	HitSparks       int
	MinSpeed        float64 // pixels per frame
	MaxSpeed        float64
	Lifetime        int // frames
	Size            float64
	Drag            float64
	ExplosionColors []color.RGBA
	SparkColor      color.RGBA
	PickupColor     color.RGBA
}

// ScreenShakeConfig contains screen shake effect configuration
type ScreenShakeConfig struct {
	PlayerDamageIntensity float64 // pixels
	PlayerDamageDuration  int     // frames
	BossDefeatIntensity   float64
	BossDefeatDuration    int
	LargeEnemyIntensity   float64
	LargeEnemyDuration    int
}

// PauseConfig contains pause menu configuration values
type PauseConfig struct {
	OverlayColor      color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	MenuItemHeight    float64
	MenuItemGap       float64
	MenuOptions       []string
}

// MenuConfig contains main menu configuration values
type MenuConfig struct {
	BackgroundColor   color.RGBA
	TitleColor        color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	TitleY            float64
	MenuStartY        float64
	MenuItemHeight    float64
	MenuItemGap       float64
	MenuOptions       []string
}

// OverlayConfig contains end-of-run overlay configuration values
type OverlayConfig struct {
	OverlayColor      color.RGBA
	TitleColor        color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	Title             string
	TitleY            float64
	ScoreY            float64
	MenuStartY        float64
	MenuItemHeight    float64
	MenuItemGap       float64
	MenuOptions       []string
}

// NetworkConfig contains leaderboard service settings
type NetworkConfig struct {
	LeaderboardURL string
	RequestTimeout time.Duration
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	SkipMenu  bool // Skip menu and go directly to game
	Autopilot bool // Fly the ship with the built-in autopilot
}

// Global configuration instances
var C *Config
var Render RenderConfig
var HUD HUDConfig
var Starfield StarfieldConfig
var Particles ParticleConfig
var ScreenShake ScreenShakeConfig
var Pause PauseConfig
var Menu MenuConfig
var GameOver OverlayConfig
var StageClear OverlayConfig
var Network NetworkConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	BrightYellow = color.RGBA{R: 255, G: 255, B: 100, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	BrightGreen  = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	Cyan         = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Blue         = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	Purple       = color.RGBA{R: 128, G: 0, B: 255, A: 255}
	LightRed     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	Magenta      = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255} // Selected menu items
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}  // Unselected menu items
	Space        = color.RGBA{R: 5, G: 5, B: 20, A: 255}
)

func init() {
	C = &Config{
		Width:         640,
		Height:        360,
		PixelsPerUnit: 360 / (2 * tuning.BoundsHalfY),
		Title:         "GRADIUS",
	}

	Render = RenderConfig{
		PlayerColor:       Cyan,
		PlayerBlinkFrames: 6,
		PlayerBulletColor: BrightYellow,
		EnemyBulletColor:  LightRed,
		PowerUpColor:      BrightGreen,
		BossColor:         Purple,
		BossAngryColor:    Magenta,
		EnemyColors: map[tuning.EnemyType]color.RGBA{
			tuning.EnemySmall:  Red,
			tuning.EnemyMedium: Orange,
			tuning.EnemyLarge:  Blue,
			tuning.EnemyBoss:   Purple,
		},
		HitFlashFrames: 4,
	}

	HUD = HUDConfig{
		Margin:         10,
		LineHeight:     16,
		TextColor:      White,
		AccentColor:    BrightOrange,
		LifeIconSize:   8,
		LifeIconGap:    4,
		BossBarWidth:   240,
		BossBarHeight:  8,
		BossBarBgColor: color.RGBA{R: 40, G: 40, B: 40, A: 255},
		BossBarFgColor: Magenta,
		BannerDuration: 0.6,
		BannerHold:     90,
	}

	Starfield = StarfieldConfig{
		Count:     tuning.StarCount,
		MinSpeed:  0.3,
		MaxSpeed:  1.6,
		MinSize:   1,
		MaxSize:   2,
		Color:     White,
		DimColor:  color.RGBA{R: 120, G: 120, B: 160, A: 255},
		DimChance: 0.6,
	}

	Particles = ParticleConfig{
		PerExplosion: map[tuning.EnemyType]int{
			tuning.EnemySmall:  10,
			tuning.EnemyMedium: 16,
			tuning.EnemyLarge:  24,
		},
		BossExplosion: 80,
		HitSparks:     4,
		MinSpeed:      0.5,
		MaxSpeed:      3,
		Lifetime:      36,
		Size:          2,
		Drag:          0.94,
		ExplosionColors: []color.RGBA{
			Yellow, Orange, Red, BrightOrange,
		},
		SparkColor:  White,
		PickupColor: BrightGreen,
	}

	ScreenShake = ScreenShakeConfig{
		PlayerDamageIntensity: 4.0,
		PlayerDamageDuration:  12,
		BossDefeatIntensity:   6.0,
		BossDefeatDuration:    30,
		LargeEnemyIntensity:   2.0,
		LargeEnemyDuration:    6,
	}

	Pause = PauseConfig{
		OverlayColor:      BlackOverlay,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		MenuItemHeight:    30,
		MenuItemGap:       15,
		MenuOptions:       []string{"Resume", "Settings", "Main Menu"},
	}

	Menu = MenuConfig{
		BackgroundColor:   Space,
		TitleColor:        Orange,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		TitleY:            70,
		MenuStartY:        120,
		MenuItemHeight:    30,
		MenuItemGap:       12,
		MenuOptions:       []string{"Start Game", "Leaderboard", "Settings", "Exit"},
	}

	GameOver = OverlayConfig{
		OverlayColor:      color.RGBA{R: 40, G: 10, B: 10, A: 200},
		TitleColor:        LightRed,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		Title:             "GAME OVER",
		TitleY:            90,
		ScoreY:            130,
		MenuStartY:        160,
		MenuItemHeight:    30,
		MenuItemGap:       15,
		MenuOptions:       []string{"Retry", "Submit Score", "Main Menu"},
	}

	StageClear = OverlayConfig{
		OverlayColor:      BlackOverlay,
		TitleColor:        BrightGreen,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		Title:             "STAGE CLEAR",
		TitleY:            90,
		ScoreY:            130,
		MenuStartY:        160,
		MenuItemHeight:    30,
		MenuItemGap:       15,
		MenuOptions:       []string{"Continue", "Main Menu"},
	}

	Network = NetworkConfig{
		LeaderboardURL: "http://localhost:5000",
		RequestTimeout: 5 * time.Second,
	}

	// Debug Config (defaults, can be overridden by CLI flags)
	Debug = DebugConfig{
		SkipMenu:  false,
		Autopilot: false,
	}
}
