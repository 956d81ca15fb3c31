package components

import (
	"image/color"

	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// ScreenShakeData tracks active screen shake
type ScreenShakeData struct {
	Intensity float64 // max offset in pixels
	Duration  int     // frames remaining
	Elapsed   int     // frames elapsed (for oscillation)
}

var ScreenShake = donburi.NewComponentType[ScreenShakeData]()

// HitFlashData tracks entities from the game store that were hit recently,
// keyed by store id.
type HitFlashData struct {
	Frames map[string]int
	Boss   int
}

var HitFlash = donburi.NewComponentType[HitFlashData]()

// ParticleData is one explosion or spark particle in screen space.
type ParticleData struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Color   color.RGBA
	Life    int // frames remaining
	MaxLife int
}

var Particle = donburi.NewComponentType[ParticleData]()

// StarData is one background star in screen space.
type StarData struct {
	X, Y  float64
	Speed float64
	Size  float64
	Color color.RGBA
}

var Star = donburi.NewComponentType[StarData]()

// BannerData is a sliding text banner such as "STAGE 2" or "WARNING".
type BannerData struct {
	Text  string
	Color color.RGBA
	Slide *gween.Tween
	X     float64
	Hold  int // frames to stay after the slide finishes
}

var Banner = donburi.NewComponentType[BannerData]()
