package systems

import (
	cfg "github.com/automoto/gradius/config"
	dmath "github.com/yohamta/donburi/features/math"
)

// WorldToScreen maps a playfield position (origin at the centre, +Y up) to
// screen pixels.
func WorldToScreen(p dmath.Vec2) (float64, float64) {
	x := float64(cfg.C.Width)/2 + p.X*cfg.C.PixelsPerUnit
	y := float64(cfg.C.Height)/2 - p.Y*cfg.C.PixelsPerUnit
	return x, y
}

// UnitsToPixels scales a playfield length to pixels.
func UnitsToPixels(u float64) float64 {
	return u * cfg.C.PixelsPerUnit
}

// ViewportAspect is the width/height ratio the ship is clamped against.
func ViewportAspect() float64 {
	return float64(cfg.C.Width) / float64(cfg.C.Height)
}
