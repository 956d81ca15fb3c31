package gamemath

import (
	"github.com/automoto/gradius/shared/tuning"
	dmath "github.com/yohamta/donburi/features/math"
)

// OutOfBounds reports whether pos lies outside the playfield grown by pad on
// every side.
func OutOfBounds(pos dmath.Vec2, pad float64) bool {
	return pos.X < -tuning.BoundsHalfX-pad || pos.X > tuning.BoundsHalfX+pad ||
		pos.Y < -tuning.BoundsHalfY-pad || pos.Y > tuning.BoundsHalfY+pad
}

// Bounds is the symmetric box the player ship is clamped to.
type Bounds struct {
	HalfX float64
	HalfY float64
}

// PlayBounds derives the player clamp from the viewport aspect ratio (width
// over height). Wide screens tighten the horizontal clamp; tall screens trade
// horizontal room for vertical room.
func PlayBounds(aspect float64) Bounds {
	b := Bounds{HalfX: tuning.BaseClampX, HalfY: tuning.BaseClampY}
	switch {
	case aspect > tuning.WideAspect:
		b.HalfX = tuning.BaseClampX * (tuning.WideAspect / aspect)
	case aspect < tuning.TallAspect && aspect > 0:
		b.HalfX = tuning.TallClampX
		b.HalfY = tuning.TallClampY
	}
	return b
}

// Clamp returns pos limited to the box.
func (b Bounds) Clamp(pos dmath.Vec2) dmath.Vec2 {
	return dmath.Vec2{
		X: Clamp(pos.X, -b.HalfX, b.HalfX),
		Y: Clamp(pos.Y, -b.HalfY, b.HalfY),
	}
}
