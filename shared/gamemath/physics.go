package gamemath

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Clamp clamps v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SineWave returns amplitude*sin(t*frequency) for oscillating movement.
func SineWave(t, amplitude, frequency float64) float64 {
	return amplitude * math.Sin(t*frequency)
}

// Normalize returns v scaled to unit length, or the zero vector.
func Normalize(v dmath.Vec2) dmath.Vec2 {
	mag := math.Hypot(v.X, v.Y)
	if mag == 0 {
		return dmath.Vec2{}
	}
	return dmath.Vec2{X: v.X / mag, Y: v.Y / mag}
}

// Advance moves pos along dir by speed.
func Advance(pos, dir dmath.Vec2, speed float64) dmath.Vec2 {
	return dmath.Vec2{X: pos.X + dir.X*speed, Y: pos.Y + dir.Y*speed}
}

// Finite reports whether both coordinates are real numbers.
func Finite(v dmath.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
