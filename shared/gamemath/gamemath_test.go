package gamemath

import (
	"math"
	"testing"

	dmath "github.com/yohamta/donburi/features/math"
)

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name   string
		a, b   dmath.Vec2
		ra, rb float64
		want   bool
	}{
		{"same point", dmath.Vec2{}, dmath.Vec2{}, 0.1, 0.1, true},
		{"inside sum", dmath.Vec2{X: 2.3}, dmath.Vec2{X: 2.2}, 0.15, 0.3, true},
		{"touching is not overlap", dmath.Vec2{X: 0}, dmath.Vec2{X: 1}, 0.5, 0.5, false},
		{"far apart", dmath.Vec2{X: -5}, dmath.Vec2{X: 5, Y: 3}, 1, 1, false},
		{"diagonal", dmath.Vec2{X: 0, Y: 0}, dmath.Vec2{X: 0.3, Y: 0.3}, 0.25, 0.25, true},
	}
	for _, tt := range tests {
		if got := CirclesOverlap(tt.a, tt.ra, tt.b, tt.rb); got != tt.want {
			t.Fatalf("%s: CirclesOverlap = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	tests := []struct {
		pos  dmath.Vec2
		want bool
	}{
		{dmath.Vec2{X: 0, Y: 0}, false},
		{dmath.Vec2{X: 13.9, Y: 7.9}, false},
		{dmath.Vec2{X: 14.01, Y: 0}, true},
		{dmath.Vec2{X: -14.01, Y: 0}, true},
		{dmath.Vec2{X: 0, Y: 8.5}, true},
		{dmath.Vec2{X: 0, Y: -8.5}, true},
	}
	for _, tt := range tests {
		if got := OutOfBounds(tt.pos, 2); got != tt.want {
			t.Fatalf("OutOfBounds(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestPlayBounds(t *testing.T) {
	tests := []struct {
		aspect float64
		hx, hy float64
	}{
		{16.0 / 9.0, 9, 4.5},
		{1.5, 9, 4.5},
		{3, 6, 4.5},
		{0.5, 8, 6},
	}
	for _, tt := range tests {
		b := PlayBounds(tt.aspect)
		if math.Abs(b.HalfX-tt.hx) > 1e-9 || math.Abs(b.HalfY-tt.hy) > 1e-9 {
			t.Fatalf("PlayBounds(%v) = %+v, want {%v %v}", tt.aspect, b, tt.hx, tt.hy)
		}
	}

	got := PlayBounds(16.0 / 9.0).Clamp(dmath.Vec2{X: 20, Y: -20})
	if got.X != 9 || got.Y != -4.5 {
		t.Fatalf("Clamp = %+v, want {9 -4.5}", got)
	}
}

func TestNormalize(t *testing.T) {
	n := Normalize(dmath.Vec2{X: 3, Y: 4})
	if math.Abs(n.X-0.6) > 1e-9 || math.Abs(n.Y-0.8) > 1e-9 {
		t.Fatalf("Normalize = %+v, want {0.6 0.8}", n)
	}
	if z := Normalize(dmath.Vec2{}); z.X != 0 || z.Y != 0 {
		t.Fatalf("Normalize(zero) = %+v, want zero", z)
	}
}

func TestFinite(t *testing.T) {
	if !Finite(dmath.Vec2{X: 1, Y: 2}) {
		t.Fatal("expected finite vector")
	}
	if Finite(dmath.Vec2{X: math.NaN()}) || Finite(dmath.Vec2{Y: math.Inf(1)}) {
		t.Fatal("expected NaN/Inf to be rejected")
	}
}

func TestBroadphaseQueryReturnsNearbyInOrder(t *testing.T) {
	bp := NewBroadphase()
	bp.Insert(2, dmath.Vec2{X: 2.2, Y: 0}, 0.3)
	bp.Insert(0, dmath.Vec2{X: 2.4, Y: 0.1}, 0.4)
	bp.Insert(1, dmath.Vec2{X: -9, Y: 4}, 0.3)

	got := bp.Query(dmath.Vec2{X: 2.3, Y: 0}, 0.15)
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("Query = %v, want [0 2]", got)
	}

	if far := bp.Query(dmath.Vec2{X: 9, Y: -4}, 0.15); len(far) != 0 {
		t.Fatalf("Query far = %v, want none", far)
	}
}

func TestBroadphaseFindsShallowOverlapAcrossCellEdge(t *testing.T) {
	tests := []struct {
		name   string
		target dmath.Vec2
		probe  dmath.Vec2
	}{
		{"horizontal", dmath.Vec2{X: 0.75}, dmath.Vec2{X: 1.15}},
		{"vertical", dmath.Vec2{Y: 0.75}, dmath.Vec2{Y: 1.15}},
		{"negative", dmath.Vec2{X: -1.25, Y: -0.5}, dmath.Vec2{X: -0.85, Y: -0.5}},
	}
	for _, tt := range tests {
		if !CirclesOverlap(tt.probe, 0.15, tt.target, 0.3) {
			t.Fatalf("%s: circles should overlap", tt.name)
		}
		bp := NewBroadphase()
		bp.Insert(0, tt.target, 0.3)
		if got := bp.Query(tt.probe, 0.15); len(got) != 1 || got[0] != 0 {
			t.Fatalf("%s: Query = %v, want [0]", tt.name, got)
		}
	}
}
