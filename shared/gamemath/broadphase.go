package gamemath

import (
	"slices"

	"github.com/automoto/gradius/shared/tuning"
	"github.com/solarlune/resolv"
	dmath "github.com/yohamta/donburi/features/math"
)

const (
	tagTarget = "target"

	// World units are scaled into resolv's positive integer grid.
	gridScale   = 10.0
	gridCell    = 10
	gridOriginX = tuning.BoundsHalfX + tuning.OutOfBoundsPad + 2
	gridOriginY = tuning.BoundsHalfY + tuning.OutOfBoundsPad + 2

	// resolv files an object into cells up to X+W-1, so every box grows by
	// one grid unit on each side. The grid may over-report, never under-report.
	gridPad = 1.0
)

// Broadphase buckets circles into a resolv grid so each probe only runs the
// exact circle test against nearby targets. Targets are identified by the
// index they were inserted with.
type Broadphase struct {
	space *resolv.Space
}

// NewBroadphase returns an empty grid covering the playfield and its
// out-of-bounds margin.
func NewBroadphase() *Broadphase {
	w := int(2 * gridOriginX * gridScale)
	h := int(2 * gridOriginY * gridScale)
	return &Broadphase{space: resolv.NewSpace(w, h, gridCell, gridCell)}
}

// Insert adds a target circle.
func (b *Broadphase) Insert(index int, center dmath.Vec2, radius float64) {
	obj := b.box(center, radius, tagTarget)
	obj.Data = index
	b.space.Add(obj)
}

// Query returns the indices of targets whose cells the probe circle touches,
// in ascending order.
func (b *Broadphase) Query(center dmath.Vec2, radius float64) []int {
	probe := b.box(center, radius)
	b.space.Add(probe)
	defer b.space.Remove(probe)

	check := probe.Check(0, 0, tagTarget)
	if check == nil {
		return nil
	}
	out := make([]int, 0, len(check.Objects))
	for _, o := range check.Objects {
		if idx, ok := o.Data.(int); ok {
			out = append(out, idx)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (b *Broadphase) box(center dmath.Vec2, radius float64, tags ...string) *resolv.Object {
	maxX := 2 * gridOriginX * gridScale
	maxY := 2 * gridOriginY * gridScale
	x := Clamp((center.X-radius+gridOriginX)*gridScale-gridPad, 0, maxX-1)
	y := Clamp((center.Y-radius+gridOriginY)*gridScale-gridPad, 0, maxY-1)
	size := 2*radius*gridScale + 2*gridPad
	obj := resolv.NewObject(x, y, size, size, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	return obj
}
