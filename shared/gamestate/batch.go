package gamestate

import dmath "github.com/yohamta/donburi/features/math"

// Batch collects per-entity updates computed during a read-only sweep so they
// can be applied to the live collection in one pass.
type Batch struct {
	moves    map[string]dmath.Vec2
	damage   map[string]int
	removals map[string]struct{}
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{
		moves:    make(map[string]dmath.Vec2),
		damage:   make(map[string]int),
		removals: make(map[string]struct{}),
	}
}

// Move records a new position for id.
func (b *Batch) Move(id string, pos dmath.Vec2) {
	b.moves[id] = pos
}

// Damage accumulates health loss for id.
func (b *Batch) Damage(id string, amount int) {
	b.damage[id] += amount
}

// DamageOf returns the damage accumulated so far for id.
func (b *Batch) DamageOf(id string) int {
	return b.damage[id]
}

// Remove marks id for removal. It reports false if id was already marked.
func (b *Batch) Remove(id string) bool {
	if _, ok := b.removals[id]; ok {
		return false
	}
	b.removals[id] = struct{}{}
	return true
}

// Removed reports whether id is marked for removal.
func (b *Batch) Removed(id string) bool {
	_, ok := b.removals[id]
	return ok
}

// Empty reports whether the batch carries no updates.
func (b *Batch) Empty() bool {
	return len(b.moves) == 0 && len(b.damage) == 0 && len(b.removals) == 0
}
