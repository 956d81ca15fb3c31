// Package gamemath contains the pure geometry used by the simulation:
// circle overlap, playfield bounds and a grid broadphase. Nothing here holds
// game state.
package gamemath

import (
	"github.com/automoto/gradius/shared/tuning"
	dmath "github.com/yohamta/donburi/features/math"
)

// CirclesOverlap reports whether the distance between a and b is strictly
// less than the sum of the radii.
func CirclesOverlap(a dmath.Vec2, ra float64, b dmath.Vec2, rb float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	r := ra + rb
	return dx*dx+dy*dy < r*r
}

// BulletHitsEnemy tests a bullet against an enemy of the given radius.
func BulletHitsEnemy(bullet, enemy dmath.Vec2, enemyRadius float64) bool {
	return CirclesOverlap(bullet, tuning.BulletCollisionRadius, enemy, enemyRadius)
}

// BulletHitsPlayer tests an enemy bullet against the player ship.
func BulletHitsPlayer(bullet, player dmath.Vec2) bool {
	return CirclesOverlap(bullet, tuning.BulletCollisionRadius, player, tuning.PlayerCollisionRadius)
}

// PlayerHitsEnemy tests the ship against an enemy body.
func PlayerHitsEnemy(player, enemy dmath.Vec2, enemyRadius float64) bool {
	return CirclesOverlap(player, tuning.PlayerCollisionRadius, enemy, enemyRadius)
}

// PlayerHitsPowerUp tests the ship against a pickup.
func PlayerHitsPowerUp(player, powerUp dmath.Vec2) bool {
	return CirclesOverlap(player, tuning.PlayerCollisionRadius, powerUp, tuning.PowerUpCollisionRadius)
}
