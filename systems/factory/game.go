package factory

import (
	"github.com/automoto/gradius/archetypes"
	"github.com/automoto/gradius/components"
	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/sim"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateGame spawns the singleton that links the world to a store and its
// simulation.
func CreateGame(ecs *ecs.ECS, store *gamestate.Store, simulation *sim.Simulation) *donburi.Entry {
	entry := archetypes.Game.Spawn(ecs)
	components.Game.SetValue(entry, components.GameData{
		Store: store,
		Sim:   simulation,
	})
	components.HitFlash.SetValue(entry, components.HitFlashData{
		Frames: make(map[string]int),
	})
	return entry
}
