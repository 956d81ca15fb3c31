package systems

import (
	"time"

	"github.com/automoto/gradius/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// GetGame returns the world's game link, if it has one.
func GetGame(e *ecs.ECS) (*components.GameData, bool) {
	entry, ok := components.Game.First(e.World)
	if !ok {
		return nil, false
	}
	return components.Game.Get(entry), true
}

// frameDuration is the simulated length of one ebiten tick.
func frameDuration() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}

// UpdateGame steps the simulation with this frame's input. The simulation
// itself ignores frames outside the playing phase.
func UpdateGame(e *ecs.ECS) {
	game, ok := GetGame(e)
	if !ok || IsSettingsOpen(e) {
		return
	}

	in := ShipInput(getOrCreateInput(e))
	if game.Autopilot != nil {
		in = game.Autopilot.Input(game.Store)
	}
	game.Sim.Step(frameDuration(), in, ViewportAspect())
}
