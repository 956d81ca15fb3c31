package components

import (
	"github.com/automoto/gradius/shared/gamestate"
	"github.com/automoto/gradius/shared/sim"
	"github.com/yohamta/donburi"
)

// GameData links the ECS world to the game store and its simulation.
type GameData struct {
	Store       *gamestate.Store
	Sim         *sim.Simulation
	Autopilot   *sim.Autopilot // replaces player input when set
	Unsubscribe func()         // detaches the store event bridge
}

var Game = donburi.NewComponentType[GameData]()
