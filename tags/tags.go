package tags

import "github.com/yohamta/donburi"

var (
	Particle = donburi.NewTag().SetName("Particle")
	Star     = donburi.NewTag().SetName("Star")
	Banner   = donburi.NewTag().SetName("Banner")
)
