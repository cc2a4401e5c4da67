package systems

import "github.com/yohamta/donburi"

// System updates the world by one tick.
type System func(w donburi.World)

// Tick is the per-tick system order. Enemies steer before bodies move, and
// impacts are turned into decals before dead projectiles are removed.
var Tick = []System{
	UpdateEnemies,
	UpdateBodies,
	UpdateProjectiles,
	UpdateDeaths,
	UpdateDecals,
}

// Run runs every system in Tick once.
func Run(w donburi.World) {
	for _, s := range Tick {
		s(w)
	}
}
