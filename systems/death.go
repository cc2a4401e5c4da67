package systems

import (
	"github.com/automoto/sectorcore/body"
	"github.com/automoto/sectorcore/components"
	"github.com/automoto/sectorcore/tags"
	"github.com/yohamta/donburi"
)

// UpdateDeaths counts down dead bodies. Expired players respawn at the level
// start; everything else is removed from the world.
func UpdateDeaths(w donburi.World) {
	levelEntry, ok := components.Level.First(w)
	if !ok {
		return
	}
	lvl := components.Level.Get(levelEntry)
	stats := components.TickStats.Get(levelEntry)

	var expired []*donburi.Entry
	components.Death.Each(w, func(e *donburi.Entry) {
		death := components.Death.Get(e)
		death.Timer--
		if death.Timer <= 0 {
			expired = append(expired, e)
		}
	})

	for _, e := range expired {
		// Handle player death differently - respawn
		if e.HasComponent(tags.Player) {
			donburi.Remove[components.DeathData](e, components.Death)
			RespawnPlayer(e, lvl)
			continue
		}

		w.Remove(e.Entity())
		stats.Removed++
	}
}

// RespawnPlayer puts the player back at the level start with a fresh body.
func RespawnPlayer(e *donburi.Entry, lvl *components.LevelData) {
	components.Body.SetValue(e, components.BodyData{
		RigidBody: body.New(body.KindPlayer, lvl.Map.Start()),
	})
}
