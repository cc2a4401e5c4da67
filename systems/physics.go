package systems

import (
	"github.com/automoto/sectorcore/components"
	cfg "github.com/automoto/sectorcore/config"
	"github.com/yohamta/donburi"
)

// UpdateBodies steps every live body one tick through the level and marks the
// ones that died this tick.
func UpdateBodies(w donburi.World) {
	levelEntry, ok := components.Level.First(w)
	if !ok {
		return
	}
	lvl := components.Level.Get(levelEntry)
	stats := components.TickStats.Get(levelEntry)
	dt := 1 / float64(cfg.Physics.TickRate)

	type death struct {
		e           *donburi.Entry
		outOfBounds bool
	}
	var died []death

	components.Body.Each(w, func(e *donburi.Entry) {
		// Dead bodies stay frozen until UpdateDeaths removes them
		if e.HasComponent(components.Death) {
			return
		}

		b := components.Body.Get(e)
		res := b.Update(dt, lvl.Map, lvl.Traversal)
		stats.Blocked += res.Blocked
		if res.OutOfBounds {
			stats.OutOfBounds++
		}
		if !b.Alive() {
			died = append(died, death{e: e, outOfBounds: res.OutOfBounds})
		}
	})

	// Adding a component moves the entity, so it waits until iteration is done
	for _, d := range died {
		donburi.Add(d.e, components.Death, &components.DeathData{
			Timer:       cfg.Physics.CorpseTicks,
			OutOfBounds: d.outOfBounds,
		})
	}
}
