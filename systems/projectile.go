package systems

import (
	"github.com/automoto/sectorcore/body"
	"github.com/automoto/sectorcore/components"
	"github.com/automoto/sectorcore/systems/factory"
	"github.com/automoto/sectorcore/tags"
	"github.com/yohamta/donburi"
)

// UpdateProjectiles turns the impacts recorded by projectiles this tick into
// decals.
func UpdateProjectiles(w donburi.World) {
	levelEntry, ok := components.Level.First(w)
	if !ok {
		return
	}
	lvl := components.Level.Get(levelEntry)
	stats := components.TickStats.Get(levelEntry)

	var impacts []body.Impact
	tags.Projectile.Each(w, func(e *donburi.Entry) {
		impacts = append(impacts, components.Body.Get(e).Impacts()...)
	})

	for _, impact := range impacts {
		factory.CreateDecal(w, impact, lvl.DecalSerial)
		lvl.DecalSerial++
		stats.Impacts++
	}
}
