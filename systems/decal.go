package systems

import (
	"sort"

	"github.com/automoto/sectorcore/components"
	cfg "github.com/automoto/sectorcore/config"
	"github.com/yohamta/donburi"
)

// UpdateDecals ages decals, removing expired ones and the oldest ones beyond
// cfg.Decals.MaxCount.
func UpdateDecals(w donburi.World) {
	var live []*donburi.Entry
	var expired []*donburi.Entry

	components.Decal.Each(w, func(e *donburi.Entry) {
		decal := components.Decal.Get(e)
		decal.TicksRemaining--
		if decal.TicksRemaining <= 0 {
			expired = append(expired, e)
			return
		}
		live = append(live, e)
	})

	if over := len(live) - cfg.Decals.MaxCount; over > 0 {
		sort.Slice(live, func(i, j int) bool {
			return components.Decal.Get(live[i]).Serial < components.Decal.Get(live[j]).Serial
		})
		expired = append(expired, live[:over]...)
	}

	for _, e := range expired {
		w.Remove(e.Entity())
	}
}
