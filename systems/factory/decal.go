package factory

import (
	"github.com/automoto/sectorcore/archetypes"
	"github.com/automoto/sectorcore/body"
	"github.com/automoto/sectorcore/components"
	cfg "github.com/automoto/sectorcore/config"
	"github.com/yohamta/donburi"
)

// CreateDecal marks the surface hit by impact. serial orders decals by age.
func CreateDecal(w donburi.World, impact body.Impact, serial int) *donburi.Entry {
	decal := archetypes.Decal.Spawn(w)

	components.Decal.SetValue(decal, components.DecalData{
		Name:           cfg.DecalName(impact.SurfaceID),
		Point:          impact.Point,
		Normal:         impact.Normal,
		SurfaceID:      impact.SurfaceID,
		Sector:         impact.Sector,
		Wall:           impact.Wall,
		TicksRemaining: cfg.Decals.Lifetime,
		Serial:         serial,
	})

	return decal
}
