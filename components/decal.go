package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// DecalData is a mark left where a projectile hit a surface.
type DecalData struct {
	Name      string
	Point     mgl64.Vec3
	Normal    mgl64.Vec3
	SurfaceID int
	Sector    int
	Wall      int // level.NoWall for floor and ceiling hits

	TicksRemaining int
	Serial         int // Spawn order, used to evict the oldest decals
}

var Decal = donburi.NewComponentType[DecalData]()
