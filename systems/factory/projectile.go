package factory

import (
	"math"

	"github.com/automoto/sectorcore/archetypes"
	"github.com/automoto/sectorcore/body"
	"github.com/automoto/sectorcore/components"
	cfg "github.com/automoto/sectorcore/config"
	"github.com/automoto/sectorcore/level"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// CreateProjectile spawns a projectile at origin flying along dir at the
// configured projectile speed. A zero dir fires along origin's yaw.
func CreateProjectile(w donburi.World, origin level.Pose, dir mgl64.Vec3) *donburi.Entry {
	projectile := archetypes.Projectile.Spawn(w)

	if dir.Len() == 0 {
		dir = mgl64.Vec3{math.Cos(origin.Yaw), math.Sin(origin.Yaw), 0}
	}
	dir = dir.Normalize()
	origin.Yaw = math.Atan2(dir[1], dir[0])

	b := body.New(body.KindProjectile, origin)
	b.Velocity = dir.Mul(cfg.Bodies[cfg.BodyProjectile].MoveSpeed)
	components.Body.SetValue(projectile, components.BodyData{RigidBody: b})

	return projectile
}
