package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	Enemy      = donburi.NewTag().SetName("Enemy")
	Projectile = donburi.NewTag().SetName("Projectile")
	Decal      = donburi.NewTag().SetName("Decal")
)

// Resolv tags for the wall broadphase
const (
	ResolvSolid = "solid"
	ResolvProbe = "probe"
)
