package components

import (
	"github.com/automoto/sectorcore/body"
	"github.com/yohamta/donburi"
)

// BodyData wraps the simulated body of an entity.
type BodyData struct {
	*body.RigidBody
}

var Body = donburi.NewComponentType[BodyData]()
