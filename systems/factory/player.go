package factory

import (
	"github.com/automoto/sectorcore/archetypes"
	"github.com/automoto/sectorcore/body"
	"github.com/automoto/sectorcore/components"
	"github.com/automoto/sectorcore/level"
	"github.com/yohamta/donburi"
)

func CreatePlayer(w donburi.World, pose level.Pose) *donburi.Entry {
	player := archetypes.Player.Spawn(w)

	components.Body.SetValue(player, components.BodyData{
		RigidBody: body.New(body.KindPlayer, pose),
	})

	return player
}
