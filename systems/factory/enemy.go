package factory

import (
	"github.com/automoto/sectorcore/archetypes"
	"github.com/automoto/sectorcore/body"
	"github.com/automoto/sectorcore/components"
	cfg "github.com/automoto/sectorcore/config"
	"github.com/automoto/sectorcore/level"
	"github.com/yohamta/donburi"
)

// CreateEnemy spawns an enemy walking forward along its yaw.
func CreateEnemy(w donburi.World, pose level.Pose) *donburi.Entry {
	enemy := archetypes.Enemy.Spawn(w)

	b := body.New(body.KindEnemy, pose)
	b.MoveForward(cfg.Bodies[cfg.BodyEnemy].MoveSpeed)
	components.Body.SetValue(enemy, components.BodyData{RigidBody: b})

	components.Enemy.SetValue(enemy, components.EnemyData{
		ReactionTimer: cfg.Enemy.ReactionDelay,
	})

	return enemy
}
