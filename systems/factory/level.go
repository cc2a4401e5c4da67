package factory

import (
	"github.com/automoto/sectorcore/archetypes"
	"github.com/automoto/sectorcore/components"
	cfg "github.com/automoto/sectorcore/config"
	"github.com/automoto/sectorcore/level"
	"github.com/yohamta/donburi"
)

// CreateLevel spawns the level singleton for m, building its traversal
// workspace and wall broadphase.
func CreateLevel(w donburi.World, name string, m *level.LevelMap) *donburi.Entry {
	lvl := archetypes.Level.Spawn(w)

	components.Level.SetValue(lvl, components.LevelData{
		Name:      name,
		Map:       m,
		Traversal: m.NewTraversal(),
		Solver:    level.NewMapCollisionSolver(m, cfg.Physics.SolverCellSize),
	})

	return lvl
}
