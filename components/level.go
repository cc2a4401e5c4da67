package components

import (
	"github.com/automoto/sectorcore/level"
	"github.com/yohamta/donburi"
)

// LevelData is the singleton holding the level every body moves through.
type LevelData struct {
	Name      string
	Map       *level.LevelMap
	Traversal *level.Traversal // Shared by all systems; they run on one goroutine
	Solver    *level.MapCollisionSolver

	DecalSerial int // Decals spawned so far
}

var Level = donburi.NewComponentType[LevelData]()
