package level

import (
	"testing"

	"github.com/automoto/sectorcore/shared/leveldata"
	"github.com/stretchr/testify/require"
)

func rect(x0, y0, x1, y1 float64) []leveldata.Point {
	return []leveldata.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func mustBuild(t *testing.T, b *leveldata.Builder) *leveldata.MapData {
	t.Helper()
	data, err := b.Build()
	require.NoError(t, err)
	return data
}

func mustNew(t *testing.T, data *leveldata.MapData) *LevelMap {
	t.Helper()
	m, err := New(data)
	require.NoError(t, err)
	return m
}

// boxMap is a single 10x10 room, floor 0, ceiling 10. The x=10 wall (index 1)
// carries surface 9, the others surface 5.
func boxMap(t *testing.T) *LevelMap {
	b := leveldata.NewBuilder()
	b.AddSector(leveldata.SectorDef{
		Name: "box", Outline: rect(0, 0, 10, 10),
		CeilingZ: 10, FloorSurface: 1, CeilingSurface: 2, WallSurface: 5,
	})
	data := mustBuild(t, b)
	data.Walls[1].Surface = 9
	return mustNew(t, data)
}

// twoRooms joins west (0..10) and east (10..20) through the x=10 edge. West
// wall 1 and east wall 7 form the portal; east wall 5 is the far x=20 wall.
func twoRooms(t *testing.T, eastFloor, eastCeiling float64) *LevelMap {
	b := leveldata.NewBuilder()
	b.AddSector(leveldata.SectorDef{Name: "west", Outline: rect(0, 0, 10, 10), CeilingZ: 10, WallSurface: 3})
	b.AddSector(leveldata.SectorDef{
		Name: "east", Outline: rect(10, 0, 20, 10),
		FloorZ: eastFloor, CeilingZ: eastCeiling, FloorSurface: 7, WallSurface: 4,
	})
	b.SetStart(leveldata.StartPose{X: 15, Y: 5, Z: -3, Sector: leveldata.NoNeighbor})
	return mustNew(t, mustBuild(t, b))
}

// yardMap is a 30x30 yard with a raised 10x10 pillar sector in its middle.
func yardMap(t *testing.T) *LevelMap {
	b := leveldata.NewBuilder()
	b.AddSector(leveldata.SectorDef{Name: "yard", Outline: rect(0, 0, 30, 30), CeilingZ: 64, WallSurface: 1})
	b.AddSector(leveldata.SectorDef{
		Name: "pillar", Parent: "yard", Outline: rect(10, 10, 20, 20),
		FloorZ: 32, CeilingZ: 64, WallSurface: 2,
	})
	return mustNew(t, mustBuild(t, b))
}

// slopedBox is a 10x10 room whose floor rises 0.5 per unit of y.
func slopedBox(t *testing.T) *LevelMap {
	b := leveldata.NewBuilder()
	b.AddSector(leveldata.SectorDef{Outline: rect(0, 0, 10, 10), CeilingZ: 20, FloorHeinum: 0.5})
	return mustNew(t, mustBuild(t, b))
}
