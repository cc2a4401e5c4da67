// Package level holds the immutable sector/wall graph of a loaded level and
// the queries gameplay runs against it: point location, ray and segment
// tracing through portals, and a coarse solid-wall check.
package level

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/automoto/sectorcore/shared/geom"
	"github.com/automoto/sectorcore/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrTypeMalformedLevel is the error type for level data that breaks the
// sector/wall structure.
const ErrTypeMalformedLevel = "malformed-level"

// Pose is a position, a yaw in radians and the sector holding the position.
type Pose struct {
	Position mgl64.Vec3
	Yaw      float64
	Sector   int
}

// LevelMap owns the sectors and walls of one level. It is read-only after New
// and safe to share between goroutines; the Traversal passed to each query is
// not.
type LevelMap struct {
	sectors []Sector
	walls   []Wall
	start   Pose

	min, max mgl64.Vec2
}

// New validates data and computes every derived sector and wall field.
func New(data *leveldata.MapData) (*LevelMap, error) {
	if data == nil || len(data.Sectors) == 0 {
		return nil, errors.New("level has no sectors").
			WithType(ErrTypeMalformedLevel)
	}

	m := &LevelMap{
		sectors: make([]Sector, len(data.Sectors)),
		walls:   make([]Wall, len(data.Walls)),
	}
	owner, err := wallOwners(data)
	if err != nil {
		return nil, err
	}
	for i, rec := range data.Walls {
		if rec.Point2 < 0 || rec.Point2 >= len(data.Walls) || owner[rec.Point2] != owner[i] {
			return nil, errors.New("wall point2 leaves its sector").
				WithType(ErrTypeMalformedLevel).
				WithTag("wall", i).
				WithTag("point2", rec.Point2)
		}
		if err := checkPortal(data, owner, i); err != nil {
			return nil, err
		}
		m.walls[i] = Wall{rec: rec, index: i, sector: owner[i]}
		m.walls[i].finalize(data.Walls[rec.Point2])
	}

	for i, rec := range data.Sectors {
		loops, err := wallLoops(data.Walls, rec, i)
		if err != nil {
			return nil, err
		}
		if err := checkWinding(m.walls, loops, i); err != nil {
			return nil, err
		}
		m.sectors[i] = Sector{rec: rec, index: i}
		m.sectors[i].finalize(m.walls, loops)
	}

	m.min, m.max = m.sectors[0].Bounds()
	for i := range m.sectors {
		lo, hi := m.sectors[i].Bounds()
		m.min = mgl64.Vec2{min(m.min[0], lo[0]), min(m.min[1], lo[1])}
		m.max = mgl64.Vec2{max(m.max[0], hi[0]), max(m.max[1], hi[1])}
	}

	m.start = m.resolveStart(data.Start)
	return m, nil
}

func wallOwners(data *leveldata.MapData) ([]int, error) {
	owner := make([]int, len(data.Walls))
	for i := range owner {
		owner[i] = EmptySector
	}
	for s, rec := range data.Sectors {
		if rec.WallNum < 3 || rec.WallPtr < 0 || rec.WallPtr+rec.WallNum > len(data.Walls) {
			return nil, errors.New("sector wall range is invalid").
				WithType(ErrTypeMalformedLevel).
				WithTag("sector", s).
				WithTag("wallPtr", rec.WallPtr).
				WithTag("wallNum", rec.WallNum)
		}
		for w := rec.WallPtr; w < rec.WallPtr+rec.WallNum; w++ {
			if owner[w] != EmptySector {
				return nil, errors.New("wall belongs to two sectors").
					WithType(ErrTypeMalformedLevel).
					WithTag("wall", w)
			}
			owner[w] = s
		}
	}
	for w, s := range owner {
		if s == EmptySector {
			return nil, errors.New("wall belongs to no sector").
				WithType(ErrTypeMalformedLevel).
				WithTag("wall", w)
		}
	}
	return owner, nil
}

func checkPortal(data *leveldata.MapData, owner []int, i int) error {
	rec := data.Walls[i]
	if rec.NextSector == leveldata.NoNeighbor {
		return nil
	}
	if rec.NextSector < 0 || rec.NextSector >= len(data.Sectors) {
		return errors.New("dangling next sector").
			WithType(ErrTypeMalformedLevel).
			WithTag("wall", i).
			WithTag("nextSector", rec.NextSector)
	}
	if rec.NextWall < 0 || rec.NextWall >= len(data.Walls) || owner[rec.NextWall] != rec.NextSector {
		return errors.New("next wall is not in next sector").
			WithType(ErrTypeMalformedLevel).
			WithTag("wall", i).
			WithTag("nextWall", rec.NextWall)
	}
	return nil
}

// wallLoops follows point2 from each unvisited wall until it returns to the
// loop's first wall. A chain that runs longer than the range, or revisits a
// wall of an earlier loop, is rejected.
func wallLoops(walls []leveldata.WallRecord, rec leveldata.SectorRecord, sector int) ([][]int, error) {
	first, end := rec.WallPtr, rec.WallPtr+rec.WallNum
	seen := make([]bool, rec.WallNum)

	var loops [][]int
	for i := first; i < end; i++ {
		if seen[i-first] {
			continue
		}
		var loop []int
		w := i
		for {
			if seen[w-first] {
				return nil, errors.New("wall loop does not close").
					WithType(ErrTypeMalformedLevel).
					WithTag("sector", sector).
					WithTag("wall", w)
			}
			seen[w-first] = true
			loop = append(loop, w)
			w = walls[w].Point2
			if w == i {
				break
			}
		}
		if len(loop) < 3 {
			return nil, errors.New("wall loop has fewer than 3 walls").
				WithType(ErrTypeMalformedLevel).
				WithTag("sector", sector).
				WithTag("wall", i)
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

func checkWinding(walls []Wall, loops [][]int, sector int) error {
	for i, loop := range loops {
		poly := make([]mgl64.Vec2, len(loop))
		for j, w := range loop {
			poly[j] = walls[w].start
		}
		area := geom.SignedArea(poly)
		if (i == 0 && area <= 0) || (i > 0 && area >= 0) {
			return errors.New("wall loop has the wrong winding").
				WithType(ErrTypeMalformedLevel).
				WithTag("sector", sector).
				WithTag("loop", i)
		}
	}
	return nil
}

// resolveStart keeps the authored start sector when it holds the start point,
// otherwise searches for one. A start below the floor is lifted onto it.
func (m *LevelMap) resolveStart(p leveldata.StartPose) Pose {
	pose := Pose{
		Position: mgl64.Vec3{p.X, p.Y, p.Z},
		Yaw:      p.Angle,
		Sector:   p.Sector,
	}
	if !m.validSector(pose.Sector) || !m.sectors[pose.Sector].Contains(p.X, p.Y) {
		pose.Sector = m.SearchForSectorIndex(p.X, p.Y)
	}
	if pose.Sector != EmptySector {
		if floor := m.sectors[pose.Sector].FloorHeight(p.X, p.Y); pose.Position[2] < floor {
			pose.Position[2] = floor
		}
	}
	return pose
}

func (m *LevelMap) validSector(s int) bool {
	return s >= 0 && s < len(m.sectors)
}

// Sector returns the sector at index i. It panics when i is out of range.
func (m *LevelMap) Sector(i int) *Sector { return &m.sectors[i] }

// Wall returns the wall at index i. It panics when i is out of range.
func (m *LevelMap) Wall(i int) *Wall { return &m.walls[i] }

func (m *LevelMap) SectorCount() int { return len(m.sectors) }
func (m *LevelMap) WallCount() int { return len(m.walls) }

// Start returns the player spawn. Its Sector is EmptySector when the authored
// start point lies outside every sector.
func (m *LevelMap) Start() Pose { return m.start }

// Bounds returns the axis-aligned box around every sector.
func (m *LevelMap) Bounds() (lo, hi mgl64.Vec2) { return m.min, m.max }

// NewTraversal returns a workspace sized for this map.
func (m *LevelMap) NewTraversal() *Traversal {
	return NewTraversal(len(m.sectors))
}

// SectorWalls returns the walls owned by sector s.
func (m *LevelMap) SectorWalls(s int) []Wall {
	sec := &m.sectors[s]
	return m.walls[sec.rec.WallPtr : sec.rec.WallPtr+sec.rec.WallNum]
}
