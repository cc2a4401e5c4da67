package level

import (
	"math"

	"github.com/automoto/sectorcore/shared/geom"
	"github.com/automoto/sectorcore/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
)

// Sector is a room bounded by one outer wall loop and any number of inner
// loops. Floor and ceiling are planes anchored on the first wall: the height at
// (x, y) is the base height plus heinum times the signed distance of (x, y)
// from that wall's line, positive toward the interior.
type Sector struct {
	rec   leveldata.SectorRecord
	index int

	refPoint mgl64.Vec2
	refDir   mgl64.Vec2

	floorNormal   mgl64.Vec3
	ceilingNormal mgl64.Vec3
	floorD        float64
	ceilingD      float64

	loops     [][]int
	polygons  [][]mgl64.Vec2
	neighbors []int
	min, max  mgl64.Vec2
}

// Accessors for the sector's index and its source record.
func (s *Sector) Index() int { return s.index }
func (s *Sector) WallPtr() int { return s.rec.WallPtr }
func (s *Sector) WallNum() int { return s.rec.WallNum }
func (s *Sector) FloorSurface() int { return s.rec.FloorSurface }
func (s *Sector) CeilingSurface() int { return s.rec.CeilingSurface }
func (s *Sector) Record() leveldata.SectorRecord { return s.rec }

// IsSloped reports whether either plane has a non-zero slope.
func (s *Sector) IsSloped() bool {
	return s.rec.FloorHeinum != 0 || s.rec.CeilingHeinum != 0
}

func (s *Sector) slopeDistance(x, y float64) float64 {
	return s.refDir[0]*(y-s.refPoint[1]) - s.refDir[1]*(x-s.refPoint[0])
}

// FloorHeight returns the floor z at (x, y).
func (s *Sector) FloorHeight(x, y float64) float64 {
	return s.rec.FloorZ + s.rec.FloorHeinum*s.slopeDistance(x, y)
}

// CeilingHeight returns the ceiling z at (x, y).
func (s *Sector) CeilingHeight(x, y float64) float64 {
	return s.rec.CeilingZ + s.rec.CeilingHeinum*s.slopeDistance(x, y)
}

// FloorNormal points up, into the sector.
func (s *Sector) FloorNormal() mgl64.Vec3 { return s.floorNormal }

// CeilingNormal points down, into the sector.
func (s *Sector) CeilingNormal() mgl64.Vec3 { return s.ceilingNormal }

// FloorPlane returns the floor as n·p = d.
func (s *Sector) FloorPlane() (mgl64.Vec3, float64) { return s.floorNormal, s.floorD }

// CeilingPlane returns the ceiling as n·p = d.
func (s *Sector) CeilingPlane() (mgl64.Vec3, float64) { return s.ceilingNormal, s.ceilingD }

// Loops returns the wall indices of each closed loop, outer loop first.
func (s *Sector) Loops() [][]int { return s.loops }

// Polygons returns the start points of each loop, in the same order as Loops.
func (s *Sector) Polygons() [][]mgl64.Vec2 { return s.polygons }

// Neighbors returns the distinct sectors reachable through this sector's portals.
func (s *Sector) Neighbors() []int { return s.neighbors }

// Bounds returns the axis-aligned bounding box of the outer loop.
func (s *Sector) Bounds() (lo, hi mgl64.Vec2) { return s.min, s.max }

// Contains reports whether (x, y) lies inside the sector, holes excluded.
func (s *Sector) Contains(x, y float64) bool {
	if x < s.min[0] || x > s.max[0] || y < s.min[1] || y > s.max[1] {
		return false
	}
	return geom.PointInLoops(s.polygons, x, y)
}

// finalize computes every derived field. loops must already be validated.
func (s *Sector) finalize(walls []Wall, loops [][]int) {
	s.loops = loops
	s.polygons = make([][]mgl64.Vec2, len(loops))
	for i, loop := range loops {
		poly := make([]mgl64.Vec2, len(loop))
		for j, w := range loop {
			poly[j] = walls[w].start
		}
		s.polygons[i] = poly
	}

	s.min = mgl64.Vec2{math.Inf(1), math.Inf(1)}
	s.max = mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, p := range s.polygons[0] {
		s.min = mgl64.Vec2{math.Min(s.min[0], p[0]), math.Min(s.min[1], p[1])}
		s.max = mgl64.Vec2{math.Max(s.max[0], p[0]), math.Max(s.max[1], p[1])}
	}

	seen := make(map[int]bool)
	s.neighbors = s.neighbors[:0]
	for i := s.rec.WallPtr; i < s.rec.WallPtr+s.rec.WallNum; i++ {
		n := walls[i].rec.NextSector
		if n == leveldata.NoNeighbor || n == s.index || seen[n] {
			continue
		}
		seen[n] = true
		s.neighbors = append(s.neighbors, n)
	}

	first := &walls[s.rec.WallPtr]
	s.refPoint = first.start
	s.refDir = first.dir

	s.floorNormal, s.floorD = s.plane(s.FloorHeight, false)
	s.ceilingNormal, s.ceilingD = s.plane(s.CeilingHeight, true)
}

// plane samples the height field at the reference point and one unit along x
// and y, and crosses the two tangents. The ceiling uses the opposite order so
// its normal faces down.
func (s *Sector) plane(height func(x, y float64) float64, ceiling bool) (mgl64.Vec3, float64) {
	x, y := s.refPoint[0], s.refPoint[1]
	h0 := height(x, y)
	tx := mgl64.Vec3{1, 0, height(x+1, y) - h0}
	ty := mgl64.Vec3{0, 1, height(x, y+1) - h0}

	n := tx.Cross(ty)
	if ceiling {
		n = ty.Cross(tx)
	}
	n = n.Normalize()
	return n, n.Dot(mgl64.Vec3{x, y, h0})
}
