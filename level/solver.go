package level

import (
	"math"

	"github.com/automoto/sectorcore/shared/geom"
	"github.com/automoto/sectorcore/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// MapCollisionSolver answers coarse "does this touch a solid wall" questions
// without walking the portal graph. Every solid wall is registered in a
// resolv space by its bounding box; portal walls are left out. Queries move a
// single probe object, so a solver must not be used from several goroutines.
type MapCollisionSolver struct {
	space  *resolv.Space
	probe  *resolv.Object
	walls  map[*resolv.Object]*Wall
	offset mgl64.Vec2
}

// NewMapCollisionSolver builds the broadphase grid for m with square cells of
// cellSize map units.
func NewMapCollisionSolver(m *LevelMap, cellSize int) *MapCollisionSolver {
	if cellSize < 1 {
		cellSize = 1
	}
	pad := float64(cellSize)
	lo, hi := m.Bounds()
	s := &MapCollisionSolver{
		walls:  make(map[*resolv.Object]*Wall),
		offset: mgl64.Vec2{lo[0] - pad, lo[1] - pad},
	}
	width := int(math.Ceil(hi[0]-lo[0]+2*pad)) + cellSize
	height := int(math.Ceil(hi[1]-lo[1]+2*pad)) + cellSize
	s.space = resolv.NewSpace(width, height, cellSize, cellSize)

	for i := range m.walls {
		w := &m.walls[i]
		if w.IsPortal() || w.length == 0 {
			continue
		}
		x, y, bw, bh := s.box(w.start, w.end, 0)
		obj := resolv.NewObject(x, y, bw, bh, tags.ResolvSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, bw, bh))
		s.space.Add(obj)
		s.walls[obj] = w
	}

	s.probe = resolv.NewObject(0, 0, 1, 1, tags.ResolvProbe)
	s.space.Add(s.probe)
	return s
}

// box returns the space-local bounding box of a-b grown by pad, snapped
// outwards to whole units. resolv only registers the unit cells an object's
// integer span covers, so a box is always at least one unit wide.
func (s *MapCollisionSolver) box(a, b mgl64.Vec2, pad float64) (x, y, w, h float64) {
	x0 := math.Floor(math.Min(a[0], b[0]) - pad - s.offset[0])
	y0 := math.Floor(math.Min(a[1], b[1]) - pad - s.offset[1])
	x1 := math.Floor(math.Max(a[0], b[0])+pad-s.offset[0]) + 1
	y1 := math.Floor(math.Max(a[1], b[1])+pad-s.offset[1]) + 1
	return x0, y0, x1 - x0, y1 - y0
}

func (s *MapCollisionSolver) candidates(a, b mgl64.Vec2, pad float64) []*resolv.Object {
	s.probe.X, s.probe.Y, s.probe.W, s.probe.H = s.box(a, b, pad)
	s.probe.Update()
	check := s.probe.Check(0, 0, tags.ResolvSolid)
	if check == nil {
		return nil
	}
	return check.ObjectsByTags(tags.ResolvSolid)
}

// SolidWallCount returns how many walls the solver tracks.
func (s *MapCollisionSolver) SolidWallCount() int {
	return len(s.walls)
}

// TouchesSolidWall reports the solid wall a circle at (x, y) overlaps most
// deeply, if any.
func (s *MapCollisionSolver) TouchesSolidWall(x, y, radius float64) (int, bool) {
	c := mgl64.Vec2{x, y}
	wall, depth := NoWall, 0.0
	for _, obj := range s.candidates(c, c, radius) {
		w := s.walls[obj]
		if w == nil {
			continue
		}
		hit, ok := geom.CircleSegmentIntersection(c, radius, w.start, w.end)
		if ok && (wall == NoWall || hit.Depth > depth) {
			wall, depth = w.index, hit.Depth
		}
	}
	return wall, wall != NoWall
}

// SegmentBlocked reports the first solid wall crossed going from a to b.
func (s *MapCollisionSolver) SegmentBlocked(a, b mgl64.Vec2) (int, bool) {
	wall, nearest := NoWall, math.Inf(1)
	for _, obj := range s.candidates(a, b, 0) {
		w := s.walls[obj]
		if w == nil {
			continue
		}
		ix, ok := geom.SegmentSegmentIntersection2D(a, b, w.start, w.end)
		if ok && ix.T < nearest {
			wall, nearest = w.index, ix.T
		}
	}
	return wall, wall != NoWall
}
