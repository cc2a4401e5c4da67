package level

import (
	"math"

	"github.com/automoto/sectorcore/shared/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// SurfaceKind says which part of a sector a trace hit.
type SurfaceKind int

const (
	SurfaceNone SurfaceKind = iota
	SurfaceWall
	SurfaceFloor
	SurfaceCeiling
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceWall:
		return "wall"
	case SurfaceFloor:
		return "floor"
	case SurfaceCeiling:
		return "ceiling"
	}
	return "none"
}

// Hit is the nearest terminal surface found by a trace. Fraction is the probe
// parameter at the hit: a multiple of dir for rays, 0..1 for segments.
type Hit struct {
	HasCollision  bool
	Point         mgl64.Vec3
	SurfaceNormal mgl64.Vec3
	SurfaceID     int
	Sector        int
	Wall          int
	Surface       SurfaceKind
	Fraction      float64
}

func noHit() Hit {
	return Hit{Sector: EmptySector, Wall: NoWall}
}

// RayTrace follows origin + dir*t for t >= 0 through the portal graph,
// starting in sector, and returns the nearest terminal hit.
func (m *LevelMap) RayTrace(tr *Traversal, sector int, origin, dir mgl64.Vec3) Hit {
	return m.trace(tr, sector, origin, dir, math.Inf(1))
}

// LineSegmentTrace is RayTrace bounded to the segment start-end.
func (m *LevelMap) LineSegmentTrace(tr *Traversal, sector int, start, end mgl64.Vec3) Hit {
	return m.trace(tr, sector, start, end.Sub(start), 1)
}

// trace floods the sectors the probe can reach. A sector's planes are tested
// only when the probe moves toward them, and a wall only when the probe leaves
// the sector through it. A wall is terminal when it is solid or the
// neighbour's floor or ceiling seals it at the crossing height; otherwise the
// neighbour is queued. Anything at or beyond the best hit so far is ignored,
// which keeps portals behind a closer terminal hit from being expanded.
func (m *LevelMap) trace(tr *Traversal, start int, origin, dir mgl64.Vec3, maxT float64) Hit {
	best := noHit()
	if !m.validSector(start) || dir.LenSqr() < geom.Epsilon {
		return best
	}
	bestT := maxT

	o2 := mgl64.Vec2{origin[0], origin[1]}
	d2 := mgl64.Vec2{dir[0], dir[1]}
	horizontal := d2.LenSqr() >= geom.Epsilon

	tr.Reset(len(m.sectors))
	tr.Enqueue(start)
	for s := tr.Next(); s != EmptySector; s = tr.Next() {
		sec := &m.sectors[s]

		planes := [...]struct {
			normal mgl64.Vec3
			d      float64
			kind   SurfaceKind
			id     int
		}{
			{sec.floorNormal, sec.floorD, SurfaceFloor, sec.rec.FloorSurface},
			{sec.ceilingNormal, sec.ceilingD, SurfaceCeiling, sec.rec.CeilingSurface},
		}
		for _, p := range planes {
			if dir.Dot(p.normal) >= 0 {
				continue
			}
			ph, ok := geom.LinePlaneIntersection(origin, dir, p.normal, p.d, bestT)
			if !ok || !sec.Contains(ph.Point[0], ph.Point[1]) {
				continue
			}
			bestT = ph.T
			best = Hit{
				HasCollision:  true,
				Point:         ph.Point,
				SurfaceNormal: p.normal,
				SurfaceID:     p.id,
				Sector:        s,
				Wall:          NoWall,
				Surface:       p.kind,
				Fraction:      ph.T,
			}
		}

		if !horizontal {
			continue
		}
		for i := sec.rec.WallPtr; i < sec.rec.WallPtr+sec.rec.WallNum; i++ {
			w := &m.walls[i]
			if d2.Dot(w.normal) <= 0 {
				continue
			}
			ix, ok := geom.RaySegmentIntersection2D(o2, d2, w.start, w.end, bestT)
			if !ok {
				continue
			}
			z := origin[2] + dir[2]*ix.T
			if !m.sealed(w, ix.Point, z) {
				tr.Enqueue(w.rec.NextSector)
				continue
			}
			in := w.InwardNormal()
			bestT = ix.T
			best = Hit{
				HasCollision:  true,
				Point:         mgl64.Vec3{ix.Point[0], ix.Point[1], z},
				SurfaceNormal: mgl64.Vec3{in[0], in[1], 0},
				SurfaceID:     w.rec.Surface,
				Sector:        s,
				Wall:          i,
				Surface:       SurfaceWall,
				Fraction:      ix.T,
			}
		}
	}
	return best
}

// sealed reports whether a probe crossing w at p and height z is stopped.
func (m *LevelMap) sealed(w *Wall, p mgl64.Vec2, z float64) bool {
	if !w.IsPortal() {
		return true
	}
	next := &m.sectors[w.rec.NextSector]
	return z < next.FloorHeight(p[0], p[1]) || z > next.CeilingHeight(p[0], p[1])
}
