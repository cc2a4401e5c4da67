// Package geom holds the pure geometry helpers used by the level tracer and the
// body collision resolver. It has no state and no dependencies on the level types.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used for parallel and degenerate checks.
const Epsilon = 1e-9

// Cross2D returns the z component of the cross product a x b.
func Cross2D(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// CrossSign2D reports which side of the directed line a->b the point p lies on:
// +1 left, -1 right, 0 collinear.
func CrossSign2D(p, a, b mgl64.Vec2) int {
	c := Cross2D(b.Sub(a), p.Sub(a))
	switch {
	case c > Epsilon:
		return 1
	case c < -Epsilon:
		return -1
	}
	return 0
}

// PointInPolygon runs an even-odd horizontal ray crossing test over an ordered
// vertex loop. Edges are half-open in y (the lower endpoint is included, the
// upper one is not) and the crossing must lie strictly to the right of x, so a
// point on an edge shared by two loops belongs to exactly one of them.
func PointInPolygon(loop []mgl64.Vec2, x, y float64) bool {
	inside := false
	n := len(loop)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if crosses(loop[i], loop[j], x, y) {
			inside = !inside
		}
	}
	return inside
}

// PointInLoops applies the PointInPolygon rule across several loops at once, so
// inner loops act as holes in the outer one.
func PointInLoops(loops [][]mgl64.Vec2, x, y float64) bool {
	inside := false
	for _, loop := range loops {
		if PointInPolygon(loop, x, y) {
			inside = !inside
		}
	}
	return inside
}

func crosses(a, b mgl64.Vec2, x, y float64) bool {
	if (a[1] > y) == (b[1] > y) {
		return false
	}
	xCross := a[0] + (y-a[1])*(b[0]-a[0])/(b[1]-a[1])
	return x < xCross
}

// PlaneHit is the result of a probe crossing a plane.
type PlaneHit struct {
	T      float64
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// LinePlaneIntersection solves origin + dir*t against the plane normal·p = d.
// Hits are only reported for t in [0, maxT]; pass math.Inf(1) for a ray and 1
// for a segment whose dir is end-start.
func LinePlaneIntersection(origin, dir, normal mgl64.Vec3, d, maxT float64) (PlaneHit, bool) {
	denom := normal.Dot(dir)
	if math.Abs(denom) < Epsilon {
		return PlaneHit{}, false
	}
	t := (d - normal.Dot(origin)) / denom
	if t < 0 || t > maxT {
		return PlaneHit{}, false
	}
	return PlaneHit{
		T:      t,
		Point:  origin.Add(dir.Mul(t)),
		Normal: normal,
	}, true
}

// Intersection2D is a probe crossing a wall segment. T is the parameter along
// the probe, U along the wall (0 at its start, 1 at its end).
type Intersection2D struct {
	Point mgl64.Vec2
	T     float64
	U     float64
}

// RaySegmentIntersection2D intersects origin + dir*t, t in [0, maxT], with the
// segment q0-q1. Parallel and degenerate cases report no intersection.
func RaySegmentIntersection2D(origin, dir, q0, q1 mgl64.Vec2, maxT float64) (Intersection2D, bool) {
	e := q1.Sub(q0)
	denom := Cross2D(dir, e)
	if math.Abs(denom) < Epsilon*(dir.Len()*e.Len()+Epsilon) {
		return Intersection2D{}, false
	}
	w := q0.Sub(origin)
	t := Cross2D(w, e) / denom
	u := Cross2D(w, dir) / denom
	if t < 0 || t > maxT || u < 0 || u > 1 {
		return Intersection2D{}, false
	}
	return Intersection2D{
		Point: origin.Add(dir.Mul(t)),
		T:     t,
		U:     u,
	}, true
}

// SegmentSegmentIntersection2D intersects p0-p1 with q0-q1; T is along p0-p1.
func SegmentSegmentIntersection2D(p0, p1, q0, q1 mgl64.Vec2) (Intersection2D, bool) {
	return RaySegmentIntersection2D(p0, p1.Sub(p0), q0, q1, 1)
}

// ClosestPointOnSegment returns the point of a-b nearest to p and its
// parameter along the segment.
func ClosestPointOnSegment(p, a, b mgl64.Vec2) (mgl64.Vec2, float64) {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < Epsilon {
		return a, 0
	}
	u := p.Sub(a).Dot(ab) / lenSq
	u = mgl64.Clamp(u, 0, 1)
	return a.Add(ab.Mul(u)), u
}

// CircleHit describes a circle overlapping a segment. Normal points from the
// segment toward the circle centre; Depth is how far the circle penetrates.
type CircleHit struct {
	Point  mgl64.Vec2
	Normal mgl64.Vec2
	Depth  float64
}

// CircleSegmentIntersection tests a circle against q0-q1. When the centre lies
// on the segment the normal falls back to the segment's left-hand normal.
func CircleSegmentIntersection(center mgl64.Vec2, radius float64, q0, q1 mgl64.Vec2) (CircleHit, bool) {
	closest, _ := ClosestPointOnSegment(center, q0, q1)
	delta := center.Sub(closest)
	dist := delta.Len()
	if dist >= radius {
		return CircleHit{}, false
	}

	var normal mgl64.Vec2
	if dist > Epsilon {
		normal = delta.Mul(1 / dist)
	} else {
		e := q1.Sub(q0)
		l := e.Len()
		if l < Epsilon {
			return CircleHit{}, false
		}
		normal = mgl64.Vec2{-e[1] / l, e[0] / l}
	}

	return CircleHit{
		Point:  closest,
		Normal: normal,
		Depth:  radius - dist,
	}, true
}

// SignedArea returns twice the signed area of a loop; positive when the loop
// winds counter-clockwise.
func SignedArea(loop []mgl64.Vec2) float64 {
	area := 0.0
	n := len(loop)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		area += Cross2D(loop[j], loop[i])
	}
	return area
}

// Reflect mirrors v about the plane with unit normal n.
func Reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}
