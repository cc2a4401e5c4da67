package body

import (
	"math"

	"github.com/automoto/sectorcore/level"
	"github.com/automoto/sectorcore/shared/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Update advances the body by dt seconds against m, using tr as scratch. The
// steps are: locate the body, predict the next position, let the behaviour
// act, push the base circle out of blocking walls, settle on the floor, then
// apply gravity for the next tick.
func (b *RigidBody) Update(dt float64, m *level.LevelMap, tr *level.Traversal) StepResult {
	var res StepResult
	if !b.Alive() || dt <= 0 {
		return res
	}

	sector := m.DetermineSector(b.Sector, b.Position[0], b.Position[1])
	if sector == level.EmptySector {
		res.OutOfBounds = true
		b.behavior.OnOutOfBounds(b)
		return res
	}
	b.Sector = sector

	next := b.Position.Add(b.Velocity.Mul(dt))
	if b.behavior.OnStep(b, m, tr, next, &res) {
		res.Blocked = b.resolve(m, tr, next)
		if res.Blocked > 0 {
			b.behavior.OnBlocked(b, res.Blocked)
		}
	}

	if b.Alive() {
		b.Velocity[2] -= b.Gravity * dt
		if b.MaxFallSpeed > 0 && b.Velocity[2] < -b.MaxFallSpeed {
			b.Velocity[2] = -b.MaxFallSpeed
		}
	}
	return res
}

// resolve commits next after wall and floor correction and returns the number
// of blocking contacts.
func (b *RigidBody) resolve(m *level.LevelMap, tr *level.Traversal, next mgl64.Vec3) int {
	blocked := 0
	if stop, ok := b.sweep(m, tr, next); ok {
		next[0], next[1] = stop[0], stop[1]
		blocked++
	}

	c := mgl64.Vec2{next[0], next[1]}
	base := math.Max(next[2], b.Position[2])
	support := math.Inf(-1)
	var sum mgl64.Vec2
	contacts := 0

	tr.Reset(m.SectorCount())
	tr.Enqueue(b.Sector)
	for _, x := range b.crossed {
		tr.Enqueue(x.sector)
	}
	for s := tr.Next(); s != level.EmptySector; s = tr.Next() {
		walls := m.SectorWalls(s)
		for i := range walls {
			w := &walls[i]
			hit, ok := geom.CircleSegmentIntersection(c, b.Radius, w.Start(), w.End())
			if !ok {
				continue
			}
			if b.blockedBy(m, w, base, hit.Point) {
				n := hit.Normal
				if c.Sub(w.Start()).Dot(w.Normal()) > 0 {
					n = w.InwardNormal()
				}
				sum = sum.Add(hit.Point.Add(n.Mul(b.Radius)))
				contacts++
				continue
			}
			floor := m.Sector(w.NextSector()).FloorHeight(hit.Point[0], hit.Point[1])
			support = math.Max(support, floor)
			next[2] = math.Max(next[2], floor)
			tr.Enqueue(w.NextSector())
		}
	}
	if contacts > 0 {
		avg := sum.Mul(1 / float64(contacts))
		next[0], next[1] = avg[0], avg[1]
	}

	sector := m.DetermineSector(b.Sector, next[0], next[1])
	if sector == level.EmptySector {
		next[0], next[1] = b.Position[0], b.Position[1]
		sector = b.Sector
	}
	b.settle(m.Sector(sector), &next, support)

	b.Position = next
	b.Sector = sector
	return blocked + contacts
}

// settle snaps next onto the floor (or a stepped-onto neighbour floor) and
// keeps it under the ceiling when ClampCeiling is set.
func (b *RigidBody) settle(sec *level.Sector, next *mgl64.Vec3, support float64) {
	x, y := next[0], next[1]
	floor := math.Max(sec.FloorHeight(x, y), support)
	switch {
	case next[2] <= floor && b.Velocity[2] <= 0:
		next[2] = floor
		b.Velocity[2] = 0
		b.Flags &^= FlagAirborne
	case next[2] < floor:
		next[2] = floor
		b.Flags |= FlagAirborne
	default:
		b.Flags |= FlagAirborne
	}

	if !b.ClampCeiling {
		return
	}
	if ceiling := sec.CeilingHeight(x, y); next[2]+b.Height > ceiling {
		next[2] = math.Max(floor, ceiling-b.Height)
		if b.Velocity[2] > 0 {
			b.Velocity[2] = 0
		}
	}
}

// sweep follows the centre from Position to next through open portals and
// returns the point one radius short of the first blocking wall it crosses.
// Portals crossed before that wall are left in b.crossed.
func (b *RigidBody) sweep(m *level.LevelMap, tr *level.Traversal, next mgl64.Vec3) (mgl64.Vec2, bool) {
	b.crossed = b.crossed[:0]
	from := mgl64.Vec2{b.Position[0], b.Position[1]}
	to := mgl64.Vec2{next[0], next[1]}
	d := to.Sub(from)
	if d.LenSqr() < geom.Epsilon {
		return mgl64.Vec2{}, false
	}

	base := math.Max(next[2], b.Position[2])
	nearest := math.Inf(1)
	var stop mgl64.Vec2
	found := false

	tr.Reset(m.SectorCount())
	tr.Enqueue(b.Sector)
	for s := tr.Next(); s != level.EmptySector; s = tr.Next() {
		walls := m.SectorWalls(s)
		for i := range walls {
			w := &walls[i]
			if d.Dot(w.Normal()) <= 0 {
				continue
			}
			ix, ok := geom.SegmentSegmentIntersection2D(from, to, w.Start(), w.End())
			if !ok || ix.T >= nearest {
				continue
			}
			if b.blockedBy(m, w, base, ix.Point) {
				nearest = ix.T
				stop = ix.Point.Add(w.InwardNormal().Mul(b.Radius))
				found = true
				continue
			}
			if tr.Enqueue(w.NextSector()) {
				b.crossed = append(b.crossed, crossing{sector: w.NextSector(), t: ix.T})
			}
		}
	}
	if found {
		kept := b.crossed[:0]
		for _, c := range b.crossed {
			if c.t < nearest {
				kept = append(kept, c)
			}
		}
		b.crossed = kept
	}
	return stop, found
}

// blockedBy reports whether w stops a body whose base is at height z where it
// touches the wall at p. Callers pass the higher of the current and predicted
// base heights.
func (b *RigidBody) blockedBy(m *level.LevelMap, w *level.Wall, z float64, p mgl64.Vec2) bool {
	if !w.IsPortal() {
		return true
	}
	n := m.Sector(w.NextSector())
	floor := n.FloorHeight(p[0], p[1])
	if floor > z+b.StepHeight {
		return true
	}
	return n.CeilingHeight(p[0], p[1]) < math.Max(z, floor)+b.Height
}
