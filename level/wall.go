package level

import (
	"github.com/automoto/sectorcore/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
)

// NoWall is reported in Hit.Wall when the hit is not against a wall.
const NoWall = -1

// Wall is one directed boundary edge of a sector. The derived geometry is
// filled in by LevelMap's finalize pass and never changes afterwards.
type Wall struct {
	rec    leveldata.WallRecord
	index  int
	sector int

	start, end mgl64.Vec2
	dir        mgl64.Vec2 // unit direction start->end
	length     float64
	normal     mgl64.Vec2 // unit, points out of the owning sector
}

func (w *Wall) finalize(end leveldata.WallRecord) {
	w.start = mgl64.Vec2{w.rec.X, w.rec.Y}
	w.end = mgl64.Vec2{end.X, end.Y}
	e := w.end.Sub(w.start)
	w.length = e.Len()
	if w.length > 0 {
		w.dir = e.Mul(1 / w.length)
		w.normal = mgl64.Vec2{w.dir[1], -w.dir[0]}
	}
}

// Accessors for the wall's place in the map and its precomputed geometry.
// Normal points out of the owning sector.
func (w *Wall) Index() int { return w.index }
func (w *Wall) Sector() int { return w.sector }
func (w *Wall) Point2() int { return w.rec.Point2 }
func (w *Wall) Start() mgl64.Vec2 { return w.start }
func (w *Wall) End() mgl64.Vec2 { return w.end }
func (w *Wall) Dir() mgl64.Vec2 { return w.dir }
func (w *Wall) Length() float64 { return w.length }
func (w *Wall) Normal() mgl64.Vec2 { return w.normal }
func (w *Wall) NextSector() int { return w.rec.NextSector }
func (w *Wall) NextWall() int { return w.rec.NextWall }
func (w *Wall) SurfaceID() int { return w.rec.Surface }
func (w *Wall) Record() leveldata.WallRecord { return w.rec }

// InwardNormal points into the owning sector.
func (w *Wall) InwardNormal() mgl64.Vec2 {
	return w.normal.Mul(-1)
}

// IsPortal reports whether the wall links to a neighbouring sector.
func (w *Wall) IsPortal() bool {
	return w.rec.NextSector != leveldata.NoNeighbor
}
