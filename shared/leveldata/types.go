// Package leveldata provides sector/wall level parsing shared by the level
// package and the server. It has no dependencies on the ECS or the tracer, pure data only.
package leveldata

// ErrTypeLevelFormat is the error type for level files that cannot be turned
// into sector records.
const ErrTypeLevelFormat = "level-format"

// NoNeighbor marks a solid wall or an unset sector reference.
const NoNeighbor = -1

// MapData holds the decoded records of one level, in array order. Walls
// reference each other and sectors by index.
type MapData struct {
	Sectors []SectorRecord `json:"sectors"`
	Walls   []WallRecord   `json:"walls"`
	Start   StartPose      `json:"start"`
}

// SectorRecord is one room: a contiguous range of walls plus its floor and
// ceiling planes.
type SectorRecord struct {
	WallPtr int `json:"wallPtr"`
	WallNum int `json:"wallNum"`

	FloorZ        float64 `json:"floorZ"`
	CeilingZ      float64 `json:"ceilingZ"`
	FloorHeinum   float64 `json:"floorHeinum"`   // tangent of the floor slope
	CeilingHeinum float64 `json:"ceilingHeinum"` // tangent of the ceiling slope

	FloorSurface   int `json:"floorSurface"`
	CeilingSurface int `json:"ceilingSurface"`
}

// WallRecord is one directed boundary edge. Its end point is the start point of
// the wall at Point2.
type WallRecord struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Point2 int     `json:"point2"`

	NextSector int `json:"nextSector"` // NoNeighbor for solid walls
	NextWall   int `json:"nextWall"`

	// Render-only attributes; Surface doubles as the id reported on hits.
	Surface  int `json:"surface"`
	Shade    int `json:"shade,omitempty"`
	XRepeat  int `json:"xRepeat,omitempty"`
	YRepeat  int `json:"yRepeat,omitempty"`
	XPanning int `json:"xPanning,omitempty"`
	YPanning int `json:"yPanning,omitempty"`
}

// StartPose is the player spawn. Sector may be NoNeighbor when the loader
// leaves it to the level to resolve.
type StartPose struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Angle  float64 `json:"angle"` // radians, counter-clockwise from +X
	Sector int     `json:"sector"`
}

// Point is a 2D map coordinate.
type Point struct {
	X, Y float64
}
