package leveldata

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// SectorDef describes a sector by its outline. Builder turns a set of them into
// wall loops and links matching edges into portals.
type SectorDef struct {
	Name    string
	Outline []Point
	// Parent, when set, makes Outline an inner loop of that sector as well.
	Parent string

	FloorZ, CeilingZ           float64
	FloorHeinum, CeilingHeinum float64
	FloorSurface               int
	CeilingSurface             int
	WallSurface                int
}

// Builder assembles MapData from sector outlines.
type Builder struct {
	defs  []SectorDef
	start StartPose
}

// NewBuilder returns an empty builder whose start sector is left unresolved.
func NewBuilder() *Builder {
	return &Builder{start: StartPose{Sector: NoNeighbor}}
}

// AddSector appends a sector and returns its index.
func (b *Builder) AddSector(def SectorDef) int {
	b.defs = append(b.defs, def)
	return len(b.defs) - 1
}

// SetStart sets the player spawn.
func (b *Builder) SetStart(p StartPose) {
	b.start = p
}

type edgeKey struct {
	x1, y1, x2, y2 int64
}

func keyOf(a, b Point) edgeKey {
	q := func(v float64) int64 { return int64(math.Round(v * 1e6)) }
	return edgeKey{q(a.X), q(a.Y), q(b.X), q(b.Y)}
}

// Build emits walls for every loop (outer counter-clockwise, inner clockwise)
// and links each wall to the wall running the opposite way along the same edge.
func (b *Builder) Build() (*MapData, error) {
	byName := make(map[string]int, len(b.defs))
	for i, d := range b.defs {
		if d.Name != "" {
			byName[d.Name] = i
		}
	}

	holes := make([][][]Point, len(b.defs))
	for i, d := range b.defs {
		if len(d.Outline) < 3 {
			return nil, errors.New("sector outline needs at least 3 points").
				WithType(ErrTypeLevelFormat).
				WithTag("sector", i).
				WithTag("name", d.Name)
		}
		if d.Parent == "" {
			continue
		}
		p, ok := byName[d.Parent]
		if !ok || p == i {
			return nil, errors.New("unknown parent sector").
				WithType(ErrTypeLevelFormat).
				WithTag("sector", i).
				WithTag("parent", d.Parent)
		}
		holes[p] = append(holes[p], d.Outline)
	}

	data := &MapData{Start: b.start}
	var owner []int
	for i, d := range b.defs {
		rec := SectorRecord{
			WallPtr:        len(data.Walls),
			FloorZ:         d.FloorZ,
			CeilingZ:       d.CeilingZ,
			FloorHeinum:    d.FloorHeinum,
			CeilingHeinum:  d.CeilingHeinum,
			FloorSurface:   d.FloorSurface,
			CeilingSurface: d.CeilingSurface,
		}

		loops := [][]Point{wind(d.Outline, true)}
		for _, h := range holes[i] {
			loops = append(loops, wind(h, false))
		}
		for _, loop := range loops {
			first := len(data.Walls)
			for j, p := range loop {
				next := first + j + 1
				if j == len(loop)-1 {
					next = first
				}
				data.Walls = append(data.Walls, WallRecord{
					X:          p.X,
					Y:          p.Y,
					Point2:     next,
					NextSector: NoNeighbor,
					NextWall:   NoNeighbor,
					Surface:    d.WallSurface,
					XRepeat:    8,
					YRepeat:    8,
				})
				owner = append(owner, i)
			}
		}
		rec.WallNum = len(data.Walls) - rec.WallPtr
		data.Sectors = append(data.Sectors, rec)
	}

	link(data, owner)
	return data, nil
}

func link(data *MapData, owner []int) {
	edges := make(map[edgeKey]int, len(data.Walls))
	for i, w := range data.Walls {
		end := data.Walls[w.Point2]
		edges[keyOf(Point{w.X, w.Y}, Point{end.X, end.Y})] = i
	}
	for i := range data.Walls {
		w := &data.Walls[i]
		end := data.Walls[w.Point2]
		j, ok := edges[keyOf(Point{end.X, end.Y}, Point{w.X, w.Y})]
		if !ok || owner[j] == owner[i] {
			continue
		}
		w.NextSector = owner[j]
		w.NextWall = j
	}
}

// wind returns a copy of loop with counter-clockwise winding when ccw is set,
// clockwise otherwise.
func wind(loop []Point, ccw bool) []Point {
	area := 0.0
	for i, j := 0, len(loop)-1; i < len(loop); j, i = i, i+1 {
		area += loop[j].X*loop[i].Y - loop[i].X*loop[j].Y
	}
	out := make([]Point, len(loop))
	copy(out, loop)
	if (area > 0) != ccw {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
