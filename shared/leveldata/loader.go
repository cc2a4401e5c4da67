package leveldata

import (
	"io/fs"
	"math"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/lafriks/go-tiled"
	"github.com/segmentio/encoding/json"
)

// Object layer names read from TMX files.
const (
	SectorLayer = "sectors"
	StartLayer  = "start"
)

// Sector defaults used when a TMX object omits a property.
const (
	defaultCeilingZ = 128.0
	defaultRepeat   = 8
)

// LoadTMX parses a TMX file whose "sectors" object layer holds one polygon
// per sector. Tiled's y axis points down, so y is negated on the way in.
// It takes an fs.FS so callers can pass embed.FS or os.DirFS.
func LoadTMX(fsys fs.FS, tmxPath string) (*MapData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, errors.New("load TMX failed").
			WithType(ErrTypeLevelFormat).
			WithTag("path", tmxPath).
			Wrap(err)
	}

	b := NewBuilder()
	found := false
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case SectorLayer:
			found = true
			for _, o := range og.Objects {
				def, err := sectorFromObject(o)
				if err != nil {
					return nil, errors.New("invalid sector object").
						WithType(ErrTypeLevelFormat).
						WithTag("path", tmxPath).
						Wrap(err)
				}
				b.AddSector(def)
			}

		case StartLayer:
			if len(og.Objects) == 0 {
				continue
			}
			o := og.Objects[0]
			b.SetStart(StartPose{
				X:      o.X,
				Y:      -o.Y,
				Z:      floatProp(o.Properties, "z", 0),
				Angle:  floatProp(o.Properties, "angle", 0) * math.Pi / 180,
				Sector: NoNeighbor,
			})
		}
	}
	if !found {
		return nil, errors.New("missing sectors object layer").
			WithType(ErrTypeLevelFormat).
			WithTag("path", tmxPath)
	}

	return b.Build()
}

func sectorFromObject(o *tiled.Object) (SectorDef, error) {
	if len(o.Polygons) == 0 || o.Polygons[0].Points == nil {
		return SectorDef{}, errors.New("sector object is not a polygon").
			WithType(ErrTypeLevelFormat).
			WithTag("object", o.ID).
			WithTag("name", o.Name)
	}

	var outline []Point
	for _, p := range *o.Polygons[0].Points {
		outline = append(outline, Point{X: o.X + p.X, Y: -(o.Y + p.Y)})
	}

	props := o.Properties
	return SectorDef{
		Name:           o.Name,
		Outline:        outline,
		Parent:         props.GetString("parent"),
		FloorZ:         floatProp(props, "floorZ", 0),
		CeilingZ:       floatProp(props, "ceilingZ", defaultCeilingZ),
		FloorHeinum:    floatProp(props, "floorSlope", 0),
		CeilingHeinum:  floatProp(props, "ceilingSlope", 0),
		FloorSurface:   props.GetInt("floorSurface"),
		CeilingSurface: props.GetInt("ceilingSurface"),
		WallSurface:    props.GetInt("wallSurface"),
	}, nil
}

// floatProp reads a float property, falling back to def when it is absent or
// unparsable.
func floatProp(props tiled.Properties, name string, def float64) float64 {
	for _, p := range props {
		if p.Name != name {
			continue
		}
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return def
		}
		return v
	}
	return def
}

// LoadJSON decodes a level already laid out as sector and wall records.
func LoadJSON(fsys fs.FS, jsonPath string) (*MapData, error) {
	raw, err := fs.ReadFile(fsys, jsonPath)
	if err != nil {
		return nil, errors.New("read level failed").
			WithType(ErrTypeLevelFormat).
			WithTag("path", jsonPath).
			Wrap(err)
	}

	data := MapData{Start: StartPose{Sector: NoNeighbor}}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.New("decode level failed").
			WithType(ErrTypeLevelFormat).
			WithTag("path", jsonPath).
			Wrap(err)
	}
	for i := range data.Walls {
		if data.Walls[i].XRepeat == 0 {
			data.Walls[i].XRepeat = defaultRepeat
		}
		if data.Walls[i].YRepeat == 0 {
			data.Walls[i].YRepeat = defaultRepeat
		}
	}
	return &data, nil
}

// Load picks the decoder from the file extension.
func Load(fsys fs.FS, p string) (*MapData, error) {
	switch path.Ext(p) {
	case ".tmx":
		return LoadTMX(fsys, p)
	case ".json":
		return LoadJSON(fsys, p)
	}
	return nil, errors.New("unsupported level file").
		WithType(ErrTypeLevelFormat).
		WithTag("path", p)
}

// LoadAllLevels discovers all .tmx and .json files in levelsDir within fsys,
// loads each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*MapData, []string, error) {
	var matches []string
	for _, ext := range []string{"tmx", "json"} {
		pattern := levelsDir + "/*." + ext
		m, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, nil, errors.Newf("glob %s failed", pattern).
				WithType(ErrTypeLevelFormat).
				Wrap(err)
		}
		matches = append(matches, m...)
	}
	if len(matches) == 0 {
		return nil, nil, errors.New("no level files found").
			WithType(ErrTypeLevelFormat).
			WithTag("dir", levelsDir)
	}

	levels := make(map[string]*MapData, len(matches))
	names := make([]string, 0, len(matches))

	for _, p := range matches {
		data, err := Load(fsys, p)
		if err != nil {
			return nil, nil, err
		}
		stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if _, dup := levels[stem]; dup {
			return nil, nil, errors.New("duplicate level name").
				WithType(ErrTypeLevelFormat).
				WithTag("name", stem)
		}
		levels[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
