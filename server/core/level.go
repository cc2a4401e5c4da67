package core

import (
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/automoto/sectorcore/level"
	"github.com/automoto/sectorcore/shared/leveldata"
)

// ServerLevel is a loaded, validated level ready to simulate.
type ServerLevel struct {
	Name string
	Map  *level.LevelMap
}

// NewServerLevel validates data and finalizes its sectors.
func NewServerLevel(name string, data *leveldata.MapData) (*ServerLevel, error) {
	m, err := level.New(data)
	if err != nil {
		return nil, errors.New("building level failed").
			WithType(level.ErrTypeMalformedLevel).
			WithTag("level", name).
			Wrap(err)
	}

	logs.WithTag("level", name).
		WithTag("sectors", m.SectorCount()).
		WithTag("walls", m.WallCount()).
		Info("level loaded")

	return &ServerLevel{
		Name: name,
		Map:  m,
	}, nil
}

// LoadAllServerLevels loads all .tmx and .json levels from the levels
// directory under assetsDir, returning them keyed by stem name plus a sorted
// name list.
func LoadAllServerLevels(assetsDir string) (map[string]*ServerLevel, []string, error) {
	dataMap, names, err := leveldata.LoadAllLevels(os.DirFS(assetsDir), "levels")
	if err != nil {
		return nil, nil, errors.New("loading levels failed").
			WithType(leveldata.ErrTypeLevelFormat).
			WithTag("dir", assetsDir).
			Wrap(err)
	}

	levels := make(map[string]*ServerLevel, len(names))
	for _, name := range names {
		lvl, err := NewServerLevel(name, dataMap[name])
		if err != nil {
			return nil, nil, err
		}
		levels[name] = lvl
	}

	return levels, names, nil
}
