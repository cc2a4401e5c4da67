package systems

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/automoto/sectorcore/components"
	"github.com/automoto/sectorcore/level"
	"github.com/automoto/sectorcore/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/quasilyte/gdata"
	"github.com/segmentio/encoding/json"
	"github.com/yohamta/donburi"
)

// ErrTypePersistence is the error type for pose save and load failures.
const ErrTypePersistence = "persistence"

// SavedPose is the player pose stored on disk for one level.
type SavedPose struct {
	Level  string  `json:"level"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Yaw    float64 `json:"yaw"`
	Sector int     `json:"sector"`
}

// itemStore is the part of *gdata.Manager persistence needs.
type itemStore interface {
	SaveItem(itemKey string, data []byte) error
	LoadItem(itemKey string) ([]byte, error)
}

var poseStore itemStore

// InitPersistence opens the gdata store for appName. Until it succeeds, saves
// and loads are no-ops.
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return errors.New("opening persistence failed").
			WithType(ErrTypePersistence).
			WithTag("app", appName).
			Wrap(err)
	}
	poseStore = m
	return nil
}

func poseKey(levelName string) string {
	return "pose_" + levelName
}

// SavePlayerPose stores the current pose of the player for the current level.
func SavePlayerPose(w donburi.World) error {
	if poseStore == nil {
		return nil
	}
	levelEntry, ok := components.Level.First(w)
	if !ok {
		return nil
	}
	playerEntry, ok := tags.Player.First(w)
	if !ok {
		return nil
	}
	lvl := components.Level.Get(levelEntry)
	b := components.Body.Get(playerEntry)

	data, err := json.Marshal(SavedPose{
		Level:  lvl.Name,
		X:      b.Position[0],
		Y:      b.Position[1],
		Z:      b.Position[2],
		Yaw:    b.Yaw(),
		Sector: b.Sector,
	})
	if err != nil {
		return errors.New("encoding pose failed").
			WithType(ErrTypePersistence).
			Wrap(err)
	}

	if err := poseStore.SaveItem(poseKey(lvl.Name), data); err != nil {
		return errors.New("saving pose failed").
			WithType(ErrTypePersistence).
			WithTag("level", lvl.Name).
			Wrap(err)
	}
	return nil
}

// LoadPlayerPose returns the saved pose for levelName if one exists and it
// still lies inside m. A stale sector index is re-resolved from the position.
func LoadPlayerPose(levelName string, m *level.LevelMap) (level.Pose, bool) {
	if poseStore == nil {
		return level.Pose{}, false
	}

	data, err := poseStore.LoadItem(poseKey(levelName))
	if err != nil {
		logs.Warn(errors.New("loading pose failed").
			WithType(ErrTypePersistence).
			WithTag("level", levelName).
			Wrap(err))
		return level.Pose{}, false
	}
	if len(data) == 0 {
		// No saved pose yet, use the level start
		return level.Pose{}, false
	}

	var saved SavedPose
	if err := json.Unmarshal(data, &saved); err != nil {
		logs.Warn(errors.New("parsing saved pose failed").
			WithType(ErrTypePersistence).
			WithTag("level", levelName).
			Wrap(err))
		return level.Pose{}, false
	}

	sector := m.DetermineSector(saved.Sector, saved.X, saved.Y)
	if sector == level.EmptySector {
		logs.Warn(errors.New("saved pose is outside the level").
			WithType(ErrTypePersistence).
			WithTag("level", levelName).
			WithTag("x", saved.X).
			WithTag("y", saved.Y))
		return level.Pose{}, false
	}

	return level.Pose{
		Position: mgl64.Vec3{saved.X, saved.Y, saved.Z},
		Yaw:      saved.Yaw,
		Sector:   sector,
	}, true
}

// ClearPlayerPose forgets the saved pose for levelName.
func ClearPlayerPose(levelName string) error {
	if poseStore == nil {
		return nil
	}
	if err := poseStore.SaveItem(poseKey(levelName), nil); err != nil {
		return errors.New("clearing pose failed").
			WithType(ErrTypePersistence).
			WithTag("level", levelName).
			Wrap(err)
	}
	return nil
}
