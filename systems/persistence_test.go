package systems

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/automoto/sectorcore/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	items map[string][]byte
	err   error
}

func (s *memStore) SaveItem(key string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.items[key] = data
	return nil
}

func (s *memStore) LoadItem(key string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items[key], nil
}

func useMemStore(t *testing.T) *memStore {
	store := &memStore{items: make(map[string][]byte)}
	poseStore = store
	t.Cleanup(func() { poseStore = nil })
	return store
}

func TestPlayerPoseRoundTrip(t *testing.T) {
	store := useMemStore(t)
	w, lvl, _ := room(t)
	factory.CreatePlayer(w, pose(3, 4, 0, 1))

	require.NoError(t, SavePlayerPose(w))
	require.Contains(t, store.items, "pose_test")

	p, ok := LoadPlayerPose("test", lvl.Map)
	require.True(t, ok)
	require.Equal(t, mgl64.Vec3{3, 4, 0}, p.Position)
	require.InDelta(t, 1, p.Yaw, 1e-9)
	require.Equal(t, 0, p.Sector, "unresolved sector is located from the position")

	_, ok = LoadPlayerPose("other", lvl.Map)
	require.False(t, ok)

	require.NoError(t, ClearPlayerPose("test"))
	_, ok = LoadPlayerPose("test", lvl.Map)
	require.False(t, ok)
}

func TestLoadPlayerPoseRejectsBadData(t *testing.T) {
	store := useMemStore(t)
	_, lvl, _ := room(t)

	outside, err := json.Marshal(SavedPose{Level: "test", X: 50, Y: 5, Sector: 0})
	require.NoError(t, err)
	store.items["pose_test"] = outside
	_, ok := LoadPlayerPose("test", lvl.Map)
	require.False(t, ok)

	store.items["pose_test"] = []byte("{not json")
	_, ok = LoadPlayerPose("test", lvl.Map)
	require.False(t, ok)

	stale, err := json.Marshal(SavedPose{Level: "test", X: 5, Y: 5, Sector: 7})
	require.NoError(t, err)
	store.items["pose_test"] = stale
	p, ok := LoadPlayerPose("test", lvl.Map)
	require.True(t, ok)
	require.Equal(t, 0, p.Sector)
}

func TestSavePlayerPoseStoreFailure(t *testing.T) {
	store := useMemStore(t)
	store.err = errors.New("disk full")
	w, lvl, _ := room(t)
	factory.CreatePlayer(w, pose(3, 4, 0, 0))

	err := SavePlayerPose(w)
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypePersistence))

	_, ok := LoadPlayerPose("test", lvl.Map)
	require.False(t, ok)
}

func TestPersistenceDisabled(t *testing.T) {
	w, lvl, _ := room(t)
	factory.CreatePlayer(w, pose(3, 4, 0, 0))

	require.NoError(t, SavePlayerPose(w))
	require.NoError(t, ClearPlayerPose("test"))
	_, ok := LoadPlayerPose("test", lvl.Map)
	require.False(t, ok)
}
