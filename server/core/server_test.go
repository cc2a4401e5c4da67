package core

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/automoto/sectorcore/level"
	"github.com/automoto/sectorcore/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func loadHall(t *testing.T) *ServerLevel {
	t.Helper()
	levels, names, err := LoadAllServerLevels("testdata/good")
	require.NoError(t, err)
	require.Equal(t, []string{"hall"}, names)
	return levels["hall"]
}

func TestLoadAllServerLevels(t *testing.T) {
	hall := loadHall(t)
	require.Equal(t, "hall", hall.Name)
	require.Equal(t, 2, hall.Map.SectorCount())
	require.Equal(t, 8, hall.Map.WallCount())
	require.Equal(t, 0, hall.Map.Start().Sector)
}

func TestLoadAllServerLevelsErrors(t *testing.T) {
	_, _, err := LoadAllServerLevels("testdata/broken")
	require.Error(t, err)
	require.True(t, errors.IsType(err, level.ErrTypeMalformedLevel))

	_, _, err = LoadAllServerLevels("testdata/missing")
	require.Error(t, err)
	require.True(t, errors.IsType(err, leveldata.ErrTypeLevelFormat))
}

func TestServerWalksPlayerAcrossPortal(t *testing.T) {
	s := NewServer(loadHall(t), 60)
	require.Equal(t, mgl64.Vec3{5, 5, 0}, s.PlayerPose().Position)

	s.SetInput(Input{Forward: 1})
	for i := 0; i < 90; i++ {
		s.Tick()
	}

	p := s.PlayerPose()
	require.Equal(t, uint64(90), s.Ticks())
	require.Equal(t, 1, p.Sector)
	require.InDelta(t, 12.5, p.Position[0], 1e-6)
	require.InDelta(t, 0.25, p.Position[2], 1e-9, "stepped up onto the raised floor")
}

func TestServerFiresProjectile(t *testing.T) {
	s := NewServer(loadHall(t), 60)

	s.SetInput(Input{Yaw: math.Pi, Fire: true})
	for i := 0; i < 20; i++ {
		s.Tick()
	}

	require.InDelta(t, math.Pi, math.Abs(s.PlayerPose().Yaw), 1e-9)
	require.Equal(t, 2, s.BodyCount())
	require.Equal(t, 1, s.DecalCount(), "hit the x=0 wall once")

	_, err := s.SpawnProjectile(mgl64.Vec3{0, 1, 0})
	require.NoError(t, err)
	require.Equal(t, 3, s.BodyCount())
}

func TestServerSpawnEnemy(t *testing.T) {
	s := NewServer(loadHall(t), 60)

	_, err := s.SpawnEnemy(level.Pose{Position: mgl64.Vec3{15, 5, 0}, Sector: level.EmptySector})
	require.NoError(t, err)
	require.Equal(t, 2, s.BodyCount())

	_, err = s.SpawnEnemy(level.Pose{Position: mgl64.Vec3{19.8, 5, 0}, Sector: level.EmptySector})
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeSpawnRejected))

	_, err = s.SpawnEnemy(level.Pose{Position: mgl64.Vec3{30, 5, 0}, Sector: 1})
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeSpawnRejected))

	require.Equal(t, 2, s.BodyCount())
}

func TestGameLoopStopsOnCancel(t *testing.T) {
	s := NewServer(loadHall(t), 200)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.Loop().Run(ctx)
	require.Eventually(t, func() bool {
		return s.Ticks() > 2
	}, time.Second, time.Millisecond*5)

	cancel()
	select {
	case <-s.Loop().Done():
	case <-time.After(time.Second):
		t.Fatal("game loop did not stop")
	}
	s.Stop()
}

func TestGameLoopStop(t *testing.T) {
	s := NewServer(loadHall(t), 200)

	go s.Loop().Run(context.Background())
	s.Loop().Stop()

	select {
	case <-s.Loop().Done():
	case <-time.After(time.Second):
		t.Fatal("game loop did not stop")
	}
}
