package systems

import (
	"math"
	"testing"

	"github.com/automoto/sectorcore/body"
	"github.com/automoto/sectorcore/components"
	cfg "github.com/automoto/sectorcore/config"
	"github.com/automoto/sectorcore/level"
	"github.com/automoto/sectorcore/shared/leveldata"
	"github.com/automoto/sectorcore/systems/factory"
	"github.com/automoto/sectorcore/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func rect(x0, y0, x1, y1 float64) []leveldata.Point {
	return []leveldata.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func newWorld(t *testing.T, defs ...leveldata.SectorDef) (donburi.World, *components.LevelData, *components.TickStatsData) {
	t.Helper()
	b := leveldata.NewBuilder()
	for _, d := range defs {
		b.AddSector(d)
	}
	data, err := b.Build()
	require.NoError(t, err)
	m, err := level.New(data)
	require.NoError(t, err)

	w := donburi.NewWorld()
	e := factory.CreateLevel(w, "test", m)
	return w, components.Level.Get(e), components.TickStats.Get(e)
}

// room is a 10x10 box whose walls all carry surface 2.
func room(t *testing.T) (donburi.World, *components.LevelData, *components.TickStatsData) {
	return newWorld(t, leveldata.SectorDef{Outline: rect(0, 0, 10, 10), CeilingZ: 10, WallSurface: 2})
}

func pose(x, y, z, yaw float64) level.Pose {
	return level.Pose{Position: mgl64.Vec3{x, y, z}, Yaw: yaw, Sector: level.EmptySector}
}

func countDecals(w donburi.World) int {
	n := 0
	components.Decal.Each(w, func(*donburi.Entry) { n++ })
	return n
}

func TestUpdateBodiesSlidesPlayerIntoWall(t *testing.T) {
	w, _, stats := room(t)
	player := factory.CreatePlayer(w, pose(5, 5, 0, 0))
	b := components.Body.Get(player)
	b.MoveForward(5)

	for i := 0; i < cfg.Physics.TickRate; i++ {
		UpdateBodies(w)
	}

	require.InDelta(t, 10-b.Radius, b.Position[0], 1e-6)
	require.InDelta(t, 5, b.Position[1], 1e-9)
	require.Equal(t, 0, b.Sector)
	require.Greater(t, stats.Blocked, 0)
	require.False(t, player.HasComponent(components.Death))
}

func TestProjectileLeavesDecalsAndIsRemoved(t *testing.T) {
	w, lvl, stats := room(t)
	projectile := factory.CreateProjectile(w, pose(5, 5, 1, 0), mgl64.Vec3{1, 0, 0})
	entity := projectile.Entity()

	for i := 0; i < 60; i++ {
		Run(w)
	}

	var decals []components.DecalData
	components.Decal.Each(w, func(e *donburi.Entry) {
		decals = append(decals, *components.Decal.Get(e))
	})
	require.Len(t, decals, 2, "one bounce then death")
	require.Equal(t, 2, stats.Impacts)
	require.Equal(t, 2, lvl.DecalSerial)

	first, second := decals[0], decals[1]
	if first.Serial > second.Serial {
		first, second = second, first
	}
	require.Equal(t, "bullet_hole_metal", first.Name)
	require.Equal(t, 1, first.Wall)
	require.InDelta(t, 10, first.Point[0], 1e-9)
	require.True(t, first.Normal.ApproxEqual(mgl64.Vec3{-1, 0, 0}))
	require.Equal(t, 3, second.Wall)
	require.InDelta(t, 0, second.Point[0], 1e-6)

	require.True(t, w.Valid(entity))
	require.True(t, projectile.HasComponent(components.Death))

	for i := 0; i < cfg.Physics.CorpseTicks; i++ {
		Run(w)
	}
	require.False(t, w.Valid(entity))
	require.Equal(t, 1, stats.Removed)
}

func TestProjectileFiredAlongYaw(t *testing.T) {
	w, _, _ := room(t)
	e := factory.CreateProjectile(w, pose(5, 5, 1, math.Pi/2), mgl64.Vec3{})
	b := components.Body.Get(e)

	speed := cfg.Bodies[cfg.BodyProjectile].MoveSpeed
	require.InDelta(t, 0, b.Velocity[0], 1e-9)
	require.InDelta(t, speed, b.Velocity[1], 1e-9)
	require.InDelta(t, math.Pi/2, b.Yaw(), 1e-9)
}

func TestUpdateDeathsRespawnsPlayer(t *testing.T) {
	w, lvl, stats := room(t)
	player := factory.CreatePlayer(w, pose(2, 2, 0, 0))
	components.Body.Get(player).Kill()

	UpdateBodies(w)
	require.True(t, player.HasComponent(components.Death))

	for i := 0; i < cfg.Physics.CorpseTicks; i++ {
		UpdateDeaths(w)
	}

	require.True(t, w.Valid(player.Entity()))
	require.False(t, player.HasComponent(components.Death))
	b := components.Body.Get(player)
	require.True(t, b.Alive())
	require.Equal(t, lvl.Map.Start().Position, b.Position)
	require.Equal(t, 0, stats.Removed)
}

func TestUpdateDecalsExpiresAndCaps(t *testing.T) {
	oldMax, oldLifetime := cfg.Decals.MaxCount, cfg.Decals.Lifetime
	t.Cleanup(func() {
		cfg.Decals.MaxCount, cfg.Decals.Lifetime = oldMax, oldLifetime
	})
	cfg.Decals.MaxCount = 2
	cfg.Decals.Lifetime = 3

	w, _, _ := room(t)
	for i := 0; i < 3; i++ {
		factory.CreateDecal(w, body.Impact{
			Point:     mgl64.Vec3{10, 5, 1},
			Normal:    mgl64.Vec3{-1, 0, 0},
			SurfaceID: 2,
			Surface:   level.SurfaceWall,
			Wall:      1,
		}, i)
	}

	UpdateDecals(w)
	var serials []int
	components.Decal.Each(w, func(e *donburi.Entry) {
		serials = append(serials, components.Decal.Get(e).Serial)
	})
	require.ElementsMatch(t, []int{1, 2}, serials, "oldest decal evicted")

	UpdateDecals(w)
	UpdateDecals(w)
	require.Equal(t, 0, countDecals(w))
}

func TestUpdateEnemiesChasesVisiblePlayer(t *testing.T) {
	w, _, _ := newWorld(t, leveldata.SectorDef{Outline: rect(0, 0, 20, 10), CeilingZ: 10})
	factory.CreatePlayer(w, pose(12, 5, 0, 0))
	e := factory.CreateEnemy(w, pose(2, 5, 0, math.Pi/2))
	enemy := components.Enemy.Get(e)
	b := components.Body.Get(e)
	require.Equal(t, cfg.Enemy.ReactionDelay, enemy.ReactionTimer)

	enemy.ReactionTimer = 0
	UpdateEnemies(w)

	speed := cfg.Bodies[cfg.BodyEnemy].MoveSpeed
	require.True(t, enemy.HasSight)
	require.Equal(t, mgl64.Vec3{12, 5, 0}, enemy.LastSeen)
	require.InDelta(t, speed, b.Velocity[0], 1e-9)
	require.InDelta(t, 0, b.Velocity[1], 1e-9)
	require.Equal(t, cfg.Enemy.ReactionDelay, enemy.ReactionTimer)
}

func TestUpdateEnemiesKeepsHeadingWithoutSight(t *testing.T) {
	w, _, _ := newWorld(t,
		leveldata.SectorDef{Outline: rect(0, 0, 10, 10), CeilingZ: 10},
		leveldata.SectorDef{Outline: rect(12, 0, 22, 10), CeilingZ: 10},
	)
	factory.CreatePlayer(w, pose(15, 5, 0, 0))
	e := factory.CreateEnemy(w, pose(5, 5, 0, math.Pi/2))
	enemy := components.Enemy.Get(e)
	b := components.Body.Get(e)
	before := b.Velocity

	enemy.ReactionTimer = 0
	UpdateEnemies(w)

	require.False(t, enemy.HasSight)
	require.Equal(t, before, b.Velocity)
}

func TestCanSee(t *testing.T) {
	w, lvl, _ := newWorld(t,
		leveldata.SectorDef{Name: "low", Outline: rect(0, 0, 10, 10), CeilingZ: 10},
		leveldata.SectorDef{Name: "ledge", Outline: rect(10, 0, 20, 10), FloorZ: 4, CeilingZ: 10},
		leveldata.SectorDef{Name: "far", Outline: rect(20, 0, 60, 10), FloorZ: 4, CeilingZ: 10},
	)
	viewer := components.Body.Get(factory.CreatePlayer(w, pose(2, 5, 0, 0)))
	target := func(x float64) *body.RigidBody {
		return components.Body.Get(factory.CreateEnemy(w, pose(x, 5, 4, 0))).RigidBody
	}

	require.True(t, CanSee(lvl, viewer.RigidBody, target(15)), "over the ledge lip")
	require.False(t, CanSee(lvl, viewer.RigidBody, target(25)), "hidden behind the ledge lip")
	require.False(t, CanSee(lvl, viewer.RigidBody, target(50)), "beyond sight range")
}

func TestCanSeeFromOutsideTheLevel(t *testing.T) {
	w, lvl, _ := room(t)
	viewer := components.Body.Get(factory.CreatePlayer(w, pose(-5, 5, 0, 0)))
	target := components.Body.Get(factory.CreateEnemy(w, pose(5, 5, 0, 0)))
	require.False(t, CanSee(lvl, viewer.RigidBody, target.RigidBody))
}

func TestRunWithoutLevelIsNoop(t *testing.T) {
	w := donburi.NewWorld()
	player := factory.CreatePlayer(w, pose(1, 1, 0, 0))
	components.Body.Get(player).MoveForward(5)

	Run(w)

	require.Equal(t, mgl64.Vec3{1, 1, 0}, components.Body.Get(player).Position)
	_, ok := tags.Player.First(w)
	require.True(t, ok)
}
