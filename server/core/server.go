package core

import (
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/automoto/sectorcore/body"
	"github.com/automoto/sectorcore/components"
	cfg "github.com/automoto/sectorcore/config"
	"github.com/automoto/sectorcore/level"
	"github.com/automoto/sectorcore/systems"
	"github.com/automoto/sectorcore/systems/factory"
	"github.com/automoto/sectorcore/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// ErrTypeSpawnRejected is the error type for spawn requests that would place a
// body outside the level or inside a wall.
const ErrTypeSpawnRejected = "spawn-rejected"

// Input is the latest movement request for the player. It is applied at the
// start of the next tick.
type Input struct {
	Forward float64 // Fraction of move speed along the facing, -1..1
	Strafe  float64 // Fraction of move speed to the right, -1..1
	Yaw     float64
	Jump    bool
	Fire    bool
}

// Server owns the simulated world of one level.
type Server struct {
	world  donburi.World
	level  *ServerLevel
	lvl    *components.LevelData
	stats  *components.TickStatsData
	player *donburi.Entry
	loop   *GameLoop

	mu       sync.Mutex
	input    Input
	hasInput bool
	tick     uint64
}

// NewServer creates a server for lvl and spawns the player at the persisted
// pose for the level, or at its start when there is none.
func NewServer(lvl *ServerLevel, tickRate int) *Server {
	world := donburi.NewWorld()
	levelEntry := factory.CreateLevel(world, lvl.Name, lvl.Map)

	s := &Server{
		world: world,
		level: lvl,
		lvl:   components.Level.Get(levelEntry),
		stats: components.TickStats.Get(levelEntry),
	}
	s.loop = NewGameLoop(s, tickRate)

	spawn := lvl.Map.Start()
	if saved, ok := systems.LoadPlayerPose(lvl.Name, lvl.Map); ok {
		spawn = saved
	}
	s.player = factory.CreatePlayer(world, spawn)

	logs.WithTag("level", lvl.Name).
		WithTag("sector", spawn.Sector).
		Info("player spawned")

	return s
}

// Loop returns the loop driving the server.
func (s *Server) Loop() *GameLoop {
	return s.loop
}

// SetInput replaces the pending player input.
func (s *Server) SetInput(in Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = in
	s.hasInput = true
}

// processCommands applies the pending input to the player.
func (s *Server) processCommands() {
	if !s.hasInput {
		return
	}
	in := s.input
	s.hasInput = false

	if s.player.HasComponent(components.Death) {
		return
	}
	b := components.Body.Get(s.player)
	speed := cfg.Bodies[cfg.BodyPlayer].MoveSpeed

	b.SetYaw(in.Yaw)
	b.MoveForward(in.Forward * speed)
	b.Strafe(in.Strafe * speed)
	if in.Jump {
		b.Jump(cfg.Bodies[cfg.BodyPlayer].JumpSpeed)
	}
	if in.Fire {
		if _, err := s.spawnProjectile(mgl64.Vec3{}); err != nil {
			logs.WithTag("tick", s.tick).Debug(err)
		}
	}
}

// Tick advances the world by one tick.
func (s *Server) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	s.processCommands()
	systems.Run(s.world)
	s.tick++

	ticksCounter.Inc()
	tickDuration.Observe(time.Since(start).Seconds())
	blockedCounter.Add(float64(s.stats.Blocked))
	impactsCounter.Add(float64(s.stats.Impacts))
	outOfBoundsCounter.Add(float64(s.stats.OutOfBounds))
	s.updateBodyGauges()

	if s.stats.OutOfBounds > 0 {
		logs.WithTag("tick", s.tick).
			WithTag("count", s.stats.OutOfBounds).
			Debug("bodies left the level")
	}
	s.stats.Reset()
}

func (s *Server) updateBodyGauges() {
	counts := map[body.Kind]int{}
	components.Body.Each(s.world, func(e *donburi.Entry) {
		if b := components.Body.Get(e); b.Alive() {
			counts[b.Kind]++
		}
	})
	for _, k := range []body.Kind{body.KindPlayer, body.KindProjectile, body.KindEnemy} {
		bodiesGauge.WithLabelValues(k.String()).Set(float64(counts[k]))
	}
}

// SpawnProjectile fires a projectile from the player's eye along dir, or along
// the player's facing when dir is zero.
func (s *Server) SpawnProjectile(dir mgl64.Vec3) (donburi.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawnProjectile(dir)
}

func (s *Server) spawnProjectile(dir mgl64.Vec3) (donburi.Entity, error) {
	b := components.Body.Get(s.player)
	if !b.Alive() {
		return 0, s.reject("dead", errors.New("player is dead").
			WithType(ErrTypeSpawnRejected))
	}

	origin := level.Pose{
		Position: b.Position.Add(mgl64.Vec3{0, 0, b.Height * 0.75}),
		Yaw:      b.Yaw(),
		Sector:   b.Sector,
	}
	if dir.Len() == 0 {
		dir = b.Forward()
	}
	return factory.CreateProjectile(s.world, origin, dir).Entity(), nil
}

// SpawnEnemy places an enemy at pose. The request is rejected when the pose is
// outside every sector or the enemy would overlap a solid wall.
func (s *Server) SpawnEnemy(pose level.Pose) (donburi.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, y := pose.Position[0], pose.Position[1]
	pose.Sector = s.lvl.Map.DetermineSector(pose.Sector, x, y)
	if pose.Sector == level.EmptySector {
		return 0, s.reject("out_of_bounds", errors.New("enemy spawn outside the level").
			WithType(ErrTypeSpawnRejected).
			WithTag("x", x).
			WithTag("y", y))
	}

	radius := cfg.Bodies[cfg.BodyEnemy].Radius
	if wall, ok := s.lvl.Solver.TouchesSolidWall(x, y, radius); ok {
		return 0, s.reject("in_wall", errors.New("enemy spawn overlaps a wall").
			WithType(ErrTypeSpawnRejected).
			WithTag("x", x).
			WithTag("y", y).
			WithTag("wall", wall))
	}

	floor := s.lvl.Map.Sector(pose.Sector).FloorHeight(x, y)
	if pose.Position[2] < floor {
		pose.Position[2] = floor
	}
	return factory.CreateEnemy(s.world, pose).Entity(), nil
}

func (s *Server) reject(reason string, err error) error {
	rejectedSpawnsCounter.WithLabelValues(reason).Inc()
	return err
}

// PlayerPose returns where the player is now.
func (s *Server) PlayerPose() level.Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := components.Body.Get(s.player)
	return level.Pose{
		Position: b.Position,
		Yaw:      b.Yaw(),
		Sector:   b.Sector,
	}
}

// Ticks returns the number of ticks run so far.
func (s *Server) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// BodyCount returns the number of entities carrying a body, dead or alive.
func (s *Server) BodyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	components.Body.Each(s.world, func(*donburi.Entry) { n++ })
	return n
}

// DecalCount returns the number of decals in the world.
func (s *Server) DecalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	tags.Decal.Each(s.world, func(*donburi.Entry) { n++ })
	return n
}

// Stop saves the player pose. The loop must already be stopped.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := systems.SavePlayerPose(s.world); err != nil {
		logs.Warn(err)
	}
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}
