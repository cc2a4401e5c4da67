package body

import (
	"math"

	"github.com/automoto/sectorcore/level"
	"github.com/automoto/sectorcore/shared/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Behavior holds what differs between body kinds.
type Behavior interface {
	// OnStep runs after the next position is predicted. Returning false means
	// the behaviour moved the body itself and wall/floor resolution is skipped.
	OnStep(b *RigidBody, m *level.LevelMap, tr *level.Traversal, next mgl64.Vec3, res *StepResult) bool
	// OnBlocked runs after blocking contacts moved the body.
	OnBlocked(b *RigidBody, contacts int)
	// OnOutOfBounds runs when the body is outside every sector.
	OnOutOfBounds(b *RigidBody)
}

func behaviorFor(kind Kind) Behavior {
	switch kind {
	case KindProjectile:
		return projectile{}
	case KindEnemy:
		return enemy{}
	}
	return player{}
}

// SetBehavior replaces the kind's default behaviour.
func (b *RigidBody) SetBehavior(bh Behavior) {
	b.behavior = bh
}

// player slides along walls and holds still when it somehow leaves the map.
type player struct{}

func (player) OnStep(*RigidBody, *level.LevelMap, *level.Traversal, mgl64.Vec3, *StepResult) bool {
	return true
}

func (player) OnBlocked(*RigidBody, int) {}

func (player) OnOutOfBounds(b *RigidBody) {
	b.Velocity = mgl64.Vec3{}
}

// enemy walks back the way it came when it runs into a wall.
type enemy struct{}

func (enemy) OnStep(*RigidBody, *level.LevelMap, *level.Traversal, mgl64.Vec3, *StepResult) bool {
	return true
}

func (enemy) OnBlocked(b *RigidBody, _ int) {
	b.Velocity[0] = -b.Velocity[0]
	b.Velocity[1] = -b.Velocity[1]
	b.SetYaw(b.Yaw() + math.Pi)
}

func (enemy) OnOutOfBounds(b *RigidBody) {
	b.Velocity = mgl64.Vec3{}
}

// projectile traces its motion segment once per tick. The first terminal hit
// is recorded as an impact; the projectile then bounces while it has bounces
// left and dies otherwise.
type projectile struct{}

const bounceOffset = 1e-3

func (projectile) OnStep(b *RigidBody, m *level.LevelMap, tr *level.Traversal, next mgl64.Vec3, res *StepResult) bool {
	hit := m.LineSegmentTrace(tr, b.Sector, b.Position, next)
	if !hit.HasCollision {
		sector := m.DetermineSector(b.Sector, next[0], next[1])
		if sector == level.EmptySector {
			res.OutOfBounds = true
			b.Kill()
			return false
		}
		b.Position = next
		b.Sector = sector
		return false
	}

	b.recordImpact(hit)
	res.Impacted = true
	if b.bounces >= b.MaxBounces {
		b.Position = hit.Point
		b.Sector = hit.Sector
		b.Kill()
		return false
	}
	b.bounces++
	b.Position = hit.Point.Add(hit.SurfaceNormal.Mul(bounceOffset))
	b.Sector = hit.Sector
	b.Velocity = geom.Reflect(b.Velocity, hit.SurfaceNormal).Mul(b.Restitution)
	return false
}

func (projectile) OnBlocked(*RigidBody, int) {}

func (projectile) OnOutOfBounds(b *RigidBody) {
	b.Kill()
}
