// Package body moves circular/cylindrical bodies through a level one tick at a
// time, sliding them along walls and settling them on floors.
package body

import (
	"math"

	"github.com/automoto/sectorcore/config"
	"github.com/automoto/sectorcore/level"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind selects the behaviour of a body.
type Kind int

const (
	KindPlayer Kind = iota
	KindProjectile
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return config.BodyPlayer
	case KindProjectile:
		return config.BodyProjectile
	case KindEnemy:
		return config.BodyEnemy
	}
	return "unknown"
}

// Flags is the alive/airborne bit set of a body.
type Flags uint8

const (
	FlagAlive Flags = 1 << iota
	FlagAirborne
)

// Impact is one terminal hit of a projectile.
type Impact struct {
	Point     mgl64.Vec3
	Normal    mgl64.Vec3
	SurfaceID int
	Surface   level.SurfaceKind
	Sector    int
	Wall      int
}

// StepResult summarises one Update.
type StepResult struct {
	Blocked     int  // blocking wall contacts resolved this tick
	Impacted    bool // a projectile hit something
	OutOfBounds bool
}

// RigidBody is the mutable state of one moving entity. Position is the centre
// of the body's base circle; the body extends Height above it.
type RigidBody struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Velocity    mgl64.Vec3
	Sector      int
	Flags       Flags
	Kind        Kind

	Radius       float64
	Height       float64
	StepHeight   float64
	Gravity      float64
	MaxFallSpeed float64
	ClampCeiling bool
	MaxBounces   int
	Restitution  float64

	behavior Behavior
	bounces  int
	impacts  []Impact
	crossed  []crossing
}

// crossing is a portal passed by a sweep, at fraction t of the move.
type crossing struct {
	sector int
	t      float64
}

// New creates a live body of kind at pose using the tuning in config.Bodies.
func New(kind Kind, pose level.Pose) *RigidBody {
	return NewWithConfig(kind, config.Bodies[kind.String()], pose)
}

// NewWithConfig creates a live body of kind at pose with explicit tuning.
func NewWithConfig(kind Kind, cfg config.BodyConfig, pose level.Pose) *RigidBody {
	b := &RigidBody{
		Position:     pose.Position,
		Sector:       pose.Sector,
		Flags:        FlagAlive,
		Kind:         kind,
		Radius:       cfg.Radius,
		Height:       cfg.Height,
		StepHeight:   cfg.StepHeight,
		Gravity:      config.Physics.Gravity * cfg.GravityScale,
		MaxFallSpeed: config.Physics.MaxFallSpeed,
		ClampCeiling: cfg.ClampCeiling,
		MaxBounces:   cfg.MaxBounces,
		Restitution:  cfg.Restitution,
		behavior:     behaviorFor(kind),
	}
	b.SetYaw(pose.Yaw)
	return b
}

func (b *RigidBody) Alive() bool { return b.Flags&FlagAlive != 0 }
func (b *RigidBody) Airborne() bool { return b.Flags&FlagAirborne != 0 }
func (b *RigidBody) Grounded() bool { return b.Flags&FlagAirborne == 0 }

// Kill marks the body dead and stops it. Dead bodies ignore Update.
func (b *RigidBody) Kill() {
	b.Flags &^= FlagAlive
	b.Velocity = mgl64.Vec3{}
}

// SetYaw turns the body to face angle radians counter-clockwise from +X.
func (b *RigidBody) SetYaw(angle float64) {
	b.Orientation = mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1})
}

// Yaw returns the heading of Forward.
func (b *RigidBody) Yaw() float64 {
	f := b.Forward()
	return math.Atan2(f[1], f[0])
}

// Forward is the unit facing direction.
func (b *RigidBody) Forward() mgl64.Vec3 {
	return b.Orientation.Rotate(mgl64.Vec3{1, 0, 0})
}

// MoveForward sets the horizontal velocity to speed along the facing.
func (b *RigidBody) MoveForward(speed float64) {
	f := b.Forward()
	b.Velocity[0] = f[0] * speed
	b.Velocity[1] = f[1] * speed
}

// Strafe adds speed to the right of the facing to the horizontal velocity.
func (b *RigidBody) Strafe(speed float64) {
	f := b.Forward()
	b.Velocity[0] += f[1] * speed
	b.Velocity[1] -= f[0] * speed
}

// TurnTowardsPoint faces the body at p, ignoring height.
func (b *RigidBody) TurnTowardsPoint(p mgl64.Vec3) {
	dx, dy := p[0]-b.Position[0], p[1]-b.Position[1]
	if dx == 0 && dy == 0 {
		return
	}
	b.SetYaw(math.Atan2(dy, dx))
}

// Jump launches a grounded, live body upward and reports whether it did.
func (b *RigidBody) Jump(speed float64) bool {
	if !b.Alive() || b.Airborne() {
		return false
	}
	b.Velocity[2] = speed
	b.Flags |= FlagAirborne
	return true
}

// Impacts returns the impacts recorded since the last call and forgets them.
func (b *RigidBody) Impacts() []Impact {
	out := b.impacts
	b.impacts = nil
	return out
}

func (b *RigidBody) recordImpact(hit level.Hit) {
	b.impacts = append(b.impacts, Impact{
		Point:     hit.Point,
		Normal:    hit.SurfaceNormal,
		SurfaceID: hit.SurfaceID,
		Surface:   hit.Surface,
		Sector:    hit.Sector,
		Wall:      hit.Wall,
	})
}
