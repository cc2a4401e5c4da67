package config

// PhysicsConfig contains world-wide simulation values. Distances are map
// units, times are seconds.
type PhysicsConfig struct {
	// Global physics
	Gravity      float64 // Downward acceleration, units/s^2
	MaxFallSpeed float64 // Terminal downward speed

	// Stepping
	TickRate int // Simulation ticks per second

	// Collision
	SolverCellSize int // Broadphase cell size for MapCollisionSolver

	// Cleanup
	CorpseTicks int // Ticks a dead body stays in the world before removal
}

// BodyConfig contains the per-kind constants of a rigid body.
type BodyConfig struct {
	// Dimensions
	Radius     float64
	Height     float64
	StepHeight float64 // Highest floor rise crossed without blocking

	// Physics
	GravityScale float64 // Multiplier on Physics.Gravity
	ClampCeiling bool    // Keep the top of the body under the ceiling

	// Movement
	MoveSpeed float64
	JumpSpeed float64

	// Projectiles
	MaxBounces  int     // Impacts survived before the body dies
	Restitution float64 // Speed kept after a bounce
}

// EnemyConfig contains enemy AI tuning
type EnemyConfig struct {
	SightRange    float64 // Max distance at which the player is noticed
	ReactionDelay int     // Ticks between sight checks
}

// DecalConfig maps impact surfaces to decal names
type DecalConfig struct {
	Names    map[int]string // Surface id to decal name
	Default  string         // Used for surfaces without an entry
	Lifetime int            // Ticks a decal stays in the world
	MaxCount int            // Oldest decals are removed beyond this
}

// Body kind keys in Bodies
const (
	BodyPlayer     = "player"
	BodyProjectile = "projectile"
	BodyEnemy      = "enemy"
)

// Global configuration instances
var Physics PhysicsConfig
var Bodies map[string]BodyConfig
var Enemy EnemyConfig
var Decals DecalConfig

func init() {
	// Physics Config
	Physics = PhysicsConfig{
		Gravity:      19.6,
		MaxFallSpeed: 40.0,

		TickRate: 60,

		SolverCellSize: 4,

		CorpseTicks: 30,
	}

	// Body Config
	Bodies = map[string]BodyConfig{
		BodyPlayer: {
			Radius:       0.5,
			Height:       1.8,
			StepHeight:   0.5,
			GravityScale: 1.0,
			ClampCeiling: true,
			MoveSpeed:    5.0,
			JumpSpeed:    6.0,
		},
		BodyProjectile: {
			Radius:       0.1,
			Height:       0.2,
			GravityScale: 0.0, // Flies straight
			MoveSpeed:    30.0,
			MaxBounces:   1,
			Restitution:  0.6,
		},
		BodyEnemy: {
			Radius:       0.6,
			Height:       2.0,
			StepHeight:   0.5,
			GravityScale: 1.0,
			MoveSpeed:    3.0,
			JumpSpeed:    4.0,
		},
	}

	// Enemy Config
	Enemy = EnemyConfig{
		SightRange:    25.0,
		ReactionDelay: 15, // 0.25 second at 60 ticks
	}

	// Decal Config
	Decals = DecalConfig{
		Names: map[int]string{
			0: "scorch",
			1: "bullet_hole_concrete",
			2: "bullet_hole_metal",
			3: "bullet_hole_wood",
		},
		Default:  "scorch",
		Lifetime: 600, // 10 seconds at 60 ticks
		MaxCount: 64,
	}
}

// DecalName returns the decal drawn where a projectile hit surface.
func DecalName(surface int) string {
	if name, ok := Decals.Names[surface]; ok {
		return name
	}
	return Decals.Default
}
