package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	// AI state management
	ReactionTimer int        // Ticks until the next sight check
	HasSight      bool       // Player was visible at the last check
	LastSeen      mgl64.Vec3 // Player position at the last successful check
}

var Enemy = donburi.NewComponentType[EnemyData]()
