package components

import "github.com/yohamta/donburi"

// DeathData marks an entity whose body has died.
// Timer counts down each tick; when it reaches 0, the entity is removed from
// the world.
type DeathData struct {
	Timer       int
	OutOfBounds bool // Died by leaving every sector
}

var Death = donburi.NewComponentType[DeathData]()
