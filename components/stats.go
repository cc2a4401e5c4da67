package components

import "github.com/yohamta/donburi"

// TickStatsData counts what happened during the last tick. Systems add to it;
// the server reads and resets it after every tick.
type TickStatsData struct {
	Blocked     int
	Impacts     int
	OutOfBounds int
	Removed     int
}

// Reset zeroes every counter.
func (s *TickStatsData) Reset() {
	*s = TickStatsData{}
}

var TickStats = donburi.NewComponentType[TickStatsData]()
