package level

// EmptySector is returned by Pop on an empty stack and by point location when
// no sector contains the point.
const EmptySector = -1

// SectorStack is a bounded LIFO of sector indices. It never grows past the
// capacity it was created with.
type SectorStack struct {
	items []int
}

func NewSectorStack(capacity int) *SectorStack {
	return &SectorStack{items: make([]int, 0, capacity)}
}

// Push adds a sector and reports false when the stack is full.
func (s *SectorStack) Push(sector int) bool {
	if len(s.items) == cap(s.items) {
		return false
	}
	s.items = append(s.items, sector)
	return true
}

// Pop removes the most recently pushed sector, or returns EmptySector.
func (s *SectorStack) Pop() int {
	n := len(s.items)
	if n == 0 {
		return EmptySector
	}
	top := s.items[n-1]
	s.items = s.items[:n-1]
	return top
}

func (s *SectorStack) Len() int { return len(s.items) }
func (s *SectorStack) Cap() int { return cap(s.items) }
func (s *SectorStack) Reset() { s.items = s.items[:0] }

// Traversal is the scratch state of one portal flood: a visited set and the
// pending stack. Sectors are marked on enqueue, so a stack sized to the sector
// count can never overflow. The visited set is generation stamped and is
// cleared by bumping the generation.
//
// A Traversal must not be shared between goroutines; give each caller its own.
type Traversal struct {
	visited    []uint32
	generation uint32
	stack      *SectorStack
}

// NewTraversal returns a workspace for maps with up to sectorCount sectors.
// It grows on demand when used with a larger map.
func NewTraversal(sectorCount int) *Traversal {
	return &Traversal{
		visited: make([]uint32, sectorCount),
		stack:   NewSectorStack(sectorCount),
	}
}

// Reset starts a new traversal over a map of sectorCount sectors.
func (t *Traversal) Reset(sectorCount int) {
	if sectorCount > len(t.visited) {
		t.visited = make([]uint32, sectorCount)
		t.stack = NewSectorStack(sectorCount)
		t.generation = 0
	}
	t.stack.Reset()
	t.generation++
	if t.generation == 0 {
		clear(t.visited)
		t.generation = 1
	}
}

// Enqueue queues sector and marks it visited. It reports false for a sector
// already seen during this traversal or out of range, and when the stack is
// full; a rejected sector stays unvisited.
func (t *Traversal) Enqueue(sector int) bool {
	if sector < 0 || sector >= len(t.visited) || t.visited[sector] == t.generation {
		return false
	}
	if !t.stack.Push(sector) {
		return false
	}
	t.visited[sector] = t.generation
	return true
}

// Visited reports whether sector has been enqueued during this traversal.
func (t *Traversal) Visited(sector int) bool {
	return sector >= 0 && sector < len(t.visited) && t.visited[sector] == t.generation
}

// Next pops the next pending sector, or EmptySector when the flood is done.
func (t *Traversal) Next() int {
	return t.stack.Pop()
}
