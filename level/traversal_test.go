package level

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSectorStackLIFO(t *testing.T) {
	s := NewSectorStack(5)
	for i := 0; i < 5; i++ {
		require.True(t, s.Push(i*10))
	}
	require.False(t, s.Push(99), "full stack rejects pushes")
	require.Equal(t, 5, s.Len())
	require.Equal(t, 5, s.Cap())

	for i := 4; i >= 0; i-- {
		require.Equal(t, i*10, s.Pop())
	}
	require.Equal(t, EmptySector, s.Pop())
	require.Equal(t, EmptySector, s.Pop())

	s.Push(3)
	s.Reset()
	require.Equal(t, 0, s.Len())
	require.Equal(t, EmptySector, s.Pop())
}

func TestTraversalVisitedSet(t *testing.T) {
	tr := NewTraversal(3)
	tr.Reset(3)

	require.True(t, tr.Enqueue(0))
	require.False(t, tr.Enqueue(0), "already seen")
	require.False(t, tr.Enqueue(-1))
	require.False(t, tr.Enqueue(3))
	require.True(t, tr.Enqueue(2))
	require.True(t, tr.Visited(0))
	require.False(t, tr.Visited(1))

	require.Equal(t, 2, tr.Next())
	require.Equal(t, 0, tr.Next())
	require.Equal(t, EmptySector, tr.Next())

	tr.Reset(3)
	require.False(t, tr.Visited(0))
	require.True(t, tr.Enqueue(0))
}

func TestTraversalFullStackLeavesSectorUnvisited(t *testing.T) {
	tr := NewTraversal(3)
	tr.Reset(3)
	tr.stack = NewSectorStack(1)

	require.True(t, tr.Enqueue(0))
	require.False(t, tr.Enqueue(1))
	require.False(t, tr.Visited(1))

	require.Equal(t, 0, tr.Next())
	require.True(t, tr.Enqueue(1), "retried once there is room")
	require.True(t, tr.Visited(1))
}

func TestTraversalGrows(t *testing.T) {
	tr := NewTraversal(1)
	tr.Reset(4)
	for i := 0; i < 4; i++ {
		require.True(t, tr.Enqueue(i))
	}
}

func TestTraversalGenerationWrap(t *testing.T) {
	tr := NewTraversal(2)
	tr.generation = math.MaxUint32 - 1
	tr.Reset(2)
	require.True(t, tr.Enqueue(1))

	tr.Reset(2)
	require.Equal(t, uint32(1), tr.generation)
	require.False(t, tr.Visited(1))
	require.True(t, tr.Enqueue(1))
}
