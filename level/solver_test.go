package level

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestMapCollisionSolverTouches(t *testing.T) {
	m := boxMap(t)
	s := NewMapCollisionSolver(m, 4)
	require.Equal(t, 4, s.SolidWallCount())

	wall, ok := s.TouchesSolidWall(9.5, 5, 1)
	require.True(t, ok)
	require.Equal(t, 1, wall)

	_, ok = s.TouchesSolidWall(5, 5, 1)
	require.False(t, ok)

	// The corner overlaps two walls; the deeper one wins.
	wall, ok = s.TouchesSolidWall(9.2, 9.6, 1)
	require.True(t, ok)
	require.Equal(t, 2, wall)
}

func TestMapCollisionSolverIgnoresPortals(t *testing.T) {
	m := twoRooms(t, 0, 10)
	s := NewMapCollisionSolver(m, 4)
	require.Equal(t, 6, s.SolidWallCount())

	_, ok := s.TouchesSolidWall(10, 5, 1)
	require.False(t, ok)

	_, ok = s.SegmentBlocked(mgl64.Vec2{5, 5}, mgl64.Vec2{15, 5})
	require.False(t, ok)

	wall, ok := s.SegmentBlocked(mgl64.Vec2{5, 5}, mgl64.Vec2{25, 5})
	require.True(t, ok)
	require.Equal(t, 5, wall)

	wall, ok = s.SegmentBlocked(mgl64.Vec2{15, 5}, mgl64.Vec2{-5, 5})
	require.True(t, ok)
	require.Equal(t, 3, wall, "nearest crossing from the start")
}

func TestMapCollisionSolverRegistersEveryEdge(t *testing.T) {
	m := boxMap(t)
	for _, cell := range []int{1, 3, 4, 7} {
		s := NewMapCollisionSolver(m, cell)
		for _, tc := range []struct {
			x, y float64
			wall int
		}{
			{5, 0.5, 0},
			{9.5, 5, 1},
			{5, 9.5, 2},
			{0.5, 5, 3},
		} {
			wall, ok := s.TouchesSolidWall(tc.x, tc.y, 1)
			require.True(t, ok, "cell %d at (%v, %v)", cell, tc.x, tc.y)
			require.Equal(t, tc.wall, wall, "cell %d at (%v, %v)", cell, tc.x, tc.y)
		}

		wall, ok := s.SegmentBlocked(mgl64.Vec2{5, 5}, mgl64.Vec2{-5, 5})
		require.True(t, ok, "cell %d", cell)
		require.Equal(t, 3, wall)

		wall, ok = s.SegmentBlocked(mgl64.Vec2{5, 5}, mgl64.Vec2{5, -5})
		require.True(t, ok, "cell %d", cell)
		require.Equal(t, 0, wall)
	}
}
