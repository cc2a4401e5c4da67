package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecalName(t *testing.T) {
	require.Equal(t, "bullet_hole_metal", DecalName(2))
	require.Equal(t, Decals.Default, DecalName(999))
}

func TestBodiesCoverEveryKind(t *testing.T) {
	for _, k := range []string{BodyPlayer, BodyProjectile, BodyEnemy} {
		cfg, ok := Bodies[k]
		require.True(t, ok, k)
		require.Greater(t, cfg.Radius, 0.0, k)
		require.Greater(t, cfg.Height, 0.0, k)
	}
	require.Greater(t, Physics.TickRate, 0)
}
