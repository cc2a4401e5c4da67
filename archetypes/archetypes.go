package archetypes

import (
	"github.com/automoto/sectorcore/components"
	"github.com/automoto/sectorcore/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Body,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Body,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Body,
	)
	Decal = newArchetype(
		tags.Decal,
		components.Decal,
	)
	Level = newArchetype(
		components.Level,
		components.TickStats,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	e := w.Entry(w.Create(
		append(a.components, cs...)...,
	))
	return e
}
