package systems

import (
	"github.com/automoto/sectorcore/body"
	"github.com/automoto/sectorcore/components"
	cfg "github.com/automoto/sectorcore/config"
	"github.com/automoto/sectorcore/level"
	"github.com/automoto/sectorcore/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// UpdateEnemies re-checks line of sight to the player every
// cfg.Enemy.ReactionDelay ticks and walks each enemy towards where it last saw
// the player. Enemies that cannot see the player keep their current heading.
func UpdateEnemies(w donburi.World) {
	levelEntry, ok := components.Level.First(w)
	if !ok {
		return
	}
	lvl := components.Level.Get(levelEntry)

	playerEntry, ok := tags.Player.First(w)
	if !ok {
		return
	}
	player := components.Body.Get(playerEntry)
	speed := cfg.Bodies[cfg.BodyEnemy].MoveSpeed

	tags.Enemy.Each(w, func(e *donburi.Entry) {
		if e.HasComponent(components.Death) {
			return
		}
		enemy := components.Enemy.Get(e)
		b := components.Body.Get(e)

		if enemy.ReactionTimer > 0 {
			enemy.ReactionTimer--
		} else {
			enemy.ReactionTimer = cfg.Enemy.ReactionDelay
			enemy.HasSight = player.Alive() && CanSee(lvl, b.RigidBody, player.RigidBody)
			if enemy.HasSight {
				enemy.LastSeen = player.Position
			}
		}

		if enemy.HasSight {
			b.TurnTowardsPoint(enemy.LastSeen)
			b.MoveForward(speed)
		}
	})
}

// CanSee reports whether target is within sight range of viewer with nothing
// between their eyes. The wall broadphase rejects solid walls first; the
// portal trace then catches floors, ceilings and closed portals.
func CanSee(lvl *components.LevelData, viewer, target *body.RigidBody) bool {
	from := eye(viewer)
	to := eye(target)
	if from.Sub(to).Len() > cfg.Enemy.SightRange {
		return false
	}
	if _, blocked := lvl.Solver.SegmentBlocked(from.Vec2(), to.Vec2()); blocked {
		return false
	}
	sector := lvl.Map.DetermineSector(viewer.Sector, from[0], from[1])
	if sector == level.EmptySector {
		return false
	}
	hit := lvl.Map.LineSegmentTrace(lvl.Traversal, sector, from, to)
	return !hit.HasCollision
}

func eye(b *body.RigidBody) mgl64.Vec3 {
	return b.Position.Add(mgl64.Vec3{0, 0, b.Height * 0.9})
}
