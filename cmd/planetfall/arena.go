package main

import (
	"math"
	"time"

	"github.com/lixenwraith/planetfall/component"
	"github.com/lixenwraith/planetfall/engine"
	"github.com/lixenwraith/planetfall/parameter"
)

// World is the engine surface the arena drives; *engine.Engine satisfies it
type World interface {
	UpdateEnemyPosition(id uint64, pos component.Vec3)
	EnemyContact(id uint64)
	PickupItem(id uint64)
	HitEnemy(id uint64, damage int)
}

// Arena mirrors enemy bodies on the XZ plane
// It owns movement and proximity only; every gameplay effect is an engine command
type Arena struct {
	Player component.Vec3

	bodies   map[uint64]component.Vec3
	cooldown time.Duration
}

// NewArena places the player at the origin
func NewArena() *Arena {
	return &Arena{
		bodies: make(map[uint64]component.Vec3),
	}
}

// Reset clears bodies and recenters the player
func (a *Arena) Reset() {
	a.Player = component.Vec3{}
	clear(a.bodies)
	a.cooldown = 0
}

// MovePlayer steps the player, clamped to the spawn square
func (a *Arena) MovePlayer(dx, dz float64) {
	a.Player.X = clampExtent(a.Player.X + dx*parameter.ArenaPlayerStep)
	a.Player.Z = clampExtent(a.Player.Z + dz*parameter.ArenaPlayerStep)
}

// Step advances bodies by dt toward the player and reports contacts and pickups
// snap is the state published by the previous engine update
func (a *Arena) Step(dt time.Duration, snap *engine.Snapshot, w World) {
	if a.cooldown > 0 {
		a.cooldown -= dt
	}
	if snap == nil || snap.Lifecycle != engine.LifecyclePlaying {
		return
	}

	a.sync(snap.Enemies)

	secs := dt.Seconds()
	for _, e := range snap.Enemies {
		pos := chase(a.bodies[e.ID], a.Player, speedOf(e.Kind)*secs)
		a.bodies[e.ID] = pos
		w.UpdateEnemyPosition(e.ID, pos)

		// Engine cooldown filters repeated contacts
		if pos.DistanceXZ(a.Player) <= parameter.ArenaContactRadius {
			w.EnemyContact(e.ID)
		}
	}

	for _, it := range snap.Items {
		if it.Position.DistanceXZ(a.Player) <= parameter.ArenaPickupRadius {
			w.PickupItem(it.ID)
		}
	}
}

// Fire hits the nearest enemy in range with the current weapon
// Returns the target id, zero when nothing was fired
func (a *Arena) Fire(snap *engine.Snapshot, w World) uint64 {
	if a.cooldown > 0 || snap == nil || snap.Lifecycle != engine.LifecyclePlaying {
		return 0
	}

	var target uint64
	best := parameter.ArenaFireRange
	for _, e := range snap.Enemies {
		pos, ok := a.bodies[e.ID]
		if !ok {
			pos = e.Position
		}
		if d := pos.DistanceXZ(a.Player); d <= best {
			best = d
			target = e.ID
		}
	}
	if target == 0 {
		return 0
	}

	a.cooldown = parameter.ArenaFireCooldown
	w.HitEnemy(target, snap.Weapon.Damage)
	return target
}

// Body returns the mirrored position of an enemy
func (a *Arena) Body(id uint64) (component.Vec3, bool) {
	pos, ok := a.bodies[id]
	return pos, ok
}

// sync adopts new enemies at their spawn position and forgets dead ones
func (a *Arena) sync(enemies []component.Enemy) {
	live := make(map[uint64]struct{}, len(enemies))
	for _, e := range enemies {
		live[e.ID] = struct{}{}
		if _, ok := a.bodies[e.ID]; !ok {
			a.bodies[e.ID] = e.Position
		}
	}
	for id := range a.bodies {
		if _, ok := live[id]; !ok {
			delete(a.bodies, id)
		}
	}
}

func speedOf(kind component.EnemyKind) float64 {
	switch kind {
	case component.EnemyHeavy:
		return parameter.ArenaHeavySpeed
	default:
		return parameter.ArenaStandardSpeed
	}
}

// chase moves from toward target by at most step, keeping height
func chase(from, target component.Vec3, step float64) component.Vec3 {
	d := target.Sub(from)
	dist := math.Hypot(d.X, d.Z)
	if dist <= step || dist == 0 {
		return component.Vec3{X: target.X, Y: from.Y, Z: target.Z}
	}
	k := step / dist
	return component.Vec3{X: from.X + d.X*k, Y: from.Y, Z: from.Z + d.Z*k}
}

func clampExtent(v float64) float64 {
	return math.Max(-parameter.SpawnHalfExtent, math.Min(parameter.SpawnHalfExtent, v))
}
