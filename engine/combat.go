package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/planetfall/component"
	"github.com/lixenwraith/planetfall/event"
	"github.com/lixenwraith/planetfall/parameter"
	"github.com/lixenwraith/planetfall/progression"
	"github.com/lixenwraith/planetfall/status"
)

// Combat resolves hits, kills, loot and pickups against the registry
// It mutates GameState only through its transition methods
type Combat struct {
	registry *Registry
	rng      Rand
	emit     func(event.EventType, any)

	statHits     *atomic.Int64
	statKills    *atomic.Int64
	statDrops    *atomic.Int64
	statPickups  *atomic.Int64
	statContacts *atomic.Int64
}

// NewCombat creates a resolver over registry
func NewCombat(registry *Registry, rng Rand, reg *status.Registry, emit func(event.EventType, any)) *Combat {
	return &Combat{
		registry:     registry,
		rng:          rng,
		emit:         emit,
		statHits:     reg.Ints.Get(status.KeyHits),
		statKills:    reg.Ints.Get(status.KeyKills),
		statDrops:    reg.Ints.Get(status.KeyLootDrops),
		statPickups:  reg.Ints.Get(status.KeyPickups),
		statContacts: reg.Ints.Get(status.KeyContacts),
	}
}

// --- Hit / Kill ---

// HitEnemy applies damage; unknown ids are ignored
// A lethal hit removes the enemy, awards the kill score and rolls loot
func (c *Combat) HitEnemy(gs *GameState, id uint64, damage int) {
	enemy, ok := c.registry.Enemy(id)
	if !ok {
		return
	}
	if damage < 0 {
		damage = 0
	}

	c.statHits.Add(1)
	enemy.HP -= damage
	if enemy.HP > 0 {
		gs.LastMessage = fmt.Sprintf("Hit for %d damage", damage)
		c.emit(event.EventEnemyHit, &event.EnemyHitPayload{ID: id, Damage: damage, HP: enemy.HP})
		return
	}

	dead, _ := c.registry.RemoveEnemy(id)
	c.statKills.Add(1)
	gs.AddScore(parameter.CombatKillScore)
	c.emit(event.EventEnemyKilled, &event.EnemyKilledPayload{ID: dead.ID, Kind: dead.Kind, Position: dead.Position})

	c.rollLoot(dead.Position)
	gs.LastMessage = fmt.Sprintf("Enemy destroyed! +%d", parameter.CombatKillScore)
}

// rollLoot drops at most one item at pos
func (c *Combat) rollLoot(pos component.Vec3) {
	if c.rng.Float64() >= parameter.LootDropRate {
		return
	}
	kind := component.ItemKind(c.rng.IntN(int(component.ItemKindCount)))
	item := c.registry.AddItem(kind, pos)
	c.statDrops.Add(1)
	c.emit(event.EventLootDropped, &event.LootDroppedPayload{ID: item.ID, Kind: item.Kind, Position: item.Position})
}

// --- Pickup ---

// PickupItem applies and removes an item; unknown or already collected ids are ignored
func (c *Combat) PickupItem(gs *GameState, id uint64) {
	item, ok := c.registry.RemoveItem(id)
	if !ok {
		return
	}
	c.statPickups.Add(1)
	c.emit(event.EventItemPickedUp, &event.ItemPickedUpPayload{ID: item.ID, Kind: item.Kind})

	switch item.Kind {
	case component.ItemHeal:
		amount := progression.Scale(parameter.LootHealBase, gs.Score)
		gs.Heal(amount)
		gs.LastMessage = fmt.Sprintf("Healed %d HP", amount)
		c.emit(event.EventPlayerHealed, &event.PlayerHealedPayload{Amount: amount, Health: gs.Health})

	case component.ItemWeaponDrop:
		w := c.rollWeapon(gs.Score)
		gs.Weapon = w
		gs.LastMessage = fmt.Sprintf("Picked up %s (%d dmg)", w.Name, w.Damage)
		c.emit(event.EventWeaponChanged, &event.WeaponChangedPayload{Weapon: w})
	}
}

// rollWeapon draws damage, color and name uniformly from the drop tables
func (c *Combat) rollWeapon(score int) component.Weapon {
	span := parameter.LootWeaponDamageMax - parameter.LootWeaponDamageMin
	raw := parameter.LootWeaponDamageMin + c.rng.Float64()*span

	prefix := parameter.WeaponPrefixes[c.rng.IntN(len(parameter.WeaponPrefixes))]
	suffix := parameter.WeaponSuffixes[c.rng.IntN(len(parameter.WeaponSuffixes))]
	color := parameter.WeaponColors[c.rng.IntN(len(parameter.WeaponColors))]

	return component.Weapon{
		Name:   prefix + " " + suffix,
		Damage: progression.ScaleFloat(raw, score),
		Color:  color,
	}
}

// --- Contact ---

// Contact returns the damage an enemy deals by touching the player at engine time now
// Zero when the id is unknown or the enemy is still on cooldown
func (c *Combat) Contact(id uint64, now time.Duration) int {
	enemy, ok := c.registry.Enemy(id)
	if !ok || !enemy.CanContact(now, parameter.CombatContactCooldown) {
		return 0
	}
	enemy.MarkContact(now)
	c.statContacts.Add(1)

	switch enemy.Kind {
	case component.EnemyHeavy:
		return parameter.CombatContactDamageHeavy
	default:
		return parameter.CombatContactDamageStandard
	}
}

// MoveEnemy records the latest physics position; loot drops there on death
func (c *Combat) MoveEnemy(id uint64, pos component.Vec3) {
	if enemy, ok := c.registry.Enemy(id); ok {
		enemy.Position = pos
	}
}
