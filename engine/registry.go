package engine

import (
	"github.com/lixenwraith/planetfall/component"
)

// Registry owns the live enemy and item collections
// Collections keep insertion order; ids come from one monotonic sequence shared by both kinds
// No gameplay rules live here: caps, damage and loot belong to Spawner and Combat
type Registry struct {
	nextID  uint64
	enemies []component.Enemy
	items   []component.Item
}

// NewRegistry creates an empty registry, first id is 1
func NewRegistry() *Registry {
	return &Registry{
		nextID:  1,
		enemies: make([]component.Enemy, 0, 32),
		items:   make([]component.Item, 0, 16),
	}
}

func (r *Registry) allocID() uint64 {
	id := r.nextID
	r.nextID++
	return id
}

// --- Enemies ---

// AddEnemy inserts a new enemy and returns a copy of it
func (r *Registry) AddEnemy(kind component.EnemyKind, pos component.Vec3, hp int) component.Enemy {
	e := component.Enemy{
		ID:       r.allocID(),
		Kind:     kind,
		Position: pos,
		HP:       hp,
		MaxHP:    hp,
	}
	r.enemies = append(r.enemies, e)
	return e
}

// Enemy returns a pointer to the live enemy, valid until the next registry mutation
func (r *Registry) Enemy(id uint64) (*component.Enemy, bool) {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i], true
		}
	}
	return nil, false
}

// RemoveEnemy deletes the enemy and returns its final state
func (r *Registry) RemoveEnemy(id uint64) (component.Enemy, bool) {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			e := r.enemies[i]
			r.enemies = append(r.enemies[:i], r.enemies[i+1:]...)
			return e, true
		}
	}
	return component.Enemy{}, false
}

// CountEnemies returns the number of live enemies of the given kind
func (r *Registry) CountEnemies(kind component.EnemyKind) int {
	n := 0
	for i := range r.enemies {
		if r.enemies[i].Kind == kind {
			n++
		}
	}
	return n
}

// EnemyCount returns the number of live enemies of all kinds
func (r *Registry) EnemyCount() int {
	return len(r.enemies)
}

// Enemies returns a copy of the live enemies in spawn order
func (r *Registry) Enemies() []component.Enemy {
	out := make([]component.Enemy, len(r.enemies))
	copy(out, r.enemies)
	return out
}

// --- Items ---

// AddItem inserts a new item and returns a copy of it
func (r *Registry) AddItem(kind component.ItemKind, pos component.Vec3) component.Item {
	it := component.Item{
		ID:       r.allocID(),
		Kind:     kind,
		Position: pos,
	}
	r.items = append(r.items, it)
	return it
}

// Item returns the live item
func (r *Registry) Item(id uint64) (component.Item, bool) {
	for _, it := range r.items {
		if it.ID == id {
			return it, true
		}
	}
	return component.Item{}, false
}

// RemoveItem deletes the item and returns it
func (r *Registry) RemoveItem(id uint64) (component.Item, bool) {
	for i := range r.items {
		if r.items[i].ID == id {
			it := r.items[i]
			r.items = append(r.items[:i], r.items[i+1:]...)
			return it, true
		}
	}
	return component.Item{}, false
}

// ItemCount returns the number of live items
func (r *Registry) ItemCount() int {
	return len(r.items)
}

// Items returns a copy of the live items in drop order
func (r *Registry) Items() []component.Item {
	out := make([]component.Item, len(r.items))
	copy(out, r.items)
	return out
}

// Clear removes every entity; the id sequence keeps counting
func (r *Registry) Clear() {
	r.enemies = r.enemies[:0]
	r.items = r.items[:0]
}
