package main

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/planetfall/component"
	"github.com/lixenwraith/planetfall/engine"
	"github.com/lixenwraith/planetfall/parameter"
)

type worldRecorder struct {
	moves    map[uint64]component.Vec3
	contacts []uint64
	pickups  []uint64
	hits     map[uint64]int
}

func newWorldRecorder() *worldRecorder {
	return &worldRecorder{
		moves: make(map[uint64]component.Vec3),
		hits:  make(map[uint64]int),
	}
}

func (w *worldRecorder) UpdateEnemyPosition(id uint64, pos component.Vec3) { w.moves[id] = pos }
func (w *worldRecorder) EnemyContact(id uint64) { w.contacts = append(w.contacts, id) }
func (w *worldRecorder) PickupItem(id uint64) { w.pickups = append(w.pickups, id) }
func (w *worldRecorder) HitEnemy(id uint64, damage int) { w.hits[id] += damage }

func playing(enemies []component.Enemy, items []component.Item) *engine.Snapshot {
	return &engine.Snapshot{
		Lifecycle: engine.LifecyclePlaying,
		Enemies:   enemies,
		Items:     items,
		Weapon:    engine.DefaultWeapon(),
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestArenaChaseSpeedByKind(t *testing.T) {
	a := NewArena()
	w := newWorldRecorder()
	snap := playing([]component.Enemy{
		{ID: 1, Kind: component.EnemyStandard, Position: component.Vec3{X: 10, Y: 2}},
		{ID: 2, Kind: component.EnemyHeavy, Position: component.Vec3{Z: -10, Y: 2}},
	}, nil)

	a.Step(time.Second, snap, w)

	if got := w.moves[1]; !near(got.X, 10-parameter.ArenaStandardSpeed) || got.Y != 2 {
		t.Errorf("Expected standard at x=%.1f y=2, got %+v", 10-parameter.ArenaStandardSpeed, got)
	}
	if got := w.moves[2]; !near(got.Z, -10+parameter.ArenaHeavySpeed) {
		t.Errorf("Expected heavy at z=%.1f, got %+v", -10+parameter.ArenaHeavySpeed, got)
	}
	if len(w.contacts) != 0 {
		t.Errorf("Expected no contact at range, got %v", w.contacts)
	}
}

func TestArenaChaseStopsAtPlayer(t *testing.T) {
	a := NewArena()
	w := newWorldRecorder()
	snap := playing([]component.Enemy{{ID: 7, Position: component.Vec3{X: 1}}}, nil)

	a.Step(time.Second, snap, w)

	if got := w.moves[7]; got.X != 0 || got.Z != 0 {
		t.Errorf("Expected enemy on the player, got %+v", got)
	}
	if len(w.contacts) != 1 || w.contacts[0] != 7 {
		t.Errorf("Expected contact from 7, got %v", w.contacts)
	}
}

func TestArenaPickupRadius(t *testing.T) {
	a := NewArena()
	w := newWorldRecorder()
	snap := playing(nil, []component.Item{
		{ID: 3, Position: component.Vec3{X: parameter.ArenaPickupRadius - 0.1}},
		{ID: 4, Position: component.Vec3{X: parameter.ArenaPickupRadius + 0.1}},
	})

	a.Step(parameter.FrameUpdateInterval, snap, w)

	if len(w.pickups) != 1 || w.pickups[0] != 3 {
		t.Errorf("Expected pickup of 3 only, got %v", w.pickups)
	}
}

func TestArenaIdleOutsidePlay(t *testing.T) {
	a := NewArena()
	w := newWorldRecorder()
	snap := playing([]component.Enemy{{ID: 1, Position: component.Vec3{X: 1}}}, nil)
	snap.Lifecycle = engine.LifecycleGameOver

	a.Step(time.Second, snap, w)
	if len(w.moves) != 0 || len(w.contacts) != 0 {
		t.Errorf("Expected no commands outside play, got moves=%d contacts=%d", len(w.moves), len(w.contacts))
	}
	if id := a.Fire(snap, w); id != 0 {
		t.Errorf("Expected no shot outside play, got target %d", id)
	}
}

func TestArenaFireNearestWithCooldown(t *testing.T) {
	a := NewArena()
	w := newWorldRecorder()
	snap := playing([]component.Enemy{
		{ID: 1, Position: component.Vec3{X: 20}},
		{ID: 2, Position: component.Vec3{Z: 5}},
		{ID: 3, Position: component.Vec3{X: parameter.SpawnHalfExtent, Z: parameter.SpawnHalfExtent}},
	}, nil)

	if id := a.Fire(snap, w); id != 2 {
		t.Fatalf("Expected nearest target 2, got %d", id)
	}
	if w.hits[2] != parameter.DefaultWeaponDamage {
		t.Errorf("Expected %d damage on 2, got %d", parameter.DefaultWeaponDamage, w.hits[2])
	}

	if id := a.Fire(snap, w); id != 0 {
		t.Errorf("Expected cooldown to block second shot, got target %d", id)
	}

	a.Step(parameter.ArenaFireCooldown, playing(nil, nil), w)
	if id := a.Fire(snap, w); id != 2 {
		t.Errorf("Expected shot after cooldown, got target %d", id)
	}
}

func TestArenaFireOutOfRange(t *testing.T) {
	a := NewArena()
	w := newWorldRecorder()
	a.MovePlayer(-100, -100)
	snap := playing([]component.Enemy{{ID: 1, Position: component.Vec3{X: 25, Z: 25}}}, nil)

	if id := a.Fire(snap, w); id != 0 {
		t.Errorf("Expected no target beyond %.0f units, got %d", parameter.ArenaFireRange, id)
	}
}

func TestArenaForgetsDeadBodies(t *testing.T) {
	a := NewArena()
	w := newWorldRecorder()

	a.Step(parameter.FrameUpdateInterval, playing([]component.Enemy{{ID: 1, Position: component.Vec3{X: 10}}}, nil), w)
	if _, ok := a.Body(1); !ok {
		t.Fatal("Expected body for live enemy")
	}

	a.Step(parameter.FrameUpdateInterval, playing(nil, nil), w)
	if _, ok := a.Body(1); ok {
		t.Error("Expected body removed after enemy left the snapshot")
	}
}

func TestArenaPlayerClamped(t *testing.T) {
	a := NewArena()
	a.MovePlayer(1000, -1000)
	if a.Player.X != parameter.SpawnHalfExtent || a.Player.Z != -parameter.SpawnHalfExtent {
		t.Errorf("Expected player clamped to corner, got %+v", a.Player)
	}

	a.Reset()
	if a.Player != (component.Vec3{}) {
		t.Errorf("Expected player at origin after reset, got %+v", a.Player)
	}
}
