package engine

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/planetfall/component"
	"github.com/lixenwraith/planetfall/event"
	"github.com/lixenwraith/planetfall/parameter"
	"github.com/lixenwraith/planetfall/status"
)

func newTestSpawner() (*Spawner, *Registry, *recorder, *status.Registry) {
	reg := NewRegistry()
	rec := &recorder{}
	st := status.NewRegistry()
	return NewSpawner(reg, NewRand(7), st, rec.emit), reg, rec, st
}

func advanceFor(s *Spawner, total, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		s.Advance(step, 0)
	}
}

func TestSpawnerStandardCadence(t *testing.T) {
	s, reg, _, _ := newTestSpawner()

	advanceFor(s, 1900*time.Millisecond, 100*time.Millisecond)
	if n := reg.EnemyCount(); n != 0 {
		t.Fatalf("Expected no spawn before 2s, got %d", n)
	}

	s.Advance(100*time.Millisecond, 0)
	if n := reg.CountEnemies(component.EnemyStandard); n != 1 {
		t.Errorf("Expected 1 standard at 2s, got %d", n)
	}

	advanceFor(s, 12*time.Second, 100*time.Millisecond)
	if n := reg.CountEnemies(component.EnemyStandard); n != 7 {
		t.Errorf("Expected 7 standard at 14s, got %d", n)
	}
	if n := reg.CountEnemies(component.EnemyHeavy); n != 0 {
		t.Errorf("Expected no heavy before 15s, got %d", n)
	}
}

func TestSpawnerHeavyCadence(t *testing.T) {
	s, reg, _, st := newTestSpawner()

	advanceFor(s, 15*time.Second, 250*time.Millisecond)
	if n := reg.CountEnemies(component.EnemyHeavy); n != 1 {
		t.Errorf("Expected first heavy at 15s, got %d", n)
	}

	advanceFor(s, 29*time.Second, 250*time.Millisecond)
	if n := reg.CountEnemies(component.EnemyHeavy); n != 1 {
		t.Errorf("Expected 1 heavy at 44s, got %d", n)
	}

	advanceFor(s, time.Second, 250*time.Millisecond)
	if n := reg.CountEnemies(component.EnemyHeavy); n != 2 {
		t.Errorf("Expected 2 heavy at 45s, got %d", n)
	}

	if n := reg.CountEnemies(component.EnemyStandard); n != parameter.SpawnMaxStandard {
		t.Errorf("Expected standard capped at %d, got %d", parameter.SpawnMaxStandard, n)
	}
	if got := st.Ints.Get(status.KeySpawnRejected).Load(); got != 2 {
		t.Errorf("Expected 2 rejected attempts by 45s, got %d", got)
	}
}

func TestSpawnerOneSpawnPerTick(t *testing.T) {
	s, reg, _, _ := newTestSpawner()

	s.Advance(10*time.Second, 0)
	if n := reg.EnemyCount(); n != 1 {
		t.Errorf("Expected a single spawn for a long tick, got %d", n)
	}

	s.Advance(10*time.Second, 0)
	if n := reg.CountEnemies(component.EnemyStandard); n != 2 {
		t.Errorf("Expected 2 standard, got %d", n)
	}
	if n := reg.CountEnemies(component.EnemyHeavy); n != 1 {
		t.Errorf("Expected 1 heavy after crossing 15s, got %d", n)
	}
}

func TestSpawnerResetDropsBacklog(t *testing.T) {
	s, reg, _, _ := newTestSpawner()

	s.Advance(1900*time.Millisecond, 0)
	s.Reset()
	s.Advance(1900*time.Millisecond, 0)
	if n := reg.EnemyCount(); n != 0 {
		t.Errorf("Expected no spawn after reset, got %d", n)
	}
	if s.Elapsed() != 1900*time.Millisecond {
		t.Errorf("Expected elapsed 1.9s, got %v", s.Elapsed())
	}
}

func TestSpawnerScaledHPAndPosition(t *testing.T) {
	s, _, rec, _ := newTestSpawner()

	std, ok := s.Spawn(component.EnemyStandard, 1000)
	if !ok {
		t.Fatal("Expected spawn to succeed")
	}
	if std.HP != 45 || std.MaxHP != 45 {
		t.Errorf("Expected standard HP 45 at score 1000, got %d/%d", std.HP, std.MaxHP)
	}

	heavy, _ := s.Spawn(component.EnemyHeavy, 1000)
	if heavy.HP != 300 {
		t.Errorf("Expected heavy HP 300 at score 1000, got %d", heavy.HP)
	}

	for i := 0; i < 100; i++ {
		e, _ := s.Spawn(component.EnemyHeavy, 0)
		p := e.Position
		if math.Abs(p.X) > parameter.SpawnHalfExtent || math.Abs(p.Z) > parameter.SpawnHalfExtent {
			t.Fatalf("Expected position inside spawn square, got %+v", p)
		}
		if p.Y != parameter.SpawnHeight {
			t.Fatalf("Expected height %v, got %v", parameter.SpawnHeight, p.Y)
		}
	}

	if n := rec.count(event.EventEnemySpawned); n != 102 {
		t.Errorf("Expected 102 spawn notifications, got %d", n)
	}
}

func TestSpawnerStandardCap(t *testing.T) {
	s, reg, _, st := newTestSpawner()

	for i := 0; i < 25; i++ {
		s.Spawn(component.EnemyStandard, 0)
	}
	if n := reg.CountEnemies(component.EnemyStandard); n != 20 {
		t.Errorf("Expected 20 live standard, got %d", n)
	}
	if got := st.Ints.Get(status.KeySpawnRejected).Load(); got != 5 {
		t.Errorf("Expected 5 rejections, got %d", got)
	}

	if _, ok := s.Spawn(component.EnemyHeavy, 0); !ok {
		t.Error("Expected heavy to ignore the standard cap")
	}
}
