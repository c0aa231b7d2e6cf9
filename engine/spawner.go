package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/planetfall/component"
	"github.com/lixenwraith/planetfall/event"
	"github.com/lixenwraith/planetfall/parameter"
	"github.com/lixenwraith/planetfall/progression"
	"github.com/lixenwraith/planetfall/status"
)

// Spawner is the time-driven population policy
// Cadence is measured in accumulated play time, never wall clock: each kind
// keeps the index of the last boundary it acted on and fires at most once per
// tick when the index advances, so frame-rate jitter cannot drift or burst
type Spawner struct {
	registry *Registry
	rng      Rand
	emit     func(event.EventType, any)

	elapsed      time.Duration
	standardMark int64
	heavyMark    int64

	statStandard *atomic.Int64
	statHeavy    *atomic.Int64
	statRejected *atomic.Int64
}

// NewSpawner creates a spawner writing into registry
func NewSpawner(registry *Registry, rng Rand, reg *status.Registry, emit func(event.EventType, any)) *Spawner {
	return &Spawner{
		registry:     registry,
		rng:          rng,
		emit:         emit,
		statStandard: reg.Ints.Get(status.KeySpawnStandard),
		statHeavy:    reg.Ints.Get(status.KeySpawnHeavy),
		statRejected: reg.Ints.Get(status.KeySpawnRejected),
	}
}

// Reset disables any pending cadence; called on every lifecycle change
func (s *Spawner) Reset() {
	s.elapsed = 0
	s.standardMark = 0
	s.heavyMark = 0
}

// Elapsed returns accumulated play time since the last Reset
func (s *Spawner) Elapsed() time.Duration {
	return s.elapsed
}

// Advance accumulates dt of play time and performs due spawns
// Caller gates on LifecyclePlaying
func (s *Spawner) Advance(dt time.Duration, score int) {
	if dt <= 0 {
		return
	}
	s.elapsed += dt

	if mark := int64(s.elapsed / parameter.SpawnStandardInterval); mark > s.standardMark {
		s.standardMark = mark
		s.Spawn(component.EnemyStandard, score)
	}

	if s.elapsed >= parameter.SpawnHeavyDelay {
		mark := 1 + int64((s.elapsed-parameter.SpawnHeavyDelay)/parameter.SpawnHeavyInterval)
		if mark > s.heavyMark {
			s.heavyMark = mark
			s.Spawn(component.EnemyHeavy, score)
		}
	}
}

// Spawn places one enemy of kind at a random position with score-scaled HP
// Returns false when the kind's population cap is reached
func (s *Spawner) Spawn(kind component.EnemyKind, score int) (component.Enemy, bool) {
	var base int
	switch kind {
	case component.EnemyStandard:
		if s.registry.CountEnemies(component.EnemyStandard) >= parameter.SpawnMaxStandard {
			s.statRejected.Add(1)
			return component.Enemy{}, false
		}
		base = parameter.SpawnBaseHPStandard
	case component.EnemyHeavy:
		base = parameter.SpawnBaseHPHeavy
	default:
		return component.Enemy{}, false
	}

	hp := progression.Scale(base, score)
	if hp < 1 {
		hp = 1
	}

	e := s.registry.AddEnemy(kind, s.randomPosition(), hp)

	switch kind {
	case component.EnemyStandard:
		s.statStandard.Add(1)
	case component.EnemyHeavy:
		s.statHeavy.Add(1)
	}
	s.emit(event.EventEnemySpawned, &event.EnemySpawnedPayload{ID: e.ID, Kind: e.Kind, HP: e.HP})
	return e, true
}

// randomPosition samples the spawn square uniformly at fixed height
func (s *Spawner) randomPosition() component.Vec3 {
	return component.Vec3{
		X: (s.rng.Float64()*2 - 1) * parameter.SpawnHalfExtent,
		Y: parameter.SpawnHeight,
		Z: (s.rng.Float64()*2 - 1) * parameter.SpawnHalfExtent,
	}
}
