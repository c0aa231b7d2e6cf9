// Package status holds lock-free engine telemetry
// Components cache metric pointers at construction; hot paths write atomics directly
package status

import "sync/atomic"

// Well-known metric keys
const (
	KeyTicks          = "engine.ticks"
	KeyLifecycle      = "engine.lifecycle"
	KeyMultiplier     = "engine.multiplier"
	KeyCommandsQueued = "engine.commands"
	KeyKills          = "combat.kills"
	KeyHits           = "combat.hits"
	KeyContacts       = "combat.contacts"
	KeyLootDrops      = "loot.drops"
	KeyPickups        = "loot.pickups"
	KeySpawnStandard  = "spawn.standard"
	KeySpawnHeavy     = "spawn.heavy"
	KeySpawnRejected  = "spawn.rejected"
	KeyRemoteFailures = "leaderboard.remote_failures"
	KeyRemoteApplied  = "leaderboard.remote_applied"
	KeyRemoteOnline   = "leaderboard.remote_online"
	KeySpectators     = "net.spectators"
)

// Registry is the central metrics facade
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every metric into a flat map keyed by metric name
// Used by the /status endpoint; values are read individually, not as one atomic view
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
