package parameter

import "time"

// Spawn cadence, measured in engine time accumulated from frame deltas
const (
	// SpawnStandardInterval is the cadence of standard enemy spawn attempts
	SpawnStandardInterval = 2 * time.Second

	// SpawnHeavyDelay is the play time before the first heavy enemy
	SpawnHeavyDelay = 15 * time.Second

	// SpawnHeavyInterval is the cadence of heavy spawns after the first one
	SpawnHeavyInterval = 30 * time.Second
)

// Population
const (
	// SpawnMaxStandard caps concurrently live standard enemies
	SpawnMaxStandard = 20
)

// Spawn region: square centered on origin
const (
	SpawnHalfExtent = 25.0
	SpawnHeight     = 2.0
)

// Base hit points before difficulty scaling
const (
	SpawnBaseHPStandard = 30
	SpawnBaseHPHeavy    = 200
)
