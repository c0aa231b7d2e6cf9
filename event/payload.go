package event

import (
	"github.com/lixenwraith/planetfall/component"
)

// --- Command payloads ---

// AddScorePayload contains points to add
type AddScorePayload struct {
	Amount int `json:"amount"`
}

// TakeDamagePayload contains health to subtract
type TakeDamagePayload struct {
	Amount int `json:"amount"`
}

// SetLastMessagePayload contains the replacement message
type SetLastMessagePayload struct {
	Text string `json:"text"`
}

// SpawnEnemyPayload selects the archetype to spawn
type SpawnEnemyPayload struct {
	Kind component.EnemyKind `json:"kind"`
}

// HitEnemyPayload targets an enemy with damage
type HitEnemyPayload struct {
	ID     uint64 `json:"id"`
	Damage int    `json:"damage"`
}

// PickupItemPayload targets an item
type PickupItemPayload struct {
	ID uint64 `json:"id"`
}

// SaveHighScorePayload carries the player name for the leaderboard
type SaveHighScorePayload struct {
	Name string `json:"name"`
}

// EnemyContactPayload identifies the enemy touching the player
type EnemyContactPayload struct {
	ID uint64 `json:"id"`
}

// EnemyMovedPayload carries the latest physics position of an enemy
type EnemyMovedPayload struct {
	ID       uint64         `json:"id"`
	Position component.Vec3 `json:"position"`
}

// --- Notification payloads ---

// GameOverPayload carries the final score
type GameOverPayload struct {
	Score int
}

// EnemySpawnedPayload describes a new enemy
type EnemySpawnedPayload struct {
	ID   uint64
	Kind component.EnemyKind
	HP   int
}

// EnemyHitPayload describes non-lethal damage
type EnemyHitPayload struct {
	ID     uint64
	Damage int
	HP     int // Remaining
}

// EnemyKilledPayload describes a destroyed enemy
type EnemyKilledPayload struct {
	ID       uint64
	Kind     component.EnemyKind
	Position component.Vec3
}

// LootDroppedPayload describes a new item
type LootDroppedPayload struct {
	ID       uint64
	Kind     component.ItemKind
	Position component.Vec3
}

// ItemPickedUpPayload describes a collected item
type ItemPickedUpPayload struct {
	ID   uint64
	Kind component.ItemKind
}

// PlayerDamagedPayload describes health loss
type PlayerDamagedPayload struct {
	Amount int
	Health int
}

// PlayerHealedPayload describes health gain, Amount is the scaled heal before clamping
type PlayerHealedPayload struct {
	Amount int
	Health int
}

// WeaponChangedPayload carries the new weapon
type WeaponChangedPayload struct {
	Weapon component.Weapon
}

// HighScoreSavedPayload describes the local insert
type HighScoreSavedPayload struct {
	Name  string
	Score int
}

// LeaderboardUpdatedPayload describes an applied remote result
type LeaderboardUpdatedPayload struct {
	Entries int
	Session uint64 // Session generation that launched the remote task
}
