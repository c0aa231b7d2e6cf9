package event

// EventType represents the type of engine event
// Commands flow into the engine; notifications flow out of it once per tick
type EventType int

const (
	// EventTick is the zero value, never pushed
	EventTick EventType = iota

	// === Commands ===

	// EventStartGame starts a new session from any lifecycle
	// Payload: nil
	EventStartGame

	// EventResetGame abandons the session and returns to menu
	// Payload: nil
	EventResetGame

	// EventAddScore adds points to the score
	// Payload: *AddScorePayload
	EventAddScore

	// EventTakeDamage subtracts health, may end the session
	// Payload: *TakeDamagePayload
	EventTakeDamage

	// EventSetLastMessage overwrites the transient message
	// Payload: *SetLastMessagePayload
	EventSetLastMessage

	// EventSpawnEnemy requests a spawn, subject to population caps
	// Payload: *SpawnEnemyPayload
	EventSpawnEnemy

	// EventHitEnemy applies weapon damage to an enemy
	// Payload: *HitEnemyPayload
	EventHitEnemy

	// EventPickupItem collects an item
	// Payload: *PickupItemPayload
	EventPickupItem

	// EventSaveHighScore records the current score on the leaderboard
	// Payload: *SaveHighScorePayload
	EventSaveHighScore

	// EventEnemyContact reports an enemy touching the player
	// Payload: *EnemyContactPayload
	EventEnemyContact

	// EventEnemyMoved reports the physics position of an enemy body
	// Payload: *EnemyMovedPayload
	EventEnemyMoved

	// commandEnd bounds the command range
	commandEnd
)

const (
	// === Notifications ===
	// Offset keeps notifications out of the command range

	// EventGameStarted is emitted by StartGame
	// Payload: nil
	EventGameStarted EventType = iota + 100

	// EventGameReset is emitted by ResetGame
	// Payload: nil
	EventGameReset

	// EventGameOver is emitted when health reaches zero
	// Payload: *GameOverPayload
	EventGameOver

	// EventEnemySpawned is emitted for every accepted spawn
	// Payload: *EnemySpawnedPayload
	EventEnemySpawned

	// EventEnemyHit is emitted when damage leaves the enemy alive
	// Payload: *EnemyHitPayload
	EventEnemyHit

	// EventEnemyKilled is emitted once per destroyed enemy
	// Payload: *EnemyKilledPayload
	EventEnemyKilled

	// EventLootDropped is emitted when a kill spawns an item
	// Payload: *LootDroppedPayload
	EventLootDropped

	// EventItemPickedUp is emitted when an item is collected
	// Payload: *ItemPickedUpPayload
	EventItemPickedUp

	// EventPlayerDamaged is emitted by TakeDamage
	// Payload: *PlayerDamagedPayload
	EventPlayerDamaged

	// EventPlayerHealed is emitted by heal pickups
	// Payload: *PlayerHealedPayload
	EventPlayerHealed

	// EventWeaponChanged is emitted by weapon pickups
	// Payload: *WeaponChangedPayload
	EventWeaponChanged

	// EventHighScoreSaved is emitted after the local leaderboard insert
	// Payload: *HighScoreSavedPayload
	EventHighScoreSaved

	// EventLeaderboardUpdated is emitted when a remote result replaces the local view
	// Payload: *LeaderboardUpdatedPayload
	EventLeaderboardUpdated
)

// IsCommand reports whether et may be submitted to the engine
func IsCommand(et EventType) bool {
	return et > EventTick && et < commandEnd
}

// GameEvent is a command or notification with its payload
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64 // Engine frame that produced or will apply the event
}
