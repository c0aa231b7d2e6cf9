package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

var (
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
	registryOnce  sync.Once
)

// RegisterType maps a string name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct (e.g., &HitEnemyPayload{})
// Pass nil if the event has no payload
func RegisterType(name string, et EventType, payloadInstance any) {
	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	InitRegistry()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	InitRegistry()
	if name, ok := typeToName[et]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(et))
}

// NewPayloadStruct returns a new pointer to a zero-value payload struct for the event type
// Returns nil if no payload is registered
func NewPayloadStruct(et EventType) any {
	InitRegistry()
	t, ok := typeToPayload[et]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

// DecodeCommand builds a command event from its registered name and a json payload
// Notifications and unknown names are rejected
func DecodeCommand(name string, raw json.RawMessage) (GameEvent, error) {
	et, ok := GetEventType(name)
	if !ok {
		return GameEvent{}, fmt.Errorf("unknown event %q", name)
	}
	if !IsCommand(et) {
		return GameEvent{}, fmt.Errorf("event %q is not a command", name)
	}

	payload := NewPayloadStruct(et)
	if payload != nil {
		if len(raw) == 0 {
			return GameEvent{}, fmt.Errorf("event %q: missing payload", name)
		}
		if err := json.Unmarshal(raw, payload); err != nil {
			return GameEvent{}, fmt.Errorf("event %q: %w", name, err)
		}
	}
	return GameEvent{Type: et, Payload: payload}, nil
}

// InitRegistry populates the registry with all engine events
// Safe to call repeatedly; lookups call it implicitly
func InitRegistry() {
	registryOnce.Do(func() {
		// Commands
		RegisterType("StartGame", EventStartGame, nil)
		RegisterType("ResetGame", EventResetGame, nil)
		RegisterType("AddScore", EventAddScore, &AddScorePayload{})
		RegisterType("TakeDamage", EventTakeDamage, &TakeDamagePayload{})
		RegisterType("SetLastMessage", EventSetLastMessage, &SetLastMessagePayload{})
		RegisterType("SpawnEnemy", EventSpawnEnemy, &SpawnEnemyPayload{})
		RegisterType("HitEnemy", EventHitEnemy, &HitEnemyPayload{})
		RegisterType("PickupItem", EventPickupItem, &PickupItemPayload{})
		RegisterType("SaveHighScore", EventSaveHighScore, &SaveHighScorePayload{})
		RegisterType("EnemyContact", EventEnemyContact, &EnemyContactPayload{})
		RegisterType("EnemyMoved", EventEnemyMoved, &EnemyMovedPayload{})

		// Notifications
		RegisterType("GameStarted", EventGameStarted, nil)
		RegisterType("GameReset", EventGameReset, nil)
		RegisterType("GameOver", EventGameOver, &GameOverPayload{})
		RegisterType("EnemySpawned", EventEnemySpawned, &EnemySpawnedPayload{})
		RegisterType("EnemyHit", EventEnemyHit, &EnemyHitPayload{})
		RegisterType("EnemyKilled", EventEnemyKilled, &EnemyKilledPayload{})
		RegisterType("LootDropped", EventLootDropped, &LootDroppedPayload{})
		RegisterType("ItemPickedUp", EventItemPickedUp, &ItemPickedUpPayload{})
		RegisterType("PlayerDamaged", EventPlayerDamaged, &PlayerDamagedPayload{})
		RegisterType("PlayerHealed", EventPlayerHealed, &PlayerHealedPayload{})
		RegisterType("WeaponChanged", EventWeaponChanged, &WeaponChangedPayload{})
		RegisterType("HighScoreSaved", EventHighScoreSaved, &HighScoreSavedPayload{})
		RegisterType("LeaderboardUpdated", EventLeaderboardUpdated, &LeaderboardUpdatedPayload{})
	})
}
