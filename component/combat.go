package component

import (
	"fmt"
	"time"
)

// EnemyKind identifies an enemy archetype
type EnemyKind uint8

const (
	EnemyStandard EnemyKind = iota
	EnemyHeavy
)

var enemyKindNames = [...]string{
	EnemyStandard: "standard",
	EnemyHeavy:    "heavy",
}

func (k EnemyKind) String() string {
	if int(k) < len(enemyKindNames) {
		return enemyKindNames[k]
	}
	return fmt.Sprintf("EnemyKind(%d)", uint8(k))
}

// MarshalText encodes the kind by name for json payloads
func (k EnemyKind) MarshalText() ([]byte, error) {
	if int(k) >= len(enemyKindNames) {
		return nil, fmt.Errorf("unknown enemy kind %d", uint8(k))
	}
	return []byte(enemyKindNames[k]), nil
}

// UnmarshalText accepts "standard" or "heavy"; "elite" is an alias of heavy
func (k *EnemyKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "standard":
		*k = EnemyStandard
	case "heavy", "elite":
		*k = EnemyHeavy
	default:
		return fmt.Errorf("unknown enemy kind %q", text)
	}
	return nil
}

// Enemy is a live hostile entity owned by the engine registry
type Enemy struct {
	ID       uint64    `json:"id" msgpack:"id"`
	Kind     EnemyKind `json:"kind" msgpack:"kind"`
	Position Vec3      `json:"position" msgpack:"position"`
	HP       int       `json:"hp" msgpack:"hp"`
	MaxHP    int       `json:"maxHp" msgpack:"maxHp"`

	// LastContact is the engine time of the last contact hit, zero if never
	LastContact time.Duration `json:"-" msgpack:"-"`
	contacted   bool
}

// CanContact reports whether the contact cooldown has elapsed at engine time now
func (e *Enemy) CanContact(now, cooldown time.Duration) bool {
	return !e.contacted || now-e.LastContact >= cooldown
}

// MarkContact records a contact hit at engine time now
func (e *Enemy) MarkContact(now time.Duration) {
	e.LastContact = now
	e.contacted = true
}
