package component

import "fmt"

// ItemKind identifies a collectible dropped by a destroyed enemy
type ItemKind uint8

const (
	ItemHeal ItemKind = iota
	ItemWeaponDrop
	// Sentinel for uniform rolls
	ItemKindCount
)

var itemKindNames = [...]string{
	ItemHeal:       "heal",
	ItemWeaponDrop: "weaponDrop",
}

func (k ItemKind) String() string {
	if k < ItemKindCount {
		return itemKindNames[k]
	}
	return fmt.Sprintf("ItemKind(%d)", uint8(k))
}

// MarshalText encodes the kind by name for json payloads
func (k ItemKind) MarshalText() ([]byte, error) {
	if k >= ItemKindCount {
		return nil, fmt.Errorf("unknown item kind %d", uint8(k))
	}
	return []byte(itemKindNames[k]), nil
}

// UnmarshalText accepts "heal" or "weaponDrop"
func (k *ItemKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "heal":
		*k = ItemHeal
	case "weaponDrop":
		*k = ItemWeaponDrop
	default:
		return fmt.Errorf("unknown item kind %q", text)
	}
	return nil
}

// Item is a collectible lying in the world
type Item struct {
	ID       uint64   `json:"id" msgpack:"id"`
	Kind     ItemKind `json:"kind" msgpack:"kind"`
	Position Vec3     `json:"position" msgpack:"position"`
}
