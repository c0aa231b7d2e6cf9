package engine

import (
	"fmt"
	"math"

	"github.com/lixenwraith/planetfall/component"
	"github.com/lixenwraith/planetfall/parameter"
)

// Lifecycle is the session phase
type Lifecycle uint8

const (
	LifecycleMenu Lifecycle = iota
	LifecyclePlaying
	LifecycleGameOver
)

var lifecycleNames = [...]string{
	LifecycleMenu:     "menu",
	LifecyclePlaying:  "playing",
	LifecycleGameOver: "gameover",
}

func (l Lifecycle) String() string {
	if int(l) < len(lifecycleNames) {
		return lifecycleNames[l]
	}
	return fmt.Sprintf("Lifecycle(%d)", uint8(l))
}

// MarshalText encodes the lifecycle by name for json and msgpack snapshots
func (l Lifecycle) MarshalText() ([]byte, error) {
	if int(l) >= len(lifecycleNames) {
		return nil, fmt.Errorf("unknown lifecycle %d", uint8(l))
	}
	return []byte(lifecycleNames[l]), nil
}

// UnmarshalText decodes a lifecycle name
func (l *Lifecycle) UnmarshalText(text []byte) error {
	for i, name := range lifecycleNames {
		if name == string(text) {
			*l = Lifecycle(i)
			return nil
		}
	}
	return fmt.Errorf("unknown lifecycle %q", text)
}

// DefaultWeapon is the weapon every session starts with
func DefaultWeapon() component.Weapon {
	return component.Weapon{
		Name:   parameter.DefaultWeaponName,
		Damage: parameter.DefaultWeaponDamage,
		Color:  parameter.DefaultWeaponColor,
	}
}

// GameState is the authoritative session state
// Owned by Engine and mutated only on the simulation thread; the transition
// methods below keep the health and lifecycle invariants
type GameState struct {
	Lifecycle   Lifecycle
	Score       int
	Health      int // [0, PlayerMaxHealth], zero implies LifecycleGameOver
	Weapon      component.Weapon
	LastMessage string
}

// NewGameState returns the app-start state: menu, full health, default weapon
func NewGameState() GameState {
	return GameState{
		Lifecycle: LifecycleMenu,
		Health:    parameter.PlayerMaxHealth,
		Weapon:    DefaultWeapon(),
	}
}

// reset restores session values and enters the given lifecycle
func (gs *GameState) reset(lc Lifecycle, greeting string) {
	gs.Lifecycle = lc
	gs.Score = 0
	gs.Health = parameter.PlayerMaxHealth
	gs.Weapon = DefaultWeapon()
	gs.LastMessage = greeting
}

// AddScore adds a non-negative amount, saturating at math.MaxInt
func (gs *GameState) AddScore(amount int) {
	if amount <= 0 {
		return
	}
	if amount > math.MaxInt-gs.Score {
		gs.Score = math.MaxInt
		return
	}
	gs.Score += amount
}

// TakeDamage clamps health at zero and reports whether this call ended the session
func (gs *GameState) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	gs.Health -= amount
	if gs.Health < 0 {
		gs.Health = 0
	}
	if gs.Health == 0 && gs.Lifecycle != LifecycleGameOver {
		gs.Lifecycle = LifecycleGameOver
		return true
	}
	return false
}

// Heal raises health, capped at PlayerMaxHealth
func (gs *GameState) Heal(amount int) {
	if amount <= 0 {
		return
	}
	gs.Health += amount
	if gs.Health > parameter.PlayerMaxHealth {
		gs.Health = parameter.PlayerMaxHealth
	}
}
