package parameter

import (
	"time"
)

// Player
const (
	// PlayerMaxHealth is the health ceiling and the value restored on start/reset
	PlayerMaxHealth = 100
)

// Scoring
const (
	// CombatKillScore is awarded once per destroyed enemy
	CombatKillScore = 100
)

// Loot
const (
	// LootDropRate is the probability that a destroyed enemy drops an item
	LootDropRate = 0.3

	// LootHealBase is the unscaled heal amount of a heal pickup
	LootHealBase = 25

	// LootWeaponDamageMin is the lower bound of the unscaled weapon roll
	LootWeaponDamageMin = 10.0

	// LootWeaponDamageMax is the upper bound of the unscaled weapon roll
	LootWeaponDamageMax = 30.0
)

// Contact damage dealt when an enemy touches the player
const (
	// CombatContactDamageStandard is contact damage of a standard enemy
	CombatContactDamageStandard = 5

	// CombatContactDamageHeavy is contact damage of a heavy enemy
	CombatContactDamageHeavy = 10

	// CombatContactCooldown is the minimum engine time between two contact hits of the same enemy
	CombatContactCooldown = 1 * time.Second
)

// Default weapon restored on start/reset
const (
	DefaultWeaponName   = "Pulse Pistol"
	DefaultWeaponDamage = 10
	DefaultWeaponColor  = "#00ffff"
)

// Weapon drop tables
var (
	// WeaponColors is the palette of dropped weapons
	WeaponColors = []string{"#ff4040", "#40ff40", "#4080ff", "#ffff40", "#ff40ff", "#40ffff"}

	// WeaponPrefixes is the first word of a dropped weapon name
	WeaponPrefixes = []string{"Plasma", "Laser", "Ion", "Photon", "Quantum", "Void"}

	// WeaponSuffixes is the second word of a dropped weapon name
	WeaponSuffixes = []string{"Blaster", "Rifle", "Cannon", "Repeater", "Lance", "Disruptor"}
)
