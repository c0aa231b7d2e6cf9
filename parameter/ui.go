package parameter

import "time"

// Layout & Margins
const (
	// TopMargin holds the status bar (score, health, weapon)
	TopMargin = 2

	// BottomMargin holds the message line and key hints
	BottomMargin = 2

	// HealthBarWidth is the cell width of the health gauge
	HealthBarWidth = 20

	// MenuScoreRows is the number of leaderboard rows on the menu screen
	MenuScoreRows = LeaderboardSize
)

// UI Symbols
const (
	GlyphPlayer    = '@'
	GlyphStandard  = 'x'
	GlyphHeavy     = 'X'
	GlyphHeal      = '+'
	GlyphWeapon    = '*'
	GlyphWall      = '#'
	GlyphHealthOn  = '█'
	GlyphHealthOff = '░'
	AudioStr       = "♫ "
)

// Arena mirror of the terminal driver
// Bodies live in world units on the XZ plane, the same space enemies spawn in
const (
	// ArenaPlayerStep is player movement per key press in world units
	ArenaPlayerStep = 1.0

	// ArenaStandardSpeed is the chase speed of standard enemies, units per second
	ArenaStandardSpeed = 3.0

	// ArenaHeavySpeed is the chase speed of heavy enemies, units per second
	ArenaHeavySpeed = 1.5

	// ArenaContactRadius is the distance at which an enemy touches the player
	ArenaContactRadius = 1.5

	// ArenaPickupRadius is the auto-pickup distance for items
	ArenaPickupRadius = 3.0

	// ArenaFireRange is the maximum distance of an auto-aimed shot
	ArenaFireRange = 30.0

	// ArenaFireCooldown is the minimum time between two shots
	ArenaFireCooldown = 250 * time.Millisecond
)

// Input
const (
	// InputEventBuffer is the capacity of the terminal event channel
	InputEventBuffer = 100
)
