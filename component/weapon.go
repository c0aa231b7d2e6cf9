package component

// Weapon is the player's current gun
// Damage is fixed per weapon; drops roll it once at pickup
type Weapon struct {
	Name   string `json:"name" msgpack:"name"`
	Damage int    `json:"damage" msgpack:"damage"`
	Color  string `json:"color" msgpack:"color"`
}
