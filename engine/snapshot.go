package engine

import (
	"github.com/lixenwraith/planetfall/component"
	"github.com/lixenwraith/planetfall/leaderboard"
)

// Snapshot is an immutable copy of engine state published once per tick
// Renderers and the spectator feed read it from any goroutine
type Snapshot struct {
	Frame       int64               `json:"frame" msgpack:"frame"`
	Session     uint64              `json:"session" msgpack:"session"`
	Lifecycle   Lifecycle           `json:"lifecycle" msgpack:"lifecycle"`
	Score       int                 `json:"score" msgpack:"score"`
	Health      int                 `json:"health" msgpack:"health"`
	Weapon      component.Weapon    `json:"weapon" msgpack:"weapon"`
	LastMessage string              `json:"lastMessage" msgpack:"lastMessage"`
	Multiplier  float64             `json:"multiplier" msgpack:"multiplier"`
	Enemies     []component.Enemy   `json:"enemies" msgpack:"enemies"`
	Items       []component.Item    `json:"items" msgpack:"items"`
	HighScores  []leaderboard.Entry `json:"highScores" msgpack:"highScores"`
	Qualifies   bool                `json:"qualifies" msgpack:"qualifies"`
}

// Enemy returns the enemy with id from the snapshot
func (s *Snapshot) Enemy(id uint64) (component.Enemy, bool) {
	for _, e := range s.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return component.Enemy{}, false
}
