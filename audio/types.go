package audio

import "fmt"

// Cue identifies a sound effect
type Cue int

const (
	CueHit Cue = iota
	CueKill
	CuePickup
	CueDamage
	CueGameOver

	// CueCount is the number of cues
	CueCount
)

var cueNames = [CueCount]string{
	CueHit:      "hit",
	CueKill:     "kill",
	CuePickup:   "pickup",
	CueDamage:   "damage",
	CueGameOver: "gameover",
}

func (c Cue) String() string {
	if c >= 0 && c < CueCount {
		return cueNames[c]
	}
	return fmt.Sprintf("Cue(%d)", int(c))
}
