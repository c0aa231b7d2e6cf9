package audio

import (
	"github.com/lixenwraith/planetfall/event"
)

// Player plays cues; *SoundManager satisfies it
type Player interface {
	Play(cue Cue)
}

// Handler maps engine notifications to sound cues
type Handler struct {
	player Player
}

// NewHandler creates an audio event handler
func NewHandler(p Player) *Handler {
	return &Handler{player: p}
}

// EventTypes returns the notifications that trigger a cue
func (h *Handler) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEnemyHit,
		event.EventEnemyKilled,
		event.EventItemPickedUp,
		event.EventPlayerDamaged,
		event.EventGameOver,
	}
}

// HandleEvent plays the cue for ev
func (h *Handler) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventEnemyHit:
		h.player.Play(CueHit)
	case event.EventEnemyKilled:
		h.player.Play(CueKill)
	case event.EventItemPickedUp:
		h.player.Play(CuePickup)
	case event.EventPlayerDamaged:
		// Lethal damage is voiced by the game over cue
		if p, ok := ev.Payload.(*event.PlayerDamagedPayload); ok && p.Health == 0 {
			return
		}
		h.player.Play(CueDamage)
	case event.EventGameOver:
		h.player.Play(CueGameOver)
	}
}
