package engine

import (
	"github.com/lixenwraith/planetfall/event"
	"github.com/lixenwraith/planetfall/status"
)

// scriptedRand replays fixed draws, cycling when exhausted
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

// recorder collects emitted notifications
type recorder struct {
	events []event.GameEvent
}

func (r *recorder) emit(t event.EventType, payload any) {
	r.events = append(r.events, event.GameEvent{Type: t, Payload: payload})
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// collectingHandler records routed notifications
type collectingHandler struct {
	types  []event.EventType
	events []event.GameEvent
}

func (h *collectingHandler) HandleEvent(ev event.GameEvent) {
	h.events = append(h.events, ev)
}

func (h *collectingHandler) EventTypes() []event.EventType {
	return h.types
}

func newTestCombat(rng Rand) (*Combat, *Registry, *recorder) {
	reg := NewRegistry()
	rec := &recorder{}
	return NewCombat(reg, rng, status.NewRegistry(), rec.emit), reg, rec
}
