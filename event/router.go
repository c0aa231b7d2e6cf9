package event

// Handler processes specific event types
// Audio and network collaborators implement this to observe engine notifications
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously on the simulation thread at the end of a tick
	HandleEvent(event GameEvent)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []EventType
}

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type Router struct {
	handlers map[EventType][]Handler
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Dispatch routes events to handlers in FIFO order
// All handlers for an event are called before moving to the next event
func (r *Router) Dispatch(events []GameEvent) {
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router) HasHandlers(t EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
