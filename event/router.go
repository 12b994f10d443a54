package event

// Handler processes specific event types
// Systems implement this interface to receive routed events
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase
	HandleEvent(ev GameEvent)

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
//   - Events emitted by handlers are dispatched in the same DispatchAll call
type Router struct {
	handlers map[EventType][]Handler
	queue    *EventQueue
}

// maxDispatchRounds bounds handler-emitted event cascades per dispatch
const maxDispatchRounds = 8

// NewRouter creates a router attached to the given queue
func NewRouter(queue *EventQueue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes to handlers
// Events are processed in FIFO order; returns the number dispatched
func (r *Router) DispatchAll() int {
	total := 0
	for round := 0; round < maxDispatchRounds; round++ {
		events := r.queue.Consume()
		if len(events) == 0 {
			break
		}
		for _, ev := range events {
			for _, h := range r.handlers[ev.Type] {
				h.HandleEvent(ev)
			}
		}
		total += len(events)
	}
	return total
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
