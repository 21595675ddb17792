package calculator

import "fmt"

// EventKind identifies the mutation that produced an event.
type EventKind int

const (
	// EventCalculated follows a successful calculation.
	EventCalculated EventKind = iota

	// EventCleared follows a history clear.
	EventCleared

	// EventUndone follows a successful undo.
	EventUndone

	// EventRedone follows a successful redo.
	EventRedone

	// EventLoaded follows a history load through the gateway.
	EventLoaded
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventCalculated:
		return "calculated"
	case EventCleared:
		return "cleared"
	case EventUndone:
		return "undone"
	case EventRedone:
		return "redone"
	case EventLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// ParseEventKind resolves an event kind name.
func ParseEventKind(name string) (EventKind, bool) {
	for k := EventCalculated; k <= EventLoaded; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Event describes a history mutation.
type Event struct {
	Kind EventKind

	// Snapshot is the history after the mutation.
	Snapshot Snapshot

	// Calculation is set for EventCalculated only.
	Calculation *Calculation
}

// Listener reacts to history events.
type Listener interface {
	OnEvent(event Event) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(event Event) error

// OnEvent calls f(event).
func (f ListenerFunc) OnEvent(event Event) error {
	return f(event)
}

// FailureHandler receives listener failures. Panics are reported as errors.
type FailureHandler func(listener string, event Event, err error)

// Subscription represents a registered listener.
type Subscription struct {
	id   uint64
	name string
	hub  *Hub
}

// Name returns the name the listener was registered under.
func (s *Subscription) Name() string {
	return s.name
}

// Unsubscribe removes the listener. Calling it twice is a no-op.
func (s *Subscription) Unsubscribe() {
	if s.hub != nil {
		s.hub.unsubscribe(s.id)
		s.hub = nil
	}
}

type registration struct {
	id       uint64
	name     string
	listener Listener
}

// Hub fans events out to listeners synchronously, in subscription order.
// A failing listener never stops the others and never reaches the caller.
type Hub struct {
	listeners []registration
	nextID    uint64
	onFailure FailureHandler
}

// NewHub creates a hub. A nil handler discards failures.
func NewHub(onFailure FailureHandler) *Hub {
	return &Hub{onFailure: onFailure}
}

// OnFailure replaces the failure handler.
func (h *Hub) OnFailure(handler FailureHandler) {
	h.onFailure = handler
}

// Subscribe registers a listener.
func (h *Hub) Subscribe(name string, listener Listener) *Subscription {
	id := h.nextID
	h.nextID++
	h.listeners = append(h.listeners, registration{id: id, name: name, listener: listener})
	return &Subscription{id: id, name: name, hub: h}
}

// Len returns the number of registered listeners.
func (h *Hub) Len() int {
	return len(h.listeners)
}

// Notify delivers event to every listener and returns the number of failures.
func (h *Hub) Notify(event Event) int {
	// Listeners may unsubscribe while being notified.
	current := make([]registration, len(h.listeners))
	copy(current, h.listeners)

	failures := 0
	for _, reg := range current {
		if err := h.deliver(reg, event); err != nil {
			failures++
			if h.onFailure != nil {
				h.onFailure(reg.name, event, err)
			}
		}
	}
	return failures
}

func (h *Hub) deliver(reg registration, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener %q panicked: %v", reg.name, r)
		}
	}()
	return reg.listener.OnEvent(event)
}

func (h *Hub) unsubscribe(id uint64) {
	for i, reg := range h.listeners {
		if reg.id == id {
			h.listeners = append(h.listeners[:i:i], h.listeners[i+1:]...)
			return
		}
	}
}
