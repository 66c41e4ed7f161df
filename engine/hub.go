package engine

import (
	"sync"
	"time"
)

// EventKind identifies an environment signal class
type EventKind uint8

const (
	EventPointerMove EventKind = iota
	EventResize
	EventVisibility
)

// Event is one environment signal. Fields beyond Kind are populated per
// kind: X/Y for pointer, Width/Height for resize, Visible for visibility.
type Event struct {
	Kind    EventKind
	X, Y    int
	Width   int
	Height  int
	Visible bool
	When    time.Time
}

// Handler consumes a dispatched event
type Handler func(Event)

// Disposer removes one subscription; calling it more than once is safe
type Disposer func()

// Hub fans environment events out to subscribers. Subscriptions are
// explicit and return disposer handles so teardown can deterministically
// remove every registered callback.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[EventKind]map[int]Handler
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[EventKind]map[int]Handler)}
}

// Subscribe registers fn for events of the given kind
func (h *Hub) Subscribe(kind EventKind, fn Handler) Disposer {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[kind] == nil {
		h.subs[kind] = make(map[int]Handler)
	}
	id := h.next
	h.next++
	h.subs[kind][id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if m := h.subs[kind]; m != nil {
			delete(m, id)
		}
	}
}

// Dispatch delivers ev to every subscriber of its kind
func (h *Hub) Dispatch(ev Event) {
	h.mu.Lock()
	handlers := make([]Handler, 0, len(h.subs[ev.Kind]))
	for _, fn := range h.subs[ev.Kind] {
		handlers = append(handlers, fn)
	}
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Count returns the number of live subscriptions
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, m := range h.subs {
		n += len(m)
	}
	return n
}

// Destroy drops every subscription
func (h *Hub) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = make(map[EventKind]map[int]Handler)
}
