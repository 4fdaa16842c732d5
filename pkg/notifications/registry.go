package notifications

import (
	"fmt"
	"slices"
	"sync"
)

type entry struct {
	handler Handler
	rank    int
}

// Registry holds handlers grouped by event name. Handlers are registered
// at startup; once the registry is attached no more can be added.
type Registry struct {
	mu       sync.RWMutex
	entries  []entry
	byEvent  map[string][]entry
	attached bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byEvent: make(map[string][]entry)}
}

// Register appends handlers in order. Nothing is registered when any of them
// is invalid or duplicates an existing (category, event) pair.
func (r *Registry) Register(handlers ...Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.attached {
		return ErrRegistryAttached
	}

	seen := make(map[[2]string]struct{}, len(r.entries)+len(handlers))
	for _, e := range r.entries {
		seen[[2]string{e.handler.Category(), e.handler.Event()}] = struct{}{}
	}
	for _, h := range handlers {
		if h == nil || h.Category() == "" || h.Event() == "" {
			return ErrInvalidHandler
		}
		key := [2]string{h.Category(), h.Event()}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateHandler, key[0], key[1])
		}
		seen[key] = struct{}{}
	}

	for _, h := range handlers {
		e := entry{handler: h, rank: len(r.entries)}
		r.entries = append(r.entries, e)
		r.byEvent[h.Event()] = append(r.byEvent[h.Event()], e)
	}
	return nil
}

// GroupedByEvent returns handlers keyed by event name in registration order.
func (r *Registry) GroupedByEvent() map[string][]Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]Handler, len(r.byEvent))
	for event, es := range r.byEvent {
		hs := make([]Handler, len(es))
		for i, e := range es {
			hs[i] = e.handler
		}
		out[event] = hs
	}
	return out
}

// Events returns the subscribed event names, sorted.
func (r *Registry) Events() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byEvent))
	for name := range r.byEvent {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) forEvent(event string) []entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byEvent[event]
}

func (r *Registry) seal() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.attached {
		return ErrRegistryAttached
	}
	r.attached = true
	return nil
}
