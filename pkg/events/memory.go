package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// MemoryBus is an in-process Source and Publisher. It is safe for concurrent use.
type MemoryBus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	logger    *slog.Logger
}

// NewMemoryBus creates an empty in-process bus.
func NewMemoryBus(opts ...Option) *MemoryBus {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &MemoryBus{
		listeners: make(map[string][]Listener),
		logger:    o.logger,
	}
}

// On subscribes l to events named name.
func (b *MemoryBus) On(name string, l Listener) {
	if name == "" || l == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[name] = append(b.listeners[name], l)
}

// Names returns the event names that have at least one listener, sorted.
func (b *MemoryBus) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.listeners))
	for name := range b.listeners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether any listener is subscribed to name.
func (b *MemoryBus) Has(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name]) > 0
}

// Publish builds an Event from payload and emits it.
func (b *MemoryBus) Publish(ctx context.Context, name string, payload any) error {
	evt, err := New(name, payload)
	if err != nil {
		return err
	}
	b.Emit(ctx, evt)
	return nil
}

// Emit runs every listener subscribed to evt.Name concurrently and waits for
// all of them to return.
func (b *MemoryBus) Emit(ctx context.Context, evt Event) {
	b.mu.RLock()
	ls := slices.Clone(b.listeners[evt.Name])
	b.mu.RUnlock()

	if len(ls) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, l := range ls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			invoke(ctx, b.logger, l, evt)
		}()
	}
	wg.Wait()
}
