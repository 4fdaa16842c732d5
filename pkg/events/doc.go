// Package events is the event-source side of the notification system.
//
// An Event is one occurrence of a named domain event ("commentFeatured",
// "commentAdded") carrying a JSON payload. Consumers subscribe with
// Source.On; producers publish with Publisher.Publish.
//
// Two sources are provided:
//
//   - MemoryBus delivers events in-process. Publish invokes every listener
//     registered for the event name concurrently and returns once all of them
//     have finished, so callers (and tests) observe the full effect of an
//     occurrence.
//   - RedisSource subscribes to Redis pub/sub channels "<prefix><name>" and
//     hands each message to the registered listeners in its own goroutine.
//     RedisPublisher writes the matching envelope.
//
// A panicking listener is recovered and logged; it never affects other
// listeners or later events.
//
//	bus := events.NewMemoryBus(events.WithLogger(log))
//	bus.On("commentFeatured", func(ctx context.Context, evt events.Event) {
//	    var p struct{ Comment struct{ ID string } }
//	    _ = evt.Decode(&p)
//	})
//	_ = bus.Publish(ctx, "commentFeatured", map[string]any{"comment": map[string]any{"id": "c1"}})
package events
