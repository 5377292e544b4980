// Package event provides a pub-sub event bus for decoupled inter-component
// communication in lazyfeed.
//
// The terminal host turns pane scrolling into [ScrollMovedEvent]s, scroll
// controllers report transitions as [ScrollStateEvent]s, and the feed loader
// announces fetched pages with [FeedPageEvent]s. Publishers do not know who
// listens.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Handlers are called
// synchronously on the publishing goroutine, outside the bus lock, so a
// handler may publish or subscribe. A panicking handler is recovered and
// logged; delivery continues to the remaining handlers.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	id := bus.Subscribe(event.TypeFeedPage, func(e event.Event) {
//	    page := e.(event.FeedPageEvent)
//	    fmt.Printf("fetched %d items\n", page.Items)
//	})
//	defer bus.Unsubscribe(id)
//
//	bus.Publish(event.NewFeedPageEvent(20, 40, true, 15*time.Millisecond))
package event
