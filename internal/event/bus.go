package event

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"github.com/Iron-Ham/lazyfeed/internal/logging"
)

// Handler is a function that handles an event.
type Handler func(Event)

// wildcard is the pseudo event type used by SubscribeAll.
const wildcard = "*"

// subscription represents a registered event handler.
type subscription struct {
	id        string
	eventType string
	handler   Handler
}

// Bus is a simple synchronous pub-sub event bus.
// It allows components to communicate without direct dependencies.
type Bus struct {
	mu            sync.RWMutex
	subscriptions map[string][]subscription // eventType -> subscriptions
	logger        *logging.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used to report handler panics.
func WithLogger(logger *logging.Logger) BusOption {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger.WithComponent("event")
		}
	}
}

// NewBus creates a new event bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		subscriptions: make(map[string][]subscription),
		logger:        logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for a specific event type.
// Returns a subscription ID that can be used to unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	b.subscriptions[eventType] = append(b.subscriptions[eventType], subscription{
		id:        id,
		eventType: eventType,
		handler:   handler,
	})
	return id
}

// SubscribeAll registers a handler for all event types.
// The handler will be called for every published event.
// Returns a subscription ID that can be used to unsubscribe.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(wildcard, handler)
}

// Unsubscribe removes a subscription by ID.
// Returns true if the subscription was found and removed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subscriptions {
		for i, sub := range subs {
			if sub.id != id {
				continue
			}
			remaining := make([]subscription, 0, len(subs)-1)
			remaining = append(remaining, subs[:i]...)
			remaining = append(remaining, subs[i+1:]...)
			if len(remaining) == 0 {
				delete(b.subscriptions, eventType)
			} else {
				b.subscriptions[eventType] = remaining
			}
			return true
		}
	}
	return false
}

// Publish dispatches an event to all registered handlers.
// Specific handlers (subscribed to this event type) are called first,
// followed by wildcard handlers (subscribed via SubscribeAll).
// Within each group, handlers are called in registration order.
// If a handler panics, the panic is logged, recovered, and publishing
// continues to remaining handlers.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	eventType := event.EventType()

	specificSubs := make([]subscription, len(b.subscriptions[eventType]))
	copy(specificSubs, b.subscriptions[eventType])

	wildcardSubs := make([]subscription, len(b.subscriptions[wildcard]))
	copy(wildcardSubs, b.subscriptions[wildcard])

	b.mu.RUnlock()

	for _, sub := range specificSubs {
		b.safeCall(sub.handler, event)
	}
	for _, sub := range wildcardSubs {
		b.safeCall(sub.handler, event)
	}
}

// safeCall invokes a handler and recovers from any panics.
func (b *Bus) safeCall(handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"event_type", event.EventType(),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	handler(event)
}

// Clear removes all subscriptions.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions = make(map[string][]subscription)
}

// SubscriptionCount returns the total number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subscriptions {
		count += len(subs)
	}
	return count
}
