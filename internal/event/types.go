package event

import (
	"time"

	"github.com/Iron-Ham/lazyfeed/internal/scroll"
)

// Event types published by lazyfeed components.
const (
	TypeScrollMoved = "scroll.moved"
	TypeScrollState = "scroll.state"
	TypeFeedPage    = "feed.page"
)

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "scroll.moved", "feed.page")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Scroll Events
// -----------------------------------------------------------------------------

// ScrollMovedEvent is emitted when the offset of a scroll target changes.
type ScrollMovedEvent struct {
	baseEvent
	Target scroll.Target // Target whose offset changed
	Offset int           // New offset in rows
}

// NewScrollMovedEvent creates a ScrollMovedEvent.
func NewScrollMovedEvent(target scroll.Target, offset int) ScrollMovedEvent {
	return ScrollMovedEvent{
		baseEvent: newBaseEvent(TypeScrollMoved),
		Target:    target,
		Offset:    offset,
	}
}

// ScrollStateEvent is emitted when a scroll controller's state changes.
type ScrollStateEvent struct {
	baseEvent
	ControllerID string
	State        scroll.State
}

// NewScrollStateEvent creates a ScrollStateEvent.
func NewScrollStateEvent(controllerID string, state scroll.State) ScrollStateEvent {
	return ScrollStateEvent{
		baseEvent:    newBaseEvent(TypeScrollState),
		ControllerID: controllerID,
		State:        state,
	}
}

// -----------------------------------------------------------------------------
// Feed Events
// -----------------------------------------------------------------------------

// FeedPageEvent is emitted when a page of feed items has been fetched.
type FeedPageEvent struct {
	baseEvent
	Items    int           // Number of items in the page
	Cursor   uint          // Cursor after the page
	HasMore  bool          // Whether more pages exist
	Duration time.Duration // How long the fetch took
}

// NewFeedPageEvent creates a FeedPageEvent.
func NewFeedPageEvent(items int, cursor uint, hasMore bool, duration time.Duration) FeedPageEvent {
	return FeedPageEvent{
		baseEvent: newBaseEvent(TypeFeedPage),
		Items:     items,
		Cursor:    cursor,
		HasMore:   hasMore,
		Duration:  duration,
	}
}
