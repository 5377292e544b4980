package scroll

// Subscription is an opaque handle for a scroll subscription. The host
// chooses its representation; the controller only hands it back.
type Subscription string

// Host supplies everything the controller needs from the environment that
// renders the scrollable surface.
//
// Implementations must not call back into the Controller from Measure or
// Unsubscribe. Handlers passed to SubscribeScroll may be invoked from any
// goroutine.
type Host interface {
	// SubscribeScroll arranges for handler to be called on every scroll of
	// target and returns a handle for Unsubscribe.
	SubscribeScroll(target Target, handler func()) Subscription
	// Unsubscribe releases a subscription. Unknown handles are ignored.
	Unsubscribe(sub Subscription)
	// Measure returns the current geometry of target. ok is false when the
	// target is not available, for example after it was removed.
	Measure(target Target) (m Metrics, ok bool)
}
