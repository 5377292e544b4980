package testutil

import (
	"fmt"
	"sync"

	"github.com/Iron-Ham/lazyfeed/internal/scroll"
)

// FakeHost is a scriptable scroll.Host. Tests set metrics per target and
// call Notify or ScrollTo to simulate scroll events.
type FakeHost struct {
	mu          sync.Mutex
	metrics     map[scroll.Target]scroll.Metrics
	unavailable map[scroll.Target]bool
	subs        map[scroll.Subscription]fakeSub
	seq         int
	subscribed  int
	released    int
	measures    int
}

type fakeSub struct {
	target  scroll.Target
	handler func()
}

var _ scroll.Host = (*FakeHost)(nil)

// NewFakeHost returns a host with no targets.
func NewFakeHost() *FakeHost {
	return &FakeHost{
		metrics:     make(map[scroll.Target]scroll.Metrics),
		unavailable: make(map[scroll.Target]bool),
		subs:        make(map[scroll.Subscription]fakeSub),
	}
}

// SetMetrics sets the geometry reported for target and marks it available.
func (h *FakeHost) SetMetrics(target scroll.Target, m scroll.Metrics) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.metrics[target] = m
	delete(h.unavailable, target)
}

// SetContent sets the content and viewport extents for target, keeping the
// current offset.
func (h *FakeHost) SetContent(target scroll.Target, scrollExtent, viewportExtent float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.metrics[target]
	m.ScrollExtent = scrollExtent
	m.ViewportExtent = viewportExtent
	h.metrics[target] = m
	delete(h.unavailable, target)
}

// Remove makes target unavailable to Measure.
func (h *FakeHost) Remove(target scroll.Target) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unavailable[target] = true
}

// ScrollTo sets the offset of target and notifies its subscribers.
func (h *FakeHost) ScrollTo(target scroll.Target, offset float64) {
	h.mu.Lock()
	m := h.metrics[target]
	m.Offset = offset
	h.metrics[target] = m
	h.mu.Unlock()

	h.Notify(target)
}

// Notify invokes every handler subscribed to target.
func (h *FakeHost) Notify(target scroll.Target) {
	h.mu.Lock()
	var handlers []func()
	for _, s := range h.subs {
		if s.target == target {
			handlers = append(handlers, s.handler)
		}
	}
	h.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// SubscribeScroll implements scroll.Host.
func (h *FakeHost) SubscribeScroll(target scroll.Target, handler func()) scroll.Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	sub := scroll.Subscription(fmt.Sprintf("sub-%d", h.seq))
	h.subs[sub] = fakeSub{target: target, handler: handler}
	h.subscribed++
	return sub
}

// Unsubscribe implements scroll.Host.
func (h *FakeHost) Unsubscribe(sub scroll.Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		h.released++
	}
}

// Measure implements scroll.Host.
func (h *FakeHost) Measure(target scroll.Target) (scroll.Metrics, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.measures++
	if h.unavailable[target] {
		return scroll.Metrics{}, false
	}
	m, ok := h.metrics[target]
	return m, ok
}

// Subscribers returns the number of live subscriptions on target.
func (h *FakeHost) Subscribers(target scroll.Target) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, s := range h.subs {
		if s.target == target {
			n++
		}
	}
	return n
}

// Active returns the number of live subscriptions.
func (h *FakeHost) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Released returns how many subscriptions were released.
func (h *FakeHost) Released() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Measures returns how many times Measure was called.
func (h *FakeHost) Measures() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.measures
}
