package tui

import (
	"github.com/Iron-Ham/lazyfeed/internal/event"
	"github.com/Iron-Ham/lazyfeed/internal/scroll"
	"github.com/Iron-Ham/lazyfeed/internal/tui/pane"
)

// Host implements scroll.Host over a pane.Manager. Scroll notifications are
// delivered through the event bus as ScrollMovedEvents.
type Host struct {
	panes *pane.Manager
	bus   *event.Bus
}

// NewHost creates a Host. panes and bus must be non-nil.
func NewHost(panes *pane.Manager, bus *event.Bus) *Host {
	if panes == nil {
		panic("tui: pane.Manager must not be nil")
	}
	if bus == nil {
		panic("tui: event.Bus must not be nil")
	}
	return &Host{panes: panes, bus: bus}
}

// PaneFor returns the pane backing a target. ok is false for the unset target.
func PaneFor(target scroll.Target) (id string, ok bool) {
	switch target.Kind {
	case scroll.TargetSelf:
		return PaneFeed, true
	case scroll.TargetDocument:
		return PaneDocument, true
	case scroll.TargetElement:
		return string(target.Element), target.Element != ""
	default:
		return "", false
	}
}

// SubscribeScroll implements scroll.Host.
func (h *Host) SubscribeScroll(target scroll.Target, handler func()) scroll.Subscription {
	want, ok := PaneFor(target)
	id := h.bus.Subscribe(event.TypeScrollMoved, func(e event.Event) {
		moved, isMoved := e.(event.ScrollMovedEvent)
		if !ok || !isMoved {
			return
		}
		if got, _ := PaneFor(moved.Target); got == want {
			handler()
		}
	})
	return scroll.Subscription(id)
}

// Unsubscribe implements scroll.Host.
func (h *Host) Unsubscribe(sub scroll.Subscription) {
	h.bus.Unsubscribe(string(sub))
}

// Measure implements scroll.Host. Extents are measured in rows.
func (h *Host) Measure(target scroll.Target) (scroll.Metrics, bool) {
	id, ok := PaneFor(target)
	if !ok || !h.panes.Has(id) {
		return scroll.Metrics{}, false
	}
	return scroll.Metrics{
		Offset:         float64(h.panes.Offset(id)),
		ScrollExtent:   float64(h.panes.LineCount(id)),
		ViewportExtent: float64(h.panes.Height(id)),
	}, true
}

// Scroll moves a pane by delta rows. A move that changes the offset is
// announced on the bus; a no-op at either end is not.
func (h *Host) Scroll(id string, delta int) {
	before := h.panes.Offset(id)
	h.moved(id, before, h.panes.Scroll(id, delta))
}

// ScrollToTop moves a pane to its first row.
func (h *Host) ScrollToTop(id string) {
	before := h.panes.Offset(id)
	h.moved(id, before, h.panes.ScrollToTop(id))
}

// ScrollToBottom moves a pane to its last page.
func (h *Host) ScrollToBottom(id string) {
	before := h.panes.Offset(id)
	h.moved(id, before, h.panes.ScrollToBottom(id))
}

func (h *Host) moved(id string, before, after int) {
	if before == after {
		return
	}
	h.bus.Publish(event.NewScrollMovedEvent(scroll.ElementTarget(scroll.ElementID(id)), after))
}
