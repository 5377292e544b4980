package tui

import (
	"testing"
	"time"

	"github.com/Iron-Ham/lazyfeed/internal/event"
	"github.com/Iron-Ham/lazyfeed/internal/scroll"
	"github.com/Iron-Ham/lazyfeed/internal/testutil"
	"github.com/Iron-Ham/lazyfeed/internal/tui/pane"
)

func newTestHost() (*Host, *pane.Manager) {
	panes := pane.NewManager()
	return NewHost(panes, event.NewBus()), panes
}

func lines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "row"
	}
	return out
}

func TestPaneFor(t *testing.T) {
	tests := []struct {
		name   string
		target scroll.Target
		want   string
		wantOK bool
	}{
		{"self", scroll.SelfTarget(), PaneFeed, true},
		{"document", scroll.DocumentTarget(), PaneDocument, true},
		{"element", scroll.ElementTarget("sidebar"), "sidebar", true},
		{"empty element", scroll.ElementTarget(""), "", false},
		{"unset", scroll.Target{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PaneFor(tt.target)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("PaneFor(%v) = (%q, %v), want (%q, %v)", tt.target, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHost_Measure(t *testing.T) {
	host, panes := newTestHost()
	panes.SetLines(PaneFeed, lines(40))
	panes.SetHeight(PaneFeed, 10)
	panes.Scroll(PaneFeed, 7)

	m, ok := host.Measure(scroll.SelfTarget())
	if !ok {
		t.Fatal("Measure(self) reported unavailable")
	}
	want := scroll.Metrics{Offset: 7, ScrollExtent: 40, ViewportExtent: 10}
	if m != want {
		t.Errorf("Measure(self) = %+v, want %+v", m, want)
	}

	if _, ok := host.Measure(scroll.ElementTarget("missing")); ok {
		t.Error("Measure(missing pane) should report unavailable")
	}
	if _, ok := host.Measure(scroll.Target{}); ok {
		t.Error("Measure(unset) should report unavailable")
	}

	panes.Remove(PaneFeed)
	if _, ok := host.Measure(scroll.SelfTarget()); ok {
		t.Error("Measure after Remove should report unavailable")
	}
}

func TestHost_SubscribeScroll(t *testing.T) {
	host, panes := newTestHost()
	panes.SetLines(PaneFeed, lines(40))
	panes.SetHeight(PaneFeed, 10)
	panes.SetLines("sidebar", lines(40))
	panes.SetHeight("sidebar", 10)

	var feedCalls, sidebarCalls int
	sub := host.SubscribeScroll(scroll.SelfTarget(), func() { feedCalls++ })
	host.SubscribeScroll(scroll.ElementTarget("sidebar"), func() { sidebarCalls++ })

	host.Scroll(PaneFeed, 3)
	host.ScrollToBottom(PaneFeed)
	host.ScrollToTop(PaneFeed)
	if feedCalls != 3 {
		t.Errorf("feed handler called %d times, want 3", feedCalls)
	}
	if sidebarCalls != 0 {
		t.Errorf("sidebar handler saw feed scrolls: %d calls", sidebarCalls)
	}

	// No movement, no event.
	host.ScrollToTop(PaneFeed)
	host.Scroll(PaneFeed, -1)
	if feedCalls != 3 {
		t.Errorf("no-op scroll notified the handler: %d calls", feedCalls)
	}

	host.Unsubscribe(sub)
	host.Scroll(PaneFeed, 1)
	if feedCalls != 3 {
		t.Errorf("handler called after Unsubscribe: %d calls", feedCalls)
	}

	host.Scroll("sidebar", 1)
	if sidebarCalls != 1 {
		t.Errorf("sidebar handler called %d times, want 1", sidebarCalls)
	}
}

func TestHost_UnsetTargetNeverNotified(t *testing.T) {
	host, panes := newTestHost()
	panes.SetLines(PaneFeed, lines(20))
	panes.SetHeight(PaneFeed, 5)

	called := false
	host.SubscribeScroll(scroll.Target{}, func() { called = true })
	host.Scroll(PaneFeed, 1)
	if called {
		t.Error("handler for the unset target was called")
	}
}

func TestHost_DrivesController(t *testing.T) {
	host, panes := newTestHost()
	panes.SetLines(PaneFeed, lines(30))
	panes.SetHeight(PaneFeed, 10)

	var loads int
	clock := testutil.NewFakeClock()
	ctrl := scroll.New(host, func() <-chan error {
		loads++
		return nil
	}, scroll.WithScheduler(clock), scroll.WithLeeway(50))
	ctrl.Attach()
	defer ctrl.Teardown()

	if !ctrl.Scrollable() {
		t.Error("30 rows in a 10 row pane should be scrollable")
	}

	// Threshold is 10 of a 20 row range.
	host.Scroll(PaneFeed, 9)
	clock.Advance(scroll.DefaultDebounce)
	if loads != 0 {
		t.Fatalf("loaded before the threshold: %d", loads)
	}

	host.Scroll(PaneFeed, 1)
	clock.Advance(scroll.DefaultDebounce)
	if loads != 1 {
		t.Errorf("loads = %d at the threshold, want 1", loads)
	}

	ctrl.Teardown()
	host.Scroll(PaneFeed, 5)
	clock.Advance(time.Second)
	if loads != 1 {
		t.Errorf("loaded after teardown: %d", loads)
	}
}

func TestNewHost_Panics(t *testing.T) {
	tests := []struct {
		name  string
		panes *pane.Manager
		bus   *event.Bus
	}{
		{"nil panes", nil, event.NewBus()},
		{"nil bus", pane.NewManager(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewHost(tt.panes, tt.bus)
		})
	}
}
