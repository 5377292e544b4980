package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Iron-Ham/lazyfeed/internal/errors"
	"github.com/Iron-Ham/lazyfeed/internal/event"
	"github.com/Iron-Ham/lazyfeed/internal/logging"
)

// DefaultPageSize is the number of items a Loader fetches per call.
const DefaultPageSize = 20

// ErrInjectedFailure is returned by a Loader configured with WithFailEvery.
var ErrInjectedFailure = errors.New("injected failure")

// Pager is the subset of Store a Loader needs.
type Pager interface {
	Page(ctx context.Context, cursor uint, limit int) (Page, error)
}

// Loader pages through a Pager one call at a time and accumulates the items
// it has fetched. Load has the shape of scroll.LoadFunc.
type Loader struct {
	pager     Pager
	ctx       context.Context
	pageSize  int
	latency   time.Duration
	failEvery int
	bus       *event.Bus
	logger    *logging.Logger

	mu        sync.Mutex
	items     []Item
	cursor    uint
	exhausted bool
	calls     int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithContext bounds every fetch by ctx. Canceling it fails pending loads.
func WithContext(ctx context.Context) LoaderOption {
	return func(l *Loader) {
		if ctx != nil {
			l.ctx = ctx
		}
	}
}

// WithPageSize sets the number of items fetched per call.
func WithPageSize(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.pageSize = n
		}
	}
}

// WithLatency delays every fetch by d.
func WithLatency(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.latency = d
		}
	}
}

// WithFailEvery makes every nth call fail with ErrInjectedFailure.
func WithFailEvery(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.failEvery = n
		}
	}
}

// WithBus publishes a FeedPageEvent for every fetched page.
func WithBus(bus *event.Bus) LoaderOption {
	return func(l *Loader) {
		l.bus = bus
	}
}

// WithLoaderLogger sets the logger.
func WithLoaderLogger(logger *logging.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader starting before the first item.
//
// pager must be non-nil. Passing nil will panic early to surface wiring bugs.
func NewLoader(pager Pager, opts ...LoaderOption) *Loader {
	if pager == nil {
		panic("feed: Pager must not be nil")
	}
	l := &Loader{
		pager:    pager,
		ctx:      context.Background(),
		pageSize: DefaultPageSize,
		logger:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.WithComponent("loader")
	return l
}

// Load fetches the next page in the background. The returned channel
// receives exactly one value and is then closed.
func (l *Loader) Load() <-chan error {
	l.mu.Lock()
	l.calls++
	call := l.calls
	cursor := l.cursor
	exhausted := l.exhausted
	l.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- l.fetch(call, cursor, exhausted)
	}()
	return done
}

func (l *Loader) fetch(call int, cursor uint, exhausted bool) error {
	start := time.Now()

	if l.latency > 0 {
		timer := time.NewTimer(l.latency)
		select {
		case <-timer.C:
		case <-l.ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %v", errors.ErrCanceled, l.ctx.Err())
		}
	}

	if l.failEvery > 0 && call%l.failEvery == 0 {
		l.logger.Warn("injecting failure", "call", call)
		return fmt.Errorf("call %d: %w", call, ErrInjectedFailure)
	}
	if exhausted {
		return errors.ErrFeedExhausted
	}

	page, err := l.pager.Page(l.ctx, cursor, l.pageSize)
	if err != nil {
		l.logger.Error("page fetch failed", "cursor", cursor, "error", err.Error())
		return err
	}

	l.mu.Lock()
	// Pages apply in order only; a stale cursor means another fetch won.
	if l.cursor != cursor {
		l.mu.Unlock()
		return nil
	}
	l.items = append(l.items, page.Items...)
	l.cursor = page.Cursor
	l.exhausted = !page.HasMore
	total := len(l.items)
	l.mu.Unlock()

	elapsed := time.Since(start)
	l.logger.Info("page loaded",
		"items", len(page.Items),
		"total", total,
		"cursor", page.Cursor,
		"has_more", page.HasMore,
		"duration_ms", elapsed.Milliseconds(),
	)
	if l.bus != nil {
		l.bus.Publish(event.NewFeedPageEvent(len(page.Items), page.Cursor, page.HasMore, elapsed))
	}
	return nil
}

// Items returns a copy of every item fetched so far.
func (l *Loader) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items fetched so far.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Cursor returns the ID of the last fetched item.
func (l *Loader) Cursor() uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

// Exhausted reports whether the last fetched page was the final one.
func (l *Loader) Exhausted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.exhausted
}
