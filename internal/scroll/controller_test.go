package scroll_test

import (
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Iron-Ham/lazyfeed/internal/errors"
	"github.com/Iron-Ham/lazyfeed/internal/scroll"
	"github.com/Iron-Ham/lazyfeed/internal/testutil"
)

const debounceDelay = 250 * time.Millisecond

// loader is a scriptable LoadFunc. Each call returns the next queued result
// channel; when the queue is empty it returns a nil channel.
type loader struct {
	mu      sync.Mutex
	calls   int
	results []chan error
	before  func()
}

func (l *loader) queue(ch chan error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, ch)
}

func (l *loader) load() <-chan error {
	l.mu.Lock()
	l.calls++
	before := l.before
	var ch chan error
	if len(l.results) > 0 {
		ch = l.results[0]
		l.results = l.results[1:]
	}
	l.mu.Unlock()

	if before != nil {
		before()
	}
	if ch == nil {
		return nil
	}
	return ch
}

func (l *loader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

// resolved returns a channel that already holds err.
func resolved(err error) chan error {
	ch := make(chan error, 1)
	ch <- err
	return ch
}

func newHost(target scroll.Target) *testutil.FakeHost {
	host := testutil.NewFakeHost()
	host.SetMetrics(target, scroll.Metrics{ScrollExtent: 2000, ViewportExtent: 500})
	return host
}

func newController(host scroll.Host, l *loader, clock *testutil.FakeClock, opts ...scroll.Option) *scroll.Controller {
	opts = append([]scroll.Option{scroll.WithScheduler(clock)}, opts...)
	return scroll.New(host, l.load, opts...)
}

func TestController_ScrollToBoundaryLoadsOnce(t *testing.T) {
	self := scroll.SelfTarget()
	host := newHost(self)
	clock := testutil.NewFakeClock()
	l := &loader{}
	pending := make(chan error)
	l.queue(pending)

	ctrl := newController(host, l, clock)
	ctrl.Attach()

	host.ScrollTo(self, 1500)
	clock.Advance(debounceDelay)

	if got := l.count(); got != 1 {
		t.Fatalf("loader calls = %d, want 1", got)
	}
	if !ctrl.Loading() {
		t.Fatal("Loading() = false while loader is pending")
	}

	// Further scrolling while loading must not start another load.
	for _, offset := range []float64{1500, 1600, 1499, 1500} {
		host.ScrollTo(self, offset)
		clock.Advance(debounceDelay)
	}
	if ctrl.MaybeLoad() {
		t.Error("MaybeLoad() accepted while loading")
	}
	ctrl.LoadMore()
	if got := l.count(); got != 1 {
		t.Errorf("loader calls while loading = %d, want 1", got)
	}

	close(pending)
	testutil.WaitFor(t, time.Second, func() bool { return !ctrl.Loading() })
	if ctrl.Err() != nil {
		t.Errorf("Err() = %v, want nil", ctrl.Err())
	}
}

func TestController_Leeway(t *testing.T) {
	tests := []struct {
		name      string
		leeway    scroll.Leeway
		offsets   []float64
		wantLoads int
	}{
		{"no leeway below boundary", 0, []float64{0, 700, 1499}, 0},
		{"no leeway at boundary", 0, []float64{1500}, 1},
		{"half leeway before threshold", 50, []float64{700}, 0},
		{"half leeway at threshold", 50, []float64{700, 750}, 1},
		{"half leeway past threshold", 50, []float64{1200}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self := scroll.SelfTarget()
			host := newHost(self)
			clock := testutil.NewFakeClock()
			l := &loader{}

			ctrl := newController(host, l, clock, scroll.WithLeeway(tt.leeway))
			ctrl.Attach()

			for _, offset := range tt.offsets {
				host.ScrollTo(self, offset)
				clock.Advance(debounceDelay)
			}

			if got := l.count(); got != tt.wantLoads {
				t.Errorf("loader calls = %d, want %d", got, tt.wantLoads)
			}
		})
	}
}

func TestController_LeewayFromString(t *testing.T) {
	leeway, err := scroll.ParseLeeway("50%")
	if err != nil {
		t.Fatalf("ParseLeeway() error = %v", err)
	}

	self := scroll.SelfTarget()
	host := newHost(self)
	clock := testutil.NewFakeClock()
	l := &loader{}
	ctrl := newController(host, l, clock, scroll.WithLeeway(leeway))
	ctrl.Attach()

	host.ScrollTo(self, 749)
	clock.Advance(debounceDelay)
	if l.count() != 0 {
		t.Fatalf("loader called before threshold")
	}
	host.ScrollTo(self, 750)
	clock.Advance(debounceDelay)
	if l.count() != 1 {
		t.Errorf("loader calls = %d, want 1", l.count())
	}
}

func TestController_DebounceUsesMetricsAtFireTime(t *testing.T) {
	tests := []struct {
		name      string
		offsets   []float64
		wantLoads int
	}{
		{"burst ends away from boundary", []float64{1500, 1500, 1500, 200}, 0},
		{"burst ends at boundary", []float64{0, 400, 900, 1500}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self := scroll.SelfTarget()
			host := newHost(self)
			clock := testutil.NewFakeClock()
			l := &loader{}
			ctrl := newController(host, l, clock)
			ctrl.Attach()

			for _, offset := range tt.offsets {
				host.ScrollTo(self, offset)
				clock.Advance(debounceDelay / 5)
			}
			if got := l.count(); got != 0 {
				t.Fatalf("loader called during burst: %d", got)
			}
			if got := clock.Fired(); got != 0 {
				t.Fatalf("evaluations during burst = %d, want 0", got)
			}

			clock.Advance(debounceDelay)

			if got := clock.Fired(); got != 1 {
				t.Errorf("evaluations after burst = %d, want 1", got)
			}
			if got := l.count(); got != tt.wantLoads {
				t.Errorf("loader calls = %d, want %d", got, tt.wantLoads)
			}
		})
	}
}

func TestController_FailureThenRetryClearsError(t *testing.T) {
	self := scroll.SelfTarget()
	host := newHost(self)
	clock := testutil.NewFakeClock()
	cause := errors.New("backend unavailable")
	l := &loader{}
	l.queue(resolved(cause))

	ctrl := newController(host, l, clock)
	ctrl.Attach()

	if !ctrl.MaybeLoad() {
		t.Fatal("MaybeLoad() rejected on idle controller")
	}

	st := ctrl.State()
	if st.Loading {
		t.Error("Loading = true after rejection")
	}
	if st.Err == nil {
		t.Fatal("Err = nil after rejection")
	}
	if !errors.Is(st.Err, cause) {
		t.Errorf("Err = %v, want it to wrap %v", st.Err, cause)
	}
	if !errors.Is(st.Err, errors.ErrLoadFailed) {
		t.Errorf("Err = %v, want it to match ErrLoadFailed", st.Err)
	}
	var loadErr *errors.LoadError
	if !errors.As(st.Err, &loadErr) || loadErr.Attempt != 1 {
		t.Errorf("Err should be a LoadError for attempt 1, got %#v", st.Err)
	}
	if got := errors.Unwrap(st.Err); got != cause {
		t.Errorf("Unwrap(Err) = %v, want the loader's value %v", got, cause)
	}
	if !errors.IsRetryable(st.Err) {
		t.Error("a plain loader failure should be retryable")
	}

	var errAtInvoke error = io.EOF
	var loadingAtInvoke bool
	l.before = func() {
		errAtInvoke = ctrl.Err()
		loadingAtInvoke = ctrl.Loading()
	}
	pending := make(chan error, 1)
	l.queue(pending)

	ctrl.LoadMore()
	if errAtInvoke != nil {
		t.Errorf("Err at loader invocation = %v, want nil", errAtInvoke)
	}
	if !loadingAtInvoke {
		t.Error("Loading should already be true when the loader runs")
	}

	pending <- nil
	testutil.WaitFor(t, time.Second, func() bool { return !ctrl.Loading() })
	if ctrl.Err() != nil {
		t.Errorf("Err() after successful retry = %v, want nil", ctrl.Err())
	}
}

func TestController_ScrollableRecomputedAfterLoad(t *testing.T) {
	self := scroll.SelfTarget()
	host := testutil.NewFakeHost()
	host.SetMetrics(self, scroll.Metrics{ScrollExtent: 500, ViewportExtent: 500})
	clock := testutil.NewFakeClock()

	l := &loader{}
	l.before = func() { host.SetContent(self, 2000, 500) }
	l.queue(resolved(nil))

	ctrl := newController(host, l, clock)
	ctrl.Attach()

	if ctrl.Scrollable() {
		t.Fatal("Scrollable() = true when content exactly fills viewport")
	}

	ctrl.LoadMore()

	if !ctrl.Scrollable() {
		t.Error("Scrollable() = false after load grew the content")
	}

	host.SetContent(self, 300, 500)
	l.before = nil
	ctrl.LoadMore()
	if ctrl.Scrollable() {
		t.Error("Scrollable() = true after content shrank below viewport")
	}
}

func TestController_TeardownBeforeResolve(t *testing.T) {
	tests := []struct {
		name   string
		result error
	}{
		{"resolves successfully", nil},
		{"rejects", errors.New("late failure")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self := scroll.SelfTarget()
			host := newHost(self)
			clock := testutil.NewFakeClock()
			l := &loader{}
			pending := make(chan error)
			l.queue(pending)

			var hookCalls atomic.Int32
			ctrl := newController(host, l, clock, scroll.WithStateHook(func(scroll.State) {
				hookCalls.Add(1)
			}))
			ctrl.Attach()
			ctrl.LoadMore()

			before := ctrl.State()
			callsBefore := hookCalls.Load()
			ctrl.Teardown()

			pending <- tt.result
			// Give the completion goroutine a chance to run.
			time.Sleep(10 * time.Millisecond)

			after := ctrl.State()
			if after.Loading != before.Loading || after.Err != nil {
				t.Errorf("state mutated after teardown: before=%+v after=%+v", before, after)
			}
			if got := hookCalls.Load(); got != callsBefore {
				t.Errorf("hook called %d times after teardown", got-callsBefore)
			}
		})
	}
}

func TestController_TeardownDuringDebounce(t *testing.T) {
	self := scroll.SelfTarget()
	host := newHost(self)
	clock := testutil.NewFakeClock()
	l := &loader{}
	ctrl := newController(host, l, clock)
	ctrl.Attach()

	host.ScrollTo(self, 1500)
	if clock.Pending() != 1 {
		t.Fatalf("armed timers = %d, want 1", clock.Pending())
	}

	ctrl.Teardown()
	clock.Advance(time.Second)

	if l.count() != 0 {
		t.Errorf("loader called after teardown")
	}
	if clock.Pending() != 0 {
		t.Errorf("armed timers after teardown = %d, want 0", clock.Pending())
	}
	if host.Active() != 0 {
		t.Errorf("live subscriptions after teardown = %d, want 0", host.Active())
	}
}

func TestController_NoAsyncOperation(t *testing.T) {
	self := scroll.SelfTarget()
	host := newHost(self)
	clock := testutil.NewFakeClock()
	l := &loader{}
	ctrl := newController(host, l, clock)
	ctrl.Attach()

	if !ctrl.MaybeLoad() {
		t.Fatal("MaybeLoad() rejected")
	}

	st := ctrl.State()
	if st.Loading || st.Err != nil {
		t.Errorf("State() = %+v, want idle without error", st)
	}
	if l.count() != 1 {
		t.Errorf("loader calls = %d, want 1", l.count())
	}
}

func TestController_CompletionOutcomes(t *testing.T) {
	closed := make(chan error)
	close(closed)

	tests := []struct {
		name    string
		result  chan error
		wantErr bool
	}{
		{"closed channel is success", closed, false},
		{"nil value is success", resolved(nil), false},
		{"error value is failure", resolved(io.ErrUnexpectedEOF), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newHost(scroll.SelfTarget())
			clock := testutil.NewFakeClock()
			l := &loader{}
			l.queue(tt.result)
			ctrl := newController(host, l, clock)

			ctrl.LoadMore()

			st := ctrl.State()
			if st.Loading {
				t.Error("Loading = true after completion")
			}
			if (st.Err != nil) != tt.wantErr {
				t.Errorf("Err = %v, wantErr %v", st.Err, tt.wantErr)
			}
		})
	}
}

func TestController_LoaderPanicBecomesFailure(t *testing.T) {
	host := newHost(scroll.SelfTarget())
	clock := testutil.NewFakeClock()
	ctrl := scroll.New(host, func() <-chan error { panic("boom") }, scroll.WithScheduler(clock))

	if !ctrl.MaybeLoad() {
		t.Fatal("MaybeLoad() rejected")
	}
	if ctrl.Loading() {
		t.Error("Loading() = true after panicking loader")
	}
	if !errors.Is(ctrl.Err(), errors.ErrLoadFailed) {
		t.Errorf("Err() = %v, want a load failure", ctrl.Err())
	}
}

func TestController_ConcurrentTriggersSingleFlight(t *testing.T) {
	host := newHost(scroll.SelfTarget())
	clock := testutil.NewFakeClock()
	l := &loader{}
	pending := make(chan error)
	l.queue(pending)
	ctrl := newController(host, l, clock)
	ctrl.Attach()

	var accepted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ctrl.MaybeLoad() {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := accepted.Load(); got != 1 {
		t.Errorf("accepted loads = %d, want 1", got)
	}
	if got := l.count(); got != 1 {
		t.Errorf("loader calls = %d, want 1", got)
	}
	close(pending)
	testutil.WaitFor(t, time.Second, func() bool { return !ctrl.Loading() })
}

func TestController_Targets(t *testing.T) {
	tests := []struct {
		name string
		opts []scroll.Option
		want scroll.Target
	}{
		{"self by default", nil, scroll.SelfTarget()},
		{"document", []scroll.Option{scroll.WithDocument(true)}, scroll.DocumentTarget()},
		{"element via argument", []scroll.Option{scroll.WithElement("feed")}, scroll.ElementTarget("feed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newHost(tt.want)
			clock := testutil.NewFakeClock()
			l := &loader{}
			ctrl := newController(host, l, clock, tt.opts...)

			if st := ctrl.State(); st.Bound || !st.Target.IsZero() {
				t.Fatalf("State() before Attach = %+v, want unbound", st)
			}
			ctrl.Attach()

			st := ctrl.State()
			if !st.Bound || st.Target != tt.want {
				t.Fatalf("State() = %+v, want bound to %v", st, tt.want)
			}
			if host.Subscribers(tt.want) != 1 {
				t.Errorf("subscribers on %v = %d, want 1", tt.want, host.Subscribers(tt.want))
			}
			if !st.Scrollable {
				t.Error("Scrollable should be measured on attach")
			}
			if l.count() != 0 {
				t.Error("Attach must not load")
			}

			host.ScrollTo(tt.want, 1500)
			clock.Advance(debounceDelay)
			if l.count() != 1 {
				t.Errorf("loader calls = %d, want 1", l.count())
			}
		})
	}
}

func TestController_RegisterElement(t *testing.T) {
	t.Run("after attach rebinds", func(t *testing.T) {
		feed := scroll.ElementTarget("feed")
		host := newHost(scroll.SelfTarget())
		host.SetMetrics(feed, scroll.Metrics{ScrollExtent: 1000, ViewportExtent: 100})
		clock := testutil.NewFakeClock()
		l := &loader{}
		ctrl := newController(host, l, clock)
		ctrl.Attach()

		if !ctrl.RegisterElement("feed") {
			t.Fatal("RegisterElement() rejected")
		}
		if got := ctrl.State().Target; got != feed {
			t.Errorf("Target = %v, want %v", got, feed)
		}
		if host.Subscribers(scroll.SelfTarget()) != 0 || host.Subscribers(feed) != 1 {
			t.Errorf("subscriptions not moved: self=%d feed=%d",
				host.Subscribers(scroll.SelfTarget()), host.Subscribers(feed))
		}

		host.ScrollTo(feed, 900)
		clock.Advance(debounceDelay)
		if l.count() != 1 {
			t.Errorf("loader calls = %d, want 1", l.count())
		}

		if !ctrl.RegisterElement("feed") {
			t.Error("re-registering the same element should be accepted")
		}
		if host.Active() != 1 {
			t.Errorf("live subscriptions = %d, want 1", host.Active())
		}
	})

	t.Run("rebinding drops the old target's reading", func(t *testing.T) {
		a, b := scroll.ElementTarget("a"), scroll.ElementTarget("b")
		host := newHost(scroll.SelfTarget())
		host.SetMetrics(a, scroll.Metrics{ScrollExtent: 1000, ViewportExtent: 100})
		host.SetMetrics(b, scroll.Metrics{ScrollExtent: 50, ViewportExtent: 100})
		ctrl := newController(host, &loader{}, testutil.NewFakeClock())
		ctrl.Attach()

		ctrl.RegisterElement("a")
		if !ctrl.Scrollable() {
			t.Fatal("a should be scrollable")
		}
		ctrl.RegisterElement("b")
		host.Remove(a)

		// a no longer measures, and nothing was kept from the first binding
		ctrl.RegisterElement("a")
		if ctrl.Scrollable() {
			t.Error("Scrollable() reused a reading from an earlier binding")
		}
	})

	t.Run("before attach is bound by attach", func(t *testing.T) {
		feed := scroll.ElementTarget("feed")
		host := newHost(feed)
		ctrl := newController(host, &loader{}, testutil.NewFakeClock())

		if !ctrl.RegisterElement("feed") {
			t.Fatal("RegisterElement() rejected")
		}
		if ctrl.State().Bound {
			t.Fatal("registration must not bind")
		}
		ctrl.Attach()
		if got := ctrl.State().Target; got != feed {
			t.Errorf("Target = %v, want %v", got, feed)
		}
		if host.Active() != 1 {
			t.Errorf("live subscriptions = %d, want 1", host.Active())
		}
	})

	rejected := []struct {
		name string
		opts []scroll.Option
		id   scroll.ElementID
	}{
		{"explicit element configured", []scroll.Option{scroll.WithElement("main")}, "feed"},
		{"document configured", []scroll.Option{scroll.WithDocument(true)}, "feed"},
		{"empty id", nil, ""},
	}
	for _, tt := range rejected {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			host := newHost(scroll.SelfTarget())
			ctrl := newController(host, &loader{}, testutil.NewFakeClock(), tt.opts...)
			ctrl.Attach()
			before := ctrl.State().Target

			if ctrl.RegisterElement(tt.id) {
				t.Error("RegisterElement() accepted")
			}
			if got := ctrl.State().Target; got != before {
				t.Errorf("Target changed to %v", got)
			}
		})
	}

	t.Run("rejects after teardown", func(t *testing.T) {
		ctrl := newController(newHost(scroll.SelfTarget()), &loader{}, testutil.NewFakeClock())
		ctrl.Attach()
		ctrl.Teardown()
		if ctrl.RegisterElement("feed") {
			t.Error("RegisterElement() accepted after teardown")
		}
	})
}

func TestController_Lifecycle(t *testing.T) {
	host := newHost(scroll.SelfTarget())
	clock := testutil.NewFakeClock()
	l := &loader{}
	ctrl := newController(host, l, clock)

	ctrl.Attach()
	ctrl.Attach()
	if host.Active() != 1 {
		t.Fatalf("live subscriptions after double Attach = %d, want 1", host.Active())
	}

	ctrl.Teardown()
	ctrl.Teardown()
	if host.Released() != 1 {
		t.Errorf("released subscriptions = %d, want exactly 1", host.Released())
	}
	if !ctrl.TornDown() {
		t.Error("TornDown() = false")
	}

	ctrl.Attach()
	if host.Active() != 0 {
		t.Error("Attach after Teardown subscribed again")
	}
	if ctrl.MaybeLoad() {
		t.Error("MaybeLoad() accepted after teardown")
	}
	if l.count() != 0 {
		t.Errorf("loader calls = %d, want 0", l.count())
	}
}

func TestController_UnboundManualLoad(t *testing.T) {
	host := newHost(scroll.SelfTarget())
	l := &loader{}
	ctrl := newController(host, l, testutil.NewFakeClock())

	if !ctrl.MaybeLoad() {
		t.Error("manual load should be accepted before Attach")
	}
	if st := ctrl.State(); st.Bound || st.Scrollable {
		t.Errorf("State() = %+v, want unbound and not scrollable", st)
	}
}

func TestController_StateHook(t *testing.T) {
	host := newHost(scroll.SelfTarget())
	clock := testutil.NewFakeClock()
	l := &loader{}
	l.queue(resolved(io.EOF))

	var states []scroll.State
	ctrl := newController(host, l, clock, scroll.WithStateHook(func(st scroll.State) {
		states = append(states, st)
	}))
	ctrl.Attach()
	ctrl.LoadMore()

	if len(states) != 3 {
		t.Fatalf("hook calls = %d, want 3 (bind, start, finish): %+v", len(states), states)
	}
	if !states[0].Bound || states[0].Loading {
		t.Errorf("bind state = %+v", states[0])
	}
	if !states[1].Loading || states[1].Err != nil {
		t.Errorf("start state = %+v", states[1])
	}
	if states[2].Loading || states[2].Err == nil {
		t.Errorf("finish state = %+v, want error observed with loading false", states[2])
	}
}

func TestController_StateHookPanicRecovered(t *testing.T) {
	host := newHost(scroll.SelfTarget())
	ctrl := newController(host, &loader{}, testutil.NewFakeClock(), scroll.WithStateHook(func(scroll.State) {
		panic("hook exploded")
	}))

	ctrl.Attach()
	if !ctrl.MaybeLoad() {
		t.Fatal("MaybeLoad() rejected")
	}
	if ctrl.Loading() {
		t.Error("Loading() = true, a panicking hook must not interrupt completion")
	}
}

func TestController_TargetRemovedKeepsLastMetrics(t *testing.T) {
	self := scroll.SelfTarget()
	host := newHost(self)
	clock := testutil.NewFakeClock()
	l := &loader{}
	ctrl := newController(host, l, clock)
	ctrl.Attach()

	host.ScrollTo(self, 100)
	clock.Advance(debounceDelay)
	host.Remove(self)
	host.Notify(self)
	clock.Advance(debounceDelay)

	if l.count() != 0 {
		t.Errorf("loader calls = %d, want 0", l.count())
	}
	if !ctrl.Scrollable() {
		t.Error("Scrollable() should keep the last known value")
	}
}

func TestNew_Defaults(t *testing.T) {
	ctrl := scroll.New(testutil.NewFakeHost(), (&loader{}).load,
		scroll.WithDebounce(-time.Second),
		scroll.WithLeeway(250),
	)
	cfg := ctrl.Config()
	if cfg.Debounce != scroll.DefaultDebounce {
		t.Errorf("Debounce = %v, want %v", cfg.Debounce, scroll.DefaultDebounce)
	}
	if cfg.Leeway != 100 {
		t.Errorf("Leeway = %v, want clamped to 100", cfg.Leeway)
	}
	if ctrl.ID() == "" {
		t.Error("ID() is empty")
	}
}

func TestNew_PanicsOnNil(t *testing.T) {
	tests := []struct {
		name string
		host scroll.Host
		load scroll.LoadFunc
	}{
		{"nil host", nil, (&loader{}).load},
		{"nil loader", testutil.NewFakeHost(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			scroll.New(tt.host, tt.load)
		})
	}
}
