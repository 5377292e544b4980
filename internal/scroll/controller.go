package scroll

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Iron-Ham/lazyfeed/internal/debounce"
	"github.com/Iron-Ham/lazyfeed/internal/errors"
	"github.com/Iron-Ham/lazyfeed/internal/logging"
)

// LoadFunc starts loading more content. The returned channel receives the
// outcome: a nil value or a close means success, a non-nil error is a
// failure. Returning a nil channel means there is nothing to wait for and the
// load succeeds immediately.
type LoadFunc func() <-chan error

// State is a snapshot of a Controller's observable state.
type State struct {
	// Loading is true from loader invocation until its result is applied.
	Loading bool
	// Err is the most recent loader failure, or nil. The loader's value is
	// wrapped in an *errors.LoadError carrying the attempt number and the
	// failure's classification. errors.Is matches the original value and
	// errors.Unwrap returns it.
	Err error
	// Scrollable is true when the target's content exceeds its viewport.
	Scrollable bool
	// Bound is true between Attach and Teardown.
	Bound bool
	// Target is the observed target; zero until bound.
	Target Target
}

// Controller watches a scroll target and invokes a loader when the target
// nears its end.
type Controller struct {
	id        string
	host      Host
	load      LoadFunc
	cfg       Config
	sched     debounce.Scheduler
	metrics   *MetricsProvider
	debouncer *debounce.Debouncer
	logger    *logging.Logger
	hook      func(State)

	// bindMu serializes Attach, RegisterElement and Teardown so host calls
	// can be made without holding mu.
	bindMu sync.Mutex

	mu         sync.Mutex
	loading    bool
	err        error
	scrollable bool
	bound      bool
	tornDown   bool
	target     Target
	sub        Subscription
	hasSub     bool
	registered ElementID
	attempts   int
}

// New creates an unbound Controller. Automatic evaluation is inert until
// Attach is called.
//
// host and load must be non-nil. Passing nil will panic early to surface
// wiring bugs immediately.
func New(host Host, load LoadFunc, opts ...Option) *Controller {
	if host == nil {
		panic("scroll: Host must not be nil")
	}
	if load == nil {
		panic("scroll: LoadFunc must not be nil")
	}

	o := &options{
		cfg:       DefaultConfig(),
		scheduler: debounce.SystemScheduler{},
		logger:    logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.scheduler == nil {
		o.scheduler = debounce.SystemScheduler{}
	}
	if o.logger == nil {
		o.logger = logging.NopLogger()
	}
	if o.cfg.Debounce < 0 {
		o.cfg.Debounce = DefaultDebounce
	}
	o.cfg.Leeway = o.cfg.Leeway.Clamp()

	id := uuid.NewString()
	c := &Controller{
		id:      id,
		host:    host,
		load:    load,
		cfg:     o.cfg,
		sched:   o.scheduler,
		metrics: NewMetricsProvider(host),
		logger:  o.logger.WithComponent("scroll").WithController(id),
		hook:    o.hook,
	}
	c.debouncer = debounce.New(o.scheduler, o.cfg.Debounce, c.evaluate)
	return c
}

// ID returns the controller's unique identifier.
func (c *Controller) ID() string {
	return c.id
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Attach resolves the target and subscribes to its scroll notifications.
// It measures the target once to initialize Scrollable but does not load.
// Attach is a no-op if the controller is already bound or torn down.
func (c *Controller) Attach() {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()

	c.mu.Lock()
	if c.tornDown || c.bound {
		c.mu.Unlock()
		return
	}
	target := ResolveTarget(c.cfg.UseDocument, c.cfg.Element)
	if target.Kind == TargetSelf && c.registered != "" {
		target = ElementTarget(c.registered)
	}
	c.mu.Unlock()

	c.bind(target)
	c.logger.WithTarget(target.String()).Info("controller attached")
}

// RegisterElement supplies an element to observe after construction. It is
// accepted only when neither an explicit element nor the document flag was
// configured. Before Attach the element is recorded and bound by Attach;
// after Attach the controller re-subscribes to it. The empty ID is rejected.
func (c *Controller) RegisterElement(id ElementID) bool {
	if id == "" {
		return false
	}

	c.bindMu.Lock()
	defer c.bindMu.Unlock()

	c.mu.Lock()
	if c.tornDown || c.cfg.Element != "" || c.cfg.UseDocument {
		c.mu.Unlock()
		c.logger.Debug("element registration rejected", "element", string(id))
		return false
	}
	c.registered = id
	if !c.bound {
		c.mu.Unlock()
		return true
	}
	target := ElementTarget(id)
	if c.target == target {
		c.mu.Unlock()
		return true
	}
	old, hadSub := c.sub, c.hasSub
	prev := c.target
	c.hasSub = false
	c.mu.Unlock()

	if hadSub {
		c.host.Unsubscribe(old)
	}
	// A reading kept for the old target would be stale if it is bound again
	c.metrics.Forget(prev)
	c.bind(target)
	c.logger.WithTarget(target.String()).Info("controller rebound", "previous", prev.String())
	return true
}

// bind subscribes to target and publishes the bound state. Callers hold bindMu.
func (c *Controller) bind(target Target) {
	sub := c.host.SubscribeScroll(target, c.onScroll)

	c.mu.Lock()
	if c.tornDown {
		c.mu.Unlock()
		c.host.Unsubscribe(sub)
		return
	}
	c.sub = sub
	c.hasSub = true
	c.bound = true
	c.target = target
	c.scrollable = Detect(c.metrics.Read(target), c.cfg.Leeway).Scrollable
	st := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(st)
}

func (c *Controller) onScroll() {
	c.debouncer.Trigger()
}

// evaluate runs when the debouncer fires. Metrics are read now, not when the
// burst started.
func (c *Controller) evaluate() {
	c.mu.Lock()
	if c.tornDown || !c.bound {
		c.mu.Unlock()
		return
	}
	target := c.target
	m := c.metrics.Read(target)
	b := Detect(m, c.cfg.Leeway)
	changed := b.Scrollable != c.scrollable
	c.scrollable = b.Scrollable
	st := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug("boundary evaluated",
		"target", target.String(),
		"offset", m.Offset,
		"threshold", b.Threshold,
		"reached", b.Reached,
	)

	if changed {
		c.notify(st)
	}
	if b.Reached {
		c.maybeLoad(true)
	}
}

// MaybeLoad starts a load unless one is already in flight or the controller
// was torn down. It reports whether the loader was invoked.
func (c *Controller) MaybeLoad() bool {
	return c.maybeLoad(false)
}

// LoadMore is the manual trigger. It behaves like MaybeLoad.
func (c *Controller) LoadMore() {
	c.maybeLoad(false)
}

func (c *Controller) maybeLoad(automatic bool) bool {
	c.mu.Lock()
	if c.tornDown || c.loading || (automatic && !c.bound) {
		c.mu.Unlock()
		return false
	}
	// The guard is set before the loader runs so a second trigger arriving
	// during the call is rejected.
	c.err = nil
	c.loading = true
	c.attempts++
	attempt := c.attempts
	st := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("load started", "attempt", attempt, "automatic", automatic)
	c.notify(st)

	done := c.invoke()
	if done == nil {
		c.complete(attempt, nil)
		return true
	}

	select {
	case err := <-done:
		c.sched.Schedule(0, func() { c.complete(attempt, err) })
	default:
		go func() {
			err := <-done
			c.sched.Schedule(0, func() { c.complete(attempt, err) })
		}()
	}
	return true
}

// invoke calls the loader, turning a panic into a failed load so the
// controller does not stay loading forever.
func (c *Controller) invoke() (done <-chan error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("loader panicked", "panic", fmt.Sprint(r))
			ch := make(chan error, 1)
			ch <- fmt.Errorf("loader panicked: %v", r)
			done = ch
		}
	}()
	return c.load()
}

func (c *Controller) complete(attempt int, err error) {
	c.mu.Lock()
	if c.tornDown {
		c.mu.Unlock()
		c.logger.Debug("discarding load result after teardown", "attempt", attempt, "failed", err != nil)
		return
	}
	if err != nil {
		c.err = errors.NewLoadError(err).WithAttempt(attempt)
	}
	c.loading = false
	if c.bound {
		c.scrollable = Detect(c.metrics.Read(c.target), c.cfg.Leeway).Scrollable
	}
	st := c.snapshotLocked()
	c.mu.Unlock()

	switch {
	case err != nil && errors.GetSeverity(st.Err) < errors.SeverityError:
		c.logger.Info("load ended", "attempt", attempt, "reason", err.Error())
	case err != nil:
		c.logger.Warn("load failed", "attempt", attempt, "error", err.Error(), "retryable", errors.IsRetryable(st.Err))
	default:
		c.logger.Info("load finished", "attempt", attempt, "scrollable", st.Scrollable)
	}
	c.notify(st)
}

// Teardown disarms the debouncer, releases the subscription and discards
// any loader result that arrives later. It is idempotent.
func (c *Controller) Teardown() {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()

	c.mu.Lock()
	if c.tornDown {
		c.mu.Unlock()
		return
	}
	c.tornDown = true
	c.bound = false
	sub, hadSub := c.sub, c.hasSub
	c.hasSub = false
	loading := c.loading
	target := c.target
	c.mu.Unlock()

	c.debouncer.Stop()
	if hadSub {
		c.host.Unsubscribe(sub)
	}
	c.metrics.Forget(target)
	c.logger.Info("controller torn down", "loading", loading)
}

// TornDown reports whether Teardown has been called.
func (c *Controller) TornDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tornDown
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Loading reports whether a load is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the most recent load failure, or nil. See State.Err for how
// the loader's value is wrapped.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Scrollable reports whether the target's content exceeds its viewport.
func (c *Controller) Scrollable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrollable
}

func (c *Controller) snapshotLocked() State {
	return State{
		Loading:    c.loading,
		Err:        c.err,
		Scrollable: c.scrollable,
		Bound:      c.bound,
		Target:     c.target,
	}
}

func (c *Controller) notify(st State) {
	if c.hook == nil || c.TornDown() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("state hook panicked", "panic", fmt.Sprint(r))
		}
	}()
	c.hook(st)
}
