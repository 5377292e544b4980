// Package debounce converts bursts of notifications into a single trailing
// call after a quiet interval.
//
// Timers are obtained from an injected [Scheduler] so hosts can route every
// callback through their own event loop and tests can drive time with a
// virtual clock.
package debounce

import (
	"sync"
	"time"
)

// CancelFunc disarms a scheduled callback. Calling it after the callback
// has run, or more than once, is a no-op.
type CancelFunc func()

// Scheduler arranges for fn to run once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) CancelFunc
}

// SchedulerFunc adapts an ordinary function to the Scheduler interface.
type SchedulerFunc func(delay time.Duration, fn func()) CancelFunc

// Schedule calls f(delay, fn).
func (f SchedulerFunc) Schedule(delay time.Duration, fn func()) CancelFunc {
	return f(delay, fn)
}

// SystemScheduler runs callbacks on the runtime timer goroutines.
type SystemScheduler struct{}

// Schedule implements Scheduler using time.AfterFunc.
func (SystemScheduler) Schedule(delay time.Duration, fn func()) CancelFunc {
	if delay < 0 {
		delay = 0
	}
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// Debouncer invokes its callback once Trigger has not been called for the
// configured delay. Each Trigger re-arms the pending timer (trailing edge).
// It is safe for concurrent use.
type Debouncer struct {
	mu      sync.Mutex
	sched   Scheduler
	delay   time.Duration
	fn      func()
	cancel  CancelFunc
	gen     uint64
	pending bool
	stopped bool
}

// New creates a Debouncer that calls fn after delay of quiet.
// It panics if sched or fn is nil.
func New(sched Scheduler, delay time.Duration, fn func()) *Debouncer {
	if sched == nil {
		panic("debounce: scheduler must not be nil")
	}
	if fn == nil {
		panic("debounce: callback must not be nil")
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{
		sched: sched,
		delay: delay,
		fn:    fn,
	}
}

// Delay returns the quiet interval.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger records a notification, cancelling any pending call and arming a
// new one. It is a no-op after Stop.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	prev := d.cancel
	d.cancel = nil
	d.gen++
	gen := d.gen
	d.pending = true
	d.mu.Unlock()

	if prev != nil {
		prev()
	}

	// The scheduler may run the callback inline, so it is called unlocked.
	cancel := d.sched.Schedule(d.delay, func() { d.fire(gen) })

	d.mu.Lock()
	if d.gen == gen && !d.stopped && d.pending {
		d.cancel = cancel
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	cancel()
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// A timer that fired concurrently with a re-arm or Stop is stale.
	if d.stopped || gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.cancel = nil
	d.mu.Unlock()

	d.fn()
}

// Pending reports whether a call is armed and has not fired yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop disarms the pending call and permanently disables the Debouncer.
// It is idempotent.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.pending = false
	d.gen++
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Stopped reports whether Stop has been called.
func (d *Debouncer) Stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}
