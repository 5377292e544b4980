package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/Iron-Ham/lazyfeed/internal/debounce"
)

// FakeClock is a virtual clock implementing debounce.Scheduler.
//
// Callbacks scheduled with a delay of zero or less run inline. All others
// run only when Advance moves the clock past their deadline, in deadline
// order, on the goroutine calling Advance.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
	fired  int
}

type fakeTimer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

var _ debounce.Scheduler = (*FakeClock)(nil)

// NewFakeClock returns a clock at virtual time zero.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// Schedule implements debounce.Scheduler.
func (c *FakeClock) Schedule(delay time.Duration, fn func()) debounce.CancelFunc {
	if delay <= 0 {
		c.mu.Lock()
		c.fired++
		c.mu.Unlock()
		fn()
		return func() {}
	}

	c.mu.Lock()
	c.seq++
	timer := &fakeTimer{at: c.now + delay, seq: c.seq, fn: fn}
	c.timers = append(c.timers, timer)
	c.mu.Unlock()

	return func() { c.remove(timer) }
}

func (c *FakeClock) remove(timer *fakeTimer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.timers {
		if t == timer {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d, running every callback whose
// deadline falls within the window. Callbacks scheduled while advancing run
// too if they fall within the window.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now + d
	for {
		next := c.nextDueLocked(end)
		if next == nil {
			break
		}
		c.now = next.at
		c.fired++
		c.mu.Unlock()
		next.fn()
		c.mu.Lock()
	}
	c.now = end
	c.mu.Unlock()
}

func (c *FakeClock) nextDueLocked(end time.Duration) *fakeTimer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at == c.timers[j].at {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at < c.timers[j].at
	})
	if c.timers[0].at > end {
		return nil
	}
	next := c.timers[0]
	c.timers = c.timers[1:]
	return next
}

// Now returns the virtual time elapsed since creation.
func (c *FakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of armed callbacks.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Fired returns how many callbacks have run.
func (c *FakeClock) Fired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fired
}
