// Package testutil provides testing utilities for lazyfeed tests: a virtual
// clock that implements debounce.Scheduler and a scriptable scroll host.
package testutil

import (
	"testing"
	"time"
)

// WaitFor polls cond until it returns true or the timeout elapses, failing
// the test on timeout. Use it only where a result crosses a goroutine the
// test does not control.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %v", timeout)
		}
		time.Sleep(time.Millisecond)
	}
}
