// Package leaktest checks that components shut their goroutines down.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	// DefaultSettle is how long Check waits for goroutines to exit.
	DefaultSettle = time.Second
	pollInterval  = 10 * time.Millisecond
)

// GoroutineChecker records the goroutine count at creation and fails the
// test if it stays higher after the component under test is stopped.
type GoroutineChecker struct {
	before int
	settle time.Duration
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		settle: DefaultSettle,
		t:      t,
	}
}

// WithSettle overrides how long Check waits.
func (g *GoroutineChecker) WithSettle(d time.Duration) *GoroutineChecker {
	g.settle = d
	return g
}

// Check polls until at most tolerance extra goroutines remain, and reports
// a leak once the settle time runs out.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	if extra, ok := settle(g.before+tolerance, g.settle); !ok {
		g.t.Errorf("goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, extra, extra-g.before, tolerance)
	}
}

// Run checks that fn leaves no goroutines behind, e.g. a Start/Stop pair.
func Run(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settle waits for the goroutine count to drop to target. It returns the
// last count seen.
func settle(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
