// Package metrics holds process-level counters. The order and review
// services increment the failure counters for the two best-effort steps
// (stock decrement, rating recompute) so the reconciliation window is
// observable instead of silently swallowed.
package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

var (
	OrdersCreated           Counter
	ReviewsCreated          Counter
	StockDecrementFailures  Counter
	RatingRecomputeFailures Counter
)

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
