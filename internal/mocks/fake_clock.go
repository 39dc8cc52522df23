package mocks

import (
	"sync"
	"time"

	"github.com/you/localhub/domain"
)

// FakeClock implements domain.Clock. After fires immediately and advances
// the clock, so bounded waits finish without sleeping.
type FakeClock struct {
	// OnAfter runs before the timer fires; tests use it to change state mid-wait
	OnAfter func(waits int)

	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
}

// NewFakeClock creates a clock starting at now
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.waits = append(c.waits, d)
	n, now := len(c.waits), c.now
	c.mu.Unlock()

	if c.OnAfter != nil {
		c.OnAfter(n)
	}
	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// Waits returns every duration passed to After
func (c *FakeClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

// Compile-time interface compliance verification
var _ domain.Clock = (*FakeClock)(nil)
