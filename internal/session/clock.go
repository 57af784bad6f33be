// ABOUTME: Injectable time sources for the session runner and date bookkeeping.
// ABOUTME: Real implementations wrap the time package; tests drive them by hand.
package session

import (
	"sync"
	"time"
)

// Clock provides the current time. It lets tests pin "today".
type Clock interface {
	Now() time.Time
}

// RealClock provides actual system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock provides a settable time for testing.
type FixedClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
}

// Now returns the fixed time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentTime
}

// Set changes the fixed time.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CurrentTime = t
}

// Ticker delivers one value per elapsed unit of time.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct {
	t *time.Ticker
}

// NewRealTicker returns a Ticker backed by time.Ticker.
func NewRealTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// ManualTicker is a Ticker fired explicitly, for deterministic tests and replays.
type ManualTicker struct {
	ch chan time.Time
}

// NewManualTicker returns an unbuffered ManualTicker.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time)}
}

// C returns the tick channel.
func (m *ManualTicker) C() <-chan time.Time { return m.ch }

// Fire delivers one tick, blocking until it is received.
func (m *ManualTicker) Fire() { m.ch <- time.Now() }

// Stop is a no-op; the channel stays open so a late Fire cannot panic.
func (m *ManualTicker) Stop() {}
