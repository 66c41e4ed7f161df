package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock tracks animation time with pause accounting. Suspension (hidden
// page) pauses the clock so resumed animations do not see a giant delta.
type Clock struct {
	mu sync.RWMutex

	isPaused        atomic.Bool
	pauseStartTime  time.Time
	totalPausedTime time.Duration
	startTime       time.Time
}

// NewClock creates a running clock
func NewClock() *Clock {
	return &Clock{startTime: time.Now()}
}

// Now returns the current time with monotonic clock reading
func (c *Clock) Now() time.Time {
	return time.Now()
}

// Pause stops pause-aware time accounting
func (c *Clock) Pause() {
	if c.isPaused.CompareAndSwap(false, true) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.pauseStartTime = time.Now()
	}
}

// Resume continues time accounting
func (c *Clock) Resume() {
	if c.isPaused.CompareAndSwap(true, false) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.pauseStartTime.IsZero() {
			c.totalPausedTime += time.Now().Sub(c.pauseStartTime)
			c.pauseStartTime = time.Time{}
		}
	}
}

// IsPaused returns current pause state
func (c *Clock) IsPaused() bool {
	return c.isPaused.Load()
}

// TotalPaused returns cumulative pause time including a current pause
func (c *Clock) TotalPaused() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := c.totalPausedTime
	if c.isPaused.Load() && !c.pauseStartTime.IsZero() {
		total += time.Now().Sub(c.pauseStartTime)
	}
	return total
}
