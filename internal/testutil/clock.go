package testutil

import (
	"sync"
	"time"
)

// Epoch is the wall time a DeterministicClock reports at seq 0.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DeterministicClock provides a thread-safe monotonic logical clock for tests.
//
// Each reading advances the clock by one tick of Step, so the cost a DAO
// logs for a statement (two readings) is always exactly one Step.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu   sync.Mutex
	seq  int64
	Step time.Duration
}

// NewDeterministicClock creates a new deterministic clock starting at 0
// with a one millisecond step.
//
// The first call to Next() returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{Step: time.Millisecond}
}

// Next increments and returns the next sequence number.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Now advances the clock and returns Epoch plus seq steps.
func (c *DeterministicClock) Now() time.Time {
	n := c.Next()
	return Epoch.Add(time.Duration(n) * c.Step)
}

// Reset resets the clock to 0.
//
// Used for test reuse. After Reset(), the next call to Next() returns 1.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
