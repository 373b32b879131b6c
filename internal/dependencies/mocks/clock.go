package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/userportal/internal/dependencies/clock"
)

// MockClock is a settable Clock for tests. It is safe to move the clock
// while a test server reads it.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// NewMockClockOnDate creates a MockClock at noon UTC on the given day
func NewMockClockOnDate(year int, month time.Month, day int) *MockClock {
	return NewMockClock(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}
