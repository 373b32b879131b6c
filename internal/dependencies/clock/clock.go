package clock

import "time"

// Clock provides the current time so age checks and token expiry can be
// pinned in tests
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current local time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
