package ports

import "time"

//go:generate mockery --name Clock --output ../../../test/mocks --outpkg mocks

// Clock abstracts time operations for testability
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// RealClock implements Clock using the standard time package
type RealClock struct{}

// NewRealClock creates a new real clock
func NewRealClock() Clock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}

// Since returns the duration between the fixed instant and t
func (c FixedClock) Since(t time.Time) time.Duration {
	return c.At.Sub(t)
}
