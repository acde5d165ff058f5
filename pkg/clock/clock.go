// Package clock abstracts time for the sync engine so backup names are
// deterministic in tests.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// systemClock implements Clock using the system time.
type systemClock struct{}

// New returns a Clock backed by the system time.
func New() Clock {
	return &systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fake implements Clock with a controllable time for testing.
type Fake struct {
	current time.Time
}

// NewFake creates a Fake clock fixed at the given time.
func NewFake(t time.Time) *Fake {
	return &Fake{current: t}
}

// Now returns the fixed time.
func (f *Fake) Now() time.Time {
	return f.current
}

// Set updates the fixed time.
func (f *Fake) Set(t time.Time) {
	f.current = t
}

// Advance moves the fixed time forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}
