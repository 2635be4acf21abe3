package data

import "time"

// TimeProvider supplies the current time so expiry logic can be tested.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the system clock.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now() }

// FixedTimeProvider always returns the configured instant.
type FixedTimeProvider struct {
	At time.Time
}

func (f *FixedTimeProvider) Now() time.Time { return f.At }

// Advance moves the fixed clock forward by d.
func (f *FixedTimeProvider) Advance(d time.Duration) { f.At = f.At.Add(d) }
