package book

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The address book uses it to determine "today" for the upcoming query.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
