package engine

import "time"

// Clock supplies "today" for the current-month highlight and iCalendar
// timestamps. Tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
