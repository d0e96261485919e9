package calendar

import "time"

// Clock abstracts the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	FixedNow time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.FixedNow
}

// SetNow moves the fixed clock.
func (c *FixedClock) SetNow(now time.Time) {
	c.FixedNow = now
}

// CurrentMonth returns the month of clock.Now() in UTC.
func CurrentMonth(clock Clock) Month {
	return MonthOf(clock.Now().UTC())
}

// Today returns midnight UTC of clock.Now().
func Today(clock Clock) time.Time {
	now := clock.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
