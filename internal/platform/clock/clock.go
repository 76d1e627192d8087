package clock

import "time"

// Clock supplies the current instant. Day and week boundaries are always taken in UTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func System() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now().UTC() }

type fixedClock struct{ at time.Time }

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock { return fixedClock{at: t.UTC()} }

func (c fixedClock) Now() time.Time { return c.at }

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats t's UTC calendar day as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
