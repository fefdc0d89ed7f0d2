package domain

import "time"

// DateOnly returns t's calendar date, as seen in t's own location, at midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOnlyBefore reports whether a's calendar date is strictly before b's.
// Time-of-day is ignored on both sides.
func DateOnlyBefore(a, b time.Time) bool {
	return DateOnly(a).Before(DateOnly(b))
}
