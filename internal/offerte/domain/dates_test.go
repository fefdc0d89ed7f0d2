package domain

import (
	"testing"
	"time"
)

func TestDateOnlyBefore(t *testing.T) {
	ams, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		ams = time.FixedZone("CET", 3600)
	}
	lateToday := time.Date(2026, 3, 14, 23, 59, 0, 0, ams)
	earlyToday := time.Date(2026, 3, 14, 0, 1, 0, 0, ams)
	yesterdayNoon := time.Date(2026, 3, 13, 12, 0, 0, 0, ams)

	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"same day earlier time", earlyToday, lateToday, false},
		{"same day later time", lateToday, earlyToday, false},
		{"previous day", yesterdayNoon, earlyToday, true},
		{"next day", lateToday.AddDate(0, 0, 1), earlyToday, false},
	}
	for _, tc := range tests {
		if got := DateOnlyBefore(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: DateOnlyBefore = %v, want %v", tc.name, got, tc.want)
		}
	}
}
