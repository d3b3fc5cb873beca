package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddDays(t *testing.T) {
	got := AddDays(date(2025, 1, 30), 5)
	if want := date(2025, 2, 4); !got.Equal(want) {
		t.Errorf("AddDays = %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2025, 3, 1), date(2025, 3, 1), 0},
		{"forward", date(2025, 3, 1), date(2025, 3, 5), 4},
		{"backward", date(2025, 3, 5), date(2025, 3, 1), -4},
		{"year boundary", date(2024, 12, 30), date(2025, 1, 2), 3},
		// A 23-hour "day" (DST artifact) must still count as one day.
		{"fractional day rounds", date(2025, 3, 1), date(2025, 3, 1).Add(23 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextDayOfMonth(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		day    int
		want   time.Time
	}{
		{"later this month", date(2025, 6, 10), 15, date(2025, 6, 15)},
		{"today resolves today", date(2025, 6, 15), 15, date(2025, 6, 15)},
		{"already passed rolls over", date(2025, 6, 20), 15, date(2025, 7, 15)},
		{"short month clamps", date(2025, 2, 1), 31, date(2025, 2, 28)},
		{"leap february clamps", date(2024, 2, 1), 31, date(2024, 2, 29)},
		{"year rollover", date(2025, 12, 20), 5, date(2026, 1, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDayOfMonth(tt.anchor, tt.day)
			if !got.Equal(tt.want) {
				t.Errorf("NextDayOfMonth(%v, %d) = %v, want %v", tt.anchor, tt.day, got, tt.want)
			}
		})
	}
}

func TestNextPayday(t *testing.T) {
	// 2025-06-09 is a Monday.
	monday := date(2025, 6, 9)

	tests := []struct {
		name    string
		weekday string
		want    time.Time
	}{
		{"later this week", "friday", date(2025, 6, 13)},
		{"same weekday is today", "monday", monday},
		{"wraps to next week", "sunday", date(2025, 6, 15)},
		{"case insensitive", "FRIDAY", date(2025, 6, 13)},
		{"abbreviation", "fri", date(2025, 6, 13)},
		{"unknown falls back to +7", "payday", date(2025, 6, 16)},
		{"empty falls back to +7", "", date(2025, 6, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextPayday(monday, tt.weekday)
			if !got.Equal(tt.want) {
				t.Errorf("NextPayday(%v, %q) = %v, want %v", monday, tt.weekday, got, tt.want)
			}
		})
	}
}
