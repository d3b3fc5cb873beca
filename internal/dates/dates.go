// Package dates provides pure calendar arithmetic for the planning engine.
// All operations work in UTC so local-timezone day shifts cannot move a due
// date across a boundary.
package dates

import (
	"math"
	"strings"
	"time"
)

// AddDays returns the date n calendar days after t, in UTC.
func AddDays(t time.Time, n int) time.Time {
	return t.UTC().AddDate(0, 0, n)
}

// DaysBetween returns the number of days from a to b, rounded to the nearest
// whole day. Rounding (not flooring) keeps daylight-saving fractional days
// from silently truncating a boundary day.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// NextDayOfMonth returns the next date on or after anchor whose day-of-month
// matches day, clamped to the last valid day of short months. A request for
// the 31st in February resolves to Feb 28 (or 29).
func NextDayOfMonth(anchor time.Time, day int) time.Time {
	anchor = anchor.UTC()
	if day < 1 {
		day = 1
	}

	year, month, _ := anchor.Date()
	if day < anchor.Day() {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}

	clamped := day
	if last := lastDayOfMonth(year, month); clamped > last {
		clamped = last
	}
	return time.Date(year, month, clamped, 0, 0, 0, 0, time.UTC)
}

// NextPayday returns the next date on or after anchor falling on the named
// weekday. An unrecognized weekday name is not an error: payday cadence is
// best-effort metadata, so it falls back to anchor + 7 days.
func NextPayday(anchor time.Time, weekdayName string) time.Time {
	anchor = anchor.UTC()
	target, ok := parseWeekday(weekdayName)
	if !ok {
		return AddDays(anchor, 7)
	}

	offset := (int(target) - int(anchor.Weekday()) + 7) % 7
	return AddDays(anchor, offset)
}

func parseWeekday(name string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday", "sun":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue", "tues":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu", "thur", "thurs":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	}
	return 0, false
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
