package timeutil

import (
	"fmt"
	"time"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) collide. Touching endpoints do not overlap, so
// back-to-back bookings are allowed.
//
// Every collision decision in the scheduler goes through this predicate.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ParseClock converts a zero-padded "HH:MM" string into minutes since
// midnight. Anything that is not exactly two digits, a colon and two
// digits is rejected.
func ParseClock(hm string) (int, error) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", hm)
	}

	h, ok1 := twoDigits(hm[0], hm[1])
	m, ok2 := twoDigits(hm[3], hm[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", hm)
	}

	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// OnDate places a minutes-since-midnight offset on a calendar date,
// keeping the date's location.
func OnDate(date time.Time, minutes int) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0,
		date.Location(),
	)
}

// DayBounds returns [00:00 of date, 00:00 of the next day).
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}
