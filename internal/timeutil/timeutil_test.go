package timeutil

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2026, 2, 16, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"contained", at(9, 0), at(10, 0), at(9, 15), at(9, 45), true},
		{"partial left", at(9, 0), at(9, 45), at(9, 30), at(10, 0), true},
		{"touching endpoints", at(9, 0), at(9, 30), at(9, 30), at(10, 0), false},
		{"disjoint", at(9, 0), at(9, 30), at(10, 0), at(10, 30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			// The predicate must be symmetric in its two intervals.
			if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Fatalf("Overlaps (swapped) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	valid := map[string]int{
		"00:00": 0,
		"09:30": 570,
		"23:59": 1439,
	}
	for in, want := range valid {
		got, err := ParseClock(in)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseClock(%q) = %d, want %d", in, got, want)
		}
	}

	invalid := []string{"", "9:30", "09:3", "0930", "24:00", "09:60", "ab:cd", "09-30", "09:30 "}
	for _, in := range invalid {
		if _, err := ParseClock(in); err == nil {
			t.Fatalf("ParseClock(%q): expected error", in)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(570); got != "09:30" {
		t.Fatalf("FormatClock(570) = %q", got)
	}
	if got := FormatClock(0); got != "00:00" {
		t.Fatalf("FormatClock(0) = %q", got)
	}
}

func TestOnDateAndDayBounds(t *testing.T) {
	date := time.Date(2026, 2, 16, 14, 22, 7, 0, time.UTC)

	got := OnDate(date, 570)
	if !got.Equal(at(9, 30)) {
		t.Fatalf("OnDate = %s", got.Format(time.RFC3339))
	}

	start, end := DayBounds(date)
	if !start.Equal(at(0, 0)) {
		t.Fatalf("DayBounds start = %s", start.Format(time.RFC3339))
	}
	if !end.Equal(start.Add(24 * time.Hour)) {
		t.Fatalf("DayBounds end = %s", end.Format(time.RFC3339))
	}
}
