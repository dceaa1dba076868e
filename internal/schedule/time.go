package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60
	nightStartMin = 22 * 60 // 22:00
	nightEndMin   = 6 * 60  // 06:00
)

// ClockMinutes converts an "HH:MM" clock string to minutes since midnight.
func ClockMinutes(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", clock)
	}
	return hours*60 + minutes, nil
}

// clockMinutes is the non-failing variant used after inputs have been
// validated upstream.
func clockMinutes(clock string) int {
	m, _ := ClockMinutes(clock)
	return m
}

// isNightShift reports whether a shift falls in the 22:00-06:00 window.
func isNightShift(startMin, endMin int) bool {
	return startMin >= nightStartMin || endMin <= nightEndMin
}

// isWeekend reports whether the date is a Saturday or Sunday.
func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// mondayWeekday maps a date onto the Monday=0 .. Sunday=6 convention used
// by availability windows.
func mondayWeekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// WeekKeyFor returns the canonical week identifier of a date: the ISO
// year-week pair. Every weekly constraint groups shift instances by this
// single function, computed once per instance.
func WeekKeyFor(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// dayKey normalizes a timestamp to its calendar date.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// sameCalendarDay compares two timestamps by calendar date.
func sameCalendarDay(a, b time.Time) bool {
	return dayKey(a) == dayKey(b)
}

// nextCalendarDay reports whether b is exactly one calendar day after a.
func nextCalendarDay(a, b time.Time) bool {
	return dayKey(a.AddDate(0, 0, 1)) == dayKey(b)
}
