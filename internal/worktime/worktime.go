// Package worktime holds the attendance time-accounting arithmetic:
// session durations truncated to whole minutes, the daily overtime
// threshold, and the two wire formats for durations.
package worktime

import (
	"fmt"
	"time"
)

// SessionMinutes returns the whole minutes elapsed between check-in and
// check-out. Fractional minutes are discarded, never rounded up. A negative
// span (clock skew) counts as zero.
func SessionMinutes(checkIn, checkOut time.Time) int {
	minutes := int(checkOut.Sub(checkIn) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// Overtime returns the day's overtime minutes given the cumulative worked
// minutes and the daily threshold.
func Overtime(cumulativeMinutes, thresholdMinutes int) int {
	if cumulativeMinutes <= thresholdMinutes {
		return 0
	}
	return cumulativeMinutes - thresholdMinutes
}

// FormatSession renders minutes in the check-out response format: hour
// component unbounded and not zero-padded, minutes two digits, seconds
// always literal 00.
func FormatSession(minutes int) string {
	return fmt.Sprintf("%d:%02d:00", minutes/60, minutes%60)
}

// FormatClock renders minutes in the daily-summary format HH:MM:SS.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// DayBounds returns the half-open [start, end) interval of t's calendar day
// in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
