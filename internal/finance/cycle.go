package finance

import "time"

// CycleWindowStart returns the start of the income period that contains now:
// the most recent occurrence of the income day, at midnight in now's
// location. Income days beyond the last day of a month clamp to that last
// day, so a day of 31 works in February.
func CycleWindowStart(now time.Time, incomeDay int) time.Time {
	day := incomeDay
	if day < 1 {
		day = 1
	} else if day > 31 {
		day = 31
	}

	year, month, _ := now.Date()

	start := clampedDate(year, month, day, now.Location())
	if start.After(now) {
		start = clampedDate(year, month-1, day, now.Location())
	}
	return start
}

// clampedDate builds a date with the day clamped to the month's length
// instead of time.Date's overflow into the next month.
func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// CanStartCycle reports whether a new coaching cycle may start at now: the
// income day for the current period must have been reached and no cycle may
// have started in that period yet. lastStarted is the zero time when no
// cycle exists.
func CanStartCycle(now time.Time, incomeDay int, lastStarted time.Time) bool {
	windowStart := CycleWindowStart(now, incomeDay)
	return lastStarted.Before(windowStart)
}
