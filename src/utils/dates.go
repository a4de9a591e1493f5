package utils

import (
	"fmt"
	"time"
)

const ShortDashDateLayout = "2006-01-02"

// DayStart truncates a timestamp to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TrailingWindow returns the half-open window [end-days, end) where end is
// the start of now's day. Every user in a newsletter run sees the same
// window, so it is computed once per run.
func TrailingWindow(now time.Time, days int) (start, end time.Time, err error) {
	if days <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("trailing window must cover at least one day, got %d", days)
	}
	end = DayStart(now)
	start = end.AddDate(0, 0, -days)
	return start, end, nil
}
