package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd string into a UTC-midnight time.Time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", dateStr)
	}
	return t, nil
}

// Day truncates t to a UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RangesOverlap reports whether two inclusive date ranges share at least one
// calendar day: [a1,a2] and [b1,b2] overlap iff a1 <= b2 AND b1 <= a2.
// A single-day range (start == end) is a valid degenerate case, and
// back-to-back ranges (a2 == b1) DO overlap — there is no time-of-day
// granularity here, so same-day handover is not expressible.
func RangesOverlap(a1, a2, b1, b2 time.Time) bool {
	return !a1.After(b2) && !b1.After(a2)
}

// InclusiveDays returns the number of calendar days in [start, end], both
// ends included. Same-day ranges count as 1.
func InclusiveDays(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours()/24) + 1
}
