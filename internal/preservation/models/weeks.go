package models

import (
	"math"
	"time"
)

const week = 7 * 24 * time.Hour

// addWeeks anchors due dates on an action instant. Times are normalised to UTC.
func addWeeks(t time.Time, weeks int) time.Time {
	return t.UTC().Add(time.Duration(weeks) * week)
}

// weeksUntil counts whole weeks from now to due. Any instant strictly before
// due counts as at least one week away; at or after due the result is zero or
// negative, so "due" is exactly weeksUntil <= 0.
func weeksUntil(now, due time.Time) int {
	d := due.Sub(now)
	if d > 0 {
		return int(math.Ceil(float64(d) / float64(week)))
	}
	return -int((-d) / week)
}
