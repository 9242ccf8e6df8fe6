package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeeksUntil(t *testing.T) {
	due := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, weeksUntil(due.Add(-time.Nanosecond), due))
	assert.Equal(t, 0, weeksUntil(due, due))
	assert.Equal(t, 0, weeksUntil(due.Add(week-time.Nanosecond), due))
	assert.Equal(t, -1, weeksUntil(due.Add(week), due))
	assert.Equal(t, 3, weeksUntil(due.Add(-2*week-time.Hour), due))
}

func TestAddWeeksNormalisesToUTC(t *testing.T) {
	oslo := time.FixedZone("CET", 3600)
	at := time.Date(2026, 5, 1, 13, 0, 0, 0, oslo)

	got := addWeeks(at, 2)

	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(at.Add(2*week)))
}
