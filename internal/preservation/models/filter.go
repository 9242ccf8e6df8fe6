package models

import "time"

// TagFilter narrows project tag listings. Zero values mean "any".
type TagFilter struct {
	Status        TagStatus
	DueBefore     time.Time
	IncludeVoided bool
	Limit         int
}

// Matches applies the filter to a tag in memory.
func (f TagFilter) Matches(t *Tag) bool {
	if f.Status != "" && t.Status() != f.Status {
		return false
	}
	if !f.IncludeVoided && t.IsVoided() {
		return false
	}
	if !f.DueBefore.IsZero() {
		due, ok := t.NextDueTimeUtc()
		if !ok || due.After(f.DueBefore) {
			return false
		}
	}
	return true
}
