package models

import (
	"time"

	id "preservation/pkg/domain"
)

// EventType names a fact recorded by the tag aggregate.
type EventType string

const (
	EventPreservationStarted    EventType = "preservation_started"
	EventPreservationUndone     EventType = "preservation_undone"
	EventRequirementPreserved   EventType = "requirement_preserved"
	EventTagBulkPreserved       EventType = "tag_bulk_preserved"
	EventValuesRecorded         EventType = "values_recorded"
	EventRequirementAdded       EventType = "requirement_added"
	EventIntervalChanged        EventType = "interval_changed"
	EventRequirementRescheduled EventType = "requirement_rescheduled"
	EventRequirementVoided      EventType = "requirement_voided"
	EventRequirementUnvoided    EventType = "requirement_unvoided"
	EventTagTransferred         EventType = "tag_transferred"
	EventPreservationCompleted  EventType = "preservation_completed"
)

// Event is appended by tag mutations and drained with Tag.PullEvents. The
// caller decides where it goes; the aggregate never publishes anything.
type Event struct {
	Type          EventType
	TagID         id.TagID
	RequirementID id.RequirementID
	PersonID      id.PersonID
	OccurredAt    time.Time
	Attributes    map[string]string
}
