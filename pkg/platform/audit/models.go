package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their retention needs.
type EventCategory string

const (
	// CategoryCompliance covers events that document preservation work for handover:
	// preserved requirements, transfers and completion. They are never sampled.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers planning changes such as rescheduling or interval edits.
	CategoryOperations EventCategory = "operations"
)

type AuditEvent string

const (
	EventPreservationStarted    AuditEvent = "preservation_started"
	EventPreservationUndone     AuditEvent = "preservation_undone"
	EventRequirementPreserved   AuditEvent = "requirement_preserved"
	EventTagBulkPreserved       AuditEvent = "tag_bulk_preserved"
	EventValuesRecorded         AuditEvent = "values_recorded"
	EventRequirementAdded       AuditEvent = "requirement_added"
	EventIntervalChanged        AuditEvent = "interval_changed"
	EventRequirementRescheduled AuditEvent = "requirement_rescheduled"
	EventRequirementVoided      AuditEvent = "requirement_voided"
	EventRequirementUnvoided    AuditEvent = "requirement_unvoided"
	EventTagTransferred         AuditEvent = "tag_transferred"
	EventPreservationCompleted  AuditEvent = "preservation_completed"
	EventTagCreated             AuditEvent = "tag_created"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventTagCreated:            CategoryCompliance,
	EventPreservationStarted:   CategoryCompliance,
	EventPreservationUndone:    CategoryCompliance,
	EventRequirementPreserved:  CategoryCompliance,
	EventTagBulkPreserved:      CategoryCompliance,
	EventTagTransferred:        CategoryCompliance,
	EventPreservationCompleted: CategoryCompliance,
	EventRequirementVoided:     CategoryCompliance,
	EventRequirementUnvoided:   CategoryCompliance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is one fact about an aggregate, appended to the outbox in the same
// transaction as the aggregate change.
type Event struct {
	Timestamp     time.Time
	AggregateType string
	AggregateID   string
	Action        string
	ActorID       string
	RequestID     string
	Attributes    map[string]string
}

// Store appends events. Postgres implementations join the caller's transaction.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// OutboxEntry is an appended event waiting for publication.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// Outbox is the read side used by the publishing worker.
type Outbox interface {
	Pending(ctx context.Context, limit int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// payload is the JSON published to Kafka.
type payload struct {
	ID            string            `json:"id"`
	Category      string            `json:"category"`
	Timestamp     string            `json:"timestamp"`
	AggregateType string            `json:"aggregate_type"`
	AggregateID   string            `json:"aggregate_id"`
	Action        string            `json:"action"`
	ActorID       string            `json:"actor_id,omitempty"`
	RequestID     string            `json:"request_id,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// NewOutboxEntry builds the outbox row for an event. The category is always
// derived from the action.
func NewOutboxEntry(event Event, now time.Time) (OutboxEntry, error) {
	if event.Action == "" {
		return OutboxEntry{}, fmt.Errorf("audit event action is required")
	}
	entryID := uuid.New()
	ts := event.Timestamp
	if ts.IsZero() {
		ts = now
	}
	body, err := json.Marshal(payload{
		ID:            entryID.String(),
		Category:      string(AuditEvent(event.Action).Category()),
		Timestamp:     ts.UTC().Format(time.RFC3339Nano),
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		Action:        event.Action,
		ActorID:       event.ActorID,
		RequestID:     event.RequestID,
		Attributes:    event.Attributes,
	})
	if err != nil {
		return OutboxEntry{}, fmt.Errorf("marshal audit payload: %w", err)
	}
	return OutboxEntry{
		ID:            entryID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.Action,
		Payload:       body,
		CreatedAt:     now.UTC(),
	}, nil
}
