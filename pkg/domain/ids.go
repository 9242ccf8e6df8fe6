// Package domain holds the typed identifiers shared across the preservation
// bounded context. Each ID wraps a UUID so the compiler rejects passing a
// TagID where a RequirementID is expected.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "preservation/pkg/domain-errors"
)

type (
	ProjectID               uuid.UUID
	TagID                   uuid.UUID
	RequirementID           uuid.UUID
	RequirementDefinitionID uuid.UUID
	FieldID                 uuid.UUID
	PeriodID                uuid.UUID
	PersonID                uuid.UUID
	JourneyID               uuid.UUID
	StepID                  uuid.UUID
	AttachmentID            uuid.UUID
)

func (id ProjectID) String() string               { return uuid.UUID(id).String() }
func (id TagID) String() string                   { return uuid.UUID(id).String() }
func (id RequirementID) String() string           { return uuid.UUID(id).String() }
func (id RequirementDefinitionID) String() string { return uuid.UUID(id).String() }
func (id FieldID) String() string                 { return uuid.UUID(id).String() }
func (id PeriodID) String() string                { return uuid.UUID(id).String() }
func (id PersonID) String() string                { return uuid.UUID(id).String() }
func (id JourneyID) String() string               { return uuid.UUID(id).String() }
func (id StepID) String() string                  { return uuid.UUID(id).String() }
func (id AttachmentID) String() string            { return uuid.UUID(id).String() }

func (id ProjectID) IsNil() bool               { return uuid.UUID(id) == uuid.Nil }
func (id TagID) IsNil() bool                   { return uuid.UUID(id) == uuid.Nil }
func (id RequirementID) IsNil() bool           { return uuid.UUID(id) == uuid.Nil }
func (id RequirementDefinitionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id FieldID) IsNil() bool                 { return uuid.UUID(id) == uuid.Nil }
func (id PeriodID) IsNil() bool                { return uuid.UUID(id) == uuid.Nil }
func (id PersonID) IsNil() bool                { return uuid.UUID(id) == uuid.Nil }
func (id JourneyID) IsNil() bool               { return uuid.UUID(id) == uuid.Nil }
func (id StepID) IsNil() bool                  { return uuid.UUID(id) == uuid.Nil }
func (id AttachmentID) IsNil() bool            { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs appear as JSON strings and map keys.
func (id TagID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }
func (id RequirementID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id FieldID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id PersonID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id StepID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id ProjectID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id PeriodID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id JourneyID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id AttachmentID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id RequirementDefinitionID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *TagID) UnmarshalText(b []byte) error         { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RequirementID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *FieldID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PersonID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *StepID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ProjectID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PeriodID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *JourneyID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *AttachmentID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RequirementDefinitionID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// maxIDLength bounds input before it reaches the UUID parser.
const maxIDLength = 64

// parseUUID enforces the trust boundary rule shared by every ID type:
// the value must be a well-formed, non-nil UUID.
func parseUUID(s, label string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return parsed, nil
}

func ParseProjectID(s string) (ProjectID, error) {
	u, err := parseUUID(s, "project_id")
	return ProjectID(u), err
}

func ParseTagID(s string) (TagID, error) {
	u, err := parseUUID(s, "tag_id")
	return TagID(u), err
}

func ParseRequirementID(s string) (RequirementID, error) {
	u, err := parseUUID(s, "requirement_id")
	return RequirementID(u), err
}

func ParseRequirementDefinitionID(s string) (RequirementDefinitionID, error) {
	u, err := parseUUID(s, "requirement_definition_id")
	return RequirementDefinitionID(u), err
}

func ParseFieldID(s string) (FieldID, error) {
	u, err := parseUUID(s, "field_id")
	return FieldID(u), err
}

func ParsePersonID(s string) (PersonID, error) {
	u, err := parseUUID(s, "person_id")
	return PersonID(u), err
}

func ParseJourneyID(s string) (JourneyID, error) {
	u, err := parseUUID(s, "journey_id")
	return JourneyID(u), err
}

func ParseStepID(s string) (StepID, error) {
	u, err := parseUUID(s, "step_id")
	return StepID(u), err
}

func NewTagID() TagID                 { return TagID(uuid.New()) }
func NewRequirementID() RequirementID { return RequirementID(uuid.New()) }
func NewPeriodID() PeriodID           { return PeriodID(uuid.New()) }
func NewAttachmentID() AttachmentID   { return AttachmentID(uuid.New()) }
