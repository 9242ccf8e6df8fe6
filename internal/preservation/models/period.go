package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

// PeriodStatus is the lifecycle state of one preservation cycle.
type PeriodStatus string

const (
	PeriodStatusNeedsUserInput     PeriodStatus = "needs_user_input"
	PeriodStatusReadyToBePreserved PeriodStatus = "ready_to_be_preserved"
	PeriodStatusPreserved          PeriodStatus = "preserved"
)

// IsOpen reports whether a period in this status still accepts recordings.
func (s PeriodStatus) IsOpen() bool {
	return s == PeriodStatusNeedsUserInput || s == PeriodStatusReadyToBePreserved
}

// RescheduleDirection moves a due date earlier or later.
type RescheduleDirection string

const (
	RescheduleEarlier RescheduleDirection = "earlier"
	RescheduleLater   RescheduleDirection = "later"
)

func (d RescheduleDirection) IsValid() bool {
	return d == RescheduleEarlier || d == RescheduleLater
}

// CommentLengthMax bounds a period comment, in characters.
const CommentLengthMax = 2048

// PreservationRecord documents who completed a period and how. It never changes once set.
type PreservationRecord struct {
	PreservedBy    id.PersonID `json:"preserved_by"`
	BulkPreserved  bool        `json:"bulk_preserved"`
	PreservedAtUtc time.Time   `json:"preserved_at_utc"`
}

// PreservationPeriod is one due/record/preserve cycle of a requirement.
//
// Invariants:
//   - Initial status is NeedsUserInput or ReadyToBePreserved
//   - At most one field value per field
//   - Record is set if and only if Status is Preserved
//   - A Preserved period is immutable
type PreservationPeriod struct {
	id          id.PeriodID
	status      PeriodStatus
	anchorUtc   time.Time
	dueTimeUtc  time.Time
	comment     string
	fieldValues []FieldValue
	record      *PreservationRecord
}

// NewPreservationPeriod opens a cycle due at dueTimeUtc.
func NewPreservationPeriod(periodID id.PeriodID, status PeriodStatus, dueTimeUtc time.Time) (*PreservationPeriod, error) {
	if !status.IsOpen() {
		return nil, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("%s is an illegal initial status for a preservation period", status))
	}
	return &PreservationPeriod{
		id:         periodID,
		status:     status,
		dueTimeUtc: dueTimeUtc.UTC(),
	}, nil
}

func (p *PreservationPeriod) ID() id.PeriodID       { return p.id }
func (p *PreservationPeriod) Status() PeriodStatus  { return p.status }
func (p *PreservationPeriod) DueTimeUtc() time.Time { return p.dueTimeUtc }
func (p *PreservationPeriod) Comment() string       { return p.comment }

// AnchorUtc is the instant the cycle was opened; due dates are computed from it.
func (p *PreservationPeriod) AnchorUtc() time.Time { return p.anchorUtc }

// PreservationRecord returns a copy of the record, if the period is preserved.
func (p *PreservationPeriod) PreservationRecord() (PreservationRecord, bool) {
	if p.record == nil {
		return PreservationRecord{}, false
	}
	return *p.record, true
}

// FieldValues returns a copy of the recorded values.
func (p *PreservationPeriod) FieldValues() []FieldValue {
	return append([]FieldValue(nil), p.fieldValues...)
}

// GetFieldValue returns the value recorded for a field in this period.
func (p *PreservationPeriod) GetFieldValue(fieldID id.FieldID) (FieldValue, bool) {
	for _, v := range p.fieldValues {
		if v.FieldID() == fieldID {
			return v, true
		}
	}
	return nil, false
}

// RecordCheckBoxValue stores a checked box, or clears the field when unchecked.
func (p *PreservationPeriod) RecordCheckBoxValue(field Field, checked bool) error {
	if err := p.prepareRecording(field, FieldTypeCheckBox); err != nil {
		return err
	}
	if checked {
		p.fieldValues = append(p.fieldValues, CheckBoxChecked{fieldID: field.ID})
	}
	return nil
}

// RecordNumberValue stores a reading, or clears the field when value is nil.
func (p *PreservationPeriod) RecordNumberValue(field Field, value *float64) error {
	if err := p.prepareRecording(field, FieldTypeNumber); err != nil {
		return err
	}
	if value != nil {
		p.fieldValues = append(p.fieldValues, newNumberValue(field.ID, value))
	}
	return nil
}

// RecordNumberIsNA stores an explicit "not applicable" for a number field.
func (p *PreservationPeriod) RecordNumberIsNA(field Field) error {
	if err := p.prepareRecording(field, FieldTypeNumber); err != nil {
		return err
	}
	p.fieldValues = append(p.fieldValues, newNumberValue(field.ID, nil))
	return nil
}

// RecordAttachment stores an attachment reference, replacing any earlier one.
func (p *PreservationPeriod) RecordAttachment(field Field, attachment Attachment) error {
	if attachment.ID.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "attachment is required")
	}
	if err := p.prepareRecording(field, FieldTypeAttachment); err != nil {
		return err
	}
	p.fieldValues = append(p.fieldValues, AttachmentValue{fieldID: field.ID, attachment: attachment})
	return nil
}

// UpdateStatus recomputes readiness from the recorded values.
//
// A period is ready when every input field has a value and, if the definition
// has number fields, at least one of them holds an actual reading. Periods
// answered purely with N/A stay in NeedsUserInput.
func (p *PreservationPeriod) UpdateStatus(def *RequirementDefinition) error {
	if def == nil {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "requirement definition is required")
	}
	if !p.status.IsOpen() {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("%s is an illegal status for a preservation period when updating status", p.status))
	}

	for _, f := range def.inputFields() {
		if _, ok := p.GetFieldValue(f.ID); !ok {
			p.status = PeriodStatusNeedsUserInput
			return nil
		}
	}

	numberFields := def.numberFields()
	if len(numberFields) == 0 {
		p.status = PeriodStatusReadyToBePreserved
		return nil
	}
	for _, f := range numberFields {
		v, ok := p.GetFieldValue(f.ID)
		if !ok {
			continue
		}
		if nv, isNumber := v.(NumberValue); isNumber && !nv.IsNA() {
			p.status = PeriodStatusReadyToBePreserved
			return nil
		}
	}
	p.status = PeriodStatusNeedsUserInput
	return nil
}

// Preserve closes the period and creates its preservation record.
func (p *PreservationPeriod) Preserve(preservedBy id.PersonID, bulkPreserved bool, now time.Time) error {
	if preservedBy.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "preserved by is required")
	}
	if p.record != nil {
		return dErrors.New(dErrors.CodeInvalidState, "preservation period already has a preservation record")
	}
	if p.status != PeriodStatusReadyToBePreserved {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("%s is an illegal status for a preservation period when preserving", p.status))
	}
	p.status = PeriodStatusPreserved
	p.record = &PreservationRecord{
		PreservedBy:    preservedBy,
		BulkPreserved:  bulkPreserved,
		PreservedAtUtc: now.UTC(),
	}
	return nil
}

// SetComment replaces the free-text comment of an open period.
func (p *PreservationPeriod) SetComment(comment string) error {
	if !p.status.IsOpen() {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("%s is an illegal status for a preservation period when setting comment", p.status))
	}
	if utf8.RuneCountInString(comment) > CommentLengthMax {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("comment must be %d characters or less", CommentLengthMax))
	}
	p.comment = comment
	return nil
}

// Reschedule shifts the due time by whole weeks and returns the new due time.
func (p *PreservationPeriod) Reschedule(weeks int, direction RescheduleDirection) (time.Time, error) {
	if !p.status.IsOpen() {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidState, "a preserved period can not be rescheduled")
	}
	if weeks <= 0 {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, "weeks must be positive")
	}
	switch direction {
	case RescheduleLater:
		p.dueTimeUtc = addWeeks(p.dueTimeUtc, weeks)
	case RescheduleEarlier:
		p.dueTimeUtc = addWeeks(p.dueTimeUtc, -weeks)
	default:
		return time.Time{}, dErrors.New(dErrors.CodeValidation, "unknown reschedule direction")
	}
	return p.dueTimeUtc, nil
}

// open re-anchors the cycle at anchor and sets the due time interval weeks later.
func (p *PreservationPeriod) open(anchor time.Time, intervalWeeks int) {
	p.anchorUtc = anchor.UTC()
	p.dueTimeUtc = addWeeks(anchor, intervalWeeks)
}

func (p *PreservationPeriod) prepareRecording(field Field, want FieldType) error {
	if !p.status.IsOpen() {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("%s is an illegal status for a preservation period when recording field value", p.status))
	}
	if field.ID.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "field is required")
	}
	if field.Type != want {
		return dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("can't record a %s value for a %s field", want, field.Type))
	}
	p.removeFieldValue(field.ID)
	return nil
}

func (p *PreservationPeriod) removeFieldValue(fieldID id.FieldID) {
	kept := p.fieldValues[:0]
	for _, v := range p.fieldValues {
		if v.FieldID() != fieldID {
			kept = append(kept, v)
		}
	}
	p.fieldValues = kept
}
