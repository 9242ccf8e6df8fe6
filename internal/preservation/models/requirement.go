package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

// Requirement is one recurring preservation obligation of a tag, created from
// a requirement definition. It owns the append-only history of its periods.
//
// Invariants:
//   - IntervalWeeks is positive
//   - Periods are only appended, never removed
//   - At most one period is open (active) and it is the last appended one
//   - A new period is appended only when no period is active
type Requirement struct {
	id                  id.RequirementID
	definitionID        id.RequirementDefinitionID
	intervalWeeks       int
	usage               RequirementUsage
	initialPeriodStatus PeriodStatus
	isVoided            bool
	periods             []*PreservationPeriod
	active              *PreservationPeriod
	nextDueTimeUtc      *time.Time
}

// NewRequirement creates a requirement that has not started preservation.
func NewRequirement(requirementID id.RequirementID, intervalWeeks int, def *RequirementDefinition) (*Requirement, error) {
	if def == nil {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "requirement definition is required")
	}
	if requirementID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "requirement id is required")
	}
	if intervalWeeks <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "interval weeks must be positive")
	}
	initial := PeriodStatusReadyToBePreserved
	if def.NeedsUserInput() {
		initial = PeriodStatusNeedsUserInput
	}
	return &Requirement{
		id:                  requirementID,
		definitionID:        def.ID,
		intervalWeeks:       intervalWeeks,
		usage:               def.Usage,
		initialPeriodStatus: initial,
	}, nil
}

func (r *Requirement) ID() id.RequirementID                                { return r.id }
func (r *Requirement) RequirementDefinitionID() id.RequirementDefinitionID { return r.definitionID }
func (r *Requirement) IntervalWeeks() int                                  { return r.intervalWeeks }
func (r *Requirement) Usage() RequirementUsage                             { return r.usage }
func (r *Requirement) IsVoided() bool                                      { return r.isVoided }
func (r *Requirement) InitialPeriodStatus() PeriodStatus                   { return r.initialPeriodStatus }

// IsInUse reports whether preservation was ever started for the requirement.
func (r *Requirement) IsInUse() bool { return len(r.periods) > 0 }

// NextDueTimeUtc mirrors the active period's due time. It is cleared by
// UndoStartPreservation and CompletePreservation.
func (r *Requirement) NextDueTimeUtc() (time.Time, bool) {
	if r.nextDueTimeUtc == nil {
		return time.Time{}, false
	}
	return *r.nextDueTimeUtc, true
}

// Periods returns the period history, oldest first.
func (r *Requirement) Periods() []*PreservationPeriod {
	return append([]*PreservationPeriod(nil), r.periods...)
}

// ActivePeriod returns the open period, if any.
func (r *Requirement) ActivePeriod() (*PreservationPeriod, bool) {
	return r.active, r.active != nil
}

func (r *Requirement) HasActivePeriod() bool { return r.active != nil }

// ReadyToBePreserved reports whether the active period can be preserved now, regardless of due date.
func (r *Requirement) ReadyToBePreserved() bool {
	return r.active != nil && r.active.Status() == PeriodStatusReadyToBePreserved
}

// StartPreservation opens the first period, due IntervalWeeks after now.
// After an undo the existing open period is re-anchored at now instead of
// appending a second one.
func (r *Requirement) StartPreservation(now time.Time) error {
	if r.nextDueTimeUtc != nil {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("preservation is already active on requirement %s", r.id))
	}
	return r.prepareNewPreservation(now)
}

// Preserve completes the active period and opens the next one, due IntervalWeeks
// after now. The new due date is anchored on the action, never on the previous due date.
func (r *Requirement) Preserve(preservedBy id.PersonID, bulkPreserved bool, now time.Time) error {
	if preservedBy.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "preserved by is required")
	}
	if !r.ReadyToBePreserved() {
		return dErrors.New(dErrors.CodeNotReady,
			fmt.Sprintf("requirement %s is not ready to be preserved", r.id))
	}
	if err := r.active.Preserve(preservedBy, bulkPreserved, now); err != nil {
		return err
	}
	r.active = nil
	return r.prepareNewPreservation(now)
}

// UndoStartPreservation clears the due projection. The period history is kept.
func (r *Requirement) UndoStartPreservation() {
	r.nextDueTimeUtc = nil
}

// CompletePreservation clears the due projection at the end of the lifecycle.
func (r *Requirement) CompletePreservation() {
	r.nextDueTimeUtc = nil
}

// Reschedule moves the active period's due time by whole weeks.
func (r *Requirement) Reschedule(weeks int, direction RescheduleDirection) error {
	if r.active == nil {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("requirement %s has no active preservation period, can't reschedule", r.id))
	}
	due, err := r.active.Reschedule(weeks, direction)
	if err != nil {
		return err
	}
	r.nextDueTimeUtc = &due
	return nil
}

// UpdateInterval changes the cycle length. An active period gets a new due
// time computed from the instant it was opened, so a late preservation never
// shifts the schedule twice.
func (r *Requirement) UpdateInterval(intervalWeeks int) error {
	if intervalWeeks <= 0 {
		return dErrors.New(dErrors.CodeValidation, "interval weeks must be positive")
	}
	r.intervalWeeks = intervalWeeks
	if r.active == nil {
		return nil
	}
	r.active.open(r.active.AnchorUtc(), intervalWeeks)
	if r.nextDueTimeUtc != nil {
		due := r.active.DueTimeUtc()
		r.nextDueTimeUtc = &due
	}
	return nil
}

// GetNextDueInWeeks returns whole weeks until the next due time; negative when overdue.
func (r *Requirement) GetNextDueInWeeks(now time.Time) (int, bool) {
	if r.nextDueTimeUtc == nil {
		return 0, false
	}
	return weeksUntil(now, *r.nextDueTimeUtc), true
}

// IsReadyAndDueToBePreserved is true when the active period is ready and its due time has come.
func (r *Requirement) IsReadyAndDueToBePreserved(now time.Time) bool {
	if !r.ReadyToBePreserved() {
		return false
	}
	weeks, ok := r.GetNextDueInWeeks(now)
	return ok && weeks <= 0
}

// GetCurrentFieldValue returns the value recorded for a field in the active period.
func (r *Requirement) GetCurrentFieldValue(fieldID id.FieldID) (FieldValue, bool) {
	if r.active == nil {
		return nil, false
	}
	return r.active.GetFieldValue(fieldID)
}

// GetCurrentComment returns the active period's comment.
func (r *Requirement) GetCurrentComment() string {
	if r.active == nil {
		return ""
	}
	return r.active.Comment()
}

// GetPreviousFieldValue returns the field's value from the most recently
// preserved period, when the field is configured to show it.
func (r *Requirement) GetPreviousFieldValue(field Field) (FieldValue, bool) {
	if !field.ShowPrevious {
		return nil, false
	}
	var last *PreservationPeriod
	var lastAt time.Time
	for _, p := range r.periods {
		rec, ok := p.PreservationRecord()
		if !ok {
			continue
		}
		if last == nil || rec.PreservedAtUtc.After(lastAt) {
			last, lastAt = p, rec.PreservedAtUtc
		}
	}
	if last == nil {
		return nil, false
	}
	return last.GetFieldValue(field.ID)
}

// SetComment sets the active period's comment.
func (r *Requirement) SetComment(comment string) error {
	if r.active == nil {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("requirement %s has no active preservation period, can't set comment", r.id))
	}
	return r.active.SetComment(comment)
}

// RecordedValues is one user submission against a requirement's active period.
type RecordedValues struct {
	CheckBoxes map[id.FieldID]bool
	Numbers    map[id.FieldID]*float64
	NumbersNA  []id.FieldID
	Comment    *string
}

func (v RecordedValues) IsEmpty() bool {
	return len(v.CheckBoxes) == 0 && len(v.Numbers) == 0 && len(v.NumbersNA) == 0 && v.Comment == nil
}

// RecordValues validates the whole submission against the definition, then
// records it on the active period and updates the period's status. Nothing is
// recorded when any part is invalid.
func (r *Requirement) RecordValues(values RecordedValues, def *RequirementDefinition) error {
	checkBoxes, err := r.typedFields(def, keys(values.CheckBoxes), FieldTypeCheckBox)
	if err != nil {
		return err
	}
	numbers, err := r.typedFields(def, keys(values.Numbers), FieldTypeNumber)
	if err != nil {
		return err
	}
	notApplicable, err := r.typedFields(def, values.NumbersNA, FieldTypeNumber)
	if err != nil {
		return err
	}
	for _, f := range notApplicable {
		if _, dup := values.Numbers[f.ID]; dup {
			return dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("field %s can't be both a reading and N/A", f.ID))
		}
	}
	if values.Comment != nil {
		if !r.active.Status().IsOpen() {
			return dErrors.New(dErrors.CodeInvalidState, "a preserved period can't be commented")
		}
		if utf8.RuneCountInString(*values.Comment) > CommentLengthMax {
			return dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("comment must be %d characters or less", CommentLengthMax))
		}
	}

	for _, f := range checkBoxes {
		if err := r.active.RecordCheckBoxValue(f, values.CheckBoxes[f.ID]); err != nil {
			return err
		}
	}
	for _, f := range numbers {
		if err := r.active.RecordNumberValue(f, values.Numbers[f.ID]); err != nil {
			return err
		}
	}
	for _, f := range notApplicable {
		if err := r.active.RecordNumberIsNA(f); err != nil {
			return err
		}
	}
	if values.Comment != nil {
		if err := r.active.SetComment(*values.Comment); err != nil {
			return err
		}
	}
	return r.active.UpdateStatus(def)
}

// RecordCheckBoxValues records checkbox fields on the active period and updates its status.
func (r *Requirement) RecordCheckBoxValues(values map[id.FieldID]bool, def *RequirementDefinition) error {
	return r.RecordValues(RecordedValues{CheckBoxes: values}, def)
}

// RecordNumberValues records readings on the active period and updates its status.
// A nil reading clears the field.
func (r *Requirement) RecordNumberValues(values map[id.FieldID]*float64, def *RequirementDefinition) error {
	return r.RecordValues(RecordedValues{Numbers: values}, def)
}

// RecordNumberIsNAValues records N/A for number fields on the active period and updates its status.
func (r *Requirement) RecordNumberIsNAValues(fieldIDs []id.FieldID, def *RequirementDefinition) error {
	return r.RecordValues(RecordedValues{NumbersNA: fieldIDs}, def)
}

// RecordAttachment records an attachment on the active period and updates its status.
func (r *Requirement) RecordAttachment(fieldID id.FieldID, attachment Attachment, def *RequirementDefinition) error {
	fields, err := r.fieldsForRecording(def, []id.FieldID{fieldID})
	if err != nil {
		return err
	}
	if err := r.active.RecordAttachment(fields[0], attachment); err != nil {
		return err
	}
	return r.active.UpdateStatus(def)
}

// Void excludes the requirement from scheduling. History is kept.
func (r *Requirement) Void()   { r.isVoided = true }
func (r *Requirement) Unvoid() { r.isVoided = false }

func (r *Requirement) prepareNewPreservation(now time.Time) error {
	if r.active == nil {
		period, err := NewPreservationPeriod(id.NewPeriodID(), r.initialPeriodStatus, now)
		if err != nil {
			return err
		}
		r.periods = append(r.periods, period)
		r.active = period
	}
	r.active.open(now, r.intervalWeeks)
	due := r.active.DueTimeUtc()
	r.nextDueTimeUtc = &due
	return nil
}

// fieldsForRecording resolves every field before anything is recorded, so a
// bad field ID leaves the period untouched.
func (r *Requirement) fieldsForRecording(def *RequirementDefinition, fieldIDs []id.FieldID) ([]Field, error) {
	if def == nil {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "requirement definition is required")
	}
	if def.ID != r.definitionID {
		return nil, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("requirement %s belongs to definition %s, can't record values for definition %s",
				r.id, r.definitionID, def.ID))
	}
	if r.active == nil {
		return nil, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("requirement %s has no active preservation period, can't record values", r.id))
	}
	fields := make([]Field, 0, len(fieldIDs))
	for _, fieldID := range fieldIDs {
		f, ok := def.Field(fieldID)
		if !ok || f.IsVoided {
			return nil, dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("field %s is not part of definition %s", fieldID, def.ID))
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (r *Requirement) typedFields(def *RequirementDefinition, fieldIDs []id.FieldID, want FieldType) ([]Field, error) {
	fields, err := r.fieldsForRecording(def, fieldIDs)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if f.Type != want {
			return nil, wrongFieldType(f, want)
		}
	}
	return fields, nil
}

func wrongFieldType(f Field, want FieldType) error {
	return dErrors.New(dErrors.CodeInvalidInput,
		fmt.Sprintf("can't record a %s value for a %s field", want, f.Type))
}

func keys[V any](m map[id.FieldID]V) []id.FieldID {
	out := make([]id.FieldID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b id.FieldID) int { return strings.Compare(a.String(), b.String()) })
	return out
}
