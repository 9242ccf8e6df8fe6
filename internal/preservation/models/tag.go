package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

// TagType classifies how a tag was registered.
type TagType string

const (
	TagTypeStandard TagType = "standard"
	TagTypePreArea  TagType = "pre_area"
	// TagTypeSiteArea aggregates a whole site area and is never transferred.
	TagTypeSiteArea TagType = "site_area"
	TagTypePoArea   TagType = "po_area"
)

func (t TagType) IsValid() bool {
	switch t {
	case TagTypeStandard, TagTypePreArea, TagTypeSiteArea, TagTypePoArea:
		return true
	}
	return false
}

// TagStatus is the preservation lifecycle of a tag.
type TagStatus string

const (
	TagStatusNotStarted TagStatus = "not_started"
	TagStatusActive     TagStatus = "active"
	TagStatusCompleted  TagStatus = "completed"
)

func (s TagStatus) IsValid() bool {
	return s == TagStatusNotStarted || s == TagStatusActive || s == TagStatusCompleted
}

const (
	TagNoLengthMax       = 255
	DescriptionLengthMax = 255
	RemarkLengthMax      = 255
	StorageAreaLengthMax = 255
)

// NewTagParams carries everything needed to register a tag.
type NewTagParams struct {
	ID           id.TagID
	ProjectID    id.ProjectID
	Type         TagType
	TagNo        string
	Description  string
	StepID       id.StepID
	Requirements []*Requirement
	CreatedAt    time.Time
}

// Tag is the aggregate root of preservation. It owns its requirements and
// orchestrates starting, preserving and transferring them.
//
// Invariants:
//   - Status moves NotStarted -> Active -> Completed; Active may be undone to NotStarted
//   - Completed is terminal
//   - No two requirements share a requirement definition
//   - A tag with no non-voided requirement can't be started
//   - NextDueTimeUtc is derived from the requirements on every read
type Tag struct {
	id          id.TagID
	projectID   id.ProjectID
	tagType     TagType
	tagNo       string
	description string
	remark      string
	storageArea string
	status      TagStatus
	stepID      id.StepID
	isVoided    bool
	reqs        []*Requirement
	createdAt   time.Time
	modifiedAt  time.Time
	version     int64
	events      []Event
}

// NewTag registers a tag that has not started preservation.
func NewTag(p NewTagParams) (*Tag, error) {
	if p.ID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "tag id is required")
	}
	if p.ProjectID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "project id is required")
	}
	if p.StepID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "step is required")
	}
	if !p.Type.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown tag type %q", p.Type))
	}
	tagNo := strings.TrimSpace(p.TagNo)
	if tagNo == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "tag number is required")
	}
	if utf8.RuneCountInString(tagNo) > TagNoLengthMax {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("tag number must be %d characters or less", TagNoLengthMax))
	}
	if utf8.RuneCountInString(p.Description) > DescriptionLengthMax {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("description must be %d characters or less", DescriptionLengthMax))
	}
	if len(p.Requirements) == 0 {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "a tag must have at least one requirement")
	}
	t := &Tag{
		id:          p.ID,
		projectID:   p.ProjectID,
		tagType:     p.Type,
		tagNo:       tagNo,
		description: p.Description,
		status:      TagStatusNotStarted,
		stepID:      p.StepID,
		createdAt:   p.CreatedAt.UTC(),
		modifiedAt:  p.CreatedAt.UTC(),
	}
	for _, r := range p.Requirements {
		if err := t.checkNewRequirement(r); err != nil {
			return nil, err
		}
		t.reqs = append(t.reqs, r)
	}
	return t, nil
}

func (t *Tag) ID() id.TagID             { return t.id }
func (t *Tag) ProjectID() id.ProjectID  { return t.projectID }
func (t *Tag) Type() TagType            { return t.tagType }
func (t *Tag) TagNo() string            { return t.tagNo }
func (t *Tag) Description() string      { return t.description }
func (t *Tag) Remark() string           { return t.remark }
func (t *Tag) StorageArea() string      { return t.storageArea }
func (t *Tag) Status() TagStatus        { return t.status }
func (t *Tag) StepID() id.StepID        { return t.stepID }
func (t *Tag) IsVoided() bool           { return t.isVoided }
func (t *Tag) CreatedAt() time.Time     { return t.createdAt }
func (t *Tag) ModifiedAt() time.Time    { return t.modifiedAt }
func (t *Tag) Version() int64           { return t.version }
func (t *Tag) SetVersion(version int64) { t.version = version }

// Requirements returns the tag's requirements in insertion order.
func (t *Tag) Requirements() []*Requirement {
	return append([]*Requirement(nil), t.reqs...)
}

// Requirement looks up one requirement of the tag.
func (t *Tag) Requirement(requirementID id.RequirementID) (*Requirement, error) {
	for _, r := range t.reqs {
		if r.ID() == requirementID {
			return r, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound,
		fmt.Sprintf("requirement %s not found on tag %s", requirementID, t.tagNo))
}

// NextDueTimeUtc is the earliest next due time among non-voided requirements.
func (t *Tag) NextDueTimeUtc() (time.Time, bool) {
	var next time.Time
	found := false
	for _, r := range t.reqs {
		if r.IsVoided() {
			continue
		}
		due, ok := r.NextDueTimeUtc()
		if !ok {
			continue
		}
		if !found || due.Before(next) {
			next, found = due, true
		}
	}
	return next, found
}

// OrderedRequirements returns the non-voided requirements by ascending next due
// time. Requirements without a due time come last; ties keep insertion order.
func (t *Tag) OrderedRequirements() []*Requirement {
	out := make([]*Requirement, 0, len(t.reqs))
	for _, r := range t.reqs {
		if !r.IsVoided() {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, iok := out[i].NextDueTimeUtc()
		dj, jok := out[j].NextDueTimeUtc()
		if iok != jok {
			return iok
		}
		return iok && di.Before(dj)
	})
	return out
}

// UpcomingRequirements are the non-voided requirements that are ready and due at now.
func (t *Tag) UpcomingRequirements(now time.Time) []*Requirement {
	var out []*Requirement
	for _, r := range t.OrderedRequirements() {
		if r.IsReadyAndDueToBePreserved(now) {
			out = append(out, r)
		}
	}
	return out
}

func (t *Tag) IsReadyToBeStarted() bool {
	if t.isVoided || t.status != TagStatusNotStarted {
		return false
	}
	for _, r := range t.reqs {
		if !r.IsVoided() {
			return true
		}
	}
	return false
}

// IsReadyToBePreserved reports whether at least one requirement is upcoming on an active tag.
func (t *Tag) IsReadyToBePreserved(now time.Time) bool {
	return !t.isVoided && t.status == TagStatusActive && len(t.UpcomingRequirements(now)) > 0
}

// IsReadyToBeTransferred is true for an active, non site-area tag whose step has a successor.
func (t *Tag) IsReadyToBeTransferred(journey *Journey) bool {
	if journey == nil || t.isVoided || t.status != TagStatusActive || t.tagType == TagTypeSiteArea {
		return false
	}
	_, ok := journey.NextStep(t.stepID)
	return ok
}

// StartPreservation starts every non-voided requirement with due dates anchored at now.
func (t *Tag) StartPreservation(now time.Time) error {
	if err := t.requireNotVoided("start preservation"); err != nil {
		return err
	}
	if !t.IsReadyToBeStarted() {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("preservation on tag %s can not start, status is %s", t.tagNo, t.status))
	}
	for _, r := range t.reqs {
		if r.IsVoided() {
			continue
		}
		if _, active := r.NextDueTimeUtc(); active {
			return dErrors.New(dErrors.CodeInvalidState,
				fmt.Sprintf("preservation is already active on requirement %s", r.ID()))
		}
	}
	for _, r := range t.reqs {
		if r.IsVoided() {
			continue
		}
		if err := r.StartPreservation(now); err != nil {
			return err
		}
	}
	t.status = TagStatusActive
	t.touch(now)
	t.emit(Event{Type: EventPreservationStarted, OccurredAt: now})
	return nil
}

// UndoStartPreservation returns an active tag to NotStarted. Period history is kept
// and the open periods are re-anchored when preservation starts again.
func (t *Tag) UndoStartPreservation(now time.Time) error {
	if err := t.requireNotVoided("undo preservation"); err != nil {
		return err
	}
	if t.status != TagStatusActive {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("preservation on tag %s can not be undone, status is %s", t.tagNo, t.status))
	}
	for _, r := range t.reqs {
		r.UndoStartPreservation()
	}
	t.status = TagStatusNotStarted
	t.touch(now)
	t.emit(Event{Type: EventPreservationUndone, OccurredAt: now})
	return nil
}

// PreserveRequirement preserves one named requirement, due or not, if it is ready.
func (t *Tag) PreserveRequirement(preservedBy id.PersonID, requirementID id.RequirementID, now time.Time) error {
	if preservedBy.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "preserved by is required")
	}
	if err := t.requireActive("preserve"); err != nil {
		return err
	}
	r, err := t.Requirement(requirementID)
	if err != nil {
		return err
	}
	if r.IsVoided() {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("requirement %s is voided and can't be preserved", requirementID))
	}
	if err := r.Preserve(preservedBy, false, now); err != nil {
		return err
	}
	t.touch(now)
	t.emit(preservedEvent(r, preservedBy, false, now))
	return nil
}

// Preserve preserves every upcoming requirement as a manual action.
func (t *Tag) Preserve(preservedBy id.PersonID, now time.Time) error {
	return t.preserveUpcoming(preservedBy, false, now)
}

// BulkPreserve preserves every upcoming requirement, flagged as bulk preserved.
func (t *Tag) BulkPreserve(preservedBy id.PersonID, now time.Time) error {
	return t.preserveUpcoming(preservedBy, true, now)
}

// Transfer moves the tag to the journey step after its current one.
func (t *Tag) Transfer(journey *Journey, now time.Time) error {
	if journey == nil {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "journey is required")
	}
	if err := t.requireNotVoided("transfer"); err != nil {
		return err
	}
	if !t.IsReadyToBeTransferred(journey) {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("tag %s can not be transferred", t.tagNo))
	}
	next, _ := journey.NextStep(t.stepID)
	from := t.stepID
	t.stepID = next.ID
	t.touch(now)
	t.emit(Event{
		Type:       EventTagTransferred,
		OccurredAt: now,
		Attributes: map[string]string{"from_step": from.String(), "to_step": next.ID.String()},
	})
	return nil
}

// CompletePreservation ends the lifecycle. No requirement is due afterwards.
func (t *Tag) CompletePreservation(now time.Time) error {
	if err := t.requireActive("complete preservation"); err != nil {
		return err
	}
	for _, r := range t.reqs {
		r.CompletePreservation()
	}
	t.status = TagStatusCompleted
	t.touch(now)
	t.emit(Event{Type: EventPreservationCompleted, OccurredAt: now})
	return nil
}

// AddRequirement attaches a new requirement. On an active tag it starts at now.
func (t *Tag) AddRequirement(r *Requirement, now time.Time) error {
	if err := t.checkNewRequirement(r); err != nil {
		return err
	}
	if t.status == TagStatusCompleted {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("can't add requirements to tag %s, preservation is completed", t.tagNo))
	}
	if t.status == TagStatusActive {
		if err := r.StartPreservation(now); err != nil {
			return err
		}
	}
	t.reqs = append(t.reqs, r)
	t.touch(now)
	t.emit(Event{
		Type:          EventRequirementAdded,
		RequirementID: r.ID(),
		OccurredAt:    now,
		Attributes: map[string]string{
			"requirement_definition_id": r.RequirementDefinitionID().String(),
			"interval_weeks":            strconv.Itoa(r.IntervalWeeks()),
		},
	})
	return nil
}

// Reschedule moves every scheduled requirement earlier or later by whole weeks.
func (t *Tag) Reschedule(weeks int, direction RescheduleDirection, now time.Time) error {
	if weeks <= 0 {
		return dErrors.New(dErrors.CodeValidation, "weeks must be positive")
	}
	if !direction.IsValid() {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown reschedule direction %q", direction))
	}
	if err := t.requireActive("reschedule"); err != nil {
		return err
	}
	for _, r := range t.OrderedRequirements() {
		if _, scheduled := r.NextDueTimeUtc(); !scheduled {
			continue
		}
		if err := r.Reschedule(weeks, direction); err != nil {
			return err
		}
		t.emit(Event{
			Type:          EventRequirementRescheduled,
			RequirementID: r.ID(),
			OccurredAt:    now,
			Attributes:    map[string]string{"weeks": strconv.Itoa(weeks), "direction": string(direction)},
		})
	}
	t.touch(now)
	return nil
}

// RecordValues records a submission on one requirement's active period.
func (t *Tag) RecordValues(requirementID id.RequirementID, values RecordedValues, def *RequirementDefinition, now time.Time) error {
	r, err := t.activeRequirement(requirementID, "record values")
	if err != nil {
		return err
	}
	if err := r.RecordValues(values, def); err != nil {
		return err
	}
	t.touch(now)
	t.emit(valuesRecordedEvent(r, now))
	return nil
}

// RecordAttachment records an attachment on one requirement's active period.
func (t *Tag) RecordAttachment(requirementID id.RequirementID, fieldID id.FieldID, attachment Attachment, def *RequirementDefinition, now time.Time) error {
	r, err := t.activeRequirement(requirementID, "record attachment")
	if err != nil {
		return err
	}
	if err := r.RecordAttachment(fieldID, attachment, def); err != nil {
		return err
	}
	t.touch(now)
	t.emit(valuesRecordedEvent(r, now))
	return nil
}

// SetRequirementComment replaces the comment of one requirement's active period.
func (t *Tag) SetRequirementComment(requirementID id.RequirementID, comment string, now time.Time) error {
	r, err := t.activeRequirement(requirementID, "comment")
	if err != nil {
		return err
	}
	if err := r.SetComment(comment); err != nil {
		return err
	}
	t.touch(now)
	t.emit(valuesRecordedEvent(r, now))
	return nil
}

// UpdateRequirementInterval changes one requirement's cycle length.
func (t *Tag) UpdateRequirementInterval(requirementID id.RequirementID, intervalWeeks int, now time.Time) error {
	if t.status == TagStatusCompleted {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("can't change intervals on tag %s, preservation is completed", t.tagNo))
	}
	r, err := t.Requirement(requirementID)
	if err != nil {
		return err
	}
	if err := r.UpdateInterval(intervalWeeks); err != nil {
		return err
	}
	t.touch(now)
	t.emit(Event{
		Type:          EventIntervalChanged,
		RequirementID: r.ID(),
		OccurredAt:    now,
		Attributes:    map[string]string{"interval_weeks": strconv.Itoa(intervalWeeks)},
	})
	return nil
}

// VoidRequirement excludes a requirement from scheduling. The last non-voided
// requirement can't be voided.
func (t *Tag) VoidRequirement(requirementID id.RequirementID, now time.Time) error {
	r, err := t.Requirement(requirementID)
	if err != nil {
		return err
	}
	if r.IsVoided() {
		return nil
	}
	remaining := 0
	for _, other := range t.reqs {
		if !other.IsVoided() && other.ID() != requirementID {
			remaining++
		}
	}
	if remaining == 0 {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("can't void the last requirement of tag %s", t.tagNo))
	}
	r.Void()
	t.touch(now)
	t.emit(Event{Type: EventRequirementVoided, RequirementID: r.ID(), OccurredAt: now})
	return nil
}

// UnvoidRequirement brings a requirement back into scheduling. On an active tag
// a requirement that was never started starts at now.
func (t *Tag) UnvoidRequirement(requirementID id.RequirementID, now time.Time) error {
	r, err := t.Requirement(requirementID)
	if err != nil {
		return err
	}
	if !r.IsVoided() {
		return nil
	}
	if t.status == TagStatusActive {
		if _, scheduled := r.NextDueTimeUtc(); !scheduled {
			if err := r.StartPreservation(now); err != nil {
				return err
			}
		}
	}
	r.Unvoid()
	t.touch(now)
	t.emit(Event{Type: EventRequirementUnvoided, RequirementID: r.ID(), OccurredAt: now})
	return nil
}

// SetRemark updates the free-text remark and storage area.
func (t *Tag) SetRemark(remark, storageArea string, now time.Time) error {
	if utf8.RuneCountInString(remark) > RemarkLengthMax {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("remark must be %d characters or less", RemarkLengthMax))
	}
	if utf8.RuneCountInString(storageArea) > StorageAreaLengthMax {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("storage area must be %d characters or less", StorageAreaLengthMax))
	}
	t.remark = remark
	t.storageArea = storageArea
	t.touch(now)
	return nil
}

func (t *Tag) Void(now time.Time) {
	t.isVoided = true
	t.touch(now)
}

func (t *Tag) Unvoid(now time.Time) {
	t.isVoided = false
	t.touch(now)
}

// PullEvents returns the pending events and clears them.
func (t *Tag) PullEvents() []Event {
	events := t.events
	t.events = nil
	return events
}

func (t *Tag) preserveUpcoming(preservedBy id.PersonID, bulk bool, now time.Time) error {
	if preservedBy.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "preserved by is required")
	}
	if err := t.requireActive("preserve"); err != nil {
		return err
	}
	upcoming := t.UpcomingRequirements(now)
	if len(upcoming) == 0 {
		return dErrors.New(dErrors.CodeNotReady,
			fmt.Sprintf("tag %s has no requirements ready and due to be preserved", t.tagNo))
	}
	for _, r := range upcoming {
		if err := r.Preserve(preservedBy, bulk, now); err != nil {
			return err
		}
		t.emit(preservedEvent(r, preservedBy, bulk, now))
	}
	if bulk {
		t.emit(Event{
			Type:       EventTagBulkPreserved,
			PersonID:   preservedBy,
			OccurredAt: now,
			Attributes: map[string]string{"requirements": strconv.Itoa(len(upcoming))},
		})
	}
	t.touch(now)
	return nil
}

func (t *Tag) activeRequirement(requirementID id.RequirementID, action string) (*Requirement, error) {
	if err := t.requireActive(action); err != nil {
		return nil, err
	}
	r, err := t.Requirement(requirementID)
	if err != nil {
		return nil, err
	}
	if r.IsVoided() {
		return nil, dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("requirement %s is voided, can't %s", requirementID, action))
	}
	return r, nil
}

func (t *Tag) requireActive(action string) error {
	if err := t.requireNotVoided(action); err != nil {
		return err
	}
	if t.status != TagStatusActive {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("can't %s on tag %s, status is %s", action, t.tagNo, t.status))
	}
	return nil
}

func (t *Tag) requireNotVoided(action string) error {
	if t.isVoided {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("can't %s on tag %s, tag is voided", action, t.tagNo))
	}
	return nil
}

func (t *Tag) checkNewRequirement(r *Requirement) error {
	if r == nil {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "requirement is required")
	}
	for _, existing := range t.reqs {
		if existing.RequirementDefinitionID() == r.RequirementDefinitionID() {
			return dErrors.New(dErrors.CodeUniquenessViolation,
				fmt.Sprintf("tag %s already has a requirement with definition %s", t.tagNo, r.RequirementDefinitionID()))
		}
		if existing.ID() == r.ID() {
			return dErrors.New(dErrors.CodeUniquenessViolation,
				fmt.Sprintf("tag %s already has requirement %s", t.tagNo, r.ID()))
		}
	}
	return nil
}

func (t *Tag) touch(now time.Time) {
	t.modifiedAt = now.UTC()
}

func (t *Tag) emit(e Event) {
	e.TagID = t.id
	e.OccurredAt = e.OccurredAt.UTC()
	t.events = append(t.events, e)
}

func preservedEvent(r *Requirement, by id.PersonID, bulk bool, now time.Time) Event {
	e := Event{
		Type:          EventRequirementPreserved,
		RequirementID: r.ID(),
		PersonID:      by,
		OccurredAt:    now,
		Attributes:    map[string]string{"bulk_preserved": strconv.FormatBool(bulk)},
	}
	if due, ok := r.NextDueTimeUtc(); ok {
		e.Attributes["next_due_time_utc"] = due.Format(time.RFC3339)
	}
	return e
}

func valuesRecordedEvent(r *Requirement, now time.Time) Event {
	e := Event{Type: EventValuesRecorded, RequirementID: r.ID(), OccurredAt: now}
	if p, ok := r.ActivePeriod(); ok {
		e.Attributes = map[string]string{"period_status": string(p.Status())}
	}
	return e
}
