package models

import (
	"fmt"
	"time"

	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

// TagSnapshot is the persisted form of a tag aggregate.
type TagSnapshot struct {
	ID           id.TagID              `json:"id"`
	ProjectID    id.ProjectID          `json:"project_id"`
	Type         TagType               `json:"type"`
	TagNo        string                `json:"tag_no"`
	Description  string                `json:"description"`
	Remark       string                `json:"remark,omitempty"`
	StorageArea  string                `json:"storage_area,omitempty"`
	Status       TagStatus             `json:"status"`
	StepID       id.StepID             `json:"step_id"`
	IsVoided     bool                  `json:"is_voided"`
	CreatedAt    time.Time             `json:"created_at"`
	ModifiedAt   time.Time             `json:"modified_at"`
	Version      int64                 `json:"-"`
	Requirements []RequirementSnapshot `json:"requirements"`
}

type RequirementSnapshot struct {
	ID                  id.RequirementID           `json:"id"`
	DefinitionID        id.RequirementDefinitionID `json:"requirement_definition_id"`
	IntervalWeeks       int                        `json:"interval_weeks"`
	Usage               RequirementUsage           `json:"usage"`
	InitialPeriodStatus PeriodStatus               `json:"initial_period_status"`
	IsVoided            bool                       `json:"is_voided"`
	NextDueTimeUtc      *time.Time                 `json:"next_due_time_utc,omitempty"`
	Periods             []PeriodSnapshot           `json:"periods"`
}

type PeriodSnapshot struct {
	ID          id.PeriodID          `json:"id"`
	Status      PeriodStatus         `json:"status"`
	AnchorUtc   time.Time            `json:"anchor_utc"`
	DueTimeUtc  time.Time            `json:"due_time_utc"`
	Comment     string               `json:"comment,omitempty"`
	FieldValues []FieldValueSnapshot `json:"field_values,omitempty"`
	Record      *PreservationRecord  `json:"preservation_record,omitempty"`
}

// FieldValueSnapshot flattens the FieldValue variants. Number is nil for N/A.
type FieldValueSnapshot struct {
	FieldID    id.FieldID  `json:"field_id"`
	Type       FieldType   `json:"type"`
	Number     *float64    `json:"number,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Snapshot copies the tag into its persisted form. Pending events are not part of it.
func (t *Tag) Snapshot() TagSnapshot {
	s := TagSnapshot{
		ID:          t.id,
		ProjectID:   t.projectID,
		Type:        t.tagType,
		TagNo:       t.tagNo,
		Description: t.description,
		Remark:      t.remark,
		StorageArea: t.storageArea,
		Status:      t.status,
		StepID:      t.stepID,
		IsVoided:    t.isVoided,
		CreatedAt:   t.createdAt,
		ModifiedAt:  t.modifiedAt,
		Version:     t.version,
	}
	for _, r := range t.reqs {
		s.Requirements = append(s.Requirements, r.snapshot())
	}
	return s
}

func (r *Requirement) snapshot() RequirementSnapshot {
	s := RequirementSnapshot{
		ID:                  r.id,
		DefinitionID:        r.definitionID,
		IntervalWeeks:       r.intervalWeeks,
		Usage:               r.usage,
		InitialPeriodStatus: r.initialPeriodStatus,
		IsVoided:            r.isVoided,
	}
	if r.nextDueTimeUtc != nil {
		due := *r.nextDueTimeUtc
		s.NextDueTimeUtc = &due
	}
	for _, p := range r.periods {
		s.Periods = append(s.Periods, p.snapshot())
	}
	return s
}

func (p *PreservationPeriod) snapshot() PeriodSnapshot {
	s := PeriodSnapshot{
		ID:         p.id,
		Status:     p.status,
		AnchorUtc:  p.anchorUtc,
		DueTimeUtc: p.dueTimeUtc,
		Comment:    p.comment,
	}
	if p.record != nil {
		rec := *p.record
		s.Record = &rec
	}
	for _, v := range p.fieldValues {
		fv := FieldValueSnapshot{FieldID: v.FieldID(), Type: v.fieldType()}
		switch value := v.(type) {
		case NumberValue:
			if n, ok := value.Value(); ok {
				fv.Number = &n
			}
		case AttachmentValue:
			a := value.Attachment()
			fv.Attachment = &a
		}
		s.FieldValues = append(s.FieldValues, fv)
	}
	return s
}

// RestoreTag rebuilds a tag from its persisted form and re-checks the aggregate invariants.
func RestoreTag(s TagSnapshot) (*Tag, error) {
	if s.ID.IsNil() || s.ProjectID.IsNil() || s.StepID.IsNil() {
		return nil, corrupt(s.ID, "missing identity")
	}
	if !s.Type.IsValid() {
		return nil, corrupt(s.ID, fmt.Sprintf("unknown tag type %q", s.Type))
	}
	if !s.Status.IsValid() {
		return nil, corrupt(s.ID, fmt.Sprintf("unknown tag status %q", s.Status))
	}
	if len(s.Requirements) == 0 {
		return nil, corrupt(s.ID, "no requirements")
	}
	t := &Tag{
		id:          s.ID,
		projectID:   s.ProjectID,
		tagType:     s.Type,
		tagNo:       s.TagNo,
		description: s.Description,
		remark:      s.Remark,
		storageArea: s.StorageArea,
		status:      s.Status,
		stepID:      s.StepID,
		isVoided:    s.IsVoided,
		createdAt:   s.CreatedAt.UTC(),
		modifiedAt:  s.ModifiedAt.UTC(),
		version:     s.Version,
	}
	for _, rs := range s.Requirements {
		r, err := restoreRequirement(rs)
		if err != nil {
			return nil, corrupt(s.ID, err.Error())
		}
		if err := t.checkNewRequirement(r); err != nil {
			return nil, corrupt(s.ID, err.Error())
		}
		t.reqs = append(t.reqs, r)
	}
	return t, nil
}

func restoreRequirement(s RequirementSnapshot) (*Requirement, error) {
	if s.ID.IsNil() || s.DefinitionID.IsNil() {
		return nil, fmt.Errorf("requirement is missing identity")
	}
	if s.IntervalWeeks <= 0 {
		return nil, fmt.Errorf("requirement %s has interval %d", s.ID, s.IntervalWeeks)
	}
	if !s.InitialPeriodStatus.IsOpen() {
		return nil, fmt.Errorf("requirement %s has initial period status %q", s.ID, s.InitialPeriodStatus)
	}
	r := &Requirement{
		id:                  s.ID,
		definitionID:        s.DefinitionID,
		intervalWeeks:       s.IntervalWeeks,
		usage:               s.Usage,
		initialPeriodStatus: s.InitialPeriodStatus,
		isVoided:            s.IsVoided,
	}
	for i, ps := range s.Periods {
		p, err := restorePeriod(ps)
		if err != nil {
			return nil, fmt.Errorf("requirement %s: %w", s.ID, err)
		}
		if p.status.IsOpen() {
			if i != len(s.Periods)-1 {
				return nil, fmt.Errorf("requirement %s has an open period before the last one", s.ID)
			}
			r.active = p
		}
		r.periods = append(r.periods, p)
	}
	if s.NextDueTimeUtc != nil {
		if r.active == nil {
			return nil, fmt.Errorf("requirement %s is due without an active period", s.ID)
		}
		due := s.NextDueTimeUtc.UTC()
		r.nextDueTimeUtc = &due
	}
	return r, nil
}

func restorePeriod(s PeriodSnapshot) (*PreservationPeriod, error) {
	switch {
	case s.Status == PeriodStatusPreserved && s.Record == nil:
		return nil, fmt.Errorf("period %s is preserved without a record", s.ID)
	case s.Status.IsOpen() && s.Record != nil:
		return nil, fmt.Errorf("period %s has a record but is %s", s.ID, s.Status)
	case !s.Status.IsOpen() && s.Status != PeriodStatusPreserved:
		return nil, fmt.Errorf("period %s has unknown status %q", s.ID, s.Status)
	}
	p := &PreservationPeriod{
		id:         s.ID,
		status:     s.Status,
		anchorUtc:  s.AnchorUtc.UTC(),
		dueTimeUtc: s.DueTimeUtc.UTC(),
		comment:    s.Comment,
	}
	if s.Record != nil {
		rec := *s.Record
		p.record = &rec
	}
	seen := make(map[id.FieldID]struct{}, len(s.FieldValues))
	for _, fv := range s.FieldValues {
		if _, dup := seen[fv.FieldID]; dup {
			return nil, fmt.Errorf("period %s has two values for field %s", s.ID, fv.FieldID)
		}
		seen[fv.FieldID] = struct{}{}
		switch fv.Type {
		case FieldTypeCheckBox:
			p.fieldValues = append(p.fieldValues, CheckBoxChecked{fieldID: fv.FieldID})
		case FieldTypeNumber:
			p.fieldValues = append(p.fieldValues, newNumberValue(fv.FieldID, fv.Number))
		case FieldTypeAttachment:
			if fv.Attachment == nil {
				return nil, fmt.Errorf("period %s has an empty attachment for field %s", s.ID, fv.FieldID)
			}
			p.fieldValues = append(p.fieldValues, AttachmentValue{fieldID: fv.FieldID, attachment: *fv.Attachment})
		default:
			return nil, fmt.Errorf("period %s has a value of type %q", s.ID, fv.Type)
		}
	}
	return p, nil
}

func corrupt(tagID id.TagID, reason string) error {
	return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("stored tag %s is corrupt: %s", tagID, reason))
}
