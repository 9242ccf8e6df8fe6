package service

import (
	"context"
	"time"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

// RecordValues records checkbox, number and comment input on a requirement's
// active period. The submission is applied completely or not at all.
func (s *Service) RecordValues(ctx context.Context, tagID id.TagID, requirementID id.RequirementID, values models.RecordedValues) error {
	def, err := s.definitionFor(ctx, tagID, requirementID)
	if err != nil {
		return err
	}
	_, err = s.mutate(ctx, "record_values", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		return t.RecordValues(requirementID, values, def, now)
	})
	return err
}

// RecordAttachment stores an uploaded file reference on an attachment field.
func (s *Service) RecordAttachment(ctx context.Context, tagID id.TagID, requirementID id.RequirementID, fieldID id.FieldID, attachment models.Attachment) error {
	if fieldID.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "field id is required")
	}
	def, err := s.definitionFor(ctx, tagID, requirementID)
	if err != nil {
		return err
	}
	_, err = s.mutate(ctx, "record_attachment", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		return t.RecordAttachment(requirementID, fieldID, attachment, def, now)
	})
	return err
}

// SetRequirementComment replaces the comment on a requirement's active period.
func (s *Service) SetRequirementComment(ctx context.Context, tagID id.TagID, requirementID id.RequirementID, comment string) error {
	if requirementID.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "requirement id is required")
	}
	_, err := s.mutate(ctx, "set_requirement_comment", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		return t.SetRequirementComment(requirementID, comment, now)
	})
	return err
}

// UpdateRequirementInterval changes the interval of one requirement. A
// scheduled requirement gets a new due date from its period's anchor.
func (s *Service) UpdateRequirementInterval(ctx context.Context, tagID id.TagID, requirementID id.RequirementID, intervalWeeks int) error {
	if requirementID.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "requirement id is required")
	}
	_, err := s.mutate(ctx, "update_requirement_interval", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		return t.UpdateRequirementInterval(requirementID, intervalWeeks, now)
	})
	return err
}

// AddRequirement attaches a new requirement to a tag and returns its ID.
func (s *Service) AddRequirement(ctx context.Context, tagID id.TagID, in RequirementInput) (id.RequirementID, error) {
	r, err := s.newRequirement(ctx, in)
	if err != nil {
		return id.RequirementID{}, err
	}
	_, err = s.mutate(ctx, "add_requirement", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		return t.AddRequirement(r, now)
	})
	if err != nil {
		return id.RequirementID{}, err
	}
	return r.ID(), nil
}

func (s *Service) VoidRequirement(ctx context.Context, tagID id.TagID, requirementID id.RequirementID) error {
	_, err := s.mutate(ctx, "void_requirement", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		return t.VoidRequirement(requirementID, now)
	})
	return err
}

func (s *Service) UnvoidRequirement(ctx context.Context, tagID id.TagID, requirementID id.RequirementID) error {
	_, err := s.mutate(ctx, "unvoid_requirement", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		return t.UnvoidRequirement(requirementID, now)
	})
	return err
}

// definitionFor resolves the definition behind a tag's requirement.
func (s *Service) definitionFor(ctx context.Context, tagID id.TagID, requirementID id.RequirementID) (*models.RequirementDefinition, error) {
	if requirementID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "requirement id is required")
	}
	t, err := s.loadTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	r, err := t.Requirement(requirementID)
	if err != nil {
		return nil, err
	}
	return s.loadDefinition(ctx, r.RequirementDefinitionID())
}
