package service

import (
	"context"
	"sort"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

// FieldDetails pairs a field with its value in the active period and, when the
// field shows previous values, the value from the last preserved period.
type FieldDetails struct {
	Field    models.Field
	Current  models.FieldValue
	Previous models.FieldValue
}

// RequirementDetails is the read model for recording values on a requirement.
type RequirementDetails struct {
	TagID              id.TagID
	Requirement        *models.Requirement
	Definition         *models.RequirementDefinition
	Comment            string
	NextDueInWeeks     *int
	ReadyToBePreserved bool
	Fields             []FieldDetails
}

// GetTag returns one tag.
func (s *Service) GetTag(ctx context.Context, tagID id.TagID) (*models.Tag, error) {
	return s.loadTag(ctx, tagID)
}

// ListTags returns the project's tags matching filter.
func (s *Service) ListTags(ctx context.Context, projectID id.ProjectID, filter models.TagFilter) ([]*models.Tag, error) {
	if projectID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "project id is required")
	}
	tags, err := s.tags.ListByProject(ctx, projectID, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tags")
	}
	return tags, nil
}

// UpcomingRequirements returns the requirements of a tag that are ready and
// due now, ordered by due time.
func (s *Service) UpcomingRequirements(ctx context.Context, tagID id.TagID) ([]*models.Requirement, error) {
	t, err := s.loadTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	return t.UpcomingRequirements(s.clock(ctx).UTC()), nil
}

// GetRequirementDetails returns the active period's values for every active
// field of the requirement's definition, in field order.
func (s *Service) GetRequirementDetails(ctx context.Context, tagID id.TagID, requirementID id.RequirementID) (*RequirementDetails, error) {
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
	def, err := s.loadDefinition(ctx, r.RequirementDefinitionID())
	if err != nil {
		return nil, err
	}

	details := &RequirementDetails{
		TagID:              t.ID(),
		Requirement:        r,
		Definition:         def,
		Comment:            r.GetCurrentComment(),
		ReadyToBePreserved: r.ReadyToBePreserved(),
	}
	if weeks, ok := r.GetNextDueInWeeks(s.clock(ctx).UTC()); ok {
		details.NextDueInWeeks = &weeks
	}

	fields := make([]models.Field, 0, len(def.Fields))
	for _, f := range def.Fields {
		if !f.IsVoided {
			fields = append(fields, f)
		}
	}
	sort.SliceStable(fields, func(a, b int) bool { return fields[a].SortKey < fields[b].SortKey })
	for _, f := range fields {
		fd := FieldDetails{Field: f}
		if v, ok := r.GetCurrentFieldValue(f.ID); ok {
			fd.Current = v
		}
		if v, ok := r.GetPreviousFieldValue(f); ok {
			fd.Previous = v
		}
		details.Fields = append(details.Fields, fd)
	}
	return details, nil
}
