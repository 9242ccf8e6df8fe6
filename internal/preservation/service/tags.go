package service

import (
	"context"
	"errors"
	"time"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
	"preservation/pkg/platform/audit"
	"preservation/pkg/platform/sentinel"
	"preservation/pkg/requestcontext"
)

// RequirementInput selects a requirement definition and its interval for a tag.
type RequirementInput struct {
	DefinitionID  id.RequirementDefinitionID
	IntervalWeeks int
}

// CreateTagCommand registers a new tag on a journey step.
type CreateTagCommand struct {
	ProjectID    id.ProjectID
	Type         models.TagType
	TagNo        string
	Description  string
	Remark       string
	StorageArea  string
	StepID       id.StepID
	Requirements []RequirementInput
}

// CreateTag registers a tag with its requirements. The tag number must be
// unique within the project.
func (s *Service) CreateTag(ctx context.Context, cmd CreateTagCommand) (*models.Tag, error) {
	start := time.Now()
	tag, err := s.createTag(ctx, cmd)
	s.observeCommand("create_tag", err, start)
	return tag, err
}

func (s *Service) createTag(ctx context.Context, cmd CreateTagCommand) (*models.Tag, error) {
	actor := requestcontext.PersonID(ctx)
	if actor.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "acting person is required")
	}
	if cmd.StepID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "step is required")
	}
	if _, err := s.journeys.FindJourneyByStep(ctx, cmd.StepID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "step "+cmd.StepID.String()+" is not part of any journey")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load journey")
	}

	reqs := make([]*models.Requirement, 0, len(cmd.Requirements))
	for _, in := range cmd.Requirements {
		r, err := s.newRequirement(ctx, in)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}

	now := s.clock(ctx).UTC()
	tag, err := models.NewTag(models.NewTagParams{
		ID:           id.NewTagID(),
		ProjectID:    cmd.ProjectID,
		Type:         cmd.Type,
		TagNo:        cmd.TagNo,
		Description:  cmd.Description,
		StepID:       cmd.StepID,
		Requirements: reqs,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	if cmd.Remark != "" || cmd.StorageArea != "" {
		if err := tag.SetRemark(cmd.Remark, cmd.StorageArea, now); err != nil {
			return nil, err
		}
	}

	err = s.tx.RunInTx(ctx, func(stores TxStores) error {
		if err := stores.Tags.Create(ctx, tag); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeUniquenessViolation,
					"tag "+tag.TagNo()+" already exists in project "+tag.ProjectID().String())
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create tag")
		}
		return stores.Audit.Append(ctx, audit.Event{
			Timestamp:     now,
			AggregateType: "tag",
			AggregateID:   tag.ID().String(),
			Action:        string(audit.EventTagCreated),
			ActorID:       actor.String(),
			RequestID:     requestcontext.RequestID(ctx),
			Attributes: map[string]string{
				"project_id": tag.ProjectID().String(),
				"tag_no":     tag.TagNo(),
				"step_id":    tag.StepID().String(),
			},
		})
	})
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, string(audit.EventTagCreated), "tag_id", tag.ID().String(), "person_id", actor.String())
	return tag, nil
}

func (s *Service) newRequirement(ctx context.Context, in RequirementInput) (*models.Requirement, error) {
	def, err := s.loadDefinition(ctx, in.DefinitionID)
	if err != nil {
		return nil, err
	}
	if def.IsVoided {
		return nil, dErrors.New(dErrors.CodeInvalidState,
			"requirement definition "+def.Title+" is voided")
	}
	interval := in.IntervalWeeks
	if interval == 0 {
		interval = def.DefaultIntervalWeeks
	}
	return models.NewRequirement(id.NewRequirementID(), interval, def)
}

// UpdateRemark sets the remark and storage area of a tag.
func (s *Service) UpdateRemark(ctx context.Context, tagID id.TagID, remark, storageArea string) (*models.Tag, error) {
	tags, err := s.mutate(ctx, "update_remark", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		return t.SetRemark(remark, storageArea, now)
	})
	if err != nil {
		return nil, err
	}
	return tags[0], nil
}

// VoidTag hides a tag from due planning. Its history is kept.
func (s *Service) VoidTag(ctx context.Context, tagID id.TagID) error {
	_, err := s.mutate(ctx, "void_tag", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		t.Void(now)
		return nil
	})
	return err
}

func (s *Service) UnvoidTag(ctx context.Context, tagID id.TagID) error {
	_, err := s.mutate(ctx, "unvoid_tag", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		t.Unvoid(now)
		return nil
	})
	return err
}
