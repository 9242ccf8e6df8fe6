package service

import (
	"context"
	"errors"
	"time"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
	"preservation/pkg/platform/sentinel"
	"preservation/pkg/requestcontext"
)

// StartPreservation starts every given tag. Either all tags start or none do.
func (s *Service) StartPreservation(ctx context.Context, tagIDs []id.TagID) error {
	tags, err := s.mutate(ctx, "start_preservation", tagIDs, func(t *models.Tag, now time.Time) error {
		return t.StartPreservation(now)
	})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementStarted(len(tags))
	}
	return nil
}

// UndoStartPreservation returns active tags to not started.
func (s *Service) UndoStartPreservation(ctx context.Context, tagIDs []id.TagID) error {
	_, err := s.mutate(ctx, "undo_start_preservation", tagIDs, func(t *models.Tag, now time.Time) error {
		return t.UndoStartPreservation(now)
	})
	return err
}

// Preserve preserves every upcoming requirement of one tag as the acting person.
func (s *Service) Preserve(ctx context.Context, tagID id.TagID) error {
	preserved := 0
	_, err := s.mutate(ctx, "preserve", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		preserved = len(t.UpcomingRequirements(now))
		return t.Preserve(requestcontext.PersonID(ctx), now)
	})
	if err != nil {
		return err
	}
	s.countPreserved(false, preserved)
	return nil
}

// PreserveRequirement preserves one requirement, due or not.
func (s *Service) PreserveRequirement(ctx context.Context, tagID id.TagID, requirementID id.RequirementID) error {
	if requirementID.IsNil() {
		return dErrors.New(dErrors.CodeMissingRequiredInput, "requirement id is required")
	}
	_, err := s.mutate(ctx, "preserve_requirement", []id.TagID{tagID}, func(t *models.Tag, now time.Time) error {
		return t.PreserveRequirement(requestcontext.PersonID(ctx), requirementID, now)
	})
	if err != nil {
		return err
	}
	s.countPreserved(false, 1)
	return nil
}

// BulkPreserve preserves the upcoming requirements of every given tag. A
// single tag with nothing upcoming fails the whole batch.
func (s *Service) BulkPreserve(ctx context.Context, tagIDs []id.TagID) error {
	preserved := 0
	_, err := s.mutate(ctx, "bulk_preserve", tagIDs, func(t *models.Tag, now time.Time) error {
		n := len(t.UpcomingRequirements(now))
		if err := t.BulkPreserve(requestcontext.PersonID(ctx), now); err != nil {
			return err
		}
		preserved += n
		return nil
	})
	if err != nil {
		return err
	}
	s.countPreserved(true, preserved)
	return nil
}

// Transfer moves every given tag to the next step of its journey.
func (s *Service) Transfer(ctx context.Context, tagIDs []id.TagID) error {
	journeys := make(map[id.StepID]*models.Journey)
	tags, err := s.mutate(ctx, "transfer", tagIDs, func(t *models.Tag, now time.Time) error {
		journey, ok := journeys[t.StepID()]
		if !ok {
			j, err := s.journeys.FindJourneyByStep(ctx, t.StepID())
			if err != nil {
				return journeyError(err, t.StepID())
			}
			journey = j
			journeys[t.StepID()] = j
		}
		return t.Transfer(journey, now)
	})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementTransferred(len(tags))
	}
	return nil
}

// CompletePreservation ends preservation on every given tag.
func (s *Service) CompletePreservation(ctx context.Context, tagIDs []id.TagID) error {
	_, err := s.mutate(ctx, "complete_preservation", tagIDs, func(t *models.Tag, now time.Time) error {
		return t.CompletePreservation(now)
	})
	return err
}

// Reschedule moves the due dates of every given tag by whole weeks.
func (s *Service) Reschedule(ctx context.Context, tagIDs []id.TagID, weeks int, direction models.RescheduleDirection) error {
	_, err := s.mutate(ctx, "reschedule", tagIDs, func(t *models.Tag, now time.Time) error {
		return t.Reschedule(weeks, direction, now)
	})
	return err
}

func (s *Service) countPreserved(bulk bool, n int) {
	if s.metrics != nil && n > 0 {
		s.metrics.IncrementPreserved(bulk, n)
	}
}

func journeyError(err error, stepID id.StepID) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeInvalidState, "step "+stepID.String()+" is not part of any journey")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load journey")
}
