package service

import (
	"context"
	"slices"
	"time"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
	"preservation/pkg/requestcontext"
)

const defaultDueLimit = 100

// BulkResult reports the outcome of BulkPreserveDue.
type BulkResult struct {
	Preserved []id.TagID
	// Skipped tags were listed as due but had nothing ready to preserve.
	Skipped []id.TagID
}

// DueTags returns the project's active tags whose next due time has come,
// earliest first.
func (s *Service) DueTags(ctx context.Context, projectID id.ProjectID, limit int) ([]id.TagID, error) {
	if projectID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingRequiredInput, "project id is required")
	}
	if limit <= 0 {
		limit = defaultDueLimit
	}
	before := s.clock(ctx).UTC()

	if s.dueIndex != nil {
		tagIDs, err := s.dueIndex.Due(ctx, projectID, before, limit)
		if err == nil {
			usePrimary, change := s.breaker.RecordSuccess()
			if change.Closed && s.logger != nil {
				s.logger.InfoContext(ctx, "due index circuit closed", "breaker", s.breaker.Name())
			}
			if usePrimary {
				return tagIDs, nil
			}
		} else {
			_, change := s.breaker.RecordFailure()
			if s.logger != nil {
				s.logger.WarnContext(ctx, "due index query failed, scanning tag store",
					"error", err, "breaker", s.breaker.Name(), "circuit_opened", change.Opened)
			}
		}
		if s.metrics != nil {
			s.metrics.IncrementDueIndexFallback()
		}
	}
	return s.scanDue(ctx, projectID, before, limit)
}

func (s *Service) scanDue(ctx context.Context, projectID id.ProjectID, before time.Time, limit int) ([]id.TagID, error) {
	tags, err := s.tags.ListByProject(ctx, projectID, models.TagFilter{
		Status:    models.TagStatusActive,
		DueBefore: before,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list due tags")
	}
	sortByDue(tags)
	ids := make([]id.TagID, 0, min(limit, len(tags)))
	for _, t := range tags {
		if len(ids) == limit {
			break
		}
		ids = append(ids, t.ID())
	}
	return ids, nil
}

// BulkPreserveDue bulk preserves every due tag of a project that has
// something ready. Tags listed as due but not ready are skipped, since the
// due index may lag behind the store.
func (s *Service) BulkPreserveDue(ctx context.Context, projectID id.ProjectID, limit int) (*BulkResult, error) {
	candidates, err := s.DueTags(ctx, projectID, limit)
	if err != nil {
		return nil, err
	}
	result := &BulkResult{}
	if len(candidates) == 0 {
		return result, nil
	}

	var ready []id.TagID
	for _, tagID := range candidates {
		t, err := s.tags.FindByID(ctx, tagID)
		if err != nil {
			result.Skipped = append(result.Skipped, tagID)
			continue
		}
		if t.ProjectID() == projectID && !t.IsVoided() && t.IsReadyToBePreserved(s.clock(ctx).UTC()) {
			ready = append(ready, tagID)
		} else {
			result.Skipped = append(result.Skipped, tagID)
		}
	}
	if len(ready) == 0 {
		return result, nil
	}
	if err := s.BulkPreserve(ctx, ready); err != nil {
		return nil, err
	}
	result.Preserved = ready
	return result, nil
}

// RebuildDueIndex rewrites the due index entries of a project from the tag
// store and returns the number of indexed tags.
func (s *Service) RebuildDueIndex(ctx context.Context, projectID id.ProjectID) (int, error) {
	if s.dueIndex == nil {
		return 0, dErrors.New(dErrors.CodeInvalidState, "due index is not configured")
	}
	if projectID.IsNil() {
		return 0, dErrors.New(dErrors.CodeMissingRequiredInput, "project id is required")
	}
	tags, err := s.tags.ListByProject(ctx, projectID, models.TagFilter{IncludeVoided: true})
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tags")
	}
	indexed := 0
	for _, t := range tags {
		ok, err := s.indexTag(ctx, t)
		if err != nil {
			return indexed, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update due index")
		}
		if ok {
			indexed++
		}
	}
	s.breaker.Reset()
	s.logAudit(ctx, "due_index_rebuilt", "project_id", projectID.String(), "indexed", indexed,
		"person_id", requestcontext.PersonID(ctx).String())
	return indexed, nil
}

// refreshDueIndex mirrors saved tags into the due index. Failures are logged
// and counted against the breaker; the store already holds the truth.
func (s *Service) refreshDueIndex(ctx context.Context, tags []*models.Tag) {
	if s.dueIndex == nil {
		return
	}
	for _, t := range tags {
		if _, err := s.indexTag(ctx, t); err != nil {
			_, change := s.breaker.RecordFailure()
			if s.logger != nil {
				s.logger.WarnContext(ctx, "failed to refresh due index",
					"tag_id", t.ID().String(), "error", err, "circuit_opened", change.Opened)
			}
		}
	}
}

// indexTag upserts a scheduled active tag and removes any other. It reports
// whether the tag is indexed.
func (s *Service) indexTag(ctx context.Context, t *models.Tag) (bool, error) {
	due, ok := t.NextDueTimeUtc()
	if ok && t.Status() == models.TagStatusActive && !t.IsVoided() {
		return true, s.dueIndex.Upsert(ctx, t.ProjectID(), t.ID(), due)
	}
	return false, s.dueIndex.Remove(ctx, t.ProjectID(), t.ID())
}

func sortByDue(tags []*models.Tag) {
	slices.SortStableFunc(tags, func(a, b *models.Tag) int {
		da, _ := a.NextDueTimeUtc()
		db, _ := b.NextDueTimeUtc()
		return da.Compare(db)
	})
}
