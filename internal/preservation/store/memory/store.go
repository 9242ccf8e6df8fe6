// Package memory keeps tag aggregates as snapshots in process memory. Every
// read restores a fresh aggregate, so callers never share state.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	"preservation/pkg/platform/sentinel"
)

type tagNoKey struct {
	projectID id.ProjectID
	tagNo     string
}

// InMemory is a TagStore for tests and single-process runs.
type InMemory struct {
	mu     sync.RWMutex
	tags   map[id.TagID]models.TagSnapshot
	tagNos map[tagNoKey]id.TagID
}

func NewInMemory() *InMemory {
	return &InMemory{
		tags:   make(map[id.TagID]models.TagSnapshot),
		tagNos: make(map[tagNoKey]id.TagID),
	}
}

func keyOf(projectID id.ProjectID, tagNo string) tagNoKey {
	return tagNoKey{projectID: projectID, tagNo: strings.ToUpper(tagNo)}
}

// Create stores a new tag at version 1. Tag numbers are unique per project,
// ignoring case.
func (s *InMemory) Create(_ context.Context, tag *models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tags[tag.ID()]; exists {
		return fmt.Errorf("tag %s: %w", tag.ID(), sentinel.ErrConflict)
	}
	key := keyOf(tag.ProjectID(), tag.TagNo())
	if _, taken := s.tagNos[key]; taken {
		return fmt.Errorf("tag number %s: %w", tag.TagNo(), sentinel.ErrConflict)
	}
	tag.SetVersion(1)
	s.tags[tag.ID()] = tag.Snapshot()
	s.tagNos[key] = tag.ID()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, tagID id.TagID) (*models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restore(tagID)
}

func (s *InMemory) FindByIDs(_ context.Context, tagIDs []id.TagID) ([]*models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]*models.Tag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		t, err := s.restore(tagID)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// Save checks every version before writing any tag.
func (s *InMemory) Save(_ context.Context, tags ...*models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range tags {
		stored, ok := s.tags[t.ID()]
		if !ok {
			return fmt.Errorf("tag %s: %w", t.ID(), sentinel.ErrNotFound)
		}
		if stored.Version != t.Version() {
			return fmt.Errorf("tag %s at version %d, stored %d: %w", t.ID(), t.Version(), stored.Version, sentinel.ErrConflict)
		}
	}
	for _, t := range tags {
		t.SetVersion(t.Version() + 1)
		s.tags[t.ID()] = t.Snapshot()
	}
	return nil
}

// ListByProject returns matching tags ordered by tag number.
func (s *InMemory) ListByProject(_ context.Context, projectID id.ProjectID, filter models.TagFilter) ([]*models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tags []*models.Tag
	for tagID, snap := range s.tags {
		if snap.ProjectID != projectID {
			continue
		}
		t, err := s.restore(tagID)
		if err != nil {
			return nil, err
		}
		if filter.Matches(t) {
			tags = append(tags, t)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].TagNo() < tags[j].TagNo() })
	if filter.Limit > 0 && len(tags) > filter.Limit {
		tags = tags[:filter.Limit]
	}
	return tags, nil
}

func (s *InMemory) restore(tagID id.TagID) (*models.Tag, error) {
	snap, ok := s.tags[tagID]
	if !ok {
		return nil, fmt.Errorf("tag %s: %w", tagID, sentinel.ErrNotFound)
	}
	return models.RestoreTag(snap)
}
