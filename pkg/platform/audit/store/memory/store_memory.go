package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "preservation/pkg/platform/audit"
)

// InMemoryStore keeps outbox entries in insertion order.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []audit.OutboxEntry
	events  map[string][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]audit.Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.events = make(map[string][]audit.Event)
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	entry, err := audit.NewOutboxEntry(event, time.Now())
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	s.events[event.AggregateID] = append(s.events[event.AggregateID], event)
	return nil
}

// ListByAggregate returns the events appended for one aggregate, oldest first.
func (s *InMemoryStore) ListByAggregate(_ context.Context, aggregateID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[aggregateID]...), nil
}

func (s *InMemoryStore) Pending(_ context.Context, limit int) ([]audit.OutboxEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.OutboxEntry
	for _, e := range s.entries {
		if e.PublishedAt != nil {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		marked[id] = struct{}{}
	}
	for i := range s.entries {
		if _, ok := marked[s.entries[i].ID]; ok {
			t := at
			s.entries[i].PublishedAt = &t
		}
	}
	return nil
}
