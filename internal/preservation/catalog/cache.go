package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
)

// Reader is the lookup side of a catalog.
type Reader interface {
	FindDefinition(ctx context.Context, definitionID id.RequirementDefinitionID) (*models.RequirementDefinition, error)
	FindJourneyByStep(ctx context.Context, stepID id.StepID) (*models.Journey, error)
}

const (
	defaultCacheSize = 1024
	defaultCacheTTL  = 5 * time.Minute
)

// Cached fronts a Reader with TTL caches. Misses are not cached. Returned
// values are shared and must be treated as read-only.
type Cached struct {
	next        Reader
	definitions *expirable.LRU[id.RequirementDefinitionID, *models.RequirementDefinition]
	journeys    *expirable.LRU[id.StepID, *models.Journey]
}

func NewCached(next Reader, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cached{
		next:        next,
		definitions: expirable.NewLRU[id.RequirementDefinitionID, *models.RequirementDefinition](size, nil, ttl),
		journeys:    expirable.NewLRU[id.StepID, *models.Journey](size, nil, ttl),
	}
}

func (c *Cached) FindDefinition(ctx context.Context, definitionID id.RequirementDefinitionID) (*models.RequirementDefinition, error) {
	if def, ok := c.definitions.Get(definitionID); ok {
		return def, nil
	}
	def, err := c.next.FindDefinition(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	c.definitions.Add(definitionID, def)
	return def, nil
}

func (c *Cached) FindJourneyByStep(ctx context.Context, stepID id.StepID) (*models.Journey, error) {
	if j, ok := c.journeys.Get(stepID); ok {
		return j, nil
	}
	j, err := c.next.FindJourneyByStep(ctx, stepID)
	if err != nil {
		return nil, err
	}
	for _, st := range j.Steps {
		c.journeys.Add(st.ID, j)
	}
	return j, nil
}

// Purge drops every cached entry, used after reseeding.
func (c *Cached) Purge() {
	c.definitions.Purge()
	c.journeys.Purge()
}
