package catalog

import (
	"context"
	"fmt"
	"sync"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	"preservation/pkg/platform/sentinel"
)

// InMemory is a catalog for tests and for running without Postgres.
type InMemory struct {
	mu          sync.RWMutex
	definitions map[id.RequirementDefinitionID]models.RequirementDefinition
	journeys    map[id.JourneyID]models.Journey
	stepOwner   map[id.StepID]id.JourneyID
}

func NewInMemory() *InMemory {
	return &InMemory{
		definitions: make(map[id.RequirementDefinitionID]models.RequirementDefinition),
		journeys:    make(map[id.JourneyID]models.Journey),
		stepOwner:   make(map[id.StepID]id.JourneyID),
	}
}

func (c *InMemory) PutDefinition(_ context.Context, def models.RequirementDefinition) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.definitions[def.ID] = def
	return nil
}

func (c *InMemory) PutJourney(_ context.Context, journey models.Journey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.journeys[journey.ID]; ok {
		for _, st := range old.Steps {
			delete(c.stepOwner, st.ID)
		}
	}
	c.journeys[journey.ID] = journey
	for _, st := range journey.Steps {
		c.stepOwner[st.ID] = journey.ID
	}
	return nil
}

func (c *InMemory) FindDefinition(_ context.Context, definitionID id.RequirementDefinitionID) (*models.RequirementDefinition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.definitions[definitionID]
	if !ok {
		return nil, fmt.Errorf("definition %s: %w", definitionID, sentinel.ErrNotFound)
	}
	return &def, nil
}

func (c *InMemory) FindJourneyByStep(_ context.Context, stepID id.StepID) (*models.Journey, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	journeyID, ok := c.stepOwner[stepID]
	if !ok {
		return nil, fmt.Errorf("journey for step %s: %w", stepID, sentinel.ErrNotFound)
	}
	journey := c.journeys[journeyID]
	return &journey, nil
}
