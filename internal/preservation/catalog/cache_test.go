package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	"preservation/pkg/platform/sentinel"
)

type countingReader struct {
	*InMemory
	definitionCalls int
	journeyCalls    int
}

func (r *countingReader) FindDefinition(ctx context.Context, defID id.RequirementDefinitionID) (*models.RequirementDefinition, error) {
	r.definitionCalls++
	return r.InMemory.FindDefinition(ctx, defID)
}

func (r *countingReader) FindJourneyByStep(ctx context.Context, stepID id.StepID) (*models.Journey, error) {
	r.journeyCalls++
	return r.InMemory.FindJourneyByStep(ctx, stepID)
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	backing := &countingReader{InMemory: NewInMemory()}
	cached := NewCached(backing, 16, time.Minute)

	defID := id.RequirementDefinitionID(uuid.New())
	require.NoError(t, backing.PutDefinition(ctx, models.RequirementDefinition{ID: defID, Title: "Rotate", DefaultIntervalWeeks: 2}))
	first, second := id.StepID(uuid.New()), id.StepID(uuid.New())
	require.NoError(t, backing.PutJourney(ctx, models.Journey{ID: id.JourneyID(uuid.New()), Steps: []models.Step{{ID: first}, {ID: second}}}))

	t.Run("definitions hit the backing reader once", func(t *testing.T) {
		for range 3 {
			def, err := cached.FindDefinition(ctx, defID)
			require.NoError(t, err)
			assert.Equal(t, "Rotate", def.Title)
		}
		assert.Equal(t, 1, backing.definitionCalls)
	})

	t.Run("a journey is cached under all of its steps", func(t *testing.T) {
		_, err := cached.FindJourneyByStep(ctx, first)
		require.NoError(t, err)
		_, err = cached.FindJourneyByStep(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, 1, backing.journeyCalls)
	})

	t.Run("misses are not cached", func(t *testing.T) {
		missing := id.RequirementDefinitionID(uuid.New())
		before := backing.definitionCalls
		for range 2 {
			_, err := cached.FindDefinition(ctx, missing)
			assert.ErrorIs(t, err, sentinel.ErrNotFound)
		}
		assert.Equal(t, before+2, backing.definitionCalls)
	})

	t.Run("purge forces a reload", func(t *testing.T) {
		cached.Purge()
		before := backing.definitionCalls
		_, err := cached.FindDefinition(ctx, defID)
		require.NoError(t, err)
		assert.Equal(t, before+1, backing.definitionCalls)
	})
}
