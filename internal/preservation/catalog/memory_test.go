package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	"preservation/pkg/platform/sentinel"
)

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	cat := NewInMemory()

	t.Run("unknown entries", func(t *testing.T) {
		_, err := cat.FindDefinition(ctx, id.RequirementDefinitionID(uuid.New()))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = cat.FindJourneyByStep(ctx, id.StepID(uuid.New()))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("replacing a journey drops its removed steps", func(t *testing.T) {
		journeyID := id.JourneyID(uuid.New())
		kept := id.StepID(uuid.New())
		dropped := id.StepID(uuid.New())
		require.NoError(t, cat.PutJourney(ctx, models.Journey{ID: journeyID, Steps: []models.Step{{ID: kept}, {ID: dropped}}}))
		require.NoError(t, cat.PutJourney(ctx, models.Journey{ID: journeyID, Steps: []models.Step{{ID: kept}}}))

		_, err := cat.FindJourneyByStep(ctx, kept)
		require.NoError(t, err)
		_, err = cat.FindJourneyByStep(ctx, dropped)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
