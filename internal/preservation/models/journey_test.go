package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
)

func TestJourneyNextStep(t *testing.T) {
	a, b, c, voided := id.StepID(uuid.New()), id.StepID(uuid.New()), id.StepID(uuid.New()), id.StepID(uuid.New())
	j := &models.Journey{
		Steps: []models.Step{
			{ID: c, SortKey: 30},
			{ID: voided, SortKey: 15, IsVoided: true},
			{ID: a, SortKey: 10},
			{ID: b, SortKey: 20},
		},
	}

	next, ok := j.NextStep(a)
	assert.True(t, ok)
	assert.Equal(t, b, next.ID, "voided steps are skipped")

	next, ok = j.NextStep(b)
	assert.True(t, ok)
	assert.Equal(t, c, next.ID)

	_, ok = j.NextStep(c)
	assert.False(t, ok, "last step")

	_, ok = j.NextStep(id.StepID(uuid.New()))
	assert.False(t, ok, "unknown step")

	assert.True(t, j.HasStep(a))
	assert.False(t, j.HasStep(voided))
}
