package models_test

import (
	"time"

	"github.com/google/uuid"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
)

var t0 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

func newFieldID() id.FieldID { return id.FieldID(uuid.New()) }

func newDefinitionID() id.RequirementDefinitionID { return id.RequirementDefinitionID(uuid.New()) }

func newPersonID() id.PersonID { return id.PersonID(uuid.New()) }

func field(t models.FieldType) models.Field {
	return models.Field{ID: newFieldID(), Label: string(t), Type: t}
}

func definition(fields ...models.Field) *models.RequirementDefinition {
	return &models.RequirementDefinition{
		ID:                   newDefinitionID(),
		Title:                "Rotate motor",
		Usage:                models.UsageForAll,
		DefaultIntervalWeeks: 2,
		Fields:               fields,
	}
}

// infoDefinition needs no user input, so its periods start ready.
func infoDefinition() *models.RequirementDefinition {
	return definition(field(models.FieldTypeInfo))
}

func mustRequirement(intervalWeeks int, def *models.RequirementDefinition) *models.Requirement {
	r, err := models.NewRequirement(id.NewRequirementID(), intervalWeeks, def)
	if err != nil {
		panic(err)
	}
	return r
}

func mustTag(tagType models.TagType, stepID id.StepID, reqs ...*models.Requirement) *models.Tag {
	tag, err := models.NewTag(models.NewTagParams{
		ID:           id.NewTagID(),
		ProjectID:    id.ProjectID(uuid.New()),
		Type:         tagType,
		TagNo:        "TAG-" + uuid.NewString()[:8],
		Description:  "Pump",
		StepID:       stepID,
		Requirements: reqs,
		CreatedAt:    t0,
	})
	if err != nil {
		panic(err)
	}
	return tag
}

func ptr(f float64) *float64 { return &f }
