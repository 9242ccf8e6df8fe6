package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

const seedYAML = `
definitions:
  - id: 0b7c3f7e-3d6a-4f4e-9a51-2f0d1f1c0a01
    title: Rotate shaft
    default_interval_weeks: 4
    fields:
      - id: 5a0f8c1e-7a8b-4b5c-8d9e-0f1a2b3c4d01
        label: Shaft rotated
        type: checkbox
journeys:
  - id: 9e8d7c6b-5a49-4838-a726-150f1e2d3c01
    title: Standard
    steps:
      - id: 7d6c5b4a-3928-4716-a5b4-c3d2e1f00101
        title: Supplier
        sort_key: 10
      - id: 7d6c5b4a-3928-4716-a5b4-c3d2e1f00102
        title: Site storage
        sort_key: 20
`

func TestParseSeed(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		seed, err := ParseSeed(strings.NewReader(seedYAML))
		require.NoError(t, err)
		require.Len(t, seed.Definitions, 1)
		require.Len(t, seed.Journeys, 1)

		def := seed.Definitions[0]
		assert.Equal(t, "Rotate shaft", def.Title)
		assert.Equal(t, models.UsageForAll, def.Usage)
		assert.Equal(t, models.FieldTypeCheckBox, def.Fields[0].Type)
		assert.Len(t, seed.Journeys[0].Steps, 2)
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		_, err := ParseSeed(strings.NewReader("definitions: []\nextra: 1\n"))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("invalid field type", func(t *testing.T) {
		doc := strings.Replace(seedYAML, "type: checkbox", "type: slider", 1)
		_, err := ParseSeed(strings.NewReader(doc))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("step shared by two journeys", func(t *testing.T) {
		doc := seedYAML + `
  - id: 9e8d7c6b-5a49-4838-a726-150f1e2d3c02
    title: Other
    steps:
      - id: 7d6c5b4a-3928-4716-a5b4-c3d2e1f00101
        title: Supplier
`
		_, err := ParseSeed(strings.NewReader(doc))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestLoadSeedFileAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)

	ctx := context.Background()
	cat := NewInMemory()
	require.NoError(t, seed.Apply(ctx, cat))

	defID, _ := id.ParseRequirementDefinitionID("0b7c3f7e-3d6a-4f4e-9a51-2f0d1f1c0a01")
	def, err := cat.FindDefinition(ctx, defID)
	require.NoError(t, err)
	assert.Equal(t, 4, def.DefaultIntervalWeeks)

	stepID, _ := id.ParseStepID("7d6c5b4a-3928-4716-a5b4-c3d2e1f00102")
	journey, err := cat.FindJourneyByStep(ctx, stepID)
	require.NoError(t, err)
	assert.Equal(t, "Standard", journey.Title)
}

func TestLoadSeedFileMissing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
