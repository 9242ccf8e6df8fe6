// Package catalog serves the read-only configuration the preservation
// engine depends on: requirement definitions and journeys.
package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	dErrors "preservation/pkg/domain-errors"
)

// Seed is the YAML document loaded by the seed command and at startup.
type Seed struct {
	Definitions []models.RequirementDefinition `yaml:"definitions"`
	Journeys    []models.Journey               `yaml:"journeys"`
}

// Writer stores catalog documents, replacing any with the same ID.
type Writer interface {
	PutDefinition(ctx context.Context, def models.RequirementDefinition) error
	PutJourney(ctx context.Context, journey models.Journey) error
}

func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// ParseSeed decodes and validates a seed document.
func ParseSeed(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid seed document")
	}
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Validate checks every definition and that each step belongs to exactly
// one journey. Definitions without a usage default to for_all.
func (s *Seed) Validate() error {
	defs := make(map[id.RequirementDefinitionID]struct{}, len(s.Definitions))
	for i := range s.Definitions {
		def := &s.Definitions[i]
		if err := def.Validate(); err != nil {
			return err
		}
		if _, dup := defs[def.ID]; dup {
			return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("duplicate definition %s", def.ID))
		}
		defs[def.ID] = struct{}{}
	}

	journeys := make(map[id.JourneyID]struct{}, len(s.Journeys))
	steps := make(map[id.StepID]id.JourneyID)
	for _, j := range s.Journeys {
		if j.ID.IsNil() {
			return dErrors.New(dErrors.CodeInvalidInput, "journey id is required")
		}
		if _, dup := journeys[j.ID]; dup {
			return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("duplicate journey %s", j.ID))
		}
		journeys[j.ID] = struct{}{}
		for _, st := range j.Steps {
			if st.ID.IsNil() {
				return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("journey %s has a step without id", j.ID))
			}
			if owner, dup := steps[st.ID]; dup {
				return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("step %s appears in journeys %s and %s", st.ID, owner, j.ID))
			}
			steps[st.ID] = j.ID
		}
	}
	return nil
}

// Apply writes every document of the seed.
func (s *Seed) Apply(ctx context.Context, w Writer) error {
	for _, def := range s.Definitions {
		if err := w.PutDefinition(ctx, def); err != nil {
			return fmt.Errorf("seed definition %s: %w", def.ID, err)
		}
	}
	for _, j := range s.Journeys {
		if err := w.PutJourney(ctx, j); err != nil {
			return fmt.Errorf("seed journey %s: %w", j.ID, err)
		}
	}
	return nil
}
