package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	"preservation/pkg/platform/sentinel"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresCatalog keeps definitions and journeys as JSONB documents.
type PostgresCatalog struct {
	db DBTX
}

func NewPostgres(db DBTX) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

func (c *PostgresCatalog) PutDefinition(ctx context.Context, def models.RequirementDefinition) error {
	doc, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}
	query := `
		INSERT INTO requirement_definitions (id, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`
	if _, err := c.db.Exec(ctx, query, def.ID.String(), doc); err != nil {
		return fmt.Errorf("upsert definition: %w", err)
	}
	return nil
}

func (c *PostgresCatalog) PutJourney(ctx context.Context, journey models.Journey) error {
	doc, err := json.Marshal(journey)
	if err != nil {
		return fmt.Errorf("marshal journey: %w", err)
	}
	query := `
		INSERT INTO journeys (id, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`
	if _, err := c.db.Exec(ctx, query, journey.ID.String(), doc); err != nil {
		return fmt.Errorf("upsert journey: %w", err)
	}
	return nil
}

func (c *PostgresCatalog) FindDefinition(ctx context.Context, definitionID id.RequirementDefinitionID) (*models.RequirementDefinition, error) {
	var doc []byte
	err := c.db.QueryRow(ctx, `SELECT document FROM requirement_definitions WHERE id = $1`, definitionID.String()).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("definition %s: %w", definitionID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find definition: %w", err)
	}
	var def models.RequirementDefinition
	if err := json.Unmarshal(doc, &def); err != nil {
		return nil, fmt.Errorf("decode definition %s: %w", definitionID, err)
	}
	return &def, nil
}

// FindJourneyByStep uses JSONB containment on the steps array.
func (c *PostgresCatalog) FindJourneyByStep(ctx context.Context, stepID id.StepID) (*models.Journey, error) {
	containsStep, err := json.Marshal([]map[string]string{{"id": stepID.String()}})
	if err != nil {
		return nil, fmt.Errorf("marshal step filter: %w", err)
	}
	var doc []byte
	err = c.db.QueryRow(ctx, `SELECT document FROM journeys WHERE document -> 'steps' @> $1::jsonb LIMIT 1`, containsStep).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journey for step %s: %w", stepID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find journey: %w", err)
	}
	var journey models.Journey
	if err := json.Unmarshal(doc, &journey); err != nil {
		return nil, fmt.Errorf("decode journey for step %s: %w", stepID, err)
	}
	return &journey, nil
}
