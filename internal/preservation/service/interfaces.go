package service

import (
	"context"
	"time"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	"preservation/pkg/platform/audit"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks TagStore,AuditAppender,DefinitionReader,JourneyReader,DueIndex

// TagStore persists tag aggregates. Lookups return sentinel.ErrNotFound for
// unknown tags; Create and Save return sentinel.ErrConflict on a taken tag
// number or a stale version.
type TagStore interface {
	Create(ctx context.Context, tag *models.Tag) error
	FindByID(ctx context.Context, tagID id.TagID) (*models.Tag, error)
	// FindByIDs returns the tags in the requested order and fails if any is missing.
	FindByIDs(ctx context.Context, tagIDs []id.TagID) ([]*models.Tag, error)
	// Save writes all tags or none. Each tag's version must match the stored
	// one; on success the tag carries its new version.
	Save(ctx context.Context, tags ...*models.Tag) error
	ListByProject(ctx context.Context, projectID id.ProjectID, filter models.TagFilter) ([]*models.Tag, error)
}

// AuditAppender receives the events of saved tags inside the same transaction.
type AuditAppender interface {
	Append(ctx context.Context, event audit.Event) error
}

// TxStores are the stores bound to one transaction.
type TxStores struct {
	Tags  TagStore
	Audit AuditAppender
}

// StoreTx runs fn inside a transactional boundary. An error from fn discards
// every write made through the stores.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(stores TxStores) error) error
}

// DefinitionReader resolves requirement definitions from the catalog.
type DefinitionReader interface {
	FindDefinition(ctx context.Context, definitionID id.RequirementDefinitionID) (*models.RequirementDefinition, error)
}

// JourneyReader resolves the journey a step belongs to.
type JourneyReader interface {
	FindJourneyByStep(ctx context.Context, stepID id.StepID) (*models.Journey, error)
}

// DueIndex keeps tags ordered by next due time per project. It is an
// optimization; the tag store stays the source of truth.
type DueIndex interface {
	Upsert(ctx context.Context, projectID id.ProjectID, tagID id.TagID, due time.Time) error
	Remove(ctx context.Context, projectID id.ProjectID, tagID id.TagID) error
	Due(ctx context.Context, projectID id.ProjectID, before time.Time, limit int) ([]id.TagID, error)
}

// Clock returns the current time for a request.
type Clock func(ctx context.Context) time.Time
