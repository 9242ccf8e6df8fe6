//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	audit "preservation/pkg/platform/audit"
	"preservation/pkg/platform/audit/store/postgres"
	txcontext "preservation/pkg/platform/tx"
	"preservation/pkg/testutil/containers"
)

type OutboxSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestOutboxSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OutboxSuite))
}

func (s *OutboxSuite) SetupSuite() {
	s.postgres = containers.GetManager().Postgres(s.T())
	s.store = postgres.New(s.postgres.Pool)
}

func (s *OutboxSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background()))
}

func (s *OutboxSuite) appendEvent(ctx context.Context, aggregateID, action string) {
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		AggregateType: "tag",
		AggregateID:   aggregateID,
		Action:        action,
		ActorID:       uuid.NewString(),
	}))
}

func (s *OutboxSuite) TestPendingAndMarkPublished() {
	ctx := context.Background()
	tagID := uuid.NewString()
	s.appendEvent(ctx, tagID, "tag_created")
	s.appendEvent(ctx, tagID, "preservation_started")

	pending, err := s.store.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal("tag_created", pending[0].EventType)
	s.Equal("tag", pending[0].AggregateType)

	s.Require().NoError(s.store.MarkPublished(ctx, []uuid.UUID{pending[0].ID}, time.Now()))

	pending, err = s.store.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal("preservation_started", pending[0].EventType)

	all, err := s.store.ListByAggregate(ctx, tagID)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.NotNil(all[0].PublishedAt)
	s.Nil(all[1].PublishedAt)
}

func (s *OutboxSuite) TestRolledBackAppendIsNotVisible() {
	ctx := context.Background()
	tx, err := s.postgres.Pool.Begin(ctx)
	s.Require().NoError(err)

	s.appendEvent(txcontext.WithTx(ctx, tx), uuid.NewString(), "tag_voided")
	s.Require().NoError(tx.Rollback(ctx))

	pending, err := s.store.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *OutboxSuite) TestLockedRowsAreSkipped() {
	ctx := context.Background()
	s.appendEvent(ctx, uuid.NewString(), "tag_created")

	tx, err := s.postgres.Pool.Begin(ctx)
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(ctx) }()

	locked, err := s.store.Pending(txcontext.WithTx(ctx, tx), 10)
	s.Require().NoError(err)
	s.Require().Len(locked, 1)

	other, err := s.postgres.Pool.Begin(ctx)
	s.Require().NoError(err)
	defer func() { _ = other.Rollback(ctx) }()

	skipped, err := s.store.Pending(txcontext.WithTx(ctx, other), 10)
	s.Require().NoError(err)
	s.Empty(skipped)
}
