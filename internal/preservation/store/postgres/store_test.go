package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	"preservation/pkg/platform/sentinel"
)

var now = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newTag(t *testing.T) *models.Tag {
	t.Helper()
	def := &models.RequirementDefinition{
		ID:                   id.RequirementDefinitionID(uuid.New()),
		Title:                "Rotate shaft",
		Usage:                models.UsageForAll,
		DefaultIntervalWeeks: 2,
	}
	r, err := models.NewRequirement(id.NewRequirementID(), 2, def)
	require.NoError(t, err)
	tag, err := models.NewTag(models.NewTagParams{
		ID:           id.NewTagID(),
		ProjectID:    id.ProjectID(uuid.New()),
		Type:         models.TagTypeStandard,
		TagNo:        "PU-1001",
		StepID:       id.StepID(uuid.New()),
		Requirements: []*models.Requirement{r},
		CreatedAt:    now,
	})
	require.NoError(t, err)
	return tag
}

func snapshotJSON(t *testing.T, tag *models.Tag) []byte {
	t.Helper()
	doc, err := json.Marshal(tag.Snapshot())
	require.NoError(t, err)
	return doc
}

func TestCreate(t *testing.T) {
	t.Run("inserts at version 1", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		tag := newTag(t)
		mock.ExpectExec("INSERT INTO tags").
			WithArgs(tag.ID().String(), tag.ProjectID().String(), "PU-1001", "not_started", false,
				pgxmock.AnyArg(), int64(1), pgxmock.AnyArg(), now, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, New(mock).Create(context.Background(), tag))
		assert.Equal(t, int64(1), tag.Version())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation is a conflict", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO tags").WithAnyArgs().WillReturnError(&pgconn.PgError{Code: "23505"})

		err = New(mock).Create(context.Background(), newTag(t))
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})
}

func TestFindByID(t *testing.T) {
	t.Run("restores the snapshot with the column version", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		tag := newTag(t)
		mock.ExpectQuery("SELECT snapshot, version FROM tags WHERE id").
			WithArgs(tag.ID().String()).
			WillReturnRows(pgxmock.NewRows([]string{"snapshot", "version"}).AddRow(snapshotJSON(t, tag), int64(7)))

		found, err := New(mock).FindByID(context.Background(), tag.ID())
		require.NoError(t, err)
		assert.Equal(t, tag.TagNo(), found.TagNo())
		assert.Equal(t, int64(7), found.Version())
	})

	t.Run("no rows is not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT snapshot, version FROM tags").WithAnyArgs().WillReturnError(pgx.ErrNoRows)

		_, err = New(mock).FindByID(context.Background(), id.NewTagID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestFindByIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	a, b := newTag(t), newTag(t)
	missing := id.NewTagID()
	rows := pgxmock.NewRows([]string{"snapshot", "version"}).
		AddRow(snapshotJSON(t, a), int64(1)).
		AddRow(snapshotJSON(t, b), int64(1))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs([]string{b.ID().String(), a.ID().String()}).
		WillReturnRows(rows)
	mock.ExpectQuery("FOR UPDATE").
		WithArgs([]string{a.ID().String(), missing.String()}).
		WillReturnRows(pgxmock.NewRows([]string{"snapshot", "version"}).AddRow(snapshotJSON(t, a), int64(1)))

	store := New(mock)
	tags, err := store.FindByIDs(context.Background(), []id.TagID{b.ID(), a.ID()})
	require.NoError(t, err)
	assert.Equal(t, b.ID(), tags[0].ID())
	assert.Equal(t, a.ID(), tags[1].ID())

	_, err = store.FindByIDs(context.Background(), []id.TagID{a.ID(), missing})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestSave(t *testing.T) {
	t.Run("updates with version check and bumps the version", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		tag := newTag(t)
		tag.SetVersion(3)
		require.NoError(t, tag.StartPreservation(now))
		due, _ := tag.NextDueTimeUtc()

		mock.ExpectExec("UPDATE tags").
			WithArgs("active", false, &due, pgxmock.AnyArg(), now, tag.ID().String(), int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, New(mock).Save(context.Background(), tag))
		assert.Equal(t, int64(4), tag.Version())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows is a conflict", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		tag := newTag(t)
		mock.ExpectExec("UPDATE tags").WithAnyArgs().WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = New(mock).Save(context.Background(), tag)
		assert.ErrorIs(t, err, sentinel.ErrConflict)
		assert.Equal(t, int64(0), tag.Version())
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE tags").WithAnyArgs().WillReturnError(errors.New("connection reset"))

		err = New(mock).Save(context.Background(), newTag(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestListByProject(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tag := newTag(t)
	before := now.Add(24 * time.Hour)
	mock.ExpectQuery(`WHERE project_id = \$1 AND status = \$2 AND NOT is_voided AND next_due_at <= \$3 ORDER BY tag_no LIMIT \$4`).
		WithArgs(tag.ProjectID().String(), "active", before, 5).
		WillReturnRows(pgxmock.NewRows([]string{"snapshot", "version"}).AddRow(snapshotJSON(t, tag), int64(2)))

	tags, err := New(mock).ListByProject(context.Background(), tag.ProjectID(), models.TagFilter{
		Status:    models.TagStatusActive,
		DueBefore: before,
		Limit:     5,
	})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, int64(2), tags[0].Version())
	assert.NoError(t, mock.ExpectationsWereMet())
}
