// Package postgres persists tag aggregates as JSONB snapshots with an
// optimistic version column. Scalar columns mirror the snapshot for filtering.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"preservation/internal/preservation/models"
	id "preservation/pkg/domain"
	"preservation/pkg/platform/sentinel"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is a TagStore. Save is atomic only when db is a transaction.
type PostgresStore struct {
	db DBTX
}

func New(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a new tag at version 1. The unique index on
// (project_id, upper(tag_no)) rejects duplicate tag numbers.
func (s *PostgresStore) Create(ctx context.Context, tag *models.Tag) error {
	tag.SetVersion(1)
	doc, err := json.Marshal(tag.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal tag %s: %w", tag.ID(), err)
	}
	query := `
		INSERT INTO tags (id, project_id, tag_no, status, is_voided, next_due_at, version, snapshot, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.Exec(ctx, query,
		tag.ID().String(),
		tag.ProjectID().String(),
		tag.TagNo(),
		string(tag.Status()),
		tag.IsVoided(),
		nextDue(tag),
		tag.Version(),
		doc,
		tag.CreatedAt(),
		tag.ModifiedAt(),
	)
	if err != nil {
		tag.SetVersion(0)
		if isUniqueViolation(err) {
			return fmt.Errorf("tag %s: %w", tag.TagNo(), sentinel.ErrConflict)
		}
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tagID id.TagID) (*models.Tag, error) {
	query := `SELECT snapshot, version FROM tags WHERE id = $1`
	var (
		doc     []byte
		version int64
	)
	err := s.db.QueryRow(ctx, query, tagID.String()).Scan(&doc, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tag %s: %w", tagID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return restore(doc, version)
}

// FindByIDs locks the rows for the rest of the transaction.
func (s *PostgresStore) FindByIDs(ctx context.Context, tagIDs []id.TagID) ([]*models.Tag, error) {
	ids := make([]string, len(tagIDs))
	for i, tagID := range tagIDs {
		ids[i] = tagID.String()
	}
	query := `SELECT snapshot, version FROM tags WHERE id = ANY($1::uuid[]) FOR UPDATE`
	tags, err := s.queryTags(ctx, query, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[id.TagID]*models.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID()] = t
	}
	ordered := make([]*models.Tag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		t, ok := byID[tagID]
		if !ok {
			return nil, fmt.Errorf("tag %s: %w", tagID, sentinel.ErrNotFound)
		}
		ordered = append(ordered, t)
	}
	return ordered, nil
}

// Save updates each tag if its stored version still matches.
func (s *PostgresStore) Save(ctx context.Context, tags ...*models.Tag) error {
	query := `
		UPDATE tags
		SET status = $1, is_voided = $2, next_due_at = $3, snapshot = $4, modified_at = $5, version = version + 1
		WHERE id = $6 AND version = $7
	`
	for _, t := range tags {
		next := t.Version() + 1
		snap := t.Snapshot()
		snap.Version = next
		doc, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("marshal tag %s: %w", t.ID(), err)
		}
		ct, err := s.db.Exec(ctx, query,
			string(t.Status()),
			t.IsVoided(),
			nextDue(t),
			doc,
			t.ModifiedAt(),
			t.ID().String(),
			t.Version(),
		)
		if err != nil {
			return fmt.Errorf("update tag %s: %w", t.ID(), err)
		}
		if ct.RowsAffected() == 0 {
			return fmt.Errorf("tag %s at version %d: %w", t.ID(), t.Version(), sentinel.ErrConflict)
		}
		t.SetVersion(next)
	}
	return nil
}

// ListByProject returns matching tags ordered by tag number.
func (s *PostgresStore) ListByProject(ctx context.Context, projectID id.ProjectID, filter models.TagFilter) ([]*models.Tag, error) {
	var (
		where = []string{"project_id = $1"}
		args  = []any{projectID.String()}
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if !filter.IncludeVoided {
		where = append(where, "NOT is_voided")
	}
	if !filter.DueBefore.IsZero() {
		args = append(args, filter.DueBefore)
		where = append(where, fmt.Sprintf("next_due_at <= $%d", len(args)))
	}
	query := "SELECT snapshot, version FROM tags WHERE " + strings.Join(where, " AND ") + " ORDER BY tag_no"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return s.queryTags(ctx, query, args...)
}

func (s *PostgresStore) queryTags(ctx context.Context, query string, args ...any) ([]*models.Tag, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		var (
			doc     []byte
			version int64
		)
		if err := rows.Scan(&doc, &version); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		t, err := restore(doc, version)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

func restore(doc []byte, version int64) (*models.Tag, error) {
	var snap models.TagSnapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		return nil, fmt.Errorf("decode tag snapshot: %w", err)
	}
	snap.Version = version
	return models.RestoreTag(snap)
}

func nextDue(t *models.Tag) *time.Time {
	if due, ok := t.NextDueTimeUtc(); ok {
		return &due
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
