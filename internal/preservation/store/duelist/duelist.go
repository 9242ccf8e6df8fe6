// Package duelist keeps a per-project sorted set of tags keyed by their next
// due time in Redis.
package duelist

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	id "preservation/pkg/domain"
	"preservation/pkg/platform/sentinel"
)

const defaultKeyPrefix = "preservation:due:"

// Index stores members as tag IDs scored by due time in unix milliseconds.
type Index struct {
	client    redis.Cmdable
	keyPrefix string
}

type Option func(*Index)

func WithKeyPrefix(prefix string) Option {
	return func(i *Index) {
		if prefix != "" {
			i.keyPrefix = prefix
		}
	}
}

func New(client redis.Cmdable, opts ...Option) *Index {
	i := &Index{client: client, keyPrefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Index) key(projectID id.ProjectID) string {
	return i.keyPrefix + projectID.String()
}

// Upsert, Remove and Due wrap Redis failures in sentinel.ErrUnavailable.
func (i *Index) Upsert(ctx context.Context, projectID id.ProjectID, tagID id.TagID, due time.Time) error {
	err := i.client.ZAdd(ctx, i.key(projectID), redis.Z{
		Score:  float64(due.UTC().UnixMilli()),
		Member: tagID.String(),
	}).Err()
	if err != nil {
		return fmt.Errorf("due index upsert: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (i *Index) Remove(ctx context.Context, projectID id.ProjectID, tagID id.TagID) error {
	if err := i.client.ZRem(ctx, i.key(projectID), tagID.String()).Err(); err != nil {
		return fmt.Errorf("due index remove: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// Due returns tags due at or before the given time, earliest first.
func (i *Index) Due(ctx context.Context, projectID id.ProjectID, before time.Time, limit int) ([]id.TagID, error) {
	members, err := i.client.ZRangeByScore(ctx, i.key(projectID), &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(before.UTC().UnixMilli(), 10),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("due index range: %w: %w", sentinel.ErrUnavailable, err)
	}

	tagIDs := make([]id.TagID, 0, len(members))
	for _, m := range members {
		tagID, err := id.ParseTagID(m)
		if err != nil {
			return nil, fmt.Errorf("due index member %q: %w", m, err)
		}
		tagIDs = append(tagIDs, tagID)
	}
	return tagIDs, nil
}
