package duelist

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	id "preservation/pkg/domain"
	"preservation/pkg/platform/sentinel"
)

func TestKeyPrefix(t *testing.T) {
	projectID := id.ProjectID(uuid.New())

	assert.Equal(t, "preservation:due:"+projectID.String(), New(nil).key(projectID))
	assert.Equal(t, "p:"+projectID.String(), New(nil, WithKeyPrefix("p:")).key(projectID))
	assert.Equal(t, "preservation:due:"+projectID.String(), New(nil, WithKeyPrefix("")).key(projectID))
}

func TestUnreachableRedisIsUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	index := New(client)
	ctx := context.Background()
	projectID := id.ProjectID(uuid.New())

	err := index.Upsert(ctx, projectID, id.NewTagID(), time.Now())
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)

	err = index.Remove(ctx, projectID, id.NewTagID())
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)

	_, err = index.Due(ctx, projectID, time.Now(), 10)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}
