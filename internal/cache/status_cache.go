package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dustatron/mcpoker/internal/model"
)

// StatusCache keeps the derived vote status of a room for a few seconds so
// polling clients don't recompute it on every request. Any vote or
// participant mutation invalidates the entry.
type StatusCache interface {
	Set(ctx context.Context, roomID string, status *model.VoteStatus) error
	Get(ctx context.Context, roomID string) (*model.VoteStatus, error)
	Invalidate(ctx context.Context, roomID string) error
}

type statusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatusCache creates a new vote status cache
func NewStatusCache(client *redis.Client) StatusCache {
	return &statusCache{
		client: client,
		ttl:    5 * time.Second,
	}
}

func (c *statusCache) key(roomID string) string {
	return fmt.Sprintf("room:%s:status", roomID)
}

func (c *statusCache) Set(ctx context.Context, roomID string, status *model.VoteStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(roomID), data, c.ttl).Err()
}

func (c *statusCache) Get(ctx context.Context, roomID string) (*model.VoteStatus, error) {
	data, err := c.client.Get(ctx, c.key(roomID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var status model.VoteStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *statusCache) Invalidate(ctx context.Context, roomID string) error {
	return c.client.Del(ctx, c.key(roomID)).Err()
}
