package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dustatron/mcpoker/internal/model"
)

// RoomCache handles Redis operations for room snapshots. The TTL matches the
// idle window after which the cleanup sweep deletes a room, so a cache hit
// never outlives the room it describes by much.
type RoomCache interface {
	Set(ctx context.Context, room *model.Room) error
	Get(ctx context.Context, id string) (*model.Room, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type roomCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoomCache creates a new room cache
func NewRoomCache(client *redis.Client) RoomCache {
	return &roomCache{
		client: client,
		ttl:    24 * time.Hour, // Rooms idle past 24h are cleaned up anyway
	}
}

func (c *roomCache) key(id string) string {
	return fmt.Sprintf("room:%s", id)
}

func (c *roomCache) Set(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(room.ID), data, c.ttl).Err()
}

func (c *roomCache) Get(ctx context.Context, id string) (*model.Room, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var room model.Room
	if err := json.Unmarshal([]byte(data), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *roomCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *roomCache) Exists(ctx context.Context, id string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(id)).Result()
	return n > 0, err
}
