package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const keyPrefix = "connect4:game:"

// ErrSnapshotNotFound is returned by Load when nothing is cached for a game.
var ErrSnapshotNotFound = errors.New("no cached game with that id")

// SnapshotCache keeps the position of unfinished games so they can be
// resumed. Entries expire after ttl.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

func snapshotKey(gameID string) string {
	return keyPrefix + gameID
}

func (c *SnapshotCache) Save(ctx context.Context, gameID string, snap domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return c.client.Set(ctx, snapshotKey(gameID), raw, c.ttl).Err()
}

func (c *SnapshotCache) Load(ctx context.Context, gameID string) (domain.Snapshot, error) {
	var snap domain.Snapshot

	raw, err := c.client.Get(ctx, snapshotKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return snap, ErrSnapshotNotFound
	}
	if err != nil {
		return snap, err
	}

	if err := json.Unmarshal(raw, &snap); err != nil {
		return snap, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}

func (c *SnapshotCache) Delete(ctx context.Context, gameID string) error {
	return c.client.Del(ctx, snapshotKey(gameID)).Err()
}
