package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IdempotencyCache holds recently committed ledger entries (keyed by their
// idempotency key) and applied settlement markers. It only short-circuits
// replays: PostgreSQL's unique keys stay authoritative, so a miss or an
// evicted key just falls through to the database.
type IdempotencyCache struct {
	client *goredis.Client
	prefix string
}

func NewIdempotencyCache(client *goredis.Client) *IdempotencyCache {
	return &IdempotencyCache{
		client: client,
		prefix: keyPrefix + "idem:",
	}
}

// Get returns the cached payload for key, or nil when nothing is cached.
func (c *IdempotencyCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read cached replay %q: %w", key, err)
	}
	return val, nil
}

// Set records a committed entry or marker. Entries are immutable once
// written, so overwriting with the same key is harmless.
func (c *IdempotencyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("cache replay %q: ttl must be positive", key)
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache replay %q: %w", key, err)
	}
	return nil
}
