package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// WebhookGuard implements ports.WebhookGuard using Redis SET NX.
// It only filters bursts of redeliveries; settlement stays idempotent without it.
type WebhookGuard struct {
	client *goredis.Client
	prefix string
}

// NewWebhookGuard creates a new Redis-backed replay guard.
func NewWebhookGuard(client *goredis.Client) *WebhookGuard {
	return &WebhookGuard{
		client: client,
		prefix: keyPrefix + "webhook:",
	}
}

// FirstSeen atomically records a delivery id for a provider.
// Returns true the first time, false for repeats within ttl.
func (g *WebhookGuard) FirstSeen(ctx context.Context, provider string, deliveryID string, ttl time.Duration) (bool, error) {
	result, err := g.client.SetArgs(ctx, g.key(provider, deliveryID), time.Now().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis webhook guard: %w", err)
	}
	return result == "OK", nil
}

// Forget removes a recorded delivery.
func (g *WebhookGuard) Forget(ctx context.Context, provider string, deliveryID string) error {
	if err := g.client.Del(ctx, g.key(provider, deliveryID)).Err(); err != nil {
		return fmt.Errorf("redis webhook guard: %w", err)
	}
	return nil
}

func (g *WebhookGuard) key(provider, deliveryID string) string {
	return g.prefix + provider + ":" + deliveryID
}
