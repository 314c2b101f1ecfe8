// Package store holds small Redis backed primitives shared by services.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WebhookGuard deduplicates webhook deliveries. The provider retries
// deliveries aggressively, so each event id is claimed with SETNX before
// any state change happens.
type WebhookGuard interface {
	// Claim returns true if this delivery id has not been processed yet.
	Claim(ctx context.Context, deliveryId string) (bool, error)

	// Release frees a claimed id so a failed handler can be retried.
	Release(ctx context.Context, deliveryId string) error
}

type redisWebhookGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewWebhookGuard(client *redis.Client, ttl time.Duration) WebhookGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisWebhookGuard{client: client, ttl: ttl}
}

func (g *redisWebhookGuard) key(deliveryId string) string {
	return fmt.Sprintf("webhook:delivery:%s", deliveryId)
}

func (g *redisWebhookGuard) Claim(ctx context.Context, deliveryId string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(deliveryId), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim webhook delivery: %w", err)
	}
	return ok, nil
}

func (g *redisWebhookGuard) Release(ctx context.Context, deliveryId string) error {
	if err := g.client.Del(ctx, g.key(deliveryId)).Err(); err != nil {
		return fmt.Errorf("failed to release webhook delivery: %w", err)
	}
	return nil
}
