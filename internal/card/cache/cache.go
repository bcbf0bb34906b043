// Package cache provides the Redis-backed listing cache. Listing pages are
// versioned per holder: invalidation bumps the holder's version counter, so
// stale pages simply stop being addressable and age out via TTL. Cache
// failures degrade to store reads; they are never surfaced to callers.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"cardledger/internal/card/models"
	id "cardledger/pkg/domain"
)

const defaultTTL = 5 * time.Minute

// RedisListingCache implements service.ListingCache on go-redis.
type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedis(client *redis.Client, logger *slog.Logger) *RedisListingCache {
	return &RedisListingCache{client: client, ttl: defaultTTL, logger: logger}
}

func (c *RedisListingCache) GetPage(ctx context.Context, holderID id.HolderID, key string) ([]models.MaskedCard, bool) {
	raw, err := c.client.Get(ctx, c.pageKey(ctx, holderID, key)).Bytes()
	if err != nil {
		if err != redis.Nil && c.logger != nil {
			c.logger.WarnContext(ctx, "listing cache read failed", "error", err)
		}
		return nil, false
	}
	var cards []models.MaskedCard
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, false
	}
	return cards, true
}

func (c *RedisListingCache) SetPage(ctx context.Context, holderID id.HolderID, key string, cards []models.MaskedCard) {
	payload, err := json.Marshal(cards)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.pageKey(ctx, holderID, key), payload, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "listing cache write failed", "error", err)
	}
}

// Invalidate bumps the holder's listing version. Every cached page for the
// holder becomes unreachable at once; no key scan is needed.
func (c *RedisListingCache) Invalidate(ctx context.Context, holderID id.HolderID) {
	if err := c.client.Incr(ctx, versionKey(holderID)).Err(); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "listing cache invalidation failed", "error", err)
	}
}

func (c *RedisListingCache) pageKey(ctx context.Context, holderID id.HolderID, key string) string {
	version, err := c.client.Get(ctx, versionKey(holderID)).Int64()
	if err != nil && err != redis.Nil {
		version = -1
	}
	return fmt.Sprintf("cards:%s:v%d:%s", holderID, version, key)
}

func versionKey(holderID id.HolderID) string {
	return fmt.Sprintf("cards:%s:version", holderID)
}
