// Package productcache fronts the product catalog with a Redis read-through
// cache. Products change rarely and are read on every order detail build,
// which makes them the one table worth caching here.
package productcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polkiloo/stockmart/internal/domain/model"
)

// Source is the uncached catalog the cache falls back to.
type Source interface {
	GetByID(ctx context.Context, productID int64) (*model.Product, error)
	ListByIDs(ctx context.Context, productIDs []int64) (map[int64]model.Product, error)
}

// kv is the subset of the redis client the cache uses; tests substitute a
// stub.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cache is a read-through product cache. Misses and redis failures fall back
// to the source; caching is never load bearing.
type Cache struct {
	client kv
	source Source
	ttl    time.Duration
	logger *slog.Logger
}

// New constructs Cache.
func New(client kv, source Source, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, source: source, ttl: ttl, logger: logger}
}

func productKey(productID int64) string {
	return fmt.Sprintf("product:%d", productID)
}

// GetByID returns the cached product or loads and caches it.
func (c *Cache) GetByID(ctx context.Context, productID int64) (*model.Product, error) {
	if data, err := c.client.Get(ctx, productKey(productID)).Bytes(); err == nil {
		var p model.Product
		if json.Unmarshal(data, &p) == nil {
			return &p, nil
		}
	}

	product, err := c.source.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, *product)
	return product, nil
}

// ListByIDs resolves products through the cache, loading only the misses
// from the source.
func (c *Cache) ListByIDs(ctx context.Context, productIDs []int64) (map[int64]model.Product, error) {
	result := make(map[int64]model.Product, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, productKey(id))
	}

	var missing []int64
	cached, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		missing = productIDs
	} else {
		for i, raw := range cached {
			data, ok := raw.(string)
			if !ok {
				missing = append(missing, productIDs[i])
				continue
			}
			var p model.Product
			if err := json.Unmarshal([]byte(data), &p); err != nil {
				missing = append(missing, productIDs[i])
				continue
			}
			result[p.ID] = p
		}
	}

	if len(missing) > 0 {
		loaded, err := c.source.ListByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for id, p := range loaded {
			result[id] = p
			c.store(ctx, p)
		}
	}
	return result, nil
}

func (c *Cache) store(ctx context.Context, p model.Product) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKey(p.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache store failed",
			slog.Int64("product_id", p.ID),
			slog.String("error", err.Error()),
		)
	}
}
