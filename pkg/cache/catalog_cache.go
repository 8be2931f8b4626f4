package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CatalogCacheTTL is the time-to-live for cached catalog items.
	CatalogCacheTTL = 24 * time.Hour

	catalogCacheKeyPrefix = "catalog_item"
)

// CachedCatalogItem is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash. Money values are decimal strings so the
// cache never performs float arithmetic on prices.
type CachedCatalogItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	UnitPrice   string    `json:"unit_price"`
	Flavour     string    `json:"flavour"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CatalogCache provides structured read/write operations for catalog item
// cache entries. Key format: "catalog_item:{slug}"
type CatalogCache struct {
	client *RedisClient
}

// NewCatalogCache creates a new CatalogCache backed by the given RedisClient.
func NewCatalogCache(r *RedisClient) *CatalogCache {
	return &CatalogCache{client: r}
}

// Get retrieves a cached item by slug.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *CatalogCache) Get(ctx context.Context, itemID string) (*CachedCatalogItem, error) {
	key := c.key(itemID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedCatalogItem{
		ID:          vals["id"],
		Name:        vals["name"],
		UnitPrice:   vals["unit_price"],
		Flavour:     vals["flavour"],
		Description: vals["description"],
		CreatedAt:   createdAt,
	}, nil
}

// Set writes a cached item as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *CatalogCache) Set(ctx context.Context, item *CachedCatalogItem) error {
	key := c.key(item.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", item.ID,
		"name", item.Name,
		"unit_price", item.UnitPrice,
		"flavour", item.Flavour,
		"description", item.Description,
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, CatalogCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item. Called after administrator edits so the next
// read repopulates from Postgres.
func (c *CatalogCache) Delete(ctx context.Context, itemID string) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "catalog_item:{slug}"
func (c *CatalogCache) key(itemID string) string {
	return fmt.Sprintf("%s:%s", catalogCacheKeyPrefix, itemID)
}
