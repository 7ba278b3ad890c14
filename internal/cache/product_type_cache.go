package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trademart/catalog_api/internal/models"
)

const productTypeKey = "reference:product_types"

// ProductTypeCache caches the immutable product-type reference data so the
// create form does not hit the database on every render.
type ProductTypeCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewProductTypeCache creates a new ProductTypeCache.
func NewProductTypeCache(redis *RedisClient, ttl time.Duration) *ProductTypeCache {
	return &ProductTypeCache{
		redis: redis,
		ttl:   ttl,
	}
}

// Get returns the cached product types, or (nil, false, nil) on a miss.
func (c *ProductTypeCache) Get(ctx context.Context) ([]models.ProductType, bool, error) {
	jsonData, err := c.redis.Get(ctx, productTypeKey)
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var types []models.ProductType
	if err := json.Unmarshal([]byte(jsonData), &types); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal product types: %w", err)
	}
	return types, true, nil
}

// Set stores the product types with the configured TTL.
func (c *ProductTypeCache) Set(ctx context.Context, types []models.ProductType) error {
	jsonData, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("failed to marshal product types: %w", err)
	}
	return c.redis.Set(ctx, productTypeKey, string(jsonData), c.ttl)
}

// Invalidate drops the cached entry.
func (c *ProductTypeCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, productTypeKey)
}
