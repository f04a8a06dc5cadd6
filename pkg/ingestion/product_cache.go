package ingestion

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const productCacheTTL = 7 * 24 * time.Hour

type (
	// ProductCache fronts the product lookup. Packaged goods change
	// rarely, so cached entries stay valid for a week.
	ProductCache interface {
		Get(ctx context.Context, barcode string) (*ProductInfo, error)
		Set(ctx context.Context, barcode string, product *ProductInfo) error
	}

	redisProductCache struct {
		client *redis.Client
	}
)

func NewRedisProductCache(client *redis.Client) ProductCache {
	return &redisProductCache{client: client}
}

func cacheKey(barcode string) string {
	return "product:" + barcode
}

func (c *redisProductCache) Get(ctx context.Context, barcode string) (*ProductInfo, error) {
	value, err := c.client.Get(ctx, cacheKey(barcode)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var product ProductInfo
	if err := json.Unmarshal([]byte(value), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *redisProductCache) Set(ctx context.Context, barcode string, product *ProductInfo) error {
	value, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(barcode), value, productCacheTTL).Err()
}
