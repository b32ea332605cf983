package server

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sam12-4/liquor-online/pkg/common/jsoncompat"
)

// Cache stores rendered listing responses in redis, keyed by the canonical
// encoded location. Entries are short lived, the catalog listener keeps the
// snapshot fresher than any sensible TTL.
type Cache struct {
	client *redis.Client
}

func NewCache(addr, password string, db int) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return jsoncompat.Unmarshal([]byte(data), out)
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

// Flush drops all cached responses, called after admin catalog changes.
func (c *Cache) Flush(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
