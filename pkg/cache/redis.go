package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(url string, prefix string) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{
		client: client,
		prefix: prefix,
	}, nil
}

func (c *Cache) Key(parts ...string) string {
	if c.prefix == "" {
		return strings.Join(parts, ":")
	}
	return c.prefix + ":" + strings.Join(parts, ":")
}

func (c *Cache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return c.client.HGetAll(ctx, key).Result()
}

// ReplaceHash swaps the whole hash for fields in one MULTI/EXEC.
// An empty map leaves the key deleted.
func (c *Cache) ReplaceHash(ctx context.Context, key string, fields map[string]string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			values := make(map[string]interface{}, len(fields))
			for k, v := range fields {
				values[k] = v
			}
			pipe.HSet(ctx, key, values)
		}
		return nil
	})
	return err
}

func (c *Cache) Close() error {
	return c.client.Close()
}
