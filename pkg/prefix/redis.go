package prefix

import (
	"context"

	"shipbot/pkg/cache"
)

// RedisBackend keeps prefixes in a single Redis hash (guild ID -> prefix)
type RedisBackend struct {
	cache *cache.Cache
	key   string
}

func NewRedisBackend(c *cache.Cache, name string) *RedisBackend {
	return &RedisBackend{
		cache: c,
		key:   c.Key(name),
	}
}

func (r *RedisBackend) Load(ctx context.Context) (map[string]string, error) {
	return r.cache.HGetAll(ctx, r.key)
}

func (r *RedisBackend) Save(ctx context.Context, prefixes map[string]string) error {
	return r.cache.ReplaceHash(ctx, r.key, prefixes)
}
