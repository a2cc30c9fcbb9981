package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	rediskit "github.com/iho/vcledger/internal/infrastructure/redis"
	"github.com/iho/vcledger/internal/usecase"
)

// setIfNewer writes value and version unless the stored version is at least
// as new. KEYS[1]: key. ARGV: value, version, ttl in milliseconds
// (0 keeps the key without expiry).
var setIfNewer = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'version')
if current and tonumber(current) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'value', ARGV[1], 'version', ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

// Cache implements usecase.Cache using Redis hashes of value and version.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: rediskit.Namespace("cache"),
	}
}

// Get retrieves a value by key. A missing key is usecase.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.HGet(ctx, c.prefix+key, "value").Result()
	if errors.Is(err, redis.Nil) {
		return "", usecase.ErrCacheMiss
	}
	return val, err
}

// SetIfNewer stores value stamped with version. An older version never
// replaces a newer one.
func (c *Cache) SetIfNewer(ctx context.Context, key, value string, version int64, ttl time.Duration) error {
	err := setIfNewer.Run(ctx, c.client, []string{c.prefix + key}, value, version, ttl.Milliseconds()).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
