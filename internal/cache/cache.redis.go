// FilePath: internal/cache/cache.redis.go
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/itsatony/beachwatch/server/hub/internal/config"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/sync/singleflight"
)

const redisTagSetPrefix = "cachetag:"

// RedisCache is the TagCache backend for multi-instance deployments.
// Values live in plain keys with a TTL; each tag owns a set of member
// keys, and invalidation deletes the members then the set itself.
// In-flight collapse is per process; cross-instance duplicate computes
// are tolerated.
type RedisCache struct {
	client *redis.Client
	group  singleflight.Group
}

func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	nuts.L.Infof("[RedisCache] Connected to %s:%d (db %d)", cfg.Host, cfg.Port, cfg.DB)
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetOrCompute(ctx context.Context, key string, tags []string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return value, nil
	}
	if err != redis.Nil {
		return nil, fmt.Errorf("cache read failed: %w", err)
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		if value, err := c.client.Get(ctx, key).Bytes(); err == nil {
			return value, nil
		}

		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		pipe := c.client.TxPipeline()
		pipe.Set(ctx, key, value, ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, redisTagSetPrefix+tag, key)
			// The tag set outlives its members by a margin so lazy
			// expiry never strands keys in the index.
			pipe.Expire(ctx, redisTagSetPrefix+tag, ttl+time.Hour)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			// The value was computed fine; failing to cache it only
			// costs the next caller a recompute.
			nuts.L.Warnf("[RedisCache] Failed to store %s: %v", key, err)
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *RedisCache) InvalidateTag(ctx context.Context, tag string) error {
	setKey := redisTagSetPrefix + tag

	members, err := c.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("failed to read tag set %s: %w", tag, err)
	}
	if len(members) > 0 {
		if err := c.client.Del(ctx, members...).Err(); err != nil {
			return fmt.Errorf("failed to evict keys for tag %s: %w", tag, err)
		}
	}
	if err := c.client.Del(ctx, setKey).Err(); err != nil {
		return fmt.Errorf("failed to drop tag set %s: %w", tag, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
