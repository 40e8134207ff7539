// FilePath: internal/cache/cache.go

// Package cache provides a tag-indexed read-through cache for reading
// queries. Entries are keyed per operation and device, tagged for bulk
// invalidation, and concurrent lookups for the same key collapse to a
// single underlying computation.
package cache

import (
	"context"
	"time"
)

// TagReadings is the coarse tag attached to every cached reading query.
// Any write to the readings domain invalidates it wholesale.
const TagReadings = "readings"

// ComputeFunc produces the value for a cache miss. A failed compute is
// returned to the caller and never cached.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// TagCache is the read-through cache consumed by the hub service.
type TagCache interface {
	// GetOrCompute returns the cached value for key, or runs compute and
	// caches its result for ttl. Concurrent calls for the same key share
	// one in-flight computation; different keys never block each other.
	GetOrCompute(ctx context.Context, key string, tags []string, ttl time.Duration, compute ComputeFunc) ([]byte, error)
	// InvalidateTag evicts every entry carrying the tag.
	InvalidateTag(ctx context.Context, tag string) error
	Close() error
}

// DeviceTag returns the per-device tag. Not currently used for write
// invalidation, which is deliberately coarse, but attached to every
// entry so selective eviction stays possible.
func DeviceTag(deviceID string) string {
	return "device:" + deviceID
}

// Cache keys for the three cached reading operations.

func LatestReadingKey(deviceID string) string {
	return "readings:latest:" + deviceID
}

func Last24hKey(deviceID string) string {
	return "readings:last24h:" + deviceID
}

func DailyStatsKey(deviceID string) string {
	return "readings:daily:" + deviceID
}
