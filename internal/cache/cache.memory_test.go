// FilePath: internal/cache/cache.memory_test.go
package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheGetOrCompute(t *testing.T) {
	ctx := context.Background()

	t.Run("computes on miss and serves hits", func(t *testing.T) {
		c := NewMemoryCache()
		var calls atomic.Int64
		compute := func(ctx context.Context) ([]byte, error) {
			calls.Add(1)
			return []byte("v1"), nil
		}

		for i := 0; i < 3; i++ {
			value, err := c.GetOrCompute(ctx, "k", []string{TagReadings}, time.Minute, compute)
			require.NoError(t, err)
			assert.Equal(t, []byte("v1"), value)
		}
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("expired entries recompute", func(t *testing.T) {
		c := NewMemoryCache()
		clock := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return clock }

		var calls atomic.Int64
		compute := func(ctx context.Context) ([]byte, error) {
			calls.Add(1)
			return []byte("v1"), nil
		}

		_, err := c.GetOrCompute(ctx, "k", []string{TagReadings}, time.Minute, compute)
		require.NoError(t, err)

		clock = clock.Add(59 * time.Second)
		_, err = c.GetOrCompute(ctx, "k", []string{TagReadings}, time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), calls.Load())

		clock = clock.Add(2 * time.Second)
		_, err = c.GetOrCompute(ctx, "k", []string{TagReadings}, time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("failed computations are not cached", func(t *testing.T) {
		c := NewMemoryCache()
		var calls atomic.Int64
		boom := errors.New("store down")
		compute := func(ctx context.Context) ([]byte, error) {
			if calls.Add(1) == 1 {
				return nil, boom
			}
			return []byte("v1"), nil
		}

		_, err := c.GetOrCompute(ctx, "k", []string{TagReadings}, time.Minute, compute)
		require.ErrorIs(t, err, boom)

		value, err := c.GetOrCompute(ctx, "k", []string{TagReadings}, time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), value)
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("concurrent callers collapse into one computation", func(t *testing.T) {
		c := NewMemoryCache()
		var calls atomic.Int64
		gate := make(chan struct{})
		compute := func(ctx context.Context) ([]byte, error) {
			calls.Add(1)
			<-gate
			return []byte("v1"), nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				value, err := c.GetOrCompute(ctx, "k", []string{TagReadings}, time.Minute, compute)
				assert.NoError(t, err)
				assert.Equal(t, []byte("v1"), value)
			}()
		}

		// Let the goroutines pile up behind the in-flight computation.
		time.Sleep(50 * time.Millisecond)
		close(gate)
		wg.Wait()

		assert.Equal(t, int64(1), calls.Load())
	})
}

func TestMemoryCacheInvalidateTag(t *testing.T) {
	ctx := context.Background()

	t.Run("evicts all keys under the tag", func(t *testing.T) {
		c := NewMemoryCache()
		var calls atomic.Int64
		compute := func(ctx context.Context) ([]byte, error) {
			calls.Add(1)
			return []byte("v"), nil
		}

		_, err := c.GetOrCompute(ctx, "a", []string{TagReadings, DeviceTag("dev-a")}, time.Minute, compute)
		require.NoError(t, err)
		_, err = c.GetOrCompute(ctx, "b", []string{TagReadings, DeviceTag("dev-b")}, time.Minute, compute)
		require.NoError(t, err)
		_, err = c.GetOrCompute(ctx, "c", []string{"other"}, time.Minute, compute)
		require.NoError(t, err)
		require.Equal(t, int64(3), calls.Load())

		require.NoError(t, c.InvalidateTag(ctx, TagReadings))

		_, err = c.GetOrCompute(ctx, "a", []string{TagReadings}, time.Minute, compute)
		require.NoError(t, err)
		_, err = c.GetOrCompute(ctx, "b", []string{TagReadings}, time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, int64(5), calls.Load())

		// Entries under unrelated tags survive.
		_, err = c.GetOrCompute(ctx, "c", []string{"other"}, time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, int64(5), calls.Load())
	})

	t.Run("unknown tag is a no-op", func(t *testing.T) {
		c := NewMemoryCache()
		require.NoError(t, c.InvalidateTag(ctx, "never-used"))
	})

	t.Run("invalidation during an in-flight computation wins", func(t *testing.T) {
		c := NewMemoryCache()
		var calls atomic.Int64
		started := make(chan struct{})
		gate := make(chan struct{})
		compute := func(ctx context.Context) ([]byte, error) {
			if calls.Add(1) == 1 {
				close(started)
				<-gate
				return []byte("stale"), nil
			}
			return []byte("fresh"), nil
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			value, err := c.GetOrCompute(ctx, "k", []string{TagReadings}, time.Minute, compute)
			assert.NoError(t, err)
			// The overlapped caller still gets its computed value.
			assert.Equal(t, []byte("stale"), value)
		}()

		<-started
		require.NoError(t, c.InvalidateTag(ctx, TagReadings))
		close(gate)
		<-done

		// The overlapped result must not have been cached.
		value, err := c.GetOrCompute(ctx, "k", []string{TagReadings}, time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, []byte("fresh"), value)
	})
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "readings:latest:dev-a", LatestReadingKey("dev-a"))
	assert.Equal(t, "readings:last24h:dev-a", Last24hKey("dev-a"))
	assert.Equal(t, "readings:daily:dev-a", DailyStatsKey("dev-a"))
	assert.Equal(t, "device:dev-a", DeviceTag("dev-a"))
}
