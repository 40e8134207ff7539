// FilePath: internal/repository/memory/memory.reading_test.go
package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsatony/beachwatch/server/hub/internal/errors"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
)

func addReading(t *testing.T, repo *ReadingRepo, deviceID string, temp float64, at time.Time) *models.TemperatureReading {
	t.Helper()
	reading := &models.TemperatureReading{
		DeviceID:    deviceID,
		CreatedAt:   at,
		Temperature: temp,
	}
	require.NoError(t, repo.Add(context.Background(), reading))
	return reading
}

func TestReadingRepoLatest(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := NewReadingRepository()

	t.Run("empty stream yields nil without error", func(t *testing.T) {
		reading, err := repo.Latest(ctx, "dev-a")
		require.NoError(t, err)
		assert.Nil(t, reading)
	})

	t.Run("latest follows created_at, not insertion order", func(t *testing.T) {
		addReading(t, repo, "dev-a", 20.0, base.Add(2*time.Hour))
		addReading(t, repo, "dev-a", 18.0, base)

		latest, err := repo.Latest(ctx, "dev-a")
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, 20.0, latest.Temperature)
	})
}

func TestReadingRepoAdd(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := NewReadingRepository()

	reading := addReading(t, repo, "dev-a", 19.5, base)

	assert.NotEmpty(t, reading.ID)
	assert.Equal(t, "2024-06", reading.YearMonth)

	got, err := repo.Get(ctx, reading.ID)
	require.NoError(t, err)
	assert.Equal(t, 19.5, got.Temperature)

	_, err = repo.Get(ctx, "tr_missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestReadingRepoRangeSince(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := NewReadingRepository()

	for i := 0; i < 5; i++ {
		addReading(t, repo, "dev-a", float64(i), base.Add(time.Duration(i)*time.Hour))
	}
	addReading(t, repo, "dev-b", 99.0, base)

	t.Run("boundary timestamp is inclusive", func(t *testing.T) {
		readings, err := repo.RangeSince(ctx, "dev-a", base.Add(2*time.Hour))
		require.NoError(t, err)
		require.Len(t, readings, 3)
		assert.Equal(t, 2.0, readings[0].Temperature)
		assert.Equal(t, 4.0, readings[2].Temperature)
	})

	t.Run("ascending order", func(t *testing.T) {
		readings, err := repo.RangeSince(ctx, "dev-a", base)
		require.NoError(t, err)
		require.Len(t, readings, 5)
		for i := 1; i < len(readings); i++ {
			assert.True(t, readings[i].CreatedAt.After(readings[i-1].CreatedAt))
		}
	})

	t.Run("scoped to the device", func(t *testing.T) {
		readings, err := repo.RangeSince(ctx, "dev-b", base)
		require.NoError(t, err)
		require.Len(t, readings, 1)
		assert.Equal(t, 99.0, readings[0].Temperature)
	})

	t.Run("future cutoff yields empty slice", func(t *testing.T) {
		readings, err := repo.RangeSince(ctx, "dev-a", base.Add(48*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, readings)
	})
}

func TestReadingRepoDelete(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := NewReadingRepository()

	reading := addReading(t, repo, "dev-a", 20.0, base)

	require.NoError(t, repo.Delete(ctx, reading.ID))
	_, err := repo.Get(ctx, reading.ID)
	assert.True(t, errors.IsNotFound(err))

	// Absent ids are a no-op.
	require.NoError(t, repo.Delete(ctx, reading.ID))
	require.NoError(t, repo.Delete(ctx, "tr_missing"))
}

func TestReadingRepoDeleteByDevice(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := NewReadingRepository()

	keep := addReading(t, repo, "dev-b", 21.0, base)
	addReading(t, repo, "dev-a", 20.0, base)
	addReading(t, repo, "dev-a", 22.0, base.Add(time.Hour))

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByDevice(ctx, "dev-a", tx))
	require.NoError(t, tx.Commit())

	latest, err := repo.Latest(ctx, "dev-a")
	require.NoError(t, err)
	assert.Nil(t, latest)

	got, err := repo.Get(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, 21.0, got.Temperature)
}

func TestReadingRepoAll(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := NewReadingRepository()

	addReading(t, repo, "dev-b", 2.0, base.Add(time.Hour))
	addReading(t, repo, "dev-a", 1.0, base)
	addReading(t, repo, "dev-a", 3.0, base.Add(2*time.Hour))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1.0, all[0].Temperature)
	assert.Equal(t, 2.0, all[1].Temperature)
	assert.Equal(t, 3.0, all[2].Temperature)
}
