// FilePath: internal/hubservice/hubservice.aggregate_test.go
package hubservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsatony/beachwatch/server/hub/internal/models"
)

func TestWindowExtrema(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	window := func(temps ...float64) []models.TemperatureReading {
		readings := make([]models.TemperatureReading, len(temps))
		for i, temp := range temps {
			readings[i] = models.TemperatureReading{
				DeviceID:    "dev-a",
				CreatedAt:   base.Add(time.Duration(i) * time.Minute),
				Temperature: temp,
			}
		}
		return readings
	}

	t.Run("empty window yields nil extrema", func(t *testing.T) {
		highest, lowest := windowExtrema(nil)
		assert.Nil(t, highest)
		assert.Nil(t, lowest)
	})

	t.Run("single reading is both extrema", func(t *testing.T) {
		readings := window(18.5)
		highest, lowest := windowExtrema(readings)
		require.NotNil(t, highest)
		require.NotNil(t, lowest)
		assert.Equal(t, 18.5, highest.Temperature)
		assert.Equal(t, 18.5, lowest.Temperature)
	})

	t.Run("picks maximum and minimum", func(t *testing.T) {
		readings := window(19.0, 23.5, 17.25, 21.0)
		highest, lowest := windowExtrema(readings)
		require.NotNil(t, highest)
		require.NotNil(t, lowest)
		assert.Equal(t, 23.5, highest.Temperature)
		assert.Equal(t, 17.25, lowest.Temperature)
	})

	t.Run("first encountered wins ties", func(t *testing.T) {
		readings := window(22.0, 15.0, 22.0, 15.0)
		highest, lowest := windowExtrema(readings)
		require.NotNil(t, highest)
		require.NotNil(t, lowest)
		assert.True(t, highest.CreatedAt.Equal(readings[0].CreatedAt))
		assert.True(t, lowest.CreatedAt.Equal(readings[1].CreatedAt))
	})
}

func TestDailyStats(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	at := func(y int, m time.Month, d, hour int) time.Time {
		return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
	}
	reading := func(temp float64, created time.Time) models.TemperatureReading {
		return models.TemperatureReading{
			DeviceID:    "dev-a",
			CreatedAt:   created,
			Temperature: temp,
		}
	}

	t.Run("no readings yields empty stats", func(t *testing.T) {
		assert.Empty(t, dailyStats(nil))
	})

	t.Run("buckets by UTC day newest first, sparse days omitted", func(t *testing.T) {
		readings := []models.TemperatureReading{
			reading(18.0, at(2024, 6, 1, 8)),
			reading(22.0, at(2024, 6, 1, 14)),
			reading(20.0, at(2024, 6, 1, 20)),
			// June 2nd unreported.
			reading(16.0, at(2024, 6, 3, 9)),
		}

		stats := dailyStats(readings)
		require.Len(t, stats, 2)

		assert.True(t, stats[0].Date.Equal(day(2024, 6, 3)))
		assert.Equal(t, 16.0, stats[0].Average)
		assert.Equal(t, 16.0, stats[0].Minimum)
		assert.Equal(t, 16.0, stats[0].Maximum)
		assert.Equal(t, 1, stats[0].Count)

		assert.True(t, stats[1].Date.Equal(day(2024, 6, 1)))
		assert.Equal(t, 20.0, stats[1].Average)
		assert.Equal(t, 18.0, stats[1].Minimum)
		assert.Equal(t, 22.0, stats[1].Maximum)
		assert.Equal(t, 3, stats[1].Count)
	})

	t.Run("bucketing ignores wall-clock offsets", func(t *testing.T) {
		berlin := time.FixedZone("CEST", 2*60*60)
		readings := []models.TemperatureReading{
			// 2024-06-02 01:30 CEST is still 2024-06-01 23:30 UTC.
			reading(19.0, time.Date(2024, 6, 2, 1, 30, 0, 0, berlin)),
		}

		stats := dailyStats(readings)
		require.Len(t, stats, 1)
		assert.True(t, stats[0].Date.Equal(day(2024, 6, 1)))
	})

	t.Run("average stays within min and max", func(t *testing.T) {
		readings := []models.TemperatureReading{
			reading(14.2, at(2024, 6, 5, 1)),
			reading(17.9, at(2024, 6, 5, 7)),
			reading(23.4, at(2024, 6, 5, 13)),
			reading(21.1, at(2024, 6, 5, 19)),
		}

		stats := dailyStats(readings)
		require.Len(t, stats, 1)
		assert.GreaterOrEqual(t, stats[0].Average, stats[0].Minimum)
		assert.LessOrEqual(t, stats[0].Average, stats[0].Maximum)
		assert.InDelta(t, 19.15, stats[0].Average, 1e-9)
	})
}
