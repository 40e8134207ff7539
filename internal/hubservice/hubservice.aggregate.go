// FilePath: internal/hubservice/hubservice.aggregate.go
package hubservice

import (
	"sort"
	"time"

	"github.com/itsatony/beachwatch/server/hub/internal/models"
)

// windowExtrema scans an ascending-time window and returns the readings
// with the maximum and minimum temperature. Strict comparisons mean the
// first-encountered reading wins on ties. Both are nil for an empty
// window.
func windowExtrema(readings []models.TemperatureReading) (highest, lowest *models.TemperatureReading) {
	for i := range readings {
		reading := &readings[i]
		if highest == nil || reading.Temperature > highest.Temperature {
			highest = reading
		}
		if lowest == nil || reading.Temperature < lowest.Temperature {
			lowest = reading
		}
	}
	return highest, lowest
}

// dailyStats buckets readings by UTC calendar day and computes the
// arithmetic mean, minimum and maximum per non-empty day, newest first.
func dailyStats(readings []models.TemperatureReading) []models.DailyTemperatureStats {
	type bucket struct {
		sum   float64
		min   float64
		max   float64
		count int
	}

	buckets := make(map[time.Time]*bucket)
	for _, reading := range readings {
		day := reading.CreatedAt.UTC().Truncate(24 * time.Hour)
		b, ok := buckets[day]
		if !ok {
			buckets[day] = &bucket{
				sum:   reading.Temperature,
				min:   reading.Temperature,
				max:   reading.Temperature,
				count: 1,
			}
			continue
		}
		b.sum += reading.Temperature
		b.count++
		if reading.Temperature < b.min {
			b.min = reading.Temperature
		}
		if reading.Temperature > b.max {
			b.max = reading.Temperature
		}
	}

	stats := make([]models.DailyTemperatureStats, 0, len(buckets))
	for day, b := range buckets {
		stats = append(stats, models.DailyTemperatureStats{
			Date:    day,
			Average: b.sum / float64(b.count),
			Minimum: b.min,
			Maximum: b.max,
			Count:   b.count,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date.After(stats[j].Date)
	})
	return stats
}
