// FilePath: internal/hubservice/hubservice.readings.go
package hubservice

import (
	"context"
	"encoding/json"
	"time"

	"github.com/itsatony/beachwatch/server/hub/internal/cache"
	"github.com/itsatony/beachwatch/server/hub/internal/errors"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// IngestStatus reports the outcome of one pipeline execution.
type IngestStatus string

const (
	// IngestStored means the reading was accepted and persisted.
	IngestStored IngestStatus = "stored"
	// IngestSkipped means the dedup policy absorbed the reading; the
	// pipeline still reports success to the caller.
	IngestSkipped IngestStatus = "skipped"
)

// ReadingService handles the temperature reading pipeline and queries
type ReadingService interface {
	IngestReading(ctx context.Context, reading *models.TemperatureReading) (IngestStatus, error)
	GetLatestReading(ctx context.Context, deviceID string) (*models.TemperatureReading, error)
	GetReadingsLast24h(ctx context.Context, deviceID string) (*models.Last24hReadings, error)
	GetDailyStatsLast30Days(ctx context.Context, deviceID string) ([]models.DailyTemperatureStats, error)
	DeleteReading(ctx context.Context, id string) error
}

// IngestReading runs one pipeline execution: validate, dedup-check
// against the latest stored reading, persist, invalidate the readings
// cache tag. Ingestion counts as successful once the store write
// commits; invalidation failures are logged only.
func (s *HubService) IngestReading(ctx context.Context, reading *models.TemperatureReading) (IngestStatus, error) {
	if err := validateReading(reading); err != nil {
		return "", err
	}

	// Dedup state lives in the store, not in memory, so the check stays
	// correct across multiple service instances. Two near-simultaneous
	// ingests for one device can both pass; that race is accepted.
	previous, err := s.Readings.Latest(ctx, reading.DeviceID)
	if err != nil {
		return "", err
	}
	if !shouldAcceptReading(reading, previous) {
		nuts.L.Debugf("[ReadingService] Skipping duplicate reading for device %s at %v",
			reading.DeviceID, reading.CreatedAt)
		return IngestSkipped, nil
	}

	if reading.ID == "" {
		reading.ID = nuts.NID("tr", 12)
	}
	if err := s.Readings.Add(ctx, reading); err != nil {
		return "", err
	}

	s.invalidateReadings(ctx)

	if err := s.Devices.UpdateLastSeen(ctx, reading.DeviceID, reading.CreatedAt); err != nil {
		nuts.L.Warnf("[ReadingService] Failed to update device last seen: %v", err)
	}

	return IngestStored, nil
}

// GetLatestReading returns the most recent reading for a device.
func (s *HubService) GetLatestReading(ctx context.Context, deviceID string) (*models.TemperatureReading, error) {
	key := cache.LatestReadingKey(deviceID)
	tags := []string{cache.TagReadings, cache.DeviceTag(deviceID)}

	return cachedQuery[*models.TemperatureReading](ctx, s, key, tags, s.cacheTTL.LatestTTL,
		func(ctx context.Context) (*models.TemperatureReading, error) {
			reading, err := s.Readings.Latest(ctx, deviceID)
			if err != nil {
				return nil, err
			}
			if reading == nil {
				return nil, errors.NewNotFoundError("no readings for device", nil)
			}
			return reading, nil
		})
}

// GetReadingsLast24h returns the trailing 24-hour window in ascending
// time order together with its extrema. Ties on temperature resolve to
// the earliest reading.
func (s *HubService) GetReadingsLast24h(ctx context.Context, deviceID string) (*models.Last24hReadings, error) {
	key := cache.Last24hKey(deviceID)
	tags := []string{cache.TagReadings, cache.DeviceTag(deviceID)}

	return cachedQuery[*models.Last24hReadings](ctx, s, key, tags, s.cacheTTL.Last24hTTL,
		func(ctx context.Context) (*models.Last24hReadings, error) {
			since := s.now().Add(-24 * time.Hour)
			readings, err := s.Readings.RangeSince(ctx, deviceID, since)
			if err != nil {
				return nil, err
			}
			highest, lowest := windowExtrema(readings)
			return &models.Last24hReadings{
				Readings: readings,
				Highest:  highest,
				Lowest:   lowest,
			}, nil
		})
}

// GetDailyStatsLast30Days returns per-day aggregates over the trailing
// 30 days, newest first. Day boundaries are pinned to UTC. Days with no
// readings produce no entry.
func (s *HubService) GetDailyStatsLast30Days(ctx context.Context, deviceID string) ([]models.DailyTemperatureStats, error) {
	key := cache.DailyStatsKey(deviceID)
	tags := []string{cache.TagReadings, cache.DeviceTag(deviceID)}

	return cachedQuery[[]models.DailyTemperatureStats](ctx, s, key, tags, s.cacheTTL.DailyTTL,
		func(ctx context.Context) ([]models.DailyTemperatureStats, error) {
			today := s.now().UTC().Truncate(24 * time.Hour)
			since := today.AddDate(0, 0, -30)
			readings, err := s.Readings.RangeSince(ctx, deviceID, since)
			if err != nil {
				return nil, err
			}
			return dailyStats(readings), nil
		})
}

// DeleteReading removes a reading by id; absent ids are a no-op. Any
// deletion invalidates all cached reading queries.
func (s *HubService) DeleteReading(ctx context.Context, id string) error {
	if err := s.Readings.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReadings(ctx)
	return nil
}

func (s *HubService) invalidateReadings(ctx context.Context) {
	// A write for any device clears all cached reading queries. The
	// per-device tags attached to each entry are reserved for selective
	// invalidation later.
	if err := s.Cache.InvalidateTag(ctx, cache.TagReadings); err != nil {
		nuts.L.Warnf("[ReadingService] Cache invalidation failed: %v", err)
	}
}

func validateReading(reading *models.TemperatureReading) error {
	if reading == nil {
		return errors.NewValidationError("reading is required", nil)
	}
	if reading.DeviceID == "" {
		return errors.NewValidationError("device id is required", nil)
	}
	if reading.CreatedAt.IsZero() {
		return errors.NewValidationError("timestamp is required", nil)
	}
	return nil
}

// cachedQuery wraps a computation with the tag cache, JSON round-tripping
// the value so both cache backends store the same representation. Failed
// computations propagate and are never cached.
func cachedQuery[T any](ctx context.Context, s *HubService, key string, tags []string, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	payload, err := s.Cache.GetOrCompute(ctx, key, tags, ttl, func(ctx context.Context) ([]byte, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	})
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return zero, errors.NewInternalError("failed to decode cached value", err)
	}
	return out, nil
}
