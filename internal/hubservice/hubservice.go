package hubservice

import (
	"time"

	"github.com/itsatony/beachwatch/server/hub/internal/cache"
	"github.com/itsatony/beachwatch/server/hub/internal/cleanup"
	"github.com/itsatony/beachwatch/server/hub/internal/config"
	"github.com/itsatony/beachwatch/server/hub/internal/errors"
	"github.com/itsatony/beachwatch/server/hub/internal/repository"
)

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Readings       repository.ReadingRepository
	Devices        repository.DeviceRepository
	Heartbeats     repository.HeartbeatRepository
	BatteryChanges repository.BatteryChangeRepository
	Cache          cache.TagCache
	Cleanup        *cleanup.CleanupService

	cacheTTL config.CacheConfig
	now      func() time.Time
}

// New creates a new HubService instance
func New(
	readings repository.ReadingRepository,
	devices repository.DeviceRepository,
	heartbeats repository.HeartbeatRepository,
	batteryChanges repository.BatteryChangeRepository,
	tagCache cache.TagCache,
	cacheTTL config.CacheConfig,
) *HubService {
	svc := &HubService{
		Readings:       readings,
		Devices:        devices,
		Heartbeats:     heartbeats,
		BatteryChanges: batteryChanges,
		Cache:          tagCache,
		cacheTTL:       cacheTTL,
		now:            time.Now,
	}
	svc.Cleanup = cleanup.New(readings, devices, heartbeats, batteryChanges)
	return svc
}

// Validate checks if all required dependencies are initialized
func (s *HubService) Validate() error {
	if s.Readings == nil {
		return ErrMissingRepository("readings")
	}
	if s.Devices == nil {
		return ErrMissingRepository("devices")
	}
	if s.Heartbeats == nil {
		return ErrMissingRepository("heartbeats")
	}
	if s.BatteryChanges == nil {
		return ErrMissingRepository("batteryChanges")
	}
	if s.Cache == nil {
		return errors.NewInternalError("missing cache layer", nil)
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
