package cleanup

import (
	"context"
	"fmt"

	"github.com/itsatony/beachwatch/server/hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// CleanupService coordinates deletion of a device and its recorded data
type CleanupService struct {
	readings       repository.ReadingRepository
	devices        repository.DeviceRepository
	heartbeats     repository.HeartbeatRepository
	batteryChanges repository.BatteryChangeRepository
	events         *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	readings repository.ReadingRepository,
	devices repository.DeviceRepository,
	heartbeats repository.HeartbeatRepository,
	batteryChanges repository.BatteryChangeRepository,
) *CleanupService {
	return &CleanupService{
		readings:       readings,
		devices:        devices,
		heartbeats:     heartbeats,
		batteryChanges: batteryChanges,
		events:         nuts.NewEventEmitter(),
	}
}

// DeleteDevice deletes a device and all its readings, heartbeats and
// battery changes. The time-series rows share one transaction; the
// device row lives in the app database and is removed last.
func (s *CleanupService) DeleteDevice(ctx context.Context, deviceID string) error {
	tx, err := s.readings.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	if err := s.readings.DeleteByDevice(ctx, deviceID, tx); err != nil {
		return fmt.Errorf("failed to delete readings: %w", err)
	}
	if err := s.heartbeats.DeleteByDevice(ctx, deviceID, tx); err != nil {
		return fmt.Errorf("failed to delete heartbeats: %w", err)
	}
	if err := s.batteryChanges.DeleteByDevice(ctx, deviceID, tx); err != nil {
		return fmt.Errorf("failed to delete battery changes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.events.Emit("readings.deleted", deviceID)

	if err := s.devices.Delete(ctx, deviceID); err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}

	s.events.Emit("device.deleted", deviceID)
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
