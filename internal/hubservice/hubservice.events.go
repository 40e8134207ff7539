// FilePath: internal/hubservice/hubservice.events.go
package hubservice

import (
	"context"

	"github.com/itsatony/beachwatch/server/hub/internal/errors"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// IngestHeartbeat records a device liveness signal.
func (s *HubService) IngestHeartbeat(ctx context.Context, heartbeat *models.Heartbeat) error {
	if heartbeat == nil || heartbeat.DeviceID == "" {
		return errors.NewValidationError("device id is required", nil)
	}
	if heartbeat.CreatedAt.IsZero() {
		return errors.NewValidationError("timestamp is required", nil)
	}

	if err := s.Heartbeats.Add(ctx, heartbeat); err != nil {
		return err
	}

	if err := s.Devices.UpdateLastSeen(ctx, heartbeat.DeviceID, heartbeat.CreatedAt); err != nil {
		nuts.L.Warnf("[HeartbeatService] Failed to update device last seen: %v", err)
	}
	return nil
}

// GetLatestHeartbeat returns the most recent heartbeat for a device.
func (s *HubService) GetLatestHeartbeat(ctx context.Context, deviceID string) (*models.Heartbeat, error) {
	heartbeat, err := s.Heartbeats.Latest(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if heartbeat == nil {
		return nil, errors.NewNotFoundError("no heartbeats for device", nil)
	}
	return heartbeat, nil
}

// IngestBatteryChange records a battery swap event.
func (s *HubService) IngestBatteryChange(ctx context.Context, change *models.BatteryChange) error {
	if change == nil || change.DeviceID == "" {
		return errors.NewValidationError("device id is required", nil)
	}
	if change.CreatedAt.IsZero() {
		return errors.NewValidationError("timestamp is required", nil)
	}
	return s.BatteryChanges.Add(ctx, change)
}

// GetLatestBatteryChange returns the most recent battery change for a device.
func (s *HubService) GetLatestBatteryChange(ctx context.Context, deviceID string) (*models.BatteryChange, error) {
	change, err := s.BatteryChanges.Latest(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if change == nil {
		return nil, errors.NewNotFoundError("no battery changes for device", nil)
	}
	return change, nil
}

// ListBatteryChanges returns a page of battery changes, newest first.
func (s *HubService) ListBatteryChanges(ctx context.Context, deviceID string, offset, limit int) ([]*models.BatteryChange, error) {
	return s.BatteryChanges.ListByDevice(ctx, deviceID, offset, limit)
}
