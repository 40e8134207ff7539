// FilePath: internal/hubservice/hubservice.devices.go
package hubservice

import (
	"context"
	"time"

	"github.com/itsatony/struccy"

	"github.com/itsatony/beachwatch/server/hub/internal/errors"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// DeviceService handles device-related business logic
type DeviceService interface {
	CreateDevice(ctx context.Context, device *models.Device) error
	GetDevice(ctx context.Context, id string) (*models.Device, error)
	UpdateDevice(ctx context.Context, device *models.Device) error
	DeleteDevice(ctx context.Context, id string) error
	ListDevices(ctx context.Context, filters models.DeviceFilters, offset, limit int) ([]*models.Device, error)
}

// CreateDevice creates a new device with validation and defaults
func (s *HubService) CreateDevice(ctx context.Context, device *models.Device) error {
	if device.Name == "" {
		return errors.NewValidationError("device name is required", nil)
	}

	if device.ID == "" {
		device.ID = nuts.NID("dv", 12)
	}
	if device.Status == "" {
		device.Status = models.DeviceStatusOnline
	}
	if device.Timezone == "" {
		device.Timezone = "UTC"
	}

	now := time.Now()
	device.CreatedAt = now
	device.UpdatedAt = now
	device.LastSeen = now

	nuts.L.Infof("[DeviceService] Creating new device: %s (%s)", device.Name, device.ID)
	return s.Devices.Create(ctx, device)
}

// UpdateDevice updates an existing device with role-based field access
func (s *HubService) UpdateDevice(ctx context.Context, device *models.Device) error {
	existing, err := s.Devices.Get(ctx, device.ID)
	if err != nil {
		return err
	}

	roles := GetUserRoles(ctx)

	updatedFields, _, err := struccy.UpdateStructFields(existing, device, roles, true, true)
	if err != nil {
		return errors.NewAuthorizationError("unauthorized field update", err)
	}

	device.UpdatedAt = time.Now()

	nuts.L.Infof("[DeviceService] Updating device %s, fields changed: %v", device.ID, updatedFields)
	return s.Devices.Update(ctx, device)
}

// GetDevice retrieves a device with role-based field filtering
func (s *HubService) GetDevice(ctx context.Context, id string) (*models.Device, error) {
	device, err := s.Devices.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	roles := GetUserRoles(ctx)

	filteredMap, err := struccy.StructToMapFieldsWithReadXS(device, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter device fields", err)
	}
	filtered := &models.Device{}
	_, err = struccy.MergeMapStringFieldsToStruct(filtered, filteredMap, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to map filtered fields to device struct", err)
	}

	return filtered, nil
}

// DeleteDevice removes a device and all its recorded data
func (s *HubService) DeleteDevice(ctx context.Context, id string) error {
	if _, err := s.Devices.Get(ctx, id); err != nil {
		return err
	}

	if err := s.Cleanup.DeleteDevice(ctx, id); err != nil {
		return err
	}

	// The device's readings are gone; cached queries must not outlive them.
	s.invalidateReadings(ctx)
	return nil
}

// ListDevices returns a filtered page of devices
func (s *HubService) ListDevices(ctx context.Context, filters models.DeviceFilters, offset, limit int) ([]*models.Device, error) {
	return s.Devices.List(ctx, filters, offset, limit)
}

// GetUserRoles retrieves user roles from context
// This should be implemented based on your authentication system
func GetUserRoles(ctx context.Context) []string {
	if roles := ctx.Value("user_roles"); roles != nil {
		if r, ok := roles.([]string); ok {
			return r
		}
	}
	return []string{"guest"}
}
