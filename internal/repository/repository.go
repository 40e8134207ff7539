// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/itsatony/beachwatch/server/hub/internal/database"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
)

// ReadingRepository defines the interface for temperature reading persistence.
// All queries are scoped to a single device partition; cross-device scans are
// only used by the export tooling.
type ReadingRepository interface {
	database.Repository
	Add(ctx context.Context, reading *models.TemperatureReading) error
	Get(ctx context.Context, id string) (*models.TemperatureReading, error)
	// Latest returns the most recent reading for a device ordered by
	// created_at descending, or (nil, nil) when the device has none.
	Latest(ctx context.Context, deviceID string) (*models.TemperatureReading, error)
	// RangeSince returns all readings with created_at >= since, ascending.
	RangeSince(ctx context.Context, deviceID string, since time.Time) ([]models.TemperatureReading, error)
	// Delete removes a reading by id; absent ids are a no-op.
	Delete(ctx context.Context, id string) error
	DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error
	// All streams every stored reading in created_at order (export tool only).
	All(ctx context.Context) ([]models.TemperatureReading, error)
}

// DeviceRepository defines the interface for device metadata operations
type DeviceRepository interface {
	database.Repository
	Create(ctx context.Context, device *models.Device) error
	Get(ctx context.Context, id string) (*models.Device, error)
	Update(ctx context.Context, device *models.Device) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters models.DeviceFilters, offset, limit int) ([]*models.Device, error)
	UpdateLastSeen(ctx context.Context, id string, lastSeen time.Time) error
}

// HeartbeatRepository defines the interface for device heartbeat records
type HeartbeatRepository interface {
	database.Repository
	Add(ctx context.Context, heartbeat *models.Heartbeat) error
	Latest(ctx context.Context, deviceID string) (*models.Heartbeat, error)
	DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error
}

// BatteryChangeRepository defines the interface for battery change records
type BatteryChangeRepository interface {
	database.Repository
	Add(ctx context.Context, change *models.BatteryChange) error
	Latest(ctx context.Context, deviceID string) (*models.BatteryChange, error)
	ListByDevice(ctx context.Context, deviceID string, offset, limit int) ([]*models.BatteryChange, error)
	DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error
}
