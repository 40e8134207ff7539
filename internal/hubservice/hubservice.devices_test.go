// FilePath: internal/hubservice/hubservice.devices_test.go
package hubservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsatony/beachwatch/server/hub/internal/errors"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
)

func TestCreateDevice(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("requires a name", func(t *testing.T) {
		svc, _ := newTestService(t, base)
		err := svc.CreateDevice(ctx, &models.Device{})
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("fills defaults", func(t *testing.T) {
		svc, _ := newTestService(t, base)
		device := &models.Device{Name: "Pier Station"}
		require.NoError(t, svc.CreateDevice(ctx, device))

		assert.NotEmpty(t, device.ID)
		assert.Equal(t, models.DeviceStatusOnline, device.Status)
		assert.Equal(t, "UTC", device.Timezone)
		assert.False(t, device.CreatedAt.IsZero())
	})

	t.Run("keeps a caller-supplied id and status", func(t *testing.T) {
		svc, _ := newTestService(t, base)
		device := &models.Device{
			ID:     "dv_custom",
			Name:   "Pier Station",
			Status: models.DeviceStatusMaintenance,
		}
		require.NoError(t, svc.CreateDevice(ctx, device))
		assert.Equal(t, "dv_custom", device.ID)
		assert.Equal(t, models.DeviceStatusMaintenance, device.Status)
	})
}

func TestGetDeviceFieldFiltering(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, base)

	device := &models.Device{
		ID:       "dv_1",
		Name:     "Pier Station",
		Location: "north-beach",
		APIKey:   "secret-key",
	}
	require.NoError(t, svc.CreateDevice(context.Background(), device))

	t.Run("guest cannot read the api key", func(t *testing.T) {
		got, err := svc.GetDevice(context.Background(), "dv_1")
		require.NoError(t, err)
		assert.Equal(t, "Pier Station", got.Name)
		assert.Empty(t, got.APIKey)
	})

	t.Run("system role reads the api key", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), "user_roles", []string{"system"})
		got, err := svc.GetDevice(ctx, "dv_1")
		require.NoError(t, err)
		assert.Equal(t, "secret-key", got.APIKey)
	})

	t.Run("unknown device", func(t *testing.T) {
		_, err := svc.GetDevice(context.Background(), "dv_missing")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestDeleteDevice(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, _ := newTestService(t, base.Add(time.Hour))
	require.NoError(t, svc.CreateDevice(ctx, &models.Device{ID: "dv_1", Name: "Pier Station"}))
	ingest(t, svc, "dv_1", 20.0, base)
	require.NoError(t, svc.IngestHeartbeat(ctx, &models.Heartbeat{DeviceID: "dv_1", CreatedAt: base}))

	// Warm the cache so the delete has something to invalidate.
	_, err := svc.GetLatestReading(ctx, "dv_1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDevice(ctx, "dv_1"))

	_, err = svc.Devices.Get(ctx, "dv_1")
	assert.True(t, errors.IsNotFound(err))

	latest, err := svc.Readings.Latest(ctx, "dv_1")
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = svc.GetLatestReading(ctx, "dv_1")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	t.Run("unknown device", func(t *testing.T) {
		err := svc.DeleteDevice(ctx, "dv_missing")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestGetUserRoles(t *testing.T) {
	assert.Equal(t, []string{"guest"}, GetUserRoles(context.Background()))

	ctx := context.WithValue(context.Background(), "user_roles", []string{"owner", "system"})
	assert.Equal(t, []string{"owner", "system"}, GetUserRoles(ctx))
}
