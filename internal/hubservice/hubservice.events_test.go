// FilePath: internal/hubservice/hubservice.events_test.go
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

func TestHeartbeats(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()
	svc, _ := newTestService(t, base.Add(time.Hour))

	require.NoError(t, svc.CreateDevice(ctx, &models.Device{ID: "dv_1", Name: "Pier Station"}))

	t.Run("validation", func(t *testing.T) {
		err := svc.IngestHeartbeat(ctx, &models.Heartbeat{CreatedAt: base})
		assert.True(t, errors.IsValidation(err))

		err = svc.IngestHeartbeat(ctx, &models.Heartbeat{DeviceID: "dv_1"})
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("no heartbeats yet", func(t *testing.T) {
		_, err := svc.GetLatestHeartbeat(ctx, "dv_1")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("ingest updates device last seen", func(t *testing.T) {
		at := base.Add(10 * time.Minute)
		require.NoError(t, svc.IngestHeartbeat(ctx, &models.Heartbeat{DeviceID: "dv_1", CreatedAt: at}))

		heartbeat, err := svc.GetLatestHeartbeat(ctx, "dv_1")
		require.NoError(t, err)
		assert.True(t, heartbeat.CreatedAt.Equal(at))

		device, err := svc.Devices.Get(ctx, "dv_1")
		require.NoError(t, err)
		assert.True(t, device.LastSeen.Equal(at))
	})
}

func TestBatteryChanges(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()
	svc, _ := newTestService(t, base)

	err := svc.IngestBatteryChange(ctx, &models.BatteryChange{CreatedAt: base})
	assert.True(t, errors.IsValidation(err))

	_, err = svc.GetLatestBatteryChange(ctx, "dv_1")
	assert.True(t, errors.IsNotFound(err))

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.IngestBatteryChange(ctx, &models.BatteryChange{
			DeviceID:  "dv_1",
			CreatedAt: base.AddDate(0, 0, i*30),
		}))
	}

	latest, err := svc.GetLatestBatteryChange(ctx, "dv_1")
	require.NoError(t, err)
	assert.True(t, latest.CreatedAt.Equal(base.AddDate(0, 0, 60)))

	changes, err := svc.ListBatteryChanges(ctx, "dv_1", 0, 2)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.True(t, changes[0].CreatedAt.Equal(base.AddDate(0, 0, 60)))
}

func TestGenerateAlerts(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("no recorded state yields no alerts", func(t *testing.T) {
		svc, _ := newTestService(t, base)
		alerts, err := svc.GenerateAlerts(ctx, "dv_1")
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("fresh state yields no alerts", func(t *testing.T) {
		svc, _ := newTestService(t, base)
		ingest(t, svc, "dv_1", 20.0, base.Add(-10*time.Minute))
		require.NoError(t, svc.IngestHeartbeat(ctx, &models.Heartbeat{
			DeviceID:  "dv_1",
			CreatedAt: base.Add(-5 * time.Minute),
		}))

		alerts, err := svc.GenerateAlerts(ctx, "dv_1")
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("stale reading and heartbeat each alert", func(t *testing.T) {
		svc, _ := newTestService(t, base)
		ingest(t, svc, "dv_1", 20.0, base.Add(-45*time.Minute))
		require.NoError(t, svc.IngestHeartbeat(ctx, &models.Heartbeat{
			DeviceID:  "dv_1",
			CreatedAt: base.Add(-31 * time.Minute),
		}))

		alerts, err := svc.GenerateAlerts(ctx, "dv_1")
		require.NoError(t, err)
		require.Len(t, alerts, 2)
		assert.Equal(t, "Latest temperature reading is older than 30 minutes for device dv_1.", alerts[0])
		assert.Equal(t, "Latest heartbeat is older than 30 minutes for device dv_1.", alerts[1])
	})

	t.Run("threshold is exclusive", func(t *testing.T) {
		svc, _ := newTestService(t, base)
		ingest(t, svc, "dv_1", 20.0, base.Add(-30*time.Minute))

		alerts, err := svc.GenerateAlerts(ctx, "dv_1")
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})
}
