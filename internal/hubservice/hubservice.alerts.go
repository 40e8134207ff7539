// FilePath: internal/hubservice/hubservice.alerts.go
package hubservice

import (
	"context"
	"fmt"
	"time"
)

// staleReadingThreshold is the age beyond which the latest reading is
// considered overdue.
const staleReadingThreshold = 30 * time.Minute

// GenerateAlerts inspects a device's recorded state and returns alert
// messages. Delivery (email, webhook) is handled elsewhere.
func (s *HubService) GenerateAlerts(ctx context.Context, deviceID string) ([]string, error) {
	alerts := []string{}

	latest, err := s.Readings.Latest(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if latest != nil && s.now().Sub(latest.CreatedAt) > staleReadingThreshold {
		alerts = append(alerts, fmt.Sprintf(
			"Latest temperature reading is older than 30 minutes for device %s.", deviceID))
	}

	heartbeat, err := s.Heartbeats.Latest(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if heartbeat != nil && s.now().Sub(heartbeat.CreatedAt) > staleReadingThreshold {
		alerts = append(alerts, fmt.Sprintf(
			"Latest heartbeat is older than 30 minutes for device %s.", deviceID))
	}

	return alerts, nil
}
