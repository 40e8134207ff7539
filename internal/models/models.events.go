// FilePath: internal/models/models.events.go
package models

import "time"

// Heartbeat represents a liveness signal sent by a device
type Heartbeat struct {
	ID        string    `json:"id" db:"id"`
	DeviceID  string    `json:"device_id" db:"device_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BatteryChange represents a record of a battery swap for a device
type BatteryChange struct {
	ID        string    `json:"id" db:"id"`
	DeviceID  string    `json:"device_id" db:"device_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
