// FilePath: internal/models/models.device.go
package models

import "time"

type DeviceStatus string

const (
	DeviceStatusOnline      DeviceStatus = "online"
	DeviceStatusOffline     DeviceStatus = "offline"
	DeviceStatusMaintenance DeviceStatus = "maintenance"
)

// Device represents a physical sensor unit identified by a stable string key
type Device struct {
	ID          string       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description" db:"description"`
	Status      DeviceStatus `json:"status" db:"status"`
	Location    string       `json:"location" db:"location" readxs:"*" writexs:"owner,system,superadmin"`
	Timezone    string       `json:"timezone" db:"timezone" readxs:"*" writexs:"owner,system,superadmin"`
	APIKey      string       `json:"api_key,omitempty" db:"api_key" readxs:"owner,system,superadmin" writexs:"system,superadmin"`
	LastSeen    time.Time    `json:"last_seen" db:"last_seen"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}
