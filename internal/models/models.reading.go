// FilePath: internal/models/models.reading.go
package models

import "time"

// YearMonthLayout is the partition bucket format derived from CreatedAt.
const YearMonthLayout = "2006-01"

// TemperatureReading represents one timestamped temperature sample from a device
type TemperatureReading struct {
	ID             string    `json:"id" db:"id"`
	DeviceID       string    `json:"device_id" db:"device_id"`
	YearMonth      string    `json:"year_month" db:"year_month"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	Temperature    float64   `json:"temperature" db:"temperature"`
	SignalStrength *int      `json:"signal_strength,omitempty" db:"signal_strength"`
}

// BucketKey derives the year-month partition component from CreatedAt.
// Readings inserted without a CreatedAt fall back to the current month.
func (r *TemperatureReading) BucketKey() string {
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return createdAt.UTC().Format(YearMonthLayout)
}
