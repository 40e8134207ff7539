// FilePath: internal/models/models.legacy.go
package models

import "time"

// Legacy response shapes kept wire-compatible with the previous station firmware.

type LegacyReadingResponse struct {
	ID             string          `json:"id"`
	SensorType     string          `json:"sensorType"`
	Unit           string          `json:"unit"`
	Reading        float64         `json:"reading"`
	SensorID       string          `json:"sensorId"`
	CapturedAt     time.Time       `json:"capturedAt"`
	Meta           *LegacyMetaData `json:"meta,omitempty"`
	SignalStrength *int            `json:"signalStrength,omitempty"`
	TimeToLive     int             `json:"timeToLive"`
}

type LegacyMetaData struct {
	JSON string `json:"json,omitempty"`
}

type LegacyDailyStatsResponse struct {
	CapturedAt     time.Time `json:"capturedAt"`
	Count          int       `json:"count"`
	AverageReading float64   `json:"averageReading"`
	HighestReading float64   `json:"highestReading"`
	LowestReading  float64   `json:"lowestReading"`
}

// LegacyReadingFromTemperature maps a stored reading to the legacy wire shape.
func LegacyReadingFromTemperature(r TemperatureReading) LegacyReadingResponse {
	return LegacyReadingResponse{
		ID:             r.ID,
		SensorType:     "temperature",
		Unit:           "celsius",
		Reading:        r.Temperature,
		SensorID:       r.DeviceID,
		CapturedAt:     r.CreatedAt,
		SignalStrength: r.SignalStrength,
	}
}
