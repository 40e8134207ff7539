// FilePath: internal/models/models.stats.go
package models

import "time"

// DailyTemperatureStats holds per-day aggregates over the trailing 30-day window.
// Derived on demand, never persisted.
type DailyTemperatureStats struct {
	Date    time.Time `json:"date"`
	Average float64   `json:"average"`
	Minimum float64   `json:"lowest"`
	Maximum float64   `json:"highest"`
	Count   int       `json:"count"`
}

// Last24hReadings is the 24-hour window result: readings in ascending time
// order plus the extrema elements. Highest and Lowest are nil when the
// window is empty.
type Last24hReadings struct {
	Readings []TemperatureReading `json:"readings"`
	Highest  *TemperatureReading  `json:"highest"`
	Lowest   *TemperatureReading  `json:"lowest"`
}
