// FilePath: internal/models/api.models.filters.go
package models

// DeviceFilters defines the available filter options for devices.
// Decoded from query strings via gorilla/schema.
type DeviceFilters struct {
	Status   DeviceStatus `schema:"status"`
	Location string       `schema:"location"`
}
