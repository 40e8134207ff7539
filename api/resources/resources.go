// FilePath: api/resources/resources.go
package resources

import (
	"github.com/itsatony/beachwatch/server/hub/internal/hubservice"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Devices  *DeviceHandlers
	Readings *ReadingHandlers
	Events   *EventHandlers
	Legacy   *LegacyHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService) *Resources {
	return &Resources{
		Devices:  &DeviceHandlers{hubservice: svc},
		Readings: &ReadingHandlers{hubservice: svc},
		Events:   &EventHandlers{hubservice: svc},
		Legacy:   &LegacyHandlers{hubservice: svc},
	}
}
