// FilePath: internal/hubservice/hubservice.dedup.go
package hubservice

import (
	"time"

	"github.com/itsatony/beachwatch/server/hub/internal/models"
)

// dedupWindow is the acceptance window for repeat transmissions: a
// sample matching the previous temperature inside this window is a
// redundant re-send, not a new measurement.
const dedupWindow = time.Minute

// shouldAcceptReading decides whether a candidate sample is a redundant
// repeat of the immediately preceding one. Only the single latest stored
// reading is consulted; an exact one-minute gap is accepted. Negative
// gaps (device clock skew) fall inside the window and are rejected like
// any other repeat, without skew correction.
func shouldAcceptReading(candidate, previous *models.TemperatureReading) bool {
	if previous == nil {
		return true
	}
	if candidate.Temperature != previous.Temperature {
		return true
	}
	return candidate.CreatedAt.Sub(previous.CreatedAt) >= dedupWindow
}
