// FilePath: api/resources/api.resource.legacy.go
package resources

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/itsatony/beachwatch/server/hub/api/middleware"
	"github.com/itsatony/beachwatch/server/hub/internal/hubservice"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
)

// LegacyHandlers serves the response shapes the previous station
// firmware expects, mapped from the current query operations.
type LegacyHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary List readings (legacy format)
// @Tags legacy
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {array} models.LegacyReadingResponse
// @Router /legacy/devices/{id}/readings [get]
func (h *LegacyHandlers) ListReadings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["id"]
	requestID := middleware.GetRequestID(r.Context())

	window, err := h.hubservice.GetReadingsLast24h(r.Context(), deviceID)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to get readings").WithRequestID(requestID))
		return
	}

	legacy := make([]models.LegacyReadingResponse, 0, len(window.Readings))
	for _, reading := range window.Readings {
		legacy = append(legacy, models.LegacyReadingFromTemperature(reading))
	}
	respondWithJSON(w, http.StatusOK, legacy)
}

// @Summary List daily statistics (legacy format)
// @Tags legacy
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {array} models.LegacyDailyStatsResponse
// @Router /legacy/devices/{id}/dailystats [get]
func (h *LegacyHandlers) ListDailyStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["id"]
	requestID := middleware.GetRequestID(r.Context())

	stats, err := h.hubservice.GetDailyStatsLast30Days(r.Context(), deviceID)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to get daily stats").WithRequestID(requestID))
		return
	}

	legacy := make([]models.LegacyDailyStatsResponse, 0, len(stats))
	for _, stat := range stats {
		legacy = append(legacy, models.LegacyDailyStatsResponse{
			CapturedAt:     stat.Date,
			Count:          stat.Count,
			AverageReading: stat.Average,
			HighestReading: stat.Maximum,
			LowestReading:  stat.Minimum,
		})
	}
	respondWithJSON(w, http.StatusOK, legacy)
}
