// FilePath: api/resources/api.resource.readings.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/itsatony/beachwatch/server/hub/api/middleware"
	"github.com/itsatony/beachwatch/server/hub/internal/errors"
	"github.com/itsatony/beachwatch/server/hub/internal/hubservice"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
)

// ReadingHandlers encapsulates the temperature reading HTTP handlers
type ReadingHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Ingest a temperature reading
// @Description Record a new temperature reading from a device; duplicate re-sends are absorbed silently
// @Tags readings
// @Accept json
// @Produce json
// @Param reading body models.TemperatureReading true "Reading details"
// @Success 201 {object} map[string]string
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Router /readings [post]
func (h *ReadingHandlers) IngestReading(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var reading models.TemperatureReading
	if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	status, err := h.hubservice.IngestReading(r.Context(), &reading)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to ingest reading").WithRequestID(requestID))
		return
	}

	// A dedup skip is a successful no-op, not an error.
	code := http.StatusCreated
	if status == hubservice.IngestSkipped {
		code = http.StatusOK
	}
	respondWithJSON(w, code, map[string]string{"status": string(status)})
}

// @Summary Get the latest reading
// @Description Get the most recent temperature reading for a device
// @Tags readings
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} models.TemperatureReading
// @Failure 404 {object} errors.APIError
// @Router /devices/{id}/readings/latest [get]
func (h *ReadingHandlers) GetLatestReading(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["id"]
	requestID := middleware.GetRequestID(r.Context())

	reading, err := h.hubservice.GetLatestReading(r.Context(), deviceID)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to get latest reading").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, reading)
}

// @Summary Get the last 24 hours of readings
// @Description Get the trailing 24-hour window of readings with the highest and lowest element
// @Tags readings
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} models.Last24hReadings
// @Router /devices/{id}/readings/last24h [get]
func (h *ReadingHandlers) GetReadingsLast24h(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["id"]
	requestID := middleware.GetRequestID(r.Context())

	window, err := h.hubservice.GetReadingsLast24h(r.Context(), deviceID)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to get 24h readings").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, window)
}

// @Summary Get daily statistics
// @Description Get per-day temperature aggregates for the trailing 30 days, newest first
// @Tags readings
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {array} models.DailyTemperatureStats
// @Router /devices/{id}/readings/daily [get]
func (h *ReadingHandlers) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["id"]
	requestID := middleware.GetRequestID(r.Context())

	stats, err := h.hubservice.GetDailyStatsLast30Days(r.Context(), deviceID)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to get daily stats").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// @Summary Delete a reading
// @Description Delete one temperature reading by id; absent ids are a no-op
// @Tags readings
// @Produce json
// @Param id path string true "Reading ID"
// @Success 204 "No Content"
// @Router /readings/{id} [delete]
func (h *ReadingHandlers) DeleteReading(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := middleware.GetRequestID(r.Context())

	if err := h.hubservice.DeleteReading(r.Context(), id); err != nil {
		respondWithError(w, asAPIError(err, "failed to delete reading").WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
