// FilePath: api/resources/api.resource.events.go
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

// EventHandlers encapsulates the heartbeat and battery change HTTP handlers
type EventHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Record a heartbeat
// @Description Record a liveness signal from a device
// @Tags events
// @Accept json
// @Produce json
// @Param heartbeat body models.Heartbeat true "Heartbeat details"
// @Success 201 {object} models.Heartbeat
// @Failure 400 {object} errors.APIError
// @Router /heartbeats [post]
func (h *EventHandlers) IngestHeartbeat(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var heartbeat models.Heartbeat
	if err := json.NewDecoder(r.Body).Decode(&heartbeat); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.IngestHeartbeat(r.Context(), &heartbeat); err != nil {
		respondWithError(w, asAPIError(err, "failed to record heartbeat").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, heartbeat)
}

// @Summary Get the latest heartbeat
// @Tags events
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} models.Heartbeat
// @Failure 404 {object} errors.APIError
// @Router /devices/{id}/heartbeats/latest [get]
func (h *EventHandlers) GetLatestHeartbeat(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["id"]
	requestID := middleware.GetRequestID(r.Context())

	heartbeat, err := h.hubservice.GetLatestHeartbeat(r.Context(), deviceID)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to get latest heartbeat").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, heartbeat)
}

// @Summary Record a battery change
// @Tags events
// @Accept json
// @Produce json
// @Param change body models.BatteryChange true "Battery change details"
// @Success 201 {object} models.BatteryChange
// @Failure 400 {object} errors.APIError
// @Router /batterychanges [post]
func (h *EventHandlers) IngestBatteryChange(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var change models.BatteryChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.IngestBatteryChange(r.Context(), &change); err != nil {
		respondWithError(w, asAPIError(err, "failed to record battery change").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, change)
}

// @Summary List battery changes
// @Tags events
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {array} models.BatteryChange
// @Router /devices/{id}/batterychanges [get]
func (h *EventHandlers) ListBatteryChanges(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["id"]
	requestID := middleware.GetRequestID(r.Context())
	offset, limit := getPaginationParams(r)

	changes, err := h.hubservice.ListBatteryChanges(r.Context(), deviceID, offset, limit)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to list battery changes").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, changes)
}

// @Summary Get the latest battery change
// @Tags events
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} models.BatteryChange
// @Failure 404 {object} errors.APIError
// @Router /devices/{id}/batterychanges/latest [get]
func (h *EventHandlers) GetLatestBatteryChange(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deviceID := vars["id"]
	requestID := middleware.GetRequestID(r.Context())

	change, err := h.hubservice.GetLatestBatteryChange(r.Context(), deviceID)
	if err != nil {
		respondWithError(w, asAPIError(err, "failed to get latest battery change").WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, change)
}
