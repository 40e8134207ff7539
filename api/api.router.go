package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/itsatony/beachwatch/server/hub/api/middleware"
	"github.com/itsatony/beachwatch/server/hub/api/resources"
	"github.com/itsatony/beachwatch/server/hub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)

	// Health
	api.HandleFunc("/health", r.handleHealth).Methods(http.MethodGet)

	// Devices
	devices := api.PathPrefix("/devices").Subrouter()
	devices.HandleFunc("", r.resources.Devices.ListDevices).Methods(http.MethodGet)
	devices.HandleFunc("", r.resources.Devices.CreateDevice).Methods(http.MethodPost)
	devices.HandleFunc("/{id}", r.resources.Devices.GetDevice).Methods(http.MethodGet)
	devices.HandleFunc("/{id}", r.resources.Devices.UpdateDevice).Methods(http.MethodPut)
	devices.HandleFunc("/{id}", r.resources.Devices.DeleteDevice).Methods(http.MethodDelete)
	devices.HandleFunc("/{id}/alerts", r.resources.Devices.GetDeviceAlerts).Methods(http.MethodGet)

	// Readings
	api.HandleFunc("/readings", r.resources.Readings.IngestReading).Methods(http.MethodPost)
	api.HandleFunc("/readings/{id}", r.resources.Readings.DeleteReading).Methods(http.MethodDelete)
	devices.HandleFunc("/{id}/readings/latest", r.resources.Readings.GetLatestReading).Methods(http.MethodGet)
	devices.HandleFunc("/{id}/readings/last24h", r.resources.Readings.GetReadingsLast24h).Methods(http.MethodGet)
	devices.HandleFunc("/{id}/readings/daily", r.resources.Readings.GetDailyStats).Methods(http.MethodGet)

	// Heartbeats and battery changes
	api.HandleFunc("/heartbeats", r.resources.Events.IngestHeartbeat).Methods(http.MethodPost)
	devices.HandleFunc("/{id}/heartbeats/latest", r.resources.Events.GetLatestHeartbeat).Methods(http.MethodGet)
	api.HandleFunc("/batterychanges", r.resources.Events.IngestBatteryChange).Methods(http.MethodPost)
	devices.HandleFunc("/{id}/batterychanges", r.resources.Events.ListBatteryChanges).Methods(http.MethodGet)
	devices.HandleFunc("/{id}/batterychanges/latest", r.resources.Events.GetLatestBatteryChange).Methods(http.MethodGet)

	// Legacy firmware compatibility
	legacy := api.PathPrefix("/legacy").Subrouter()
	legacy.HandleFunc("/devices/{id}/readings", r.resources.Legacy.ListReadings).Methods(http.MethodGet)
	legacy.HandleFunc("/devices/{id}/dailystats", r.resources.Legacy.ListDailyStats).Methods(http.MethodGet)
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
