// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/itsatony/beachwatch/server/hub/api"
	"github.com/itsatony/beachwatch/server/hub/internal/cache"
	"github.com/itsatony/beachwatch/server/hub/internal/config"
	"github.com/itsatony/beachwatch/server/hub/internal/database"
	"github.com/itsatony/beachwatch/server/hub/internal/hubservice"
	"github.com/itsatony/beachwatch/server/hub/internal/monitoring"
	"github.com/itsatony/beachwatch/server/hub/internal/repository"
	"github.com/itsatony/beachwatch/server/hub/internal/repository/memory"
	"github.com/itsatony/beachwatch/server/hub/internal/repository/postgres"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Initialize services
	s.hubservice = initializeHubService(s.config)
	s.monitoring = monitoring.NewService(monitoring.Config{
		LogLevel: s.config.Monitoring.LogLevel,
	})

	// Set up cleanup event handlers
	s.setupCleanupHandlers()

	// Set up routes and middleware
	router := api.NewRouter(s.hubservice)
	handler := handlers.RecoveryHandler(
		handlers.PrintRecoveryStack(true),
	)(handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(router))

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if err := s.hubservice.Cache.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing cache: %v", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupCleanupHandlers() {
	// Handle device deletion events
	s.hubservice.Cleanup.OnCleanup("device.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Device %s and all associated data deleted", id)
		s.monitoring.RecordEvent("device_deletion", map[string]string{
			"device_id": id,
		})
	})

	// Handle reading deletion events
	s.hubservice.Cleanup.OnCleanup("readings.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] All readings for device %s deleted", id)
		s.monitoring.RecordEvent("readings_deletion", map[string]string{
			"device_id": id,
		})
	})
}

// initializeHubService creates and configures the hub service
func initializeHubService(cfg *config.Config) *hubservice.HubService {
	var (
		readings       repository.ReadingRepository
		devices        repository.DeviceRepository
		heartbeats     repository.HeartbeatRepository
		batteryChanges repository.BatteryChangeRepository
	)

	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		nuts.L.Infof("[Server] Using embedded in-memory storage")
		readings = memory.NewReadingRepository()
		devices = memory.NewDeviceRepository()
		heartbeats = memory.NewHeartbeatRepository()
		batteryChanges = memory.NewBatteryChangeRepository()
	default:
		readingsDB := initReadingsDB(cfg.Database.ReadingsDB)
		appDB := initAppDB(cfg.Database.AppDB)

		var err error
		readings, err = postgres.NewReadingRepository(readingsDB)
		if err != nil {
			nuts.L.Fatalf("[Server] Failed to initialize reading repository: %v", err)
		}
		devices = postgres.NewDeviceRepository(appDB)
		heartbeats, err = postgres.NewHeartbeatRepository(readingsDB)
		if err != nil {
			nuts.L.Fatalf("[Server] Failed to initialize heartbeat repository: %v", err)
		}
		batteryChanges, err = postgres.NewBatteryChangeRepository(readingsDB)
		if err != nil {
			nuts.L.Fatalf("[Server] Failed to initialize battery change repository: %v", err)
		}
	}

	tagCache := initCache(cfg)

	svc := hubservice.New(readings, devices, heartbeats, batteryChanges, tagCache, cfg.Cache)
	if err := svc.Validate(); err != nil {
		nuts.L.Fatalf("[Server] Invalid hub service: %v", err)
	}
	return svc
}

func initCache(cfg *config.Config) cache.TagCache {
	if cfg.Cache.Backend == config.CacheBackendRedis {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			nuts.L.Fatalf("[Server] Failed to connect to redis: %v", err)
		}
		return redisCache
	}
	return cache.NewMemoryCache()
}

func initReadingsDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewReadingsDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to readings database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping readings database: %v", err)
	}
	return wrappedDB
}

func initAppDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to app database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping app database: %v", err)
	}
	return wrappedDB
}
