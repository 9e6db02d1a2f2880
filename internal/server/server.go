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

	"github.com/abhayrokkam/fitbit-analytics/api"
	"github.com/abhayrokkam/fitbit-analytics/internal/cache"
	"github.com/abhayrokkam/fitbit-analytics/internal/config"
	"github.com/abhayrokkam/fitbit-analytics/internal/database"
	"github.com/abhayrokkam/fitbit-analytics/internal/hubservice"
	"github.com/abhayrokkam/fitbit-analytics/internal/monitoring"
	"github.com/abhayrokkam/fitbit-analytics/internal/repository/timescale"
	"github.com/gorilla/handlers"
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
	s.monitoring = monitoring.NewService()

	router := api.NewRouter(s.hubservice, s.monitoring)
	router.SetHealthCheck(s.handleHealth())

	handler := handlers.CombinedLoggingHandler(os.Stdout,
		handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{http.MethodGet}),
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

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
	}
}

// initializeHubService creates and configures the hub service
func initializeHubService(cfg *config.Config) *hubservice.HubService {
	tsdb := initTimescaleDB(cfg.Database.TimescaleDB)

	samples, err := timescale.NewSampleRepository(tsdb)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize sample repository: %v", err)
	}

	responseCache := cache.New(cfg.Redis)

	svc := hubservice.New(samples, responseCache, cfg.Fitbit.ClientID, cfg.Database.QueryTimeout)
	if err := svc.Validate(); err != nil {
		nuts.L.Fatalf("[Server] Invalid hub service: %v", err)
	}
	return svc
}

func initTimescaleDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewTimescaleDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to TimescaleDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping TimescaleDB: %v", err)
	}
	return wrappedDB
}
