// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/abhayrokkam/fitbit-analytics/api/resources"
	"github.com/abhayrokkam/fitbit-analytics/internal/hubservice"
	"github.com/abhayrokkam/fitbit-analytics/internal/monitoring"
	"github.com/gorilla/mux"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, mon *monitoring.Service) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc, mon),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Versioned service routes
	v1 := r.router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/health", r.handleHealth).Methods(http.MethodGet)

	// Dashboard data route, path-compatible with the original frontend
	r.router.HandleFunc("/data/{user_id}/{metric}", r.resources.Metrics.GetMetricData).Methods(http.MethodGet)
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if r.resources.HealthCheck != nil {
		r.resources.HealthCheck(w, req)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetHealthCheck sets the health check handler
func (r *Router) SetHealthCheck(h func(w http.ResponseWriter, req *http.Request)) {
	r.resources.SetHealthCheck(h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
