// FilePath: api/resources/resources.go
package resources

import (
	"net/http"

	"github.com/abhayrokkam/fitbit-analytics/internal/hubservice"
	"github.com/abhayrokkam/fitbit-analytics/internal/monitoring"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Metrics     *MetricHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService, mon *monitoring.Service) *Resources {
	return &Resources{
		Metrics: &MetricHandlers{hubservice: svc, monitoring: mon},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}
