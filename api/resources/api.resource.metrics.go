// FilePath: api/resources/api.resource.metrics.go
package resources

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/abhayrokkam/fitbit-analytics/internal/errors"
	"github.com/abhayrokkam/fitbit-analytics/internal/hubservice"
	"github.com/abhayrokkam/fitbit-analytics/internal/models"
	"github.com/abhayrokkam/fitbit-analytics/internal/monitoring"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"
)

const dateLayout = "2006-01-02"

// MetricHandlers encapsulates the metric-data HTTP handlers
type MetricHandlers struct {
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// metricQueryParams are the decoded query-string parameters. Dates stay
// strings here; parsing and range validation happen below so a malformed
// date maps to a 400 instead of a silent default.
type metricQueryParams struct {
	StartDate string `schema:"start_date"`
	EndDate   string `schema:"end_date"`
}

// @Summary Get metric data
// @Description Get stored samples for a metric over an inclusive calendar-day range. Defaults: end_date is today (UTC), start_date is end_date minus 7 days.
// @Tags metrics
// @Produce json
// @Param user_id path string true "User ID"
// @Param metric path string true "Metric name (heart_rate)"
// @Param start_date query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param end_date query string false "End date (YYYY-MM-DD, inclusive)"
// @Success 200 {object} models.MetricResponse
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /data/{user_id}/{metric} [get]
func (h *MetricHandlers) GetMetricData(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	var params metricQueryParams
	if err := queryDecoder.Decode(&params, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}

	query := models.MetricQuery{
		UserID: vars["user_id"],
		Metric: vars["metric"],
	}

	var err error
	if query.StartDate, err = parseDateParam(params.StartDate); err != nil {
		respondWithError(w, errors.NewValidationError("start_date must be YYYY-MM-DD", err).WithRequestID(requestID))
		return
	}
	if query.EndDate, err = parseDateParam(params.EndDate); err != nil {
		respondWithError(w, errors.NewValidationError("end_date must be YYYY-MM-DD", err).WithRequestID(requestID))
		return
	}

	resp, err := h.hubservice.GetMetricData(r.Context(), query)
	if err != nil {
		if errors.IsNoData(err) {
			h.monitoring.RecordEvent("query_no_data", map[string]string{
				"metric": query.Metric,
			})
		}
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// parseDateParam parses an optional YYYY-MM-DD parameter; empty means
// "use the service default".
func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// respondWithServiceError maps a service error to its HTTP status. Anything
// that is not one of our typed errors becomes an opaque 500.
func respondWithServiceError(w http.ResponseWriter, err error, requestID string) {
	if apiErr, ok := err.(*errors.APIError); ok {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError("request failed", err).WithRequestID(requestID))
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
