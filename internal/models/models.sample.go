// FilePath: internal/models/models.sample.go
package models

import (
	"math"
	"time"
)

// MetricHeartRate is the only metric ingested in this version. The metric
// column stays free text so future metrics need no schema change.
const MetricHeartRate = "heart_rate"

// SupportedMetrics is the set of metrics the query API serves.
var SupportedMetrics = map[string]bool{
	MetricHeartRate: true,
}

// Sample represents a single heart-rate observation.
// (client_id, metric, time) is the natural key: one value per client,
// metric and instant.
type Sample struct {
	ClientID string    `json:"client_id" db:"client_id"`
	Metric   string    `json:"metric" db:"metric"`
	Time     time.Time `json:"time" db:"time"`
	Value    float64   `json:"value" db:"value"`
}

// Valid reports whether the sample satisfies the ingestion invariants:
// a non-empty owner, a positive finite value, and a non-zero timestamp.
func (s Sample) Valid() bool {
	if s.ClientID == "" || s.Metric == "" || s.Time.IsZero() {
		return false
	}
	return s.Value > 0 && !math.IsInf(s.Value, 0) && !math.IsNaN(s.Value)
}

// MetricPoint is one {time, value} pair of a query response.
type MetricPoint struct {
	Time  time.Time `json:"time" db:"time"`
	Value float64   `json:"value" db:"value"`
}

// MetricQuery describes one range query against the sample store.
// StartDate and EndDate are inclusive calendar dates; zero values mean
// "apply the service defaults".
type MetricQuery struct {
	UserID    string
	Metric    string
	StartDate time.Time
	EndDate   time.Time
}

// MetricResponse is the transport shape of a successful range query.
type MetricResponse struct {
	UserID string        `json:"user_id"`
	Metric string        `json:"metric"`
	Data   []MetricPoint `json:"data"`
}
