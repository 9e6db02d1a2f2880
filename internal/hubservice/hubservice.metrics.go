// FilePath: internal/hubservice/hubservice.metrics.go
package hubservice

import (
	"context"
	"fmt"
	"time"

	"github.com/abhayrokkam/fitbit-analytics/internal/errors"
	"github.com/abhayrokkam/fitbit-analytics/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const dateLayout = "2006-01-02"

// defaultWindowDays is the query window when no start date is given.
const defaultWindowDays = 7

// GetMetricData validates and executes one range query. Dates are inclusive
// calendar days; the store scan runs over [start 00:00, end+1day 00:00) UTC
// so the whole end day is covered at any sample resolution. "Today" for the
// defaults is the UTC calendar day.
//
// Zero matching rows is a client-visible NoData condition, not an empty
// success. That mirrors how the dashboard treats an empty chart.
func (s *HubService) GetMetricData(ctx context.Context, q models.MetricQuery) (*models.MetricResponse, error) {
	if !models.SupportedMetrics[q.Metric] {
		return nil, errors.NewUnsupportedMetricError(
			fmt.Sprintf("metric %q not found, only 'heart_rate' is supported", q.Metric), nil)
	}

	end := q.EndDate
	if end.IsZero() {
		now := s.now().UTC()
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	start := q.StartDate
	if start.IsZero() {
		start = end.AddDate(0, 0, -defaultWindowDays)
	}

	if start.After(end) {
		return nil, errors.NewInvalidRangeError(
			fmt.Sprintf("start_date %s is after end_date %s",
				start.Format(dateLayout), end.Format(dateLayout)), nil)
	}

	scanStart := start.UTC()
	scanEnd := end.UTC().AddDate(0, 0, 1)

	cacheKey := fmt.Sprintf("metricdata:%s:%s:%s:%s",
		s.ClientID, q.Metric, scanStart.Format(dateLayout), scanEnd.Format(dateLayout))
	if resp, ok := s.Cache.GetResponse(ctx, cacheKey); ok {
		resp.UserID = q.UserID
		return resp, nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	points, err := s.Samples.GetRange(queryCtx, s.ClientID, q.Metric, scanStart, scanEnd)
	if err != nil {
		return nil, err
	}

	if len(points) == 0 {
		nuts.L.Warnf("[HubService] No %s data between %s and %s",
			q.Metric, start.Format(dateLayout), end.Format(dateLayout))
		return nil, errors.NewNoDataError("no data found for the given parameters", nil)
	}

	resp := &models.MetricResponse{
		UserID: q.UserID,
		Metric: q.Metric,
		Data:   points,
	}
	s.Cache.SetResponse(ctx, cacheKey, resp)
	return resp, nil
}
