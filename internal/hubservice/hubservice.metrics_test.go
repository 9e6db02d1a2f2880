// FilePath: internal/hubservice/hubservice.metrics_test.go
package hubservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhayrokkam/fitbit-analytics/internal/cache"
	"github.com/abhayrokkam/fitbit-analytics/internal/database"
	"github.com/abhayrokkam/fitbit-analytics/internal/errors"
	"github.com/abhayrokkam/fitbit-analytics/internal/models"
)

// rangeRepo records the scan bounds it was asked for and returns canned points.
type rangeRepo struct {
	points    []models.MetricPoint
	lastStart time.Time
	lastEnd   time.Time
	calls     int
}

func (r *rangeRepo) UpsertSamples(ctx context.Context, samples []models.Sample) (int64, error) {
	return 0, nil
}

func (r *rangeRepo) GetRange(ctx context.Context, clientID, metric string, start, end time.Time) ([]models.MetricPoint, error) {
	r.calls++
	r.lastStart = start
	r.lastEnd = end
	points := []models.MetricPoint{}
	for _, p := range r.points {
		if !p.Time.Before(start) && p.Time.Before(end) {
			points = append(points, p)
		}
	}
	return points, nil
}

func (r *rangeRepo) DeleteOldData(ctx context.Context, before time.Time) error { return nil }

func (r *rangeRepo) BeginTx(ctx context.Context) (database.Transaction, error) { return nil, nil }

func newTestService(repo *rangeRepo) *HubService {
	svc := New(repo, cache.NopCache{}, "client-a", time.Second)
	svc.now = func() time.Time {
		return time.Date(2024, 1, 20, 14, 0, 0, 0, time.UTC)
	}
	return svc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGetMetricDataUnsupportedMetric(t *testing.T) {
	repo := &rangeRepo{}
	svc := newTestService(repo)

	_, err := svc.GetMetricData(context.Background(), models.MetricQuery{
		UserID: "u1",
		Metric: "steps",
	})

	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedMetric(err))
	// The store must never be queried for an unsupported metric.
	assert.Zero(t, repo.calls)
}

func TestGetMetricDataInvalidRange(t *testing.T) {
	svc := newTestService(&rangeRepo{})

	_, err := svc.GetMetricData(context.Background(), models.MetricQuery{
		UserID:    "u1",
		Metric:    models.MetricHeartRate,
		StartDate: day(2024, 1, 10),
		EndDate:   day(2024, 1, 5),
	})

	require.Error(t, err)
	assert.True(t, errors.IsInvalidRange(err))
}

func TestGetMetricDataNoData(t *testing.T) {
	svc := newTestService(&rangeRepo{})

	_, err := svc.GetMetricData(context.Background(), models.MetricQuery{
		UserID:    "u1",
		Metric:    models.MetricHeartRate,
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 1, 2),
	})

	require.Error(t, err)
	assert.True(t, errors.IsNoData(err))
}

func TestGetMetricDataInclusiveEndDay(t *testing.T) {
	repo := &rangeRepo{points: []models.MetricPoint{
		{Time: time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), Value: 61},
		{Time: time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC), Value: 64},
	}}
	svc := newTestService(repo)

	resp, err := svc.GetMetricData(context.Background(), models.MetricQuery{
		UserID:    "u1",
		Metric:    models.MetricHeartRate,
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 1, 1),
	})
	require.NoError(t, err)

	// The whole end day is in range, the next day is not.
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 61.0, resp.Data[0].Value)
	assert.Equal(t, day(2024, 1, 1), repo.lastStart)
	assert.Equal(t, day(2024, 1, 2), repo.lastEnd)
}

func TestGetMetricDataDefaultsToLastSevenDays(t *testing.T) {
	repo := &rangeRepo{points: []models.MetricPoint{
		{Time: time.Date(2024, 1, 18, 12, 0, 0, 0, time.UTC), Value: 70},
	}}
	svc := newTestService(repo)

	resp, err := svc.GetMetricData(context.Background(), models.MetricQuery{
		UserID: "u1",
		Metric: models.MetricHeartRate,
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)

	// now is 2024-01-20: scan [2024-01-13, 2024-01-21).
	assert.Equal(t, day(2024, 1, 13), repo.lastStart)
	assert.Equal(t, day(2024, 1, 21), repo.lastEnd)
}

func TestGetMetricDataPreservesStoreOrder(t *testing.T) {
	repo := &rangeRepo{points: []models.MetricPoint{
		{Time: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), Value: 58},
		{Time: time.Date(2024, 1, 1, 8, 1, 0, 0, time.UTC), Value: 59},
		{Time: time.Date(2024, 1, 1, 8, 2, 0, 0, time.UTC), Value: 63},
	}}
	svc := newTestService(repo)

	resp, err := svc.GetMetricData(context.Background(), models.MetricQuery{
		UserID:    "u1",
		Metric:    models.MetricHeartRate,
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 1, 1),
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 3)

	for i := 1; i < len(resp.Data); i++ {
		assert.False(t, resp.Data[i].Time.Before(resp.Data[i-1].Time))
	}
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, models.MetricHeartRate, resp.Metric)
}

// recordingCache is a map-backed Cache for asserting read-through behavior.
type recordingCache struct {
	entries map[string]*models.MetricResponse
	hits    int
	sets    int
}

func (c *recordingCache) GetResponse(ctx context.Context, key string) (*models.MetricResponse, bool) {
	resp, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return resp, ok
}

func (c *recordingCache) SetResponse(ctx context.Context, key string, resp *models.MetricResponse) {
	c.entries[key] = resp
	c.sets++
}

func TestGetMetricDataUsesCache(t *testing.T) {
	repo := &rangeRepo{points: []models.MetricPoint{
		{Time: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), Value: 58},
	}}
	rc := &recordingCache{entries: map[string]*models.MetricResponse{}}
	svc := New(repo, rc, "client-a", time.Second)

	query := models.MetricQuery{
		UserID:    "u1",
		Metric:    models.MetricHeartRate,
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 1, 1),
	}

	_, err := svc.GetMetricData(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, rc.sets)
	assert.Equal(t, 1, repo.calls)

	// Second identical query is served from the cache.
	query.UserID = "u2"
	resp, err := svc.GetMetricData(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, rc.hits)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, "u2", resp.UserID)
}
