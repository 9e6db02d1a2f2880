// FilePath: internal/fitbit/fitbit.client.go
package fitbit

import (
	"context"
	"fmt"
	"time"

	"github.com/abhayrokkam/fitbit-analytics/internal/config"
	"github.com/abhayrokkam/fitbit-analytics/internal/errors"
	"github.com/abhayrokkam/fitbit-analytics/internal/models"
	"github.com/go-resty/resty/v2"
	nuts "github.com/vaudience/go-nuts"
)

const dateLayout = "2006-01-02"

// DataSource is the device-data collaborator of the ingestion job. It
// returns raw per-day records; all validation happens in the job's
// transform step.
type DataSource interface {
	Authenticate(ctx context.Context) error
	GetIntradayHeartRate(ctx context.Context, start, end time.Time) ([]models.IntradayDay, error)
}

// NewDataSource selects the source implementation from configuration.
// Synthetic mode is a different collaborator, not a branch inside the job.
func NewDataSource(cfg config.FitbitConfig) DataSource {
	if cfg.Synthetic {
		nuts.L.Infof("[Fitbit] Synthetic mode enabled, no device authentication")
		return NewSyntheticSource()
	}
	return NewClient(cfg)
}

// intradayResponse mirrors the Fitbit Web API intraday-by-date payload.
type intradayResponse struct {
	ActivitiesHeart []struct {
		DateTime string `json:"dateTime"`
	} `json:"activities-heart"`
	Intraday struct {
		Dataset []models.IntradayEntry `json:"dataset"`
	} `json:"activities-heart-intraday"`
}

// Client fetches intraday heart-rate data from the Fitbit Web API.
type Client struct {
	http        *resty.Client
	accessToken string
}

func NewClient(cfg config.FitbitConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.FetchTimeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:        httpClient,
		accessToken: cfg.AccessToken,
	}
}

// Authenticate verifies the access token against the profile endpoint.
func (c *Client) Authenticate(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.accessToken).
		Get("/1/user/-/profile.json")
	if err != nil {
		return errors.NewFetchError("device authentication request failed", err)
	}
	if resp.IsError() {
		return errors.NewFetchError(
			fmt.Sprintf("device authentication rejected with status %d", resp.StatusCode()), nil)
	}
	nuts.L.Infof("[Fitbit] Device authentication succeeded")
	return nil
}

// GetIntradayHeartRate fetches one-minute resolution heart-rate data for
// every day in [start, end], one request per day.
func (c *Client) GetIntradayHeartRate(ctx context.Context, start, end time.Time) ([]models.IntradayDay, error) {
	days := []models.IntradayDay{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		record, err := c.fetchDay(ctx, day)
		if err != nil {
			return nil, err
		}
		days = append(days, record)
	}
	return days, nil
}

func (c *Client) fetchDay(ctx context.Context, day time.Time) (models.IntradayDay, error) {
	var payload intradayResponse
	path := fmt.Sprintf("/1/user/-/activities/heart/date/%s/1d/1min.json", day.Format(dateLayout))

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.accessToken).
		SetResult(&payload).
		Get(path)
	if err != nil {
		return models.IntradayDay{}, errors.NewFetchError("intraday heart-rate request failed", err)
	}
	if resp.IsError() {
		return models.IntradayDay{}, errors.NewFetchError(
			fmt.Sprintf("intraday heart-rate request returned status %d", resp.StatusCode()), nil)
	}
	if len(payload.ActivitiesHeart) == 0 {
		return models.IntradayDay{}, errors.NewFetchError(
			fmt.Sprintf("malformed intraday payload for %s: no day record", day.Format(dateLayout)), nil)
	}

	return models.IntradayDay{
		Date:    payload.ActivitiesHeart[0].DateTime,
		Dataset: payload.Intraday.Dataset,
	}, nil
}
