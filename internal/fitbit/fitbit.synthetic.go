// FilePath: internal/fitbit/fitbit.synthetic.go
package fitbit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/abhayrokkam/fitbit-analytics/internal/models"
)

// SyntheticSource generates plausible per-minute heart-rate data for
// offline development. Output is deterministic per date so repeated runs
// of the ingestion job stay idempotent end to end.
type SyntheticSource struct{}

func NewSyntheticSource() *SyntheticSource {
	return &SyntheticSource{}
}

// Authenticate is a no-op: synthetic mode has no device credentials.
func (s *SyntheticSource) Authenticate(ctx context.Context) error {
	return nil
}

func (s *SyntheticSource) GetIntradayHeartRate(ctx context.Context, start, end time.Time) ([]models.IntradayDay, error) {
	days := []models.IntradayDay{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, syntheticDay(day))
	}
	return days, nil
}

// syntheticDay builds 1440 one-minute entries: a resting baseline with a
// slow circadian swing plus a short deterministic "workout" spike in the
// late afternoon. The date seeds the phase so days differ but re-generate
// identically.
func syntheticDay(day time.Time) models.IntradayDay {
	phase := float64(day.YearDay() % 7)
	dataset := make([]models.IntradayEntry, 0, 24*60)

	for minute := 0; minute < 24*60; minute++ {
		t := float64(minute) / (24 * 60)
		value := 62.0 + 8.0*math.Sin(2*math.Pi*(t-0.25)+phase)
		if minute >= 17*60 && minute < 17*60+45 {
			value += 55.0
		}

		dataset = append(dataset, models.IntradayEntry{
			Time:  fmt.Sprintf("%02d:%02d:00", minute/60, minute%60),
			Value: fmt.Sprintf("%.0f", value),
		})
	}

	return models.IntradayDay{
		Date:    day.Format(dateLayout),
		Dataset: dataset,
	}
}
