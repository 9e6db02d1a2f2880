// FilePath: internal/ingest/ingest.go
package ingest

import (
	"context"
	"strconv"
	"time"

	"github.com/abhayrokkam/fitbit-analytics/internal/errors"
	"github.com/abhayrokkam/fitbit-analytics/internal/fitbit"
	"github.com/abhayrokkam/fitbit-analytics/internal/models"
	"github.com/abhayrokkam/fitbit-analytics/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Result summarizes one ingestion run.
type Result struct {
	TargetDate time.Time
	Ingested   int64
	Skipped    int
}

// Job orchestrates one run of the daily ingestion pipeline: compute the
// target date from the checkpoint, fetch that day from the device-data
// source, transform and validate each entry, upsert the valid samples, and
// advance the checkpoint.
//
// The checkpoint is written only after the store write commits. Any fetch
// or store failure therefore leaves the checkpoint at its pre-run value and
// the next scheduled invocation retries the same target date; the upsert
// write path makes that retry converge instead of duplicating rows.
type Job struct {
	source       fitbit.DataSource
	samples      repository.SampleRepository
	checkpoint   repository.CheckpointRepository
	clientID     string
	storeTimeout time.Duration

	// now is replaceable for tests
	now func() time.Time
}

func NewJob(
	source fitbit.DataSource,
	samples repository.SampleRepository,
	checkpoint repository.CheckpointRepository,
	clientID string,
	storeTimeout time.Duration,
) *Job {
	return &Job{
		source:       source,
		samples:      samples,
		checkpoint:   checkpoint,
		clientID:     clientID,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

// Run executes one ingestion run to completion.
func (j *Job) Run(ctx context.Context) (*Result, error) {
	target, err := j.targetDate(ctx)
	if err != nil {
		return nil, err
	}
	nuts.L.Infof("[Ingest] Starting run for target date %s", target.Format(dateLayout))

	if err := j.source.Authenticate(ctx); err != nil {
		return nil, err
	}

	days, err := j.source.GetIntradayHeartRate(ctx, target, target)
	if err != nil {
		return nil, err
	}

	samples, skipped := j.transform(days)
	nuts.L.Infof("[Ingest] Transformed %d samples for %s (%d skipped)",
		len(samples), target.Format(dateLayout), skipped)

	storeCtx, cancel := context.WithTimeout(ctx, j.storeTimeout)
	defer cancel()

	written, err := j.samples.UpsertSamples(storeCtx, samples)
	if err != nil {
		return nil, err
	}

	if err := j.checkpoint.Write(ctx, target); err != nil {
		return nil, err
	}

	nuts.L.Infof("[Ingest] Run complete: %d samples written for %s", written, target.Format(dateLayout))
	return &Result{TargetDate: target, Ingested: written, Skipped: skipped}, nil
}

// targetDate resolves which calendar day this run ingests: the day after
// the last successfully ingested day, or yesterday when no checkpoint
// exists yet.
func (j *Job) targetDate(ctx context.Context) (time.Time, error) {
	last, found, err := j.checkpoint.Read(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if !found {
		now := j.now().UTC()
		yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		nuts.L.Infof("[Ingest] No checkpoint found, defaulting to yesterday")
		return yesterday, nil
	}
	return last.AddDate(0, 0, 1), nil
}

// transform flattens the raw per-day records into validated samples. A
// malformed entry is skipped and counted, never fatal: one bad minute must
// not abort the remaining 1439.
func (j *Job) transform(days []models.IntradayDay) ([]models.Sample, int) {
	samples := []models.Sample{}
	skipped := 0

	for _, day := range days {
		for _, entry := range day.Dataset {
			sample, err := j.transformEntry(day.Date, entry)
			if err != nil {
				skipped++
				nuts.L.Warnf("[Ingest] Skipping entry %s %s: %v", day.Date, entry.Time, err)
				continue
			}
			samples = append(samples, sample)
		}
	}
	return samples, skipped
}

func (j *Job) transformEntry(date string, entry models.IntradayEntry) (models.Sample, error) {
	ts, err := time.ParseInLocation(dateTimeLayout, date+" "+entry.Time, time.UTC)
	if err != nil {
		return models.Sample{}, errors.NewTransformError("unparseable entry time", err)
	}

	value, err := strconv.ParseFloat(entry.Value, 64)
	if err != nil {
		return models.Sample{}, errors.NewTransformError("unparseable entry value", err)
	}

	sample := models.Sample{
		ClientID: j.clientID,
		Metric:   models.MetricHeartRate,
		Time:     ts,
		Value:    value,
	}
	if !sample.Valid() {
		return models.Sample{}, errors.NewTransformError("entry value out of range", nil)
	}
	return sample, nil
}
