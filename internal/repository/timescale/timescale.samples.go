// FilePath: internal/repository/timescale/timescale.samples.go
package timescale

import (
	"context"
	"fmt"
	"time"

	"github.com/abhayrokkam/fitbit-analytics/internal/database"
	"github.com/abhayrokkam/fitbit-analytics/internal/errors"
	"github.com/abhayrokkam/fitbit-analytics/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type SampleRepo struct {
	TimeScaleBaseRepo
}

func NewSampleRepository(db database.DB) (*SampleRepo, error) {
	repo := &SampleRepo{TimeScaleBaseRepo{db: db}}
	err := repo.initializeSchema()
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SampleRepo) initializeSchema() error {
	// The composite primary key is the natural key of a sample. It is what
	// makes retried ingestion runs idempotent: the write path is an upsert
	// against this key, never a blind insert.
	queries := []string{
		`CREATE TABLE IF NOT EXISTS heart_samples (
			client_id TEXT NOT NULL,
			metric TEXT NOT NULL,
			time TIMESTAMPTZ NOT NULL,
			value DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (client_id, metric, time)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_heart_samples_client_metric_time
			ON heart_samples (client_id, metric, time DESC)`,
	}

	for _, query := range queries {
		_, err := r.db.GetDB().Exec(query)
		if err != nil {
			return errors.NewStoreError("failed to initialize schema", err)
		}
	}

	if database.HasTimescaleExtension(r.db) {
		_, err := r.db.GetDB().Exec(
			`SELECT create_hypertable('heart_samples', 'time',
				chunk_time_interval => INTERVAL '1 day',
				if_not_exists => TRUE,
				migrate_data => TRUE
			)`)
		if err != nil {
			return errors.NewStoreError("failed to create hypertable", err)
		}
		r.setupRetentionPolicy()
	} else {
		nuts.L.Warnf("[TimescaleDB] timescaledb extension not installed, using plain table")
	}

	return nil
}

func (r *SampleRepo) setupRetentionPolicy() {
	query := `
		SELECT add_retention_policy('heart_samples',
			INTERVAL '13 months',
			if_not_exists => TRUE
		)`

	_, err := r.db.GetDB().Exec(query)
	if err != nil {
		nuts.L.Errorf("[TimescaleDB] Failed to set up retention policy: %v", err)
	}
}

// UpsertSamples writes a batch of samples inside one transaction. A conflict
// on the natural key overwrites the value, so re-running a day converges to
// the same store state. Returns the number of rows written.
func (r *SampleRepo) UpsertSamples(ctx context.Context, samples []models.Sample) (int64, error) {
	if len(samples) == 0 {
		return 0, nil
	}

	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.NewStoreError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO heart_samples (client_id, metric, time, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (client_id, metric, time) DO UPDATE SET value = EXCLUDED.value`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return 0, errors.NewStoreError("failed to prepare upsert", err)
	}
	defer stmt.Close()

	var written int64
	for _, sample := range samples {
		_, err := stmt.ExecContext(ctx, sample.ClientID, sample.Metric, sample.Time.UTC(), sample.Value)
		if err != nil {
			return 0, errors.NewStoreError(
				fmt.Sprintf("failed to upsert sample at %s", sample.Time.Format(time.RFC3339)), err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewStoreError("failed to commit samples", err)
	}
	return written, nil
}

// GetRange returns all points for the client and metric in [start, end),
// ascending in time.
func (r *SampleRepo) GetRange(ctx context.Context, clientID, metric string, start, end time.Time) ([]models.MetricPoint, error) {
	points := []models.MetricPoint{}
	query := `
		SELECT time, value
		FROM heart_samples
		WHERE client_id = $1 AND metric = $2 AND time >= $3 AND time < $4
		ORDER BY time ASC`

	err := r.db.GetDB().SelectContext(ctx, &points, query, clientID, metric, start.UTC(), end.UTC())
	if err != nil {
		return nil, errors.NewStoreError("failed to get metric range", err)
	}
	return points, nil
}

func (r *SampleRepo) DeleteOldData(ctx context.Context, before time.Time) error {
	query := `DELETE FROM heart_samples WHERE time < $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, before)
	if err != nil {
		return errors.NewStoreError("failed to delete old data", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewStoreError("failed to get rows affected", err)
	}

	nuts.L.Infof("[TimescaleDB] Deleted %d old samples before %v", rows, before)
	return nil
}
