// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/abhayrokkam/fitbit-analytics/internal/database"
	"github.com/abhayrokkam/fitbit-analytics/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// SampleRepository defines the interface for heart-rate sample storage.
// Writes are upserts on the (client_id, metric, time) natural key so a
// retried ingestion run converges instead of duplicating rows.
type SampleRepository interface {
	database.Repository
	UpsertSamples(ctx context.Context, samples []models.Sample) (int64, error)
	GetRange(ctx context.Context, clientID, metric string, start, end time.Time) ([]models.MetricPoint, error)
	DeleteOldData(ctx context.Context, before time.Time) error
}

// CheckpointRepository tracks the calendar date of the last successfully
// ingested day. Read returns found=false on the first-ever run.
type CheckpointRepository interface {
	Read(ctx context.Context) (date time.Time, found bool, err error)
	Write(ctx context.Context, date time.Time) error
}
