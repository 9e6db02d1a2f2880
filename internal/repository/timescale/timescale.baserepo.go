// FilePath: internal/repository/timescale/timescale.baserepo.go
package timescale

import (
	"context"
	"database/sql"

	"github.com/abhayrokkam/fitbit-analytics/internal/database"
	"github.com/abhayrokkam/fitbit-analytics/internal/errors"
)

type TimeScaleBaseRepo struct {
	db database.DB
}

func (r *TimeScaleBaseRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.NewStoreError("failed to begin transaction", err)
	}
	return tx, nil
}
func (r *TimeScaleBaseRepo) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	result, err := r.db.GetDB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("failed to execute query", err)
	}
	return result, nil
}
func (r *TimeScaleBaseRepo) Ping(ctx context.Context) error {
	if err := r.db.GetDB().PingContext(ctx); err != nil {
		return errors.NewStoreError("failed to ping database", err)
	}
	return nil
}
func (r *TimeScaleBaseRepo) Close() error {
	if err := r.db.GetDB().Close(); err != nil {
		return errors.NewStoreError("failed to close database", err)
	}
	return nil
}
