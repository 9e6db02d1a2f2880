// FilePath: internal/database/database.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhayrokkam/fitbit-analytics/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	nuts "github.com/vaudience/go-nuts"
)

// DB is the connection handle the repositories operate on
type DB interface {
	Close() error
	Ping(ctx context.Context) error
	GetDB() *sqlx.DB
}

// TimescaleDB represents a TimescaleDB database connection
type TimescaleDB struct {
	db *sqlx.DB
}

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Repository represents common repository operations
type Repository interface {
	BeginTx(ctx context.Context) (Transaction, error)
}

// NewTimescaleDB creates a new TimescaleDB database connection.
// Hypertable creation is skipped by the repositories when the extension
// is absent, so a plain PostgreSQL instance works for development.
func NewTimescaleDB(cfg config.PostgresConfig) (DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to TimescaleDB: %w", err)
	}

	nuts.L.Infof("[TimescaleDB] Connected to %s:%d/%s", cfg.Host, cfg.Port, cfg.DBName)
	return &TimescaleDB{db: db}, nil
}

// HasTimescaleExtension reports whether the timescaledb extension is installed.
func HasTimescaleExtension(db DB) bool {
	var installed bool
	err := db.GetDB().Get(&installed, "SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'timescaledb')")
	return err == nil && installed
}

// Implementation of DB interface for TimescaleDB
func (t *TimescaleDB) Close() error {
	return t.db.Close()
}

func (t *TimescaleDB) Ping(ctx context.Context) error {
	return t.db.PingContext(ctx)
}

func (t *TimescaleDB) GetDB() *sqlx.DB {
	return t.db
}
