// Package database centralises sqlx connection helpers.  Two drivers are
// registered: go-sql-driver/mysql (also MariaDB) for production and the
// pure-Go modernc.org/sqlite for single-node installs and tests.
//
// Public entry points:
//
//	Open(ctx, driver, dsn)                – conservative pool sizes.
//	OpenWithOptions(ctx, driver, dsn, o)  – fine-grained control.
//
// Both helpers Ping the database before returning so callers can fail fast
// during bootstrap.  Callers should Close() the returned *sqlx.DB when no
// longer needed.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Driver names accepted by Open.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Options tunes the pool and the startup ping.
type Options struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	PingRetries int           // extra attempts after the first ping fails
	PingBackoff time.Duration // wait between attempts
}

// DefaultOptions returns 15 max open, 5 idle, a 30-minute connection
// lifetime, and two ping retries one second apart.
func DefaultOptions() Options {
	return Options{
		MaxOpen:     15,
		MaxIdle:     5,
		MaxLifetime: 30 * time.Minute,
		PingRetries: 2,
		PingBackoff: time.Second,
	}
}

// Open returns a *sqlx.DB with DefaultOptions.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(ctx, driver, dsn, DefaultOptions())
}

// OpenWithOptions opens a pool and pings it, retrying on failure.  SQLite
// pools are pinned to one connection because the engine serialises writers.
func OpenWithOptions(ctx context.Context, driver, dsn string, o Options) (*sqlx.DB, error) {
	switch driver {
	case DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		o.MaxOpen, o.MaxIdle = 1, 1
	}
	db.SetMaxOpenConns(o.MaxOpen)
	db.SetMaxIdleConns(o.MaxIdle)
	db.SetConnMaxLifetime(o.MaxLifetime)

	if err := pingWithRetry(ctx, db, o); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", driver, err)
	}
	return db, nil
}

func pingWithRetry(ctx context.Context, db *sqlx.DB, o Options) error {
	var err error
	for attempt := 0; attempt <= o.PingRetries; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if attempt == o.PingRetries {
			break
		}
		t := time.NewTimer(o.PingBackoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return err
}
