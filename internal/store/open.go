package store

import (
	"context"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/smskills/institute/internal/config"
	"github.com/smskills/institute/internal/database"
)

// Open builds the backend named by cfg.Backend.  cfg.Password must already
// be resolved (no `vault:` prefix); for MySQL a non-empty password
// replaces whatever the DSN carries.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemory(cfg.QuotaBytes), nil

	case config.BackendFile:
		return NewFile(cfg.DataDir, cfg.QuotaBytes)

	case config.BackendMySQL:
		dsn, err := mysqlDSN(cfg.DSN, cfg.Password)
		if err != nil {
			return nil, err
		}
		db, err := database.Open(ctx, database.DriverMySQL, dsn)
		if err != nil {
			return nil, err
		}
		s, err := NewSQL(ctx, db, cfg.QuotaBytes)
		if err != nil {
			db.Close()
			return nil, err
		}
		return s, nil

	case config.BackendSQLite:
		db, err := database.Open(ctx, database.DriverSQLite, cfg.DSN)
		if err != nil {
			return nil, err
		}
		s, err := NewSQL(ctx, db, cfg.QuotaBytes)
		if err != nil {
			db.Close()
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
}

// mysqlDSN sets password on dsn through the driver's own parser so escaped
// query values and special characters in the password survive intact.
func mysqlDSN(dsn, password string) (string, error) {
	if password == "" {
		return dsn, nil
	}
	c, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("store: parse mysql dsn: %w", err)
	}
	c.Passwd = password
	return c.FormatDSN(), nil
}
