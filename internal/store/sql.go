package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema is valid on both MySQL and SQLite.
const schemaSQL = `CREATE TABLE IF NOT EXISTS content_store (
	k          VARCHAR(64) NOT NULL PRIMARY KEY,
	v          LONGTEXT    NOT NULL,
	updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const (
	getSQL = `SELECT v FROM content_store WHERE k = ?`
	putSQL = `REPLACE INTO content_store (k, v, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`
)

// SQL keeps one row per key in the content_store table.
type SQL struct {
	db    *sqlx.DB
	quota int
}

// NewSQL wraps an open pool and creates the table when missing.  The store
// takes ownership of db and closes it on Close.
func NewSQL(ctx context.Context, db *sqlx.DB, quota int) (*SQL, error) {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQL{db: db, quota: quota}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	var v string
	err := s.db.GetContext(ctx, &v, getSQL, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: select %s: %w", key, err)
	}
	return []byte(v), nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := checkQuota(s.quota, value); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, putSQL, key, string(value)); err != nil {
		return fmt.Errorf("store: replace %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *SQL) Close() error                   { return s.db.Close() }
