// internal/store/store.go
//
// Key-value snapshot persistence.
//
// Context
// -------
// The data service keeps every collection in memory and writes the whole
// collection back as one JSON value after each mutation.  A Store only has
// to move opaque byte snapshots under a handful of well-known keys, so the
// same contract is satisfied by a map, a directory of files, or one SQL
// table.
//
// Backends
// --------
//   • memory  – process lifetime only; optional quota.
//   • file    – `<data_dir>/<key>.json`, atomic temp-file, fsync, rename.
//   • mysql   – table `content_store` through sqlx and go-sql-driver.
//   • sqlite  – the same table through modernc.org/sqlite.
//
// Notes
// -----
//   • Get returns ErrNotFound for an absent key.  Callers treat that as
//     "use seed defaults", never as a failure.
//   • Oxford commas, two spaces after periods.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Well-known keys.
const (
	KeySettings  = "settings"
	KeyCourses   = "courses"
	KeyNotices   = "notices"
	KeyEnquiries = "enquiries"
	KeyPages     = "pages"
	KeyGallery   = "gallery"
)

// Keys lists every key the data service persists.
var Keys = []string{KeySettings, KeyCourses, KeyNotices, KeyEnquiries, KeyPages, KeyGallery}

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("store: key not found")
	// ErrQuotaExceeded is returned by Put when a value exceeds the
	// configured per-value quota.
	ErrQuotaExceeded = errors.New("store: quota exceeded")
	// ErrInvalidKey rejects keys that could escape the data directory or
	// overflow the SQL column.
	ErrInvalidKey = errors.New("store: invalid key")
)

// Store moves JSON snapshots in and out of a backing medium.  It must be
// safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

var keyRE = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

func checkKey(key string) error {
	if !keyRE.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func checkQuota(quota int, value []byte) error {
	if quota > 0 && len(value) > quota {
		return fmt.Errorf("%w: %d bytes > %d", ErrQuotaExceeded, len(value), quota)
	}
	return nil
}
