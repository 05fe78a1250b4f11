package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smskills/institute/internal/config"
)

// backends returns one fresh instance of every backend that needs no
// external server.
func backends(t *testing.T, quota int) map[string]Store {
	t.Helper()
	ctx := context.Background()

	f, err := NewFile(filepath.Join(t.TempDir(), "data"), quota)
	require.NoError(t, err)

	lite, err := Open(ctx, config.Store{
		Backend:    config.BackendSQLite,
		DSN:        filepath.Join(t.TempDir(), "institute.db"),
		QuotaBytes: quota,
	})
	require.NoError(t, err)
	t.Cleanup(func() { lite.Close() })

	return map[string]Store{
		"memory": NewMemory(quota),
		"file":   f,
		"sqlite": lite,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t, 0) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, KeyCourses)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, KeyCourses, []byte(`[{"id":1}]`)))
			got, err := s.Get(ctx, KeyCourses)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":1}]`, string(got))

			require.NoError(t, s.Put(ctx, KeyCourses, []byte(`[]`)))
			got, err = s.Get(ctx, KeyCourses)
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(got))

			assert.NoError(t, s.Ping(ctx))
		})
	}
}

func TestStoreQuota(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t, 8) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, KeySettings, []byte(`{"a":1}`)))
			err := s.Put(ctx, KeySettings, []byte(`{"a":"too long"}`))
			assert.ErrorIs(t, err, ErrQuotaExceeded)

			got, err := s.Get(ctx, KeySettings)
			require.NoError(t, err)
			assert.Equal(t, `{"a":1}`, string(got), "failed put must not clobber")
		})
	}
}

func TestStoreRejectsBadKeys(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t, 0) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Put(ctx, "../escape", []byte("x")), ErrInvalidKey)
			_, err := s.Get(ctx, "")
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	buf := []byte("abc")
	require.NoError(t, m.Put(ctx, KeyPages, buf))
	buf[0] = 'z'

	got, _ := m.Get(ctx, KeyPages)
	assert.Equal(t, "abc", string(got))
}

func TestFileLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f, err := NewFile(dir, 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.Put(ctx, KeyNotices, []byte(`[]`)))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "notices.json", entries[0].Name())
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.Store{Backend: "redis"})
	assert.Error(t, err)
}
