// internal/store/sql_test.go
//
// SQL backend statements checked against sqlmock.
//
// Run: go test ./internal/store -v

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockSQL(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS content_store").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s, err := NewSQL(context.Background(), sqlx.NewDb(db, "mysql"), 0)
	if err != nil {
		t.Fatalf("NewSQL: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return s, mock
}

func TestSQLGet(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta(getSQL)).
		WithArgs("courses").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(`[{"id":1}]`))

	got, err := s.Get(context.Background(), "courses")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Fatalf("unexpected value: %s", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSQLGetMissing(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta(getSQL)).
		WithArgs("settings").
		WillReturnRows(sqlmock.NewRows([]string{"v"}))

	_, err := s.Get(context.Background(), "settings")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSQLPut(t *testing.T) {
	s, mock := newMockSQL(t)

	mock.ExpectExec(regexp.QuoteMeta(putSQL)).
		WithArgs("notices", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Put(context.Background(), "notices", []byte(`[]`)); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSQLPutFailureIsWrapped(t *testing.T) {
	s, mock := newMockSQL(t)

	boom := errors.New("disk full")
	mock.ExpectExec(regexp.QuoteMeta(putSQL)).
		WithArgs("enquiries", `[]`).
		WillReturnError(boom)

	err := s.Put(context.Background(), "enquiries", []byte(`[]`))
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped driver error, got %v", err)
	}
}
