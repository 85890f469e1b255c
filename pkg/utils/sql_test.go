package utils

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSQLPoolConfig_Defaults(t *testing.T) {
	c := SQLPoolConfig{MaxOpenConns: 4}.withDefaults()
	if c.MaxOpenConns != 4 || c.MaxIdleConns != 4 {
		t.Fatalf("expected idle conns to follow open conns, got %+v", c)
	}
	if c.PingTimeout != 5*time.Second {
		t.Fatalf("expected default ping timeout, got %v", c.PingTimeout)
	}
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM audits").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM audits")
		return err
	})
	if err != nil {
		t.Fatalf("expected commit, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("duplicate entry")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := WithTx(context.Background(), db, nil, func(context.Context, *sql.Tx) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestWithTx_ReturnsCommitError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrTxDone)

	err := WithTx(context.Background(), db, nil, func(context.Context, *sql.Tx) error { return nil })
	if !errors.Is(err, sql.ErrTxDone) {
		t.Fatalf("expected commit error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestWithTx_RollsBackAndRepanics(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	defer func() {
		if p := recover(); p != "disk full" {
			t.Fatalf("expected panic to propagate, got %v", p)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatal(err)
		}
	}()
	_ = WithTx(context.Background(), db, nil, func(context.Context, *sql.Tx) error { panic("disk full") })
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, *sql.Tx) error {
		called = true
		return nil
	})
	if !errors.Is(err, sql.ErrConnDone) || called {
		t.Fatalf("expected begin error without running fn, got %v called=%v", err, called)
	}
}
