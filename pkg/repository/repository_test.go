package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/callqa/pkg/repository"
)

var errNotFound = errors.New("not found")

func TestMapErrorNil(t *testing.T) {
	if got := repository.MapError(nil, errNotFound); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
	if got := repository.MapReadError(nil); got != nil {
		t.Errorf("MapReadError(nil) = %v, want nil", got)
	}
}

func TestMapErrorNotFound(t *testing.T) {
	got := repository.MapError(fmt.Errorf("scan: %w", sql.ErrNoRows), errNotFound)
	if !errors.Is(got, errNotFound) {
		t.Errorf("MapError(ErrNoRows) = %v, want %v", got, errNotFound)
	}
}

func TestMapReadErrorClassification(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		wantUnavailable bool
	}{
		{"bad connection", driver.ErrBadConn, true},
		{"connection done", sql.ErrConnDone, true},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), true},
		{"connection exception class", &pgconn.PgError{Code: "08006"}, true},
		{"cannot connect now", &pgconn.PgError{Code: "57P03"}, true},
		{"network error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"foreign key", &pgconn.PgError{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapReadError(tt.err)

			if errors.Is(got, repository.ErrUnavailable) != tt.wantUnavailable {
				t.Errorf("ErrUnavailable = %v, want %v (err %v)", !tt.wantUnavailable, tt.wantUnavailable, got)
			}
			if errors.Is(got, repository.ErrQueryFailed) == tt.wantUnavailable {
				t.Errorf("ErrQueryFailed = %v, want %v (err %v)", tt.wantUnavailable, !tt.wantUnavailable, got)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("original error dropped from chain: %v", got)
			}
		})
	}
}

func TestMapReadErrorIdempotent(t *testing.T) {
	once := repository.MapReadError(driver.ErrBadConn)
	twice := repository.MapReadError(once)
	if once != twice {
		t.Errorf("second mapping changed error: %v -> %v", once, twice)
	}
}

func TestMapErrorNonNotFound(t *testing.T) {
	got := repository.MapError(errors.New("boom"), errNotFound)
	if errors.Is(got, errNotFound) {
		t.Error("unexpected not found mapping")
	}
	if !errors.Is(got, repository.ErrQueryFailed) {
		t.Errorf("MapError(other) = %v, want ErrQueryFailed", got)
	}
}

type execOnly struct {
	repository.DBTX
	result sql.Result
	err    error
}

func (e execOnly) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return e.result, e.err
}

func TestExecExpectOne(t *testing.T) {
	failure := errors.New("connection reset")

	tests := []struct {
		name string
		db   execOnly
		want error
	}{
		{"one row", execOnly{result: driver.RowsAffected(1)}, nil},
		{"no rows", execOnly{result: driver.RowsAffected(0)}, sql.ErrNoRows},
		{"exec failure", execOnly{err: failure}, failure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repository.ExecExpectOne(context.Background(), tt.db, "UPDATE calls SET evaluated = true WHERE id = $1", 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("ExecExpectOne() = %v, want %v", err, tt.want)
			}
		})
	}
}
