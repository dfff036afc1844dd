package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUnavailable indicates the store could not be reached or did not answer in time.
	ErrUnavailable = errors.New("store unavailable")
	// ErrQueryFailed indicates the store was reachable but rejected or failed the query.
	ErrQueryFailed = errors.New("query failed")
)

const (
	pgConnectionExceptionClass = "08"
	pgOperatorInterventionCode = "57P"
)

// MapError translates database errors to domain errors.
// sql.ErrNoRows maps to notFoundErr. Connection failures and timeouts wrap
// ErrUnavailable; every other failure wraps ErrQueryFailed. The driver error
// is kept in the chain for logging.
func MapError(err error, notFoundErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	return MapReadError(err)
}

// MapReadError classifies a store failure as ErrUnavailable or ErrQueryFailed.
// Errors already classified are returned unchanged.
func MapReadError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrQueryFailed) {
		return err
	}

	if isUnavailable(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return fmt.Errorf("%w: %w", ErrQueryFailed, err)
}

// isUnavailable reports whether err describes a lost or unreachable connection,
// an exhausted deadline, or a server refusing new work.
func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, pgConnectionExceptionClass) ||
			strings.HasPrefix(pgErr.Code, pgOperatorInterventionCode)
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
