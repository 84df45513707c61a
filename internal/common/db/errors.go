package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"

	"github.com/AlibekovAA/todo-rpc/internal/observability/metrics"
)

// ObserveQuery records duration and, on failure, an error sample for a store
// call. The error is returned as is.
func ObserveQuery(operation, table string, startTime time.Time, err error) error {
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(operation, table, errorType(err)).Inc()
	}
	return err
}

// errorType is the SQLSTATE for server errors and the Go type otherwise.
func errorType(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return fmt.Sprintf("%T", err)
}

// isPermanentConnectError reports failures that retrying will not fix:
// bad credentials or a database that does not exist.
func isPermanentConnectError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "28000", "28P01", "3D000":
		return true
	}
	return false
}
