package db

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestObserveQuery_ReturnsSameError(t *testing.T) {
	storeErr := errors.New("conn closed")
	assert.Same(t, storeErr, ObserveQuery("select", "todos", time.Now(), storeErr))
	assert.NoError(t, ObserveQuery("select", "todos", time.Now(), nil))
}

func TestErrorType(t *testing.T) {
	assert.Equal(t, "23505", errorType(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, "*errors.errorString", errorType(errors.New("x")))
}

func TestIsPermanentConnectError(t *testing.T) {
	assert.True(t, isPermanentConnectError(&pgconn.PgError{Code: "28P01"}))
	assert.True(t, isPermanentConnectError(&pgconn.PgError{Code: "3D000"}))
	assert.False(t, isPermanentConnectError(&pgconn.PgError{Code: "57P03"}))
	assert.False(t, isPermanentConnectError(errors.New("dial tcp: refused")))
}
