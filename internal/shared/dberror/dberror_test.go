package dberror

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "uq_tracking_sessions_active_employee"}

	assert.True(t, IsUniqueViolation(err, "uq_tracking_sessions_active_employee"))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", err), ""))
	assert.False(t, IsUniqueViolation(err, "uq_employee_email"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.True(t, IsUniqueViolation(
		errors.New(`ERROR: duplicate key value violates unique constraint "uq_employee_email"`),
		"uq_employee_email",
	))
	assert.False(t, IsUniqueViolation(nil, ""))
}

func TestIsUnavailable(t *testing.T) {
	assert.True(t, IsUnavailable(context.DeadlineExceeded))
	assert.True(t, IsUnavailable(fmt.Errorf("query: %w", driver.ErrBadConn)))
	assert.True(t, IsUnavailable(&pgconn.PgError{Code: "08006"}))
	assert.True(t, IsUnavailable(&pgconn.PgError{Code: "57P01"}))
	assert.False(t, IsUnavailable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUnavailable(errors.New("record not found")))
	assert.False(t, IsUnavailable(nil))
}
