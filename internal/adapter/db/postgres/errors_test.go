package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	pkgerrors "user-crud-service/pkg/errors"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect func(t *testing.T, err error)
	}{
		{
			name: "nil stays nil",
			err:  nil,
			expect: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "postgres unique violation",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", Message: "duplicate key value"}),
			expect: func(t *testing.T, err error) {
				var conflict *pkgerrors.AlreadyExistsError
				assert.ErrorAs(t, err, &conflict)
			},
		},
		{
			name: "gorm translated duplicate",
			err:  gorm.ErrDuplicatedKey,
			expect: func(t *testing.T, err error) {
				var conflict *pkgerrors.AlreadyExistsError
				assert.ErrorAs(t, err, &conflict)
			},
		},
		{
			name: "sqlite unique violation",
			err:  errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"),
			expect: func(t *testing.T, err error) {
				var conflict *pkgerrors.AlreadyExistsError
				assert.ErrorAs(t, err, &conflict)
			},
		},
		{
			name: "other postgres error is internal",
			err:  &pgconn.PgError{Code: "42P01", Message: "relation does not exist"},
			expect: func(t *testing.T, err error) {
				var internal *pkgerrors.InternalError
				assert.ErrorAs(t, err, &internal)
				assert.Contains(t, err.Error(), "failed to list users")
			},
		},
		{
			name: "network failure",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			expect: func(t *testing.T, err error) {
				var connErr *pkgerrors.ConnectionError
				assert.ErrorAs(t, err, &connErr)
			},
		},
		{
			name: "bad connection",
			err:  driver.ErrBadConn,
			expect: func(t *testing.T, err error) {
				var connErr *pkgerrors.ConnectionError
				assert.ErrorAs(t, err, &connErr)
			},
		},
		{
			name: "query timeout",
			err:  fmt.Errorf("query: %w", context.DeadlineExceeded),
			expect: func(t *testing.T, err error) {
				var connErr *pkgerrors.ConnectionError
				assert.ErrorAs(t, err, &connErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect(t, classifyError("list users", tt.err))
		})
	}
}
