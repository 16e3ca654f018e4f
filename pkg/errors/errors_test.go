package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    StatusError
		status int
		code   string
		msg    string
	}{
		{
			name:   "missing field",
			err:    NewMissingFieldError("name", "email"),
			status: http.StatusBadRequest,
			code:   "missing_field",
			msg:    "missing required fields: name, email",
		},
		{
			name:   "no fields to update",
			err:    ErrNoFieldsToUpdate,
			status: http.StatusBadRequest,
			code:   "no_fields_to_update",
			msg:    "validation failed: no valid fields to update",
		},
		{
			name:   "generic validation",
			err:    NewValidationError("id", "must be positive"),
			status: http.StatusBadRequest,
			code:   "validation_error",
			msg:    "validation failed: id - must be positive",
		},
		{
			name:   "not found",
			err:    ErrUserNotFound,
			status: http.StatusNotFound,
			code:   "not_found",
			msg:    "User not found",
		},
		{
			name:   "not found default message",
			err:    NewNotFoundError("user", ""),
			status: http.StatusNotFound,
			code:   "not_found",
			msg:    "user not found",
		},
		{
			name:   "conflict",
			err:    ErrEmailExists,
			status: http.StatusConflict,
			code:   "conflict",
			msg:    "email already exists",
		},
		{
			name:   "connection",
			err:    NewConnectionError(nil),
			status: http.StatusInternalServerError,
			code:   "connection_error",
			msg:    "failed to connect to database",
		},
		{
			name:   "internal",
			err:    NewInternalError("failed to list users", nil),
			status: http.StatusInternalServerError,
			code:   "internal_error",
			msg:    "failed to list users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
			assert.Equal(t, tt.code, tt.err.Code())
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestWrappedErrorsUnwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")

	connErr := NewConnectionError(cause)
	assert.ErrorIs(t, connErr, cause)
	assert.Contains(t, connErr.Error(), "connection refused")
	assert.Equal(t, "Failed to connect to database", connErr.PublicMessage())

	internal := NewInternalError("failed to create user", cause)
	assert.ErrorIs(t, internal, cause)
	assert.Equal(t, "An internal error occurred", internal.PublicMessage())
}

func TestStatusErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("usecase: %w", ErrUserNotFound)

	var se StatusError
	require.True(t, stderrors.As(wrapped, &se))
	assert.Equal(t, http.StatusNotFound, se.HTTPStatus())
}
