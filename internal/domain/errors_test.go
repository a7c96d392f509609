package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrValidation,
		ErrUnauthenticated,
		ErrForbidden,
		ErrUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{
			name:        "with entity and ID",
			entity:      "echo",
			id:          "123",
			expectedMsg: `echo with id "123" not found`,
		},
		{
			name:        "with entity only",
			entity:      "route",
			id:          "",
			expectedMsg: "route not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
			assert.Equal(t, tt.id, notFound.ID)
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "message",
			message:     "must not be empty",
			expectedMsg: "validation failed for message: must not be empty",
		},
		{
			name:        "without field",
			field:       "",
			message:     "malformed body",
			expectedMsg: "validation failed: malformed body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUnauthenticatedError(t *testing.T) {
	tests := []struct {
		name        string
		scheme      string
		reason      string
		expectedMsg string
	}{
		{
			name:        "with scheme",
			scheme:      "bearer",
			reason:      "unknown token",
			expectedMsg: "unauthenticated (bearer): unknown token",
		},
		{
			name:        "without scheme",
			scheme:      "",
			reason:      "no credentials presented",
			expectedMsg: "unauthenticated: no credentials presented",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUnauthenticatedError(tt.scheme, tt.reason)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrUnauthenticated)

			var unauthenticated *UnauthenticatedError
			require.ErrorAs(t, err, &unauthenticated)
			assert.Equal(t, tt.scheme, unauthenticated.Scheme)
			assert.Equal(t, tt.reason, unauthenticated.Reason)
		})
	}
}

func TestForbiddenError(t *testing.T) {
	tests := []struct {
		name        string
		operation   string
		reason      string
		expectedMsg string
	}{
		{
			name:        "with reason",
			operation:   "echo",
			reason:      "missing scope read:echo",
			expectedMsg: `operation "echo" forbidden: missing scope read:echo`,
		},
		{
			name:        "without reason",
			operation:   "echo",
			reason:      "",
			expectedMsg: `operation "echo" forbidden`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewForbiddenError(tt.operation, tt.reason)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestUnavailableError(t *testing.T) {
	tests := []struct {
		name        string
		service     string
		reason      string
		expectedMsg string
	}{
		{
			name:        "with reason",
			service:     "relay",
			reason:      "connection refused",
			expectedMsg: `service "relay" unavailable: connection refused`,
		},
		{
			name:        "without reason",
			service:     "relay",
			reason:      "",
			expectedMsg: `service "relay" unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUnavailableError(tt.service, tt.reason)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
		want    bool
	}{
		{"not found matches", NewNotFoundError("echo", "1"), IsNotFound, true},
		{"validation matches", NewValidationError("message", "empty"), IsValidation, true},
		{"unauthenticated matches", NewUnauthenticatedError("basic", "bad password"), IsUnauthenticated, true},
		{"forbidden matches", NewForbiddenError("echo", "scope"), IsForbidden, true},
		{"unavailable matches", NewUnavailableError("relay", "down"), IsUnavailable, true},
		{"cross check fails", NewNotFoundError("echo", "1"), IsForbidden, false},
		{"nil error", nil, IsUnauthenticated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.checker(tt.err))
		})
	}
}

func TestErrorWrappingChain(t *testing.T) {
	inner := NewUnauthenticatedError("apikey", "unknown key")
	wrapped := fmt.Errorf("verifying request: %w", inner)

	require.ErrorIs(t, wrapped, ErrUnauthenticated)

	var unauthenticated *UnauthenticatedError
	require.ErrorAs(t, wrapped, &unauthenticated)
	assert.Equal(t, "apikey", unauthenticated.Scheme)
}
