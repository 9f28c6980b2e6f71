package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", NewValidationError("title is required", nil), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"unauthorized", NewUnauthorized("invalid token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbidden("Not authorized"), http.StatusForbidden, "FORBIDDEN"},
		{"not found", NewNotFound("ticket", nil), http.StatusNotFound, "NOT_FOUND"},
		{"fiber route miss", fiber.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"fiber method", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestToDomainErrorKeepsWrappedDomainError(t *testing.T) {
	base := NewForbidden("Not authorized")
	wrapped := errors.Join(errors.New("context"), base)

	de := ToDomainError(wrapped)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
	assert.True(t, IsStatus(wrapped, http.StatusForbidden))
	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("identity missing")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error: identity missing", err.Error())
}
