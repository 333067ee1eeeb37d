package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"unauthorized", NewUnauthorizedError("who"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), ErrorTypeForbidden, http.StatusForbidden},
		{"unavailable", NewServiceUnavailableError("down"), ErrorTypeServiceUnavailable, http.StatusServiceUnavailable},
		{"bad gateway", NewBadGatewayError("upstream"), ErrorTypeBadGateway, http.StatusBadGateway},
		{"too many requests", NewTooManyRequestsError("slow down", 7), ErrorTypeTooManyRequests, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "not_found: template", NewNotFoundError("template").Error())
	assert.Equal(t, "not_found: template (welcome)", NewNotFoundError("template", "welcome").Error())
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("render: %w", NewServiceUnavailableError("store down"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsServiceUnavailableError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestNewTooManyRequestsError_RetryAfter(t *testing.T) {
	assert.Equal(t, 7, NewTooManyRequestsError("slow down", 7).RetryAfter)
	assert.Zero(t, NewBadGatewayError("upstream").RetryAfter)
}
