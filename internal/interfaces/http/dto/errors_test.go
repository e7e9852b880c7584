package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found maps to 404", ErrCodeNotFound, http.StatusNotFound},
		{"already exists maps to 409", ErrCodeAlreadyExists, http.StatusConflict},
		{"invalid state maps to 422", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"invalid time param maps to 400", ErrCodeInvalidTimeParam, http.StatusBadRequest},
		{"unknown code defaults to 500", "ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"bare domain code", "NOT_FOUND", ErrCodeNotFound},
		{"time param code", "INVALID_TIME_PARAM", ErrCodeInvalidTimeParam},
		{"already normalized", ErrCodeConflict, ErrCodeConflict},
		{"unknown business code", "INVOICE_LOCKED", ErrCodeBusinessRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
