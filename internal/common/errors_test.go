package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad input"), http.StatusBadRequest},
		{"conflict", NewConflictError("duplicate"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("no token"), http.StatusUnauthorized},
		{"not found", NewNotFoundError("missing"), http.StatusNotFound},
		{"forbidden", NewForbiddenError("not owner"), http.StatusForbidden},
		{"internal", NewInternalError("db down", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NewInternalError("mongo unreachable", errors.New("dial tcp refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "mongo unreachable")
}

func TestWriteError_ClientMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, NewNotFoundError("post not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"post not found"}`, rec.Body.String())
}
