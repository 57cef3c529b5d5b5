package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

func TestMapErrorToHTTP(t *testing.T) {
	mapper := NewMapper(zerolog.Nop())

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "nil error",
			err:        nil,
			wantStatus: fasthttp.StatusOK,
			wantMsg:    "",
		},
		{
			name:       "validation",
			err:        NewValidationError("bad input"),
			wantStatus: fasthttp.StatusBadRequest,
			wantMsg:    "bad input",
		},
		{
			name:       "precondition",
			err:        NewPreconditionError("not ready"),
			wantStatus: fasthttp.StatusBadRequest,
			wantMsg:    "not ready",
		},
		{
			name:       "unauthorized",
			err:        NewUnauthorizedError("who are you"),
			wantStatus: fasthttp.StatusUnauthorized,
			wantMsg:    "who are you",
		},
		{
			name:       "permission",
			err:        NewPermissionError("not yours"),
			wantStatus: fasthttp.StatusForbidden,
			wantMsg:    "not yours",
		},
		{
			name:       "not found",
			err:        NewNotFoundError("missing"),
			wantStatus: fasthttp.StatusNotFound,
			wantMsg:    "missing",
		},
		{
			name:       "conflict",
			err:        NewConflictError("taken"),
			wantStatus: fasthttp.StatusConflict,
			wantMsg:    "taken",
		},
		{
			name:       "service unavailable",
			err:        NewServiceUnavailableError("down"),
			wantStatus: fasthttp.StatusServiceUnavailable,
			wantMsg:    "down",
		},
		{
			name:       "internal",
			err:        NewInternalError("boom"),
			wantStatus: fasthttp.StatusInternalServerError,
			wantMsg:    "boom",
		},
		{
			name:       "unknown error hides details",
			err:        errors.New("database exploded at 10.0.0.3"),
			wantStatus: fasthttp.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
		{
			name:       "wrapped typed error",
			err:        fmt.Errorf("subscribe: %w", NewNotFoundError("plan not found")),
			wantStatus: fasthttp.StatusNotFound,
			wantMsg:    "plan not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapper.MapErrorToHTTP(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestAPIErrorMarker(t *testing.T) {
	var apiErr APIError
	if !errors.As(NewNotFoundError("x"), &apiErr) {
		t.Error("typed errors should satisfy the APIError marker")
	}
	if errors.As(errors.New("x"), &apiErr) {
		t.Error("plain errors must not satisfy the APIError marker")
	}
}
