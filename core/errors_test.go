package core

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		wantCode         int
		wantUnauthorized bool
		wantBadRequest   bool
		wantMsg          string
	}{
		{name: "nil", err: nil, wantMsg: ""},
		{name: "plain error", err: errors.New("boom"), wantMsg: "something went wrong, please try again"},
		{
			name:           "bad request",
			err:            NewAPIError(http.StatusBadRequest, "join code is invalid"),
			wantCode:       http.StatusBadRequest,
			wantBadRequest: true,
			wantMsg:        "join code is invalid",
		},
		{
			name:           "bad request without message",
			err:            NewAPIError(http.StatusBadRequest, ""),
			wantCode:       http.StatusBadRequest,
			wantBadRequest: true,
			wantMsg:        "something went wrong, please try again",
		},
		{
			name:             "wrapped unauthorized",
			err:              errors.Wrap(NewAPIError(http.StatusUnauthorized, "expired"), "listing classes"),
			wantCode:         http.StatusUnauthorized,
			wantUnauthorized: true,
			wantMsg:          "session expired, please log in again",
		},
		{
			name:     "server error",
			err:      NewAPIError(http.StatusInternalServerError, "db down"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "something went wrong, please try again",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, APIErrorCode(tt.err))
			assert.Equal(t, tt.wantUnauthorized, IsUnauthorized(tt.err))
			assert.Equal(t, tt.wantBadRequest, IsBadRequest(tt.err))
			assert.Equal(t, tt.wantMsg, UserMessage(tt.err))
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "api: 404 Not Found", NewAPIError(http.StatusNotFound, "").Error())
	assert.Equal(t, "api: 400 class is locked", NewAPIError(http.StatusBadRequest, "class is locked").Error())
}

func TestIsShutdown(t *testing.T) {
	err := NewShutdownError("integrity issue")
	assert.True(t, IsShutdown(err))
	assert.True(t, IsShutdown(errors.Wrap(err, "handling request")))
	assert.False(t, IsShutdown(errors.New("integrity issue")))
}
