package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// APIError is returned for every non-2xx answer of the Masomo API.
type APIError struct {
	StatusCode int
	Message    string // server provided, may be empty
}

func NewAPIError(code int, msg string) error {
	return &APIError{StatusCode: code, Message: msg}
}

func (err APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("api: %d %s", err.StatusCode, http.StatusText(err.StatusCode))
	}
	return fmt.Sprintf("api: %d %s", err.StatusCode, err.Message)
}

// APIErrorCode returns the status code of a wrapped *APIError, or 0.
func APIErrorCode(err error) int {
	if apiErr, ok := errors.Cause(err).(*APIError); ok {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether the API rejected the auth token.
func IsUnauthorized(err error) bool {
	return APIErrorCode(err) == http.StatusUnauthorized
}

func IsBadRequest(err error) bool {
	return APIErrorCode(err) == http.StatusBadRequest
}

// UserMessage returns what a screen shows for err: the server's message on a 400,
// a generic text otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := errors.Cause(err).(*APIError); ok {
		switch {
		case apiErr.StatusCode == http.StatusBadRequest && apiErr.Message != "":
			return apiErr.Message
		case apiErr.StatusCode == http.StatusUnauthorized:
			return "session expired, please log in again"
		}
	}
	return "something went wrong, please try again"
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
