package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrAlreadySubmitted is returned when the portal rejects a test
// submission because one was already recorded for today (HTTP 403).
var ErrAlreadySubmitted = errors.New("test already submitted today")

// Error is a non-2xx portal response with whatever message the
// portal attached.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("portal returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("portal returned %d", e.Status)
}

// newError builds an *Error from a failed response body. Portal error
// bodies look like {"message": "..."} or {"error": "..."}; anything
// else is kept status-only.
func newError(status int, raw []byte) *Error {
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	apiErr := &Error{Status: status}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else {
			apiErr.Message = body.Err
		}
	}
	return apiErr
}

// IsStatus reports whether err is a portal error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsUnauthorized reports whether err means the credential was rejected.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}
