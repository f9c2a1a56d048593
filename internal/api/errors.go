package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned for any 401 response. By the time a caller
// sees it the client has already cleared the global session; callers must
// not duplicate that cleanup.
var ErrSessionExpired = errors.New("session expired, please sign in again")

// StatusError is a non-2xx, non-401 backend response. Detail carries the
// server-supplied message when the body had one, otherwise a generic
// fallback suitable for display.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Detail, e.StatusCode)
}

// errorBody is the backend's error shape ({"detail": "..."}).
type errorBody struct {
	Detail string `json:"detail"`
}
