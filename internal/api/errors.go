package api

import (
	"errors"
	"net"
	"net/url"
)

// genericMessage is used when an error response carries no parsable body.
const genericMessage = "Network error"

// Error is a failed backend call: the HTTP status plus the message from the
// response's error envelope (or a generic fallback when the body was not
// parsable JSON).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return genericMessage
}

// StatusCode reports the HTTP status from err when it is a backend Error.
func StatusCode(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	return 0, false
}

// IsUnavailable reports whether err indicates the backend could not be
// reached at all (connection refused, DNS failure), as opposed to the
// backend answering with an error status.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
