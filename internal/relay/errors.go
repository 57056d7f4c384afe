package relay

import "net/http"

// Error is a relay failure that maps directly onto an HTTP response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	// ErrNoUpstream: no upstream URL is configured and mock mode is off.
	ErrNoUpstream = &Error{Status: http.StatusBadRequest, Message: "no upstream configured"}

	// ErrBackendNotAllowed: the configured upstream fails the allowlist.
	ErrBackendNotAllowed = &Error{Status: http.StatusForbidden, Message: "backend not allowed"}
)

func upstreamError(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: err.Error()}
}
