package request

import "errors"

// Common errors returned while building requests.
var (
	// ErrNoActiveSession is returned when a session-scoped operation runs without an active session.
	ErrNoActiveSession = errors.New("API does not have an active session")

	// ErrUnknownOperation is returned when an operation has no registered endpoint.
	ErrUnknownOperation = errors.New("unknown operation")
)
