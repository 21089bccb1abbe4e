package epoll

import (
	"errors"

	"github.com/s0up4200/epoll/request"
)

// Common errors returned by the facade.
var (
	// ErrTransportNotConfigured is returned when a resource module is requested before SetTransport.
	ErrTransportNotConfigured = errors.New("SDK HTTP transport not set")

	// ErrSettingsNotConfigured is returned when a resource module is requested before LoadConfig.
	ErrSettingsNotConfigured = errors.New("SDK settings not set")

	// ErrNoActiveSession is returned when no session has been started.
	ErrNoActiveSession = request.ErrNoActiveSession
)
