package epoll

import (
	"github.com/rs/zerolog"

	"github.com/s0up4200/epoll/request"
)

// Option configures an API.
type Option func(*apiOptions)

// apiOptions holds configuration options for the API.
type apiOptions struct {
	logger    zerolog.Logger
	overrides request.ScopeOverrides
}

// WithLogger sets the logger passed to every resource module.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *apiOptions) {
		o.logger = logger
	}
}

// WithSessionScope declares whether op must carry the session's Authorization
// header, overriding the module default.
func WithSessionScope(op request.Operation, scoped bool) Option {
	return func(o *apiOptions) {
		if o.overrides == nil {
			o.overrides = make(request.ScopeOverrides)
		}
		o.overrides[op] = scoped
	}
}
