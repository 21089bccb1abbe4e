package request

import "github.com/rs/zerolog"

// ScopeOverrides marks operations as session-scoped (true) or anonymous (false),
// replacing the default declared by the resource module's endpoint table.
type ScopeOverrides map[Operation]bool

// Option configures a Builder.
type Option func(*builderOptions)

// builderOptions holds configuration options for the Builder.
type builderOptions struct {
	logger    zerolog.Logger
	overrides ScopeOverrides
}

// WithLogger sets the logger used for dispatch logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *builderOptions) {
		o.logger = logger
	}
}

// WithScopeOverrides applies per-operation session-scope overrides.
// Overrides for operations the builder does not know are ignored.
func WithScopeOverrides(overrides ScopeOverrides) Option {
	return func(o *builderOptions) {
		if len(overrides) == 0 {
			return
		}
		if o.overrides == nil {
			o.overrides = make(ScopeOverrides, len(overrides))
		}
		for op, scoped := range overrides {
			o.overrides[op] = scoped
		}
	}
}
