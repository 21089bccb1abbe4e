package epoll

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/epoll/debate"
	"github.com/s0up4200/epoll/request"
	"github.com/s0up4200/epoll/user"
)

// APIConfig is the input of LoadConfig.
type APIConfig = request.APIConfig

// Session is an active authentication context.
type Session = request.Session

// Settings is the resolved API configuration.
type Settings = request.Settings

// Ptr returns a pointer to v, for optional parameters.
func Ptr[T any](v T) *T {
	return request.Ptr(v)
}

// API holds the transport, settings and session shared by resource modules.
type API struct {
	mu        sync.RWMutex
	transport request.Transport
	settings  *request.Settings
	session   *request.Session

	logger    zerolog.Logger
	overrides request.ScopeOverrides
}

var _ request.SessionSource = (*API)(nil)

// New creates an unconfigured API.
func New(opts ...Option) *API {
	options := &apiOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(options)
	}

	return &API{
		logger:    options.logger,
		overrides: options.overrides,
	}
}

// SetTransport sets the transport used by modules created afterwards.
func (a *API) SetTransport(t request.Transport) {
	a.mu.Lock()
	a.transport = t
	a.mu.Unlock()
}

// LoadConfig resolves and stores the settings. The session is left untouched.
func (a *API) LoadConfig(cfg APIConfig) {
	settings := request.NewSettings(cfg)

	a.mu.Lock()
	a.settings = &settings
	a.mu.Unlock()

	a.logger.Debug().Str("api_base_url", settings.APIBaseURL).Msg("Loaded API configuration")
}

// Settings returns the loaded settings.
func (a *API) Settings() (Settings, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.settings == nil {
		return Settings{}, ErrSettingsNotConfigured
	}
	return *a.settings, nil
}

// Configured reports whether both a transport and settings are present.
func (a *API) Configured() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.transport != nil && a.settings != nil
}

// StartSession starts a new session, replacing the current one.
func (a *API) StartSession(tokenType, token string) {
	session := request.NewSession(tokenType, token)

	a.mu.Lock()
	a.session = &session
	a.mu.Unlock()

	a.logger.Debug().Str("token_type", tokenType).Msg("Started session")
}

// EndSession terminates the current session. It is a no-op without one.
func (a *API) EndSession() {
	a.mu.Lock()
	ended := a.session != nil
	a.session = nil
	a.mu.Unlock()

	if ended {
		a.logger.Debug().Msg("Ended session")
	}
}

// ActiveSession returns the current session or ErrNoActiveSession.
func (a *API) ActiveSession() (Session, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.session == nil {
		return Session{}, ErrNoActiveSession
	}
	return *a.session, nil
}

// HasSession reports whether a session is active.
func (a *API) HasSession() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session != nil
}

// Users returns a User module bound to the current transport and settings.
func (a *API) Users() (*user.Client, error) {
	transport, settings, err := a.bindings()
	if err != nil {
		return nil, err
	}
	return user.New(transport, settings, a, a.builderOptions()...), nil
}

// Debates returns a Debate module bound to the current transport and settings.
func (a *API) Debates() (*debate.Client, error) {
	transport, settings, err := a.bindings()
	if err != nil {
		return nil, err
	}
	return debate.New(transport, settings, a, a.builderOptions()...), nil
}

func (a *API) bindings() (request.Transport, request.Settings, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.transport == nil {
		return nil, request.Settings{}, ErrTransportNotConfigured
	}
	if a.settings == nil {
		return nil, request.Settings{}, ErrSettingsNotConfigured
	}
	return a.transport, *a.settings, nil
}

func (a *API) builderOptions() []request.Option {
	return []request.Option{
		request.WithLogger(a.logger),
		request.WithScopeOverrides(a.overrides),
	}
}
