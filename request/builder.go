package request

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// HeaderAuthorization is the header carrying the session credentials.
const HeaderAuthorization = "Authorization"

// Operation names a single resource operation, e.g. "debate.createPoll".
type Operation string

// Endpoint declares how an operation is dispatched.
type Endpoint struct {
	Method        string
	SessionScoped bool
	Upload        bool
}

// Params are the per-invocation inputs of an operation.
type Params struct {
	// Segments are joined with "/" and appended to the API base URL.
	Segments []string
	// Query is a url.Values or a struct with `url` tags.
	Query any
	// Body is sent verbatim; for uploads it is a *FormData.
	Body any
}

// Builder turns operations into Calls bound to a transport and settings.
type Builder struct {
	transport Transport
	settings  Settings
	sessions  SessionSource
	endpoints map[Operation]Endpoint
	logger    zerolog.Logger
}

// NewBuilder creates a Builder for the given endpoint table. The table is copied
// with scope overrides applied, so later changes to it are not observed.
func NewBuilder(transport Transport, settings Settings, sessions SessionSource, endpoints map[Operation]Endpoint, opts ...Option) *Builder {
	options := &builderOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(options)
	}

	table := make(map[Operation]Endpoint, len(endpoints))
	for op, ep := range endpoints {
		if scoped, ok := options.overrides[op]; ok {
			ep.SessionScoped = scoped
		}
		table[op] = ep
	}

	return &Builder{
		transport: transport,
		settings:  settings,
		sessions:  sessions,
		endpoints: table,
		logger:    options.logger,
	}
}

// Settings returns the settings the builder was bound to.
func (b *Builder) Settings() Settings {
	return b.settings
}

// Endpoint returns the effective endpoint declaration for op.
func (b *Builder) Endpoint(op Operation) (Endpoint, bool) {
	ep, ok := b.endpoints[op]
	return ep, ok
}

// Build prepares a Call for op. Session-scoped operations resolve the active
// session here; if that fails the error is returned and no Call is created.
func (b *Builder) Build(op Operation, p Params) (*Call, error) {
	ep, ok := b.endpoints[op]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
	if !validMethod(ep) {
		return nil, fmt.Errorf("operation %s: unsupported method %q", op, ep.Method)
	}

	var opts Options

	if ep.SessionScoped {
		session, err := b.activeSession()
		if err != nil {
			return nil, err
		}
		opts.Headers = map[string]string{
			HeaderAuthorization: session.Authorization(),
		}
	}

	params, err := EncodeQuery(p.Query)
	if err != nil {
		return nil, fmt.Errorf("operation %s: %w", op, err)
	}
	opts.Params = params
	opts.Body = p.Body

	return &Call{
		transport: b.transport,
		op:        op,
		method:    ep.Method,
		url:       JoinURL(b.settings.APIBaseURL, p.Segments...),
		upload:    ep.Upload,
		opts:      opts,
		logger:    b.logger,
	}, nil
}

func (b *Builder) activeSession() (Session, error) {
	if b.sessions == nil {
		return Session{}, ErrNoActiveSession
	}
	return b.sessions.ActiveSession()
}

func validMethod(ep Endpoint) bool {
	switch ep.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	// uploads may use any verb the transport accepts
	return ep.Upload && ep.Method != ""
}

// JoinURL appends segments to base, separated by "/". Segments are not
// escaped or normalized.
func JoinURL(base string, segments ...string) string {
	if len(segments) == 0 {
		return base
	}
	return base + "/" + strings.Join(segments, "/")
}

// Call is a prepared request. It performs no I/O until Do is called.
type Call struct {
	transport Transport
	op        Operation
	method    string
	url       string
	upload    bool
	opts      Options
	logger    zerolog.Logger
}

// Operation returns the operation the call was built for.
func (c *Call) Operation() Operation { return c.op }

// Method returns the HTTP verb.
func (c *Call) Method() string { return c.method }

// URL returns the full request URL, without query string.
func (c *Call) URL() string { return c.url }

// Options returns the query, body and headers of the call.
func (c *Call) Options() Options { return c.opts }

// Do dispatches the call through the transport exactly once and returns its
// result unmodified.
func (c *Call) Do(ctx context.Context) (*Response, error) {
	c.logger.Debug().
		Str("operation", string(c.op)).
		Str("method", c.method).
		Str("url", c.url).
		Bool("authorized", c.opts.Header(HeaderAuthorization) != "").
		Msg("Dispatching request")

	if c.upload {
		return c.transport.Upload(ctx, c.method, c.url, c.opts)
	}

	switch c.method {
	case http.MethodGet:
		return c.transport.Get(ctx, c.url, c.opts)
	case http.MethodPost:
		return c.transport.Post(ctx, c.url, c.opts)
	case http.MethodPut:
		return c.transport.Put(ctx, c.url, c.opts)
	default:
		return c.transport.Delete(ctx, c.url, c.opts)
	}
}

// Decode dispatches the call and unmarshals the JSON response into v.
func (c *Call) Decode(ctx context.Context, v any) error {
	resp, err := c.Do(ctx)
	if err != nil {
		return err
	}
	return resp.Decode(v)
}
