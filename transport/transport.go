package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/s0up4200/epoll/request"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "epoll-go"

	// HeaderRequestID carries a per-request id for log correlation.
	HeaderRequestID = "X-Request-ID"
)

// Transport is a request.Transport over net/http.
type Transport struct {
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

var _ request.Transport = &Transport{}

// New creates a Transport with a pooled HTTP client.
func New(logger zerolog.Logger, opts ...Option) *Transport {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = defaultTimeout

	t := &Transport{
		httpClient: client,
		userAgent:  defaultUserAgent,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Get performs a GET request.
func (t *Transport) Get(ctx context.Context, url string, opts request.Options) (*request.Response, error) {
	return t.doJSON(ctx, http.MethodGet, url, opts)
}

// Post performs a POST request with a JSON body.
func (t *Transport) Post(ctx context.Context, url string, opts request.Options) (*request.Response, error) {
	return t.doJSON(ctx, http.MethodPost, url, opts)
}

// Put performs a PUT request with a JSON body.
func (t *Transport) Put(ctx context.Context, url string, opts request.Options) (*request.Response, error) {
	return t.doJSON(ctx, http.MethodPut, url, opts)
}

// Delete performs a DELETE request.
func (t *Transport) Delete(ctx context.Context, url string, opts request.Options) (*request.Response, error) {
	return t.doJSON(ctx, http.MethodDelete, url, opts)
}

// Upload sends opts.Body, which must be a *request.FormData, as multipart/form-data.
func (t *Transport) Upload(ctx context.Context, method, url string, opts request.Options) (*request.Response, error) {
	var form *request.FormData
	switch body := opts.Body.(type) {
	case *request.FormData:
		form = body
	case nil:
		form = &request.FormData{}
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidUploadBody, opts.Body)
	}

	body, contentType, err := encodeForm(form)
	if err != nil {
		return nil, err
	}
	return t.do(ctx, method, url, opts, body, contentType)
}

func (t *Transport) doJSON(ctx context.Context, method, url string, opts request.Options) (*request.Response, error) {
	if opts.Body == nil {
		return t.do(ctx, method, url, opts, nil, "")
	}

	payload, err := json.Marshal(opts.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return t.do(ctx, method, url, opts, bytes.NewReader(payload), "application/json")
}

// do performs an HTTP request and reads the full response
func (t *Transport) do(ctx context.Context, method, rawURL string, opts request.Options, body io.Reader, contentType string) (*request.Response, error) {
	target := rawURL
	if len(opts.Params) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + opts.Params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set(HeaderRequestID, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for name, value := range opts.Headers {
		req.Header.Set(name, value)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	t.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request completed")

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			Body:       data,
		}
	}

	return &request.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// errorMessage extracts a message from an error payload, falling back to the raw body
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"message", "error.message", "error"} {
			if v := gjson.GetBytes(body, path); v.Exists() && v.Type == gjson.String {
				return v.String()
			}
		}
	}
	return strings.TrimSpace(string(body))
}
