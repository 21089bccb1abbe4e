package transport

import (
	"net/http"
	"time"
)

// Option configures a Transport.
type Option func(*Transport)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		if timeout > 0 {
			t.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The client is copied, so
// later options such as WithTimeout leave the caller's client untouched.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			cp := *client
			t.httpClient = &cp
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(t *Transport) {
		if userAgent != "" {
			t.userAgent = userAgent
		}
	}
}
