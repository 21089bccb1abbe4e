// Package requesttest provides a recording request.Transport for tests.
package requesttest

import (
	"context"
	"net/http"
	"sync"

	"github.com/s0up4200/epoll/request"
)

// Request is a transport invocation captured by a Recorder.
type Request struct {
	Method  string
	URL     string
	Upload  bool
	Options request.Options
}

// Recorder implements request.Transport and records every invocation.
// It answers with Response and Err.
type Recorder struct {
	mu       sync.Mutex
	requests []Request

	Response *request.Response
	Err      error
}

var _ request.Transport = &Recorder{}

// New creates a Recorder that answers every call with an empty JSON object.
func New() *Recorder {
	return &Recorder{
		Response: &request.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": {"application/json"}},
			Body:       []byte(`{}`),
		},
	}
}

func (r *Recorder) Get(ctx context.Context, url string, opts request.Options) (*request.Response, error) {
	return r.record(ctx, Request{Method: http.MethodGet, URL: url, Options: opts})
}

func (r *Recorder) Post(ctx context.Context, url string, opts request.Options) (*request.Response, error) {
	return r.record(ctx, Request{Method: http.MethodPost, URL: url, Options: opts})
}

func (r *Recorder) Put(ctx context.Context, url string, opts request.Options) (*request.Response, error) {
	return r.record(ctx, Request{Method: http.MethodPut, URL: url, Options: opts})
}

func (r *Recorder) Delete(ctx context.Context, url string, opts request.Options) (*request.Response, error) {
	return r.record(ctx, Request{Method: http.MethodDelete, URL: url, Options: opts})
}

func (r *Recorder) Upload(ctx context.Context, method, url string, opts request.Options) (*request.Response, error) {
	return r.record(ctx, Request{Method: method, URL: url, Upload: true, Options: opts})
}

func (r *Recorder) record(ctx context.Context, req Request) (*request.Response, error) {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	resp, err := r.Response, r.Err
	r.mu.Unlock()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return resp, err
}

// Calls returns the number of recorded invocations.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// Requests returns a copy of the recorded invocations.
func (r *Recorder) Requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Request, len(r.requests))
	copy(out, r.requests)
	return out
}

// Last returns the most recent invocation. It panics if there is none.
func (r *Recorder) Last() Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}
