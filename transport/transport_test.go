package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/epoll/request"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}

func TestTransportVerbs(t *testing.T) {
	tests := []struct {
		name   string
		method string
		call   func(tr *Transport, url string, opts request.Options) (*request.Response, error)
	}{
		{"get", http.MethodGet, func(tr *Transport, u string, o request.Options) (*request.Response, error) {
			return tr.Get(context.Background(), u, o)
		}},
		{"post", http.MethodPost, func(tr *Transport, u string, o request.Options) (*request.Response, error) {
			return tr.Post(context.Background(), u, o)
		}},
		{"put", http.MethodPut, func(tr *Transport, u string, o request.Options) (*request.Response, error) {
			return tr.Put(context.Background(), u, o)
		}},
		{"delete", http.MethodDelete, func(tr *Transport, u string, o request.Options) (*request.Response, error) {
			return tr.Delete(context.Background(), u, o)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.method, r.Method)
				assert.Equal(t, "/api/v1/debate/poll", r.URL.Path)
				assert.Equal(t, "10", r.URL.Query().Get("limit"))
				assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))

				_, err := uuid.Parse(r.Header.Get(HeaderRequestID))
				assert.NoError(t, err)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"ok":true}`))
			}))
			defer server.Close()

			tr := New(zerolog.Nop())
			resp, err := tt.call(tr, server.URL+"/api/v1/debate/poll", request.Options{
				Params:  url.Values{"limit": {"10"}},
				Headers: map[string]string{"Authorization": "Bearer abc"},
			})
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
			assert.True(t, resp.Get("ok").Bool())
		})
	}
}

func TestTransportJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"title": "T", "content": "C"}, body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p1"}`))
	}))
	defer server.Close()

	resp, err := New(zerolog.Nop()).Post(context.Background(), server.URL, request.Options{
		Body: struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}{"T", "C"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "p1", resp.Get("id").String())
}

func TestTransportNoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		data, _ := io.ReadAll(r.Body)
		assert.Empty(t, data)
		assert.Empty(t, r.URL.RawQuery)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	resp, err := New(zerolog.Nop()).Delete(context.Background(), server.URL+"/x", request.Options{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, resp.Body)
}

func TestTransportHTTPErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantMessage  string
		notFound     bool
		unauthorized bool
	}{
		{"json message", http.StatusBadRequest, `{"message":"title is required"}`, "title is required", false, false},
		{"json error string", http.StatusUnauthorized, `{"error":"invalid token"}`, "invalid token", false, true},
		{"nested error", http.StatusForbidden, `{"error":{"message":"not yours"}}`, "not yours", false, true},
		{"plain text", http.StatusNotFound, "no such debate\n", "no such debate", true, false},
		{"empty body", http.StatusInternalServerError, "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := New(zerolog.Nop()).Get(context.Background(), server.URL, request.Options{})
			require.Error(t, err)
			assert.Nil(t, resp)

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.wantMessage, httpErr.Message)
			assert.Equal(t, tt.notFound, httpErr.IsNotFound())
			assert.Equal(t, tt.unauthorized, httpErr.IsUnauthorized())
			assert.Contains(t, httpErr.Error(), "status")
		})
	}
}

func TestTransportUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "diagram", r.FormValue("name"))

		file, header, err := r.FormFile("attachment")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		assert.Equal(t, "chart.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		data, _ := io.ReadAll(file)
		assert.Equal(t, pngHeader, data)

		_, header, err = r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, defaultContentType, header.Header.Get("Content-Type"))

		w.Write([]byte(`{"id":"a1"}`))
	}))
	defer server.Close()

	form := &request.FormData{
		Fields: map[string]string{"name": "diagram"},
		Files: []request.FormFile{
			{Field: "attachment", Filename: "chart.png", Content: bytes.NewReader(pngHeader)},
			{Filename: "notes.txt", Content: strings.NewReader("plain notes")},
		},
	}

	resp, err := New(zerolog.Nop()).Upload(context.Background(), http.MethodPost, server.URL, request.Options{
		Body:    form,
		Headers: map[string]string{"Authorization": "Bearer abc"},
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", resp.Get("id").String())
}

// onlyReader hides any io.Seeker implementation of the wrapped reader
type onlyReader struct {
	io.Reader
}

func TestTransportUploadTwice(t *testing.T) {
	tests := []struct {
		name    string
		content io.Reader
	}{
		{"seekable", strings.NewReader("hello")},
		{"stream", onlyReader{strings.NewReader("hello")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				mu    sync.Mutex
				sizes []int
			)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
					return
				}
				file, _, err := r.FormFile("file")
				if !assert.NoError(t, err) {
					return
				}
				defer file.Close()

				data, _ := io.ReadAll(file)
				mu.Lock()
				sizes = append(sizes, len(data))
				mu.Unlock()
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			opts := request.Options{
				Body: &request.FormData{Files: []request.FormFile{{Filename: "hello.txt", Content: tt.content}}},
			}

			tr := New(zerolog.Nop())
			for range 2 {
				_, err := tr.Upload(context.Background(), http.MethodPost, server.URL, opts)
				require.NoError(t, err)
			}

			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, []int{5, 5}, sizes)
		})
	}
}

func TestTransportUploadKeepsSeekOffset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	content := strings.NewReader("skip:hello")
	_, err := content.Seek(5, io.SeekStart)
	require.NoError(t, err)

	form := &request.FormData{Files: []request.FormFile{{Filename: "hello.txt", Content: content}}}
	_, err = New(zerolog.Nop()).Upload(context.Background(), http.MethodPost, server.URL, request.Options{Body: form})
	require.NoError(t, err)

	parts, err := form.ReadFiles()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(parts[0].Data))
}

func TestTransportUploadRejectsOtherBodies(t *testing.T) {
	_, err := New(zerolog.Nop()).Upload(context.Background(), http.MethodPost, "http://127.0.0.1:1", request.Options{
		Body: map[string]string{"a": "b"},
	})
	assert.ErrorIs(t, err, ErrInvalidUploadBody)

	_, err = New(zerolog.Nop()).Upload(context.Background(), http.MethodPost, "http://127.0.0.1:1", request.Options{
		Body: &request.FormData{Files: []request.FormFile{{Filename: "x"}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no content")
}

func TestTransportCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	resp, err := New(zerolog.Nop()).Get(ctx, server.URL, request.Options{})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransportOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		tr := New(zerolog.Nop())
		assert.Equal(t, defaultTimeout, tr.httpClient.Timeout)
		assert.Equal(t, defaultUserAgent, tr.userAgent)
	})

	t.Run("with timeout", func(t *testing.T) {
		tr := New(zerolog.Nop(), WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, tr.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		tr := New(zerolog.Nop(), WithHTTPClient(custom))
		assert.NotSame(t, custom, tr.httpClient)
		assert.Equal(t, 10*time.Second, tr.httpClient.Timeout)
	})

	t.Run("timeout does not modify the caller's client", func(t *testing.T) {
		custom := &http.Client{}
		tr := New(zerolog.Nop(), WithHTTPClient(custom), WithTimeout(time.Second))
		assert.Equal(t, time.Second, tr.httpClient.Timeout)
		assert.Zero(t, custom.Timeout)
	})

	t.Run("with user agent", func(t *testing.T) {
		tr := New(zerolog.Nop(), WithUserAgent("epoll-cli/1.0"))
		assert.Equal(t, "epoll-cli/1.0", tr.userAgent)
	})
}

func TestQueryAppendedToExistingQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("a"))
		assert.Equal(t, "2", r.URL.Query().Get("b"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := New(zerolog.Nop()).Get(context.Background(), server.URL+"/?a=1", request.Options{
		Params: url.Values{"b": {"2"}},
	})
	require.NoError(t, err)
}
