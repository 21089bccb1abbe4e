package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/tidwall/gjson"
)

// Transport performs the network calls for the SDK. Implementations must return
// their own errors unchanged through the returned error value.
type Transport interface {
	Get(ctx context.Context, url string, opts Options) (*Response, error)
	Post(ctx context.Context, url string, opts Options) (*Response, error)
	Put(ctx context.Context, url string, opts Options) (*Response, error)
	Delete(ctx context.Context, url string, opts Options) (*Response, error)
	Upload(ctx context.Context, method, url string, opts Options) (*Response, error)
}

// Options carries the query, body and headers of a single request.
type Options struct {
	Params  url.Values
	Body    any
	Headers map[string]string
}

// Header returns the value of the named header, if any.
func (o Options) Header(name string) string {
	if o.Headers == nil {
		return ""
	}
	return o.Headers[name]
}

// Response is the raw result of a transport call. The SDK never inspects it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Get reads a value from the JSON body using a gjson path.
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// FormData is an opaque upload payload. It is passed to Transport.Upload unchanged.
// A FormData may be sent more than once, e.g. by calling Do again on the same Call.
type FormData struct {
	Fields map[string]string
	Files  []FormFile

	mu sync.Mutex
}

// FilePart is the content of a FormFile as read by ReadFiles.
type FilePart struct {
	Field    string
	Filename string
	Data     []byte
}

// ReadFiles returns every file part with its content, in order. Seekable contents
// are read from their current offset and rewound to it afterwards. Other readers
// are replaced by an in-memory copy on first read, so later reads see the same bytes.
func (f *FormData) ReadFiles() ([]FilePart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := make([]FilePart, len(f.Files))
	for i := range f.Files {
		file := &f.Files[i]
		if file.Content == nil {
			return nil, fmt.Errorf("form file %q has no content", file.Filename)
		}

		seeker, seekable := file.Content.(io.Seeker)
		var offset int64
		if seekable {
			var err error
			if offset, err = seeker.Seek(0, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("failed to read form file %s: %w", file.Filename, err)
			}
		}

		data, err := io.ReadAll(file.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to read form file %s: %w", file.Filename, err)
		}

		if seekable {
			if _, err := seeker.Seek(offset, io.SeekStart); err != nil {
				return nil, fmt.Errorf("failed to rewind form file %s: %w", file.Filename, err)
			}
		} else {
			file.Content = bytes.NewReader(data)
		}
		parts[i] = FilePart{Field: file.Field, Filename: file.Filename, Data: data}
	}
	return parts, nil
}

// FormFile is a single file part of a FormData payload.
type FormFile struct {
	Field    string
	Filename string
	Content  io.Reader
}
