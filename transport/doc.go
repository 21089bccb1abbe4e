// Package transport provides the default request.Transport, backed by net/http.
//
// Request bodies are encoded as JSON, except for uploads which are sent as
// multipart/form-data built from a *request.FormData. Responses with a status
// code of 400 or above are returned as *HTTPError; everything else is returned
// as a raw *request.Response for the caller to decode.
//
//	t := transport.New(logger, transport.WithTimeout(10*time.Second))
//	api.SetTransport(t)
package transport
