package web

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDHeader is the default header read and written by RequestID.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds an incoming ID that is echoed into logs and
// response headers.
const maxRequestIDLen = 128

type requestIDConfig struct {
	header   string
	generate func() string
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDHeader sets the header the ID is read from and written to.
func WithRequestIDHeader(header string) RequestIDOption {
	return func(c *requestIDConfig) {
		c.header = header
	}
}

// WithRequestIDGenerator replaces the UUID generator.
func WithRequestIDGenerator(fn func() string) RequestIDOption {
	return func(c *requestIDConfig) {
		c.generate = fn
	}
}

// RequestID returns middleware that gives every request an ID, stored in
// the context and echoed in the response header. An incoming ID is kept only
// if it is at most 128 printable ASCII characters without spaces; otherwise
// a new one is generated.
func RequestID(opts ...RequestIDOption) Middleware {
	c := requestIDConfig{
		header:   RequestIDHeader,
		generate: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&c)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(c.header)
			if !validRequestID(id) {
				id = c.generate()
			}

			w.Header().Set(c.header, id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := range len(id) {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}
	return true
}
