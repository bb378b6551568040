package web

import "net/http"

// BodyLimit returns middleware that caps request bodies at maxBytes. A
// declared Content-Length over the cap is rejected with 413 before the
// handler runs; a longer streamed body fails on read with
// *http.MaxBytesError.
func BodyLimit(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				WriteError(w, Errorf(http.StatusRequestEntityTooLarge, "request body exceeds %d bytes", maxBytes))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
