package web

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

// ETag returns middleware that tags successful GET and HEAD responses with a
// strong ETag derived from the body and answers a matching If-None-Match
// with 304. The response is buffered.
func ETag() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			rec := &bufferedResponse{header: w.Header(), status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK {
				w.WriteHeader(rec.status)
				//nolint:errcheck,gosec // best-effort write
				w.Write(rec.body.Bytes())
				return
			}

			sum := sha256.Sum256(rec.body.Bytes())
			tag := `"` + hex.EncodeToString(sum[:8]) + `"`
			w.Header().Set("ETag", tag)

			if etagMatches(r.Header.Get("If-None-Match"), tag) {
				w.WriteHeader(http.StatusNotModified)
				return
			}

			w.WriteHeader(rec.status)
			//nolint:errcheck,gosec // best-effort write
			w.Write(rec.body.Bytes())
		})
	}
}

// etagMatches reports whether the If-None-Match header value lists tag.
// Weak comparison is used, as for GET.
func etagMatches(header, tag string) bool {
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}

// bufferedResponse holds a response until the wrapping middleware decides
// what to send.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
	wrote  bool
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(code int) {
	if b.wrote {
		return
	}
	b.status = code
	b.wrote = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wrote = true
	return b.body.Write(p)
}
