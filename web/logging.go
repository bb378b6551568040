package web

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the status code and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Unwrap supports http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Logger returns middleware that writes one record per request. Besides
// the usual method, path, status, size and latency, the record names the
// registered route that served the request and its handler, so a log line
// can be tied to the same handler the route index documents. 5xx responses
// log at error level, 4xx at warn, the rest at info.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, m := withMatch(r)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Int("size", rec.size),
				slog.Duration("latency", time.Since(start)),
			}
			attrs = append(attrs, routeAttrs(m.route)...)
			if id := GetRequestID(r); id != "" {
				attrs = append(attrs, slog.String("request_id", id))
			}

			logger.LogAttrs(r.Context(), statusLevel(rec.status), "request", attrs...)
		})
	}
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// routeAttrs describes the route that served a request. An unmatched
// request has none.
func routeAttrs(rt *Route) []slog.Attr {
	if rt == nil {
		return nil
	}
	return []slog.Attr{
		slog.String("route", rt.String()),
		slog.String("handler", rt.handler.Name()),
		slog.String("handler_id", string(rt.handler.ID())),
	}
}
