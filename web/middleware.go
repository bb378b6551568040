package web

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Middleware wraps an http.Handler.
type Middleware func(next http.Handler) http.Handler

// Recovery returns middleware that turns a handler panic into a 500 JSON
// error and an error record naming the route and handler that panicked.
// http.ErrAbortHandler is re-raised so the server aborts the response as
// usual.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, m := withMatch(r)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				attrs := []slog.Attr{
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}
				attrs = append(attrs, routeAttrs(m.route)...)
				attrs = append(attrs, slog.String("stack", string(debug.Stack())))
				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered", attrs...)

				WriteError(w, Error(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
