package web

import (
	"context"
	"net/http"
)

type matchKey struct{}

// match is filled in by the dispatcher of the route that serves a request.
// It is placed in the context before dispatch so middleware wrapping the
// mux can read it once the handler returns.
type match struct {
	route *Route
}

func withMatch(r *http.Request) (*http.Request, *match) {
	if m, ok := r.Context().Value(matchKey{}).(*match); ok {
		return r, m
	}
	m := &match{}
	return r.WithContext(context.WithValue(r.Context(), matchKey{}, m)), m
}

// MatchedRoute returns the registered route serving r. It is nil when no
// route matched, when the handler has not been reached yet, or when r never
// passed through a Router.
func MatchedRoute(r *http.Request) *Route {
	if m, ok := r.Context().Value(matchKey{}).(*match); ok {
		return m.route
	}
	return nil
}
