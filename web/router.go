package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Router is the central type that holds routes, middleware, and configuration.
// It implements http.Handler.
type Router struct {
	mux        *http.ServeMux
	middleware []Middleware
	routes     []*Route
	resources  map[string]*Resource

	logger *slog.Logger

	mu sync.Mutex
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithLogger sets the logger used for route registration records.
func WithLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// New creates a new Router with the given options.
func New(opts ...RouterOption) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		resources: make(map[string]*Resource),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware to the router. Middleware is applied in the order added.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Routes returns a snapshot of the route table in registration order.
func (r *Router) Routes() []*Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	routes := make([]*Route, len(r.routes))
	copy(routes, r.routes)
	return routes
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req, _ = withMatch(req)

	handler := http.Handler(r.mux)
	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}
	handler.ServeHTTP(w, req)
}

// ListenAndServe starts an HTTP server on the given address.
// It blocks until the context is cancelled, then shuts down gracefully.
func (r *Router) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// addRoute records a route and registers it with the mux. Global middleware
// is applied in ServeHTTP, not here; only group middleware wraps the
// dispatched handler.
func (r *Router) addRoute(method, pattern string, h Endpoint) *Route {
	return r.add(method, pattern, h, nil, false)
}

func (r *Router) add(method, pattern string, h Endpoint, mw []Middleware, static bool) *Route {
	if isNil(h) {
		panic(fmt.Sprintf("web: nil handler registered for %s %s", method, pattern))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h.bind()

	res, ok := r.resources[pattern]
	if !ok {
		res = &Resource{pattern: pattern, static: static}
		r.resources[pattern] = res
	}

	route := &Route{method: method, resource: res, handler: h}

	var dispatch http.Handler = h
	for i := len(mw) - 1; i >= 0; i-- {
		dispatch = mw[i](dispatch)
	}
	dispatch = markRoute(route, dispatch)

	muxPattern := pattern
	if method != MethodAny {
		muxPattern = method + " " + pattern
	}
	if static {
		muxPattern = method + " " + pattern + "/{path...}"
	}
	r.mux.Handle(muxPattern, dispatch)
	r.routes = append(r.routes, route)

	r.logger.Debug("route registered",
		slog.String("method", method),
		slog.String("pattern", pattern),
		slog.String("handler", h.Name()),
		slog.String("id", string(h.ID())),
	)

	return route
}

// markRoute records route as the match of every request it dispatches,
// before group middleware runs.
func markRoute(route *Route, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if m, ok := req.Context().Value(matchKey{}).(*match); ok {
			m.route = route
		}
		next.ServeHTTP(w, req)
	})
}
