package web

// Group is a collection of routes under a shared prefix with shared middleware.
type Group struct {
	router     *Router
	prefix     string
	middleware []Middleware
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupMiddleware adds middleware to the group.
func WithGroupMiddleware(mw ...Middleware) GroupOption {
	return func(g *Group) {
		g.middleware = append(g.middleware, mw...)
	}
}

// Group creates a new route group with the given prefix and options.
func (r *Router) Group(prefix string, opts ...GroupOption) *Group {
	g := &Group{
		router: r,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Group creates a nested group. It inherits the parent's prefix and middleware.
func (g *Group) Group(prefix string, opts ...GroupOption) *Group {
	child := &Group{
		router:     g.router,
		prefix:     g.prefix + prefix,
		middleware: append([]Middleware(nil), g.middleware...),
	}
	for _, opt := range opts {
		opt(child)
	}
	return child
}

// addRoute implements Registrar for Group.
func (g *Group) addRoute(method, pattern string, h Endpoint) *Route {
	return g.router.add(method, g.prefix+pattern, h, g.middleware, false)
}
