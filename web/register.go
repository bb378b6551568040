package web

import "net/http"

// Registrar is the interface accepted by the registration functions.
// Both *Router and *Group implement it.
type Registrar interface {
	addRoute(method, pattern string, h Endpoint) *Route
}

// Handle registers h for method at pattern. Registering the same *Handler
// under several routes keeps its ID. It panics if h is nil or has no
// function.
func Handle(reg Registrar, method, pattern string, h *Handler) *Route {
	return reg.addRoute(method, pattern, h)
}

// RegisterView registers a class-based view at pattern. The route accepts
// every method; the view answers 405 for verbs it does not serve. It panics
// if v is nil.
func RegisterView(reg Registrar, pattern string, v *ViewHandler) *Route {
	return reg.addRoute(MethodAny, pattern, v)
}

// Get registers a GET handler.
func Get(reg Registrar, pattern string, fn HandlerFunc, opts ...HandlerOption) *Route {
	return Handle(reg, http.MethodGet, pattern, Func(fn, opts...))
}

// Post registers a POST handler.
func Post(reg Registrar, pattern string, fn HandlerFunc, opts ...HandlerOption) *Route {
	return Handle(reg, http.MethodPost, pattern, Func(fn, opts...))
}

// Put registers a PUT handler.
func Put(reg Registrar, pattern string, fn HandlerFunc, opts ...HandlerOption) *Route {
	return Handle(reg, http.MethodPut, pattern, Func(fn, opts...))
}

// Patch registers a PATCH handler.
func Patch(reg Registrar, pattern string, fn HandlerFunc, opts ...HandlerOption) *Route {
	return Handle(reg, http.MethodPatch, pattern, Func(fn, opts...))
}

// Delete registers a DELETE handler.
func Delete(reg Registrar, pattern string, fn HandlerFunc, opts ...HandlerOption) *Route {
	return Handle(reg, http.MethodDelete, pattern, Func(fn, opts...))
}
