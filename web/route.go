package web

import (
	"net/http"
	"strings"
)

// MethodAny is the declared method of routes that accept every method,
// such as view routes.
const MethodAny = "*"

// AllMethods lists the recognized HTTP methods.
var AllMethods = []string{
	http.MethodConnect,
	http.MethodDelete,
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
	http.MethodTrace,
}

// Route is a registered entry in the router's table.
type Route struct {
	method   string
	resource *Resource
	handler  Endpoint
}

// Method returns the declared HTTP method, or MethodAny.
func (rt *Route) Method() string { return rt.method }

// Resource returns the URL resource the route is attached to.
func (rt *Route) Resource() *Resource { return rt.resource }

// Handler returns the route's handler.
func (rt *Route) Handler() Endpoint { return rt.handler }

// String returns the method and pattern, as in "GET /users/{id}".
func (rt *Route) String() string { return rt.method + " " + rt.resource.pattern }

// ResourceInfo describes a resource's URL.
//
// Plain resources set Path. Dynamic resources, whose pattern has {name}
// segments, set Formatter and Pattern. Static resources set only Prefix.
type ResourceInfo struct {
	Path      string
	Formatter string
	Pattern   string
	Prefix    string
}

// Resource is a URL shared by every route registered on the same pattern.
type Resource struct {
	pattern string
	static  bool
}

// Pattern returns the pattern the resource was registered with.
func (res *Resource) Pattern() string { return res.pattern }

// Info returns the resource's URL description.
func (res *Resource) Info() ResourceInfo {
	if res.static {
		return ResourceInfo{Prefix: res.pattern}
	}

	path := strings.ReplaceAll(res.pattern, "{$}", "")
	if !strings.Contains(path, "{") {
		return ResourceInfo{Path: path}
	}

	// ServeMux patterns use {name...} for trailing wildcards; URL templates
	// use {name}.
	return ResourceInfo{
		Formatter: strings.ReplaceAll(path, "...}", "}"),
		Pattern:   res.pattern,
	}
}
