package web

import (
	"io/fs"
	"net/http"
)

// Static serves static files from the given filesystem under the URL prefix.
// The resource has a prefix but no path or formatter, so route inspectors
// see it without a URL template.
func (r *Router) Static(prefix string, fsys fs.FS) *Route {
	h := Func(http.StripPrefix(prefix, http.FileServerFS(fsys)).ServeHTTP, WithName("static "+prefix))
	return r.add(http.MethodGet, prefix, h, nil, true)
}
