package web_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/routespec/web"
)

func header(key, value string) web.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(key, value)
			next.ServeHTTP(w, r)
		})
	}
}

func TestGroup_prefix(t *testing.T) {
	t.Parallel()

	r := web.New()
	v1 := r.Group("/v1")
	route := web.Get(v1, "/users", text("users"))
	nested := web.Get(v1.Group("/admin"), "/stats", text("stats"))

	assert.Equal(t, "/v1/users", route.Resource().Pattern())
	assert.Equal(t, "/v1/admin/stats", nested.Resource().Pattern())

	assert.Equal(t, "users", doRequest(t, r, http.MethodGet, "/v1/users").Body.String())
	assert.Equal(t, "stats", doRequest(t, r, http.MethodGet, "/v1/admin/stats").Body.String())
	assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodGet, "/users").Code)
}

func TestGroup_middleware(t *testing.T) {
	t.Parallel()

	r := web.New()
	web.Get(r, "/open", text(""))

	g := r.Group("/api", web.WithGroupMiddleware(header("X-Group", "outer")))
	web.Get(g, "/a", text(""))

	child := g.Group("/child", web.WithGroupMiddleware(header("X-Group", "inner")))
	web.Get(child, "/b", text(""))

	tests := map[string]struct {
		path string
		want []string
	}{
		"router route is not wrapped": {path: "/open"},
		"group route":                 {path: "/api/a", want: []string{"outer"}},
		"nested group inherits":       {path: "/api/child/b", want: []string{"outer", "inner"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			w := doRequest(t, r, http.MethodGet, tc.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.want, w.Header().Values("X-Group"))
		})
	}
}

func TestGroup_view(t *testing.T) {
	t.Parallel()

	r := web.New()
	g := r.Group("/v1", web.WithGroupMiddleware(header("X-Group", "v1")))
	route := web.RegisterView(g, "/items", web.NewView(&itemsView{}))

	assert.Equal(t, web.MethodAny, route.Method())
	assert.Equal(t, "/v1/items", route.Resource().Info().Path)

	w := doRequest(t, r, http.MethodPost, "/v1/items")
	assert.Equal(t, "create", w.Body.String())
	assert.Equal(t, "v1", w.Header().Get("X-Group"))
}
