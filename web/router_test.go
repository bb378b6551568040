package web_test

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/routespec/apitest"
	"github.com/bjaus/routespec/web"
)

func text(body string) web.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func TestRouter_ServeHTTP_basic(t *testing.T) {
	t.Parallel()

	r := web.New()
	web.Get(r, "/health", text("ok"))

	c := apitest.NewClient(t, r)
	resp := c.Do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "ok", string(resp.Body))
}

func TestRouter_method_routing(t *testing.T) {
	t.Parallel()

	r := web.New()
	web.Get(r, "/items", text("get"))
	web.Post(r, "/items", text("post"))
	web.Put(r, "/items/{id}", text("put"))
	web.Patch(r, "/items/{id}", text("patch"))
	web.Delete(r, "/items/{id}", text("delete"))

	tests := map[string]struct {
		method string
		path   string
		want   string
	}{
		"get":    {method: http.MethodGet, path: "/items", want: "get"},
		"post":   {method: http.MethodPost, path: "/items", want: "post"},
		"put":    {method: http.MethodPut, path: "/items/1", want: "put"},
		"patch":  {method: http.MethodPatch, path: "/items/1", want: "patch"},
		"delete": {method: http.MethodDelete, path: "/items/1", want: "delete"},
	}

	c := apitest.NewClient(t, r)

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resp := c.Do(t, tc.method, tc.path, nil)
			assert.Equal(t, http.StatusOK, resp.Status)
			assert.Equal(t, tc.want, string(resp.Body))
		})
	}
}

func TestRouter_Use_middleware(t *testing.T) {
	t.Parallel()

	r := web.New()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Custom", "applied")
			next.ServeHTTP(w, req)
		})
	})
	web.Get(r, "/test", text("hello"))

	c := apitest.NewClient(t, r)
	resp := c.Do(t, http.MethodGet, "/test", nil)

	assert.Equal(t, "applied", resp.Headers.Get("X-Custom"))
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	r := web.New()
	get := web.Get(r, "/users", text(""))
	post := web.Post(r, "/users", text(""))
	one := web.Get(r, "/users/{id}", text(""))

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Same(t, get, routes[0])
	assert.Same(t, post, routes[1])
	assert.Same(t, one, routes[2])

	assert.Equal(t, http.MethodGet, routes[0].Method())
	assert.Equal(t, http.MethodPost, routes[1].Method())
	assert.Same(t, routes[0].Resource(), routes[1].Resource(), "same pattern shares a resource")
	assert.NotSame(t, routes[0].Resource(), routes[2].Resource())

	routes[0] = nil
	assert.NotNil(t, r.Routes()[0], "Routes returns a copy")
}

func TestRouter_nil_handler(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		register func(r *web.Router)
		want     string
	}{
		"nil handler": {
			register: func(r *web.Router) { web.Handle(r, http.MethodGet, "/nil", nil) },
			want:     "web: nil handler registered for GET /nil",
		},
		"handler without function": {
			register: func(r *web.Router) { web.Handle(r, http.MethodPost, "/nil", web.Func(nil)) },
			want:     "web: nil handler registered for POST /nil",
		},
		"nil view": {
			register: func(r *web.Router) { web.RegisterView(r, "/view", nil) },
			want:     "web: nil handler registered for * /view",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := web.New()
			assert.PanicsWithValue(t, tc.want, func() { tc.register(r) })
			assert.Empty(t, r.Routes())
		})
	}
}

func TestRouter_WithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := web.New(web.WithLogger(logger))
	web.Get(r, "/logged", text(""), web.WithName("logged"))

	out := buf.String()
	assert.Contains(t, out, "route registered")
	assert.Contains(t, out, "pattern=/logged")
	assert.Contains(t, out, "handler=logged")
}

func TestRouter_ListenAndServe_shutdown(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	r := web.New()
	web.Get(r, "/ping", text("pong"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.ListenAndServe(ctx, addr, time.Second)
	}()

	require.Eventually(t, func() bool {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+addr+"/ping", nil)
		if err != nil {
			return false
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
