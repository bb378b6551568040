package main

import (
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/routespec/apispec"
	"github.com/bjaus/routespec/apitest"
	"github.com/bjaus/routespec/internal/cli"
	"github.com/bjaus/routespec/internal/config"
)

func TestNewApp_spec(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	spec, plugin, err := cli.BuildSpec(&cfg.Spec, newApp(logger), logger)
	require.NoError(t, err)

	paths := spec.Paths()
	assert.Len(t, paths, 4)
	assert.Len(t, plugin.Index(), 5, "static handler is indexed but not documented")

	health := paths["/health"]
	assert.Equal(t, "Health check", health["get"].(apispec.Operation)["summary"])

	users := paths["/v1/users"]
	assert.Contains(t, users, "get")
	assert.Contains(t, users, "post")

	user := paths["/v1/users/{id}"]
	assert.Equal(t, apispec.Operation{"name": "user"}, user["x-resource"])
	assert.Equal(t, apispec.Operation{}, user["delete"])
	get := user["get"].(apispec.Operation)
	assert.Equal(t, "Get user", get["summary"])
	assert.Equal(t, []any{map[string]any{
		"name":     "id",
		"in":       "path",
		"required": true,
		"schema":   map[string]any{"type": "string"},
	}}, get["parameters"])
	assert.Contains(t, get["responses"], "404")

	avatar := paths["/v1/users/{id}/avatar"]["post"].(apispec.Operation)
	assert.Equal(t, map[string]any{
		"204": map[string]any{"description": "Avatar stored"},
		"404": map[string]any{"description": "Unknown user"},
		"413": map[string]any{"description": "Avatar larger than 1 MiB"},
	}, avatar["responses"])
}

func TestNewApp_users(t *testing.T) {
	t.Parallel()

	app := newApp(slog.New(slog.DiscardHandler))
	c := apitest.NewClient(t, app.Router)

	list := apitest.Get[[]User](t, c, "/v1/users")
	require.Equal(t, http.StatusOK, list.Status)
	require.NotNil(t, list.Body)
	assert.Len(t, *list.Body, 2)

	created := apitest.Post[User, User](t, c, "/v1/users", &User{Name: "Carol", Email: "carol@example.com"})
	require.Equal(t, http.StatusCreated, created.Status)
	assert.Equal(t, "3", created.Body.ID)

	invalid := c.Do(t, http.MethodPost, "/v1/users", &User{Name: "Dan", Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, invalid.Status)

	updated := apitest.Put[User, User](t, c, "/v1/users/3", &User{Name: "Caroline", Email: "carol@example.com"})
	require.Equal(t, http.StatusOK, updated.Status)
	assert.Equal(t, "Caroline", updated.Body.Name)

	got := apitest.Get[User](t, c, "/v1/users/3")
	require.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, User{ID: "3", Name: "Caroline", Email: "carol@example.com"}, *got.Body)

	avatar := c.Do(t, http.MethodPost, "/v1/users/3/avatar", map[string]string{"png": "..."})
	assert.Equal(t, http.StatusNoContent, avatar.Status)

	tooLarge := c.Do(t, http.MethodPost, "/v1/users/3/avatar", strings.Repeat("x", maxAvatarBytes))
	assert.Equal(t, http.StatusRequestEntityTooLarge, tooLarge.Status)

	deleted := apitest.Delete[struct{}](t, c, "/v1/users/3")
	assert.Equal(t, http.StatusNoContent, deleted.Status)

	missing := c.Do(t, http.MethodGet, "/v1/users/3", nil)
	assert.Equal(t, http.StatusNotFound, missing.Status)

	notAllowed := c.Do(t, http.MethodPatch, "/v1/users/1", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, notAllowed.Status)
	assert.Equal(t, "DELETE, GET, PUT", notAllowed.Headers.Get("Allow"))

	health := c.Do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Status)

	asset := c.Do(t, http.MethodGet, "/assets/readme.txt", nil)
	assert.Equal(t, http.StatusOK, asset.Status)
}
