// Command sample is a small user service whose routes are documented by
// github.com/bjaus/routespec.
//
// Print the OpenAPI document:
//
//	go run ./cmd/sample spec                  # JSON to stdout
//	go run ./cmd/sample spec --format yaml    # YAML to stdout
//	go run ./cmd/sample spec -o openapi.json  # write to file
//
// List the route table and what the plugin indexed for each handler:
//
//	go run ./cmd/sample routes
//
// Serve the API with its document and docs UI:
//
//	go run ./cmd/sample serve --config sample.toml
//
//	GET  http://localhost:8080/openapi.json
//	GET  http://localhost:8080/docs
//	GET  http://localhost:8080/v1/users
package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/bjaus/routespec/internal/cli"
	"github.com/bjaus/routespec/web"
)

const maxAvatarBytes = 1 << 20

//go:embed assets
var assets embed.FS

func main() {
	if err := cli.Execute(context.Background(), "sample", newApp); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(logger *slog.Logger) *cli.App {
	r := web.New(web.WithLogger(logger))
	store := newUserStore()

	health := web.Get(r, "/health", handleHealth, web.WithDoc(`Health check.
---
summary: Health check
responses:
  200:
    description: Service is up
`))

	v1 := r.Group("/v1")
	users := web.NewView(&usersView{store: store}, web.WithDoc(`Users collection.`))
	user := web.NewView(&userView{store: store}, web.WithOperations(map[string]map[string]any{
		"x-resource": {"name": "user"},
	}))
	web.RegisterView(v1, "/users", users)
	web.RegisterView(v1, "/users/{id}", user)

	uploads := v1.Group("", web.WithGroupMiddleware(web.BodyLimit(maxAvatarBytes)))
	avatar := web.Post(uploads, "/users/{id}/avatar", store.handleUploadAvatar, web.WithOperation(map[string]any{
		"summary": "Upload avatar",
		"responses": map[int]any{
			http.StatusNoContent:             map[string]any{"description": "Avatar stored"},
			http.StatusNotFound:              map[string]any{"description": "Unknown user"},
			http.StatusRequestEntityTooLarge: map[string]any{"description": "Avatar larger than 1 MiB"},
		},
	}))

	static, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	r.Static("/assets", static)

	return &cli.App{
		Router: r,
		Resources: []web.Endpoint{
			health.Handler(),
			users,
			user,
			avatar.Handler(),
		},
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
