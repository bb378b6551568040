package cli

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bjaus/routespec/internal/config"
	"github.com/bjaus/routespec/web"
)

func newServeCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the application with its OpenAPI document and docs UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newServer(st.cfg, st.build(st.logger), st.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st.logger.Info("starting server",
				slog.String("addr", st.cfg.Server.Addr),
				slog.String("spec", st.cfg.Server.SpecPath),
				slog.String("docs", st.cfg.Server.DocsPath),
			)

			err = r.ListenAndServe(ctx, st.cfg.Server.Addr, st.cfg.Server.ShutdownTimeoutDuration())
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			st.logger.Info("server stopped")
			return nil
		},
	}
}

// newServer documents the application, then mounts the document and docs
// routes behind a rate limit, CORS and ETag handling. The document routes are added after indexing,
// so they stay out of the document.
func newServer(cfg *config.Config, app *App, logger *slog.Logger) (*web.Router, error) {
	spec, _, err := BuildSpec(&cfg.Spec, app, logger)
	if err != nil {
		return nil, err
	}

	r := app.Router
	r.Use(web.RequestID(), web.Logger(logger), web.Recovery(logger))

	docs := r.Group("", web.WithGroupMiddleware(
		web.RateLimit(web.RateLimitConfig{
			Rate:  cfg.Server.Rate,
			Burst: cfg.Server.Burst,
		}),
		web.CORS(cfg.Server.CORSOrigins...),
		web.ETag(),
	))
	web.Get(docs, cfg.Server.SpecPath, spec.JSONHandler().ServeHTTP, web.WithName("openapi.json"))
	web.Get(docs, cfg.Server.SpecYAMLPath, spec.YAMLHandler().ServeHTTP, web.WithName("openapi.yaml"))
	web.Get(docs, cfg.Server.DocsPath, spec.DocsHandler(cfg.Server.SpecPath).ServeHTTP, web.WithName("docs"))

	return r, nil
}
