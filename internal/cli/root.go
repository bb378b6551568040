// Package cli provides the command-line interface that documents, lists
// and serves an application's routes.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bjaus/routespec/internal/config"
	"github.com/bjaus/routespec/web"
)

// App is the application being documented.
type App struct {
	Router *web.Router

	// Resources are the handlers to document, in order. When empty, every
	// distinct handler whose route has a URL template is documented.
	Resources []web.Endpoint
}

// AppFunc builds the application. It is called once per command run.
type AppFunc func(logger *slog.Logger) *App

type state struct {
	build      AppFunc
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

// NewRootCommand creates the command tree for the application built by build.
func NewRootCommand(name string, build AppFunc) *cobra.Command {
	st := &state{build: build}

	rootCmd := &cobra.Command{
		Use:           name,
		Short:         "Document, list and serve the routes of " + name,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.load(cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().StringVar(&st.configPath, "config", "", "Path to a TOML config file")

	rootCmd.AddCommand(newSpecCommand(st))
	rootCmd.AddCommand(newRoutesCommand(st))
	rootCmd.AddCommand(newServeCommand(st))

	return rootCmd
}

// Execute creates and runs the root command.
func Execute(ctx context.Context, name string, build AppFunc) error {
	return NewRootCommand(name, build).ExecuteContext(ctx)
}

func (st *state) load(logOut io.Writer) error {
	cfg, err := config.Load(st.configPath)
	if err != nil {
		return err
	}
	st.cfg = cfg
	st.logger = cfg.Logging.Logger(logOut)
	return nil
}

// resources returns the handlers to document.
func (a *App) resources() []web.Endpoint {
	if len(a.Resources) > 0 {
		return a.Resources
	}

	seen := make(map[web.HandlerID]bool)
	var out []web.Endpoint
	for _, route := range a.Router.Routes() {
		h := route.Handler()
		info := route.Resource().Info()
		if seen[h.ID()] || (info.Path == "" && info.Formatter == "") {
			continue
		}
		seen[h.ID()] = true
		out = append(out, h)
	}
	return out
}
