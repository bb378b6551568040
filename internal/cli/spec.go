package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bjaus/routespec"
	"github.com/bjaus/routespec/apispec"
	"github.com/bjaus/routespec/internal/config"
)

func newSpecCommand(st *state) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Write the OpenAPI document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := st.cfg.Spec
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}

			spec, _, err := BuildSpec(&cfg, st.build(st.logger), st.logger)
			if err != nil {
				return err
			}
			return writeSpec(spec, &cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or '-' for stdout")

	return cmd
}

// BuildSpec indexes the application's routes and documents every resource.
func BuildSpec(cfg *config.SpecConfig, app *App, logger *slog.Logger) (*apispec.Spec, *routespec.Plugin, error) {
	plugin := routespec.New(app.Router, routespec.WithLogger(logger))

	spec, err := apispec.New(cfg.Title, cfg.Version,
		apispec.WithOpenAPIVersion(cfg.OpenAPIVersion),
		apispec.WithInfoDescription(cfg.Description),
		apispec.WithPlugins(plugin),
		apispec.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("new spec: %w", err)
	}

	for _, res := range app.resources() {
		if err := spec.Path(apispec.WithResource(res)); err != nil {
			return nil, nil, fmt.Errorf("document %s: %w", res.Name(), err)
		}
	}
	return spec, plugin, nil
}

// writeSpec renders the document before touching the output file, so a bad
// format or a failed encode leaves an existing file as it was.
func writeSpec(spec *apispec.Spec, cfg *config.SpecConfig, stdout io.Writer) error {
	var encode func(io.Writer) error
	switch cfg.Format {
	case "yaml":
		encode = spec.WriteYAML
	case "json":
		encode = spec.WriteJSON
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if cfg.Output == "" || cfg.Output == "-" {
		return encode(stdout)
	}

	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(cfg.Output), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
