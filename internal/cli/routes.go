package cli

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bjaus/routespec"
)

func newRoutesCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table and the index entry of each handler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := st.build(st.logger)
			plugin := routespec.New(app.Router, routespec.WithLogger(st.logger))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tPATTERN\tURI\tVERBS\tHANDLER")
			for _, route := range app.Router.Routes() {
				entry, err := plugin.Lookup(route.Handler())
				if err != nil {
					return err
				}

				verbs := make([]string, 0, len(entry.Methods))
				for verb := range entry.Methods {
					verbs = append(verbs, verb)
				}
				slices.Sort(verbs)

				uri := entry.URI
				if uri == "" {
					uri = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					route.Method(),
					route.Resource().Pattern(),
					uri,
					strings.Join(verbs, ","),
					route.Handler().Name(),
				)
			}
			return tw.Flush()
		},
	}
}
