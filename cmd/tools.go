package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newToolsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools available to ck generate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "SLUG\tNAME\tCATEGORY\tOUTPUT\tFIELDS")
			for _, profile := range app.registry.List() {
				fields := strings.Join(profile.MonitoredFields, ",")
				if profile.UploadField != "" {
					fields = strings.Trim(fields+",@"+profile.UploadField, ",")
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", profile.Slug, profile.Name, profile.Category, profile.Shape, fields)
			}

			return w.Flush()
		},
	}
}
