package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/your-org/pipelines/pkg/pipeline"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered pipeline actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tIMAGE\tDESCRIPTION")
			for _, def := range pipeline.Defaults() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					def.RegisteredName(), def.Kind, def.BaseImage, def.Description)
			}
			return w.Flush()
		},
	}
}
