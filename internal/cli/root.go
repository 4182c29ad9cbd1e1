// Package cli implements the pipeline command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run pipeline actions against the Dagger engine",
		Long: `pipeline registers named actions (commands and checks) and runs them
in containers through the Dagger engine, printing their captured output.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("pipeline {{.Version}} (" + commit + ", " + date + ")\n")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newRunCmd())

	return cmd
}
