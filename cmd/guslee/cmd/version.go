package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chemchu/guslee/pkg/version"
)

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info().String())
		},
	}
}
