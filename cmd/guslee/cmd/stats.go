package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Chemchu/guslee/internal/ui"
)

// newStatsCmd creates the stats command.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show engine counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ui.NewRenderer(cmd.OutOrStdout()).Stats(e.Stats())
			return nil
		},
	}
}
