package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Chemchu/guslee/internal/ui"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every document",
		Long: `List shows the curated default documents first, in curated order,
followed by the rest of the garden.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ui.NewRenderer(cmd.OutOrStdout()).SearchResult(e.AllDocuments())
			return nil
		},
	}
}
