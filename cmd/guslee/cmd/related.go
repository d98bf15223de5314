package cmd

import (
	"github.com/spf13/cobra"

	gerrors "github.com/Chemchu/guslee/internal/errors"
	"github.com/Chemchu/guslee/internal/ui"
)

// newRelatedCmd creates the related command.
func newRelatedCmd() *cobra.Command {
	var overall bool

	cmd := &cobra.Command{
		Use:   "related [file-path]",
		Short: "Show the mentions graph around a document",
		Long: `Related shows the single-hop mentions graph for one document:
the document itself and everything it links to.

With --all, the whole garden graph is shown instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			renderer := ui.NewRenderer(cmd.OutOrStdout())

			if overall || len(args) == 0 {
				renderer.Graph(e.OverallGraph(cmd.Context()))
				return nil
			}

			graph, err := e.Related(cmd.Context(), args[0])
			if err != nil {
				if gerrors.IsNotFound(err) {
					renderer.Error("document not found: " + args[0])
					return nil
				}
				return err
			}
			renderer.Graph(graph)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overall, "all", false, "show the whole garden graph")
	return cmd
}
