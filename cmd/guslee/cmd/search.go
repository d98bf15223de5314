package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Chemchu/guslee/internal/engine"
	"github.com/Chemchu/guslee/internal/ui"
)

// newSearchCmd creates the search command.
func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the garden",
		Long: `Search runs a ranked query over document titles and bodies.

An empty, wildcard or very short query returns the curated default
documents instead of a ranked result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			params := engine.QueryParams{Query: strings.Join(args, " ")}
			if cmd.Flags().Changed("limit") {
				params.Limit = limit
			}

			result := e.Search(cmd.Context(), params)
			ui.NewRenderer(cmd.OutOrStdout()).SearchResult(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	return cmd
}
