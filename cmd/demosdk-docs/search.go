package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/search"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		kind  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the documentation index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := search.Options{Limit: limit}
			if kind != "" {
				k, err := docs.ParseKind(kind)
				if err != nil {
					return err
				}
				opts.Kind = k
			}

			result, err := a.build(cmd, false)
			if err != nil {
				return err
			}
			engine := search.New(result.Index)
			query := strings.Join(args, " ")

			w := cmd.OutOrStdout()
			results := engine.Search(query, opts)
			if len(results) == 0 {
				fmt.Fprintf(w, "No results for %q\n", query)
				if suggestions, err := engine.Suggest(query, 5); err == nil && len(suggestions) > 0 {
					fmt.Fprintf(w, "Did you mean: %s\n", strings.Join(suggestions, ", "))
				}
				return nil
			}

			for _, r := range results {
				fmt.Fprintf(w, "%4d  %-10s %s\n", r.Score, r.Category, r.Entry.Name)
				if desc := firstLine(r.Entry.Description); desc != "" {
					fmt.Fprintf(w, "      %s\n", desc)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "restrict results to one kind (class, interface, function, enum, type, variable)")
	cmd.Flags().IntVarP(&limit, "limit", "n", search.DefaultLimit, "maximum number of results")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts for the documentation index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.build(cmd, false)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Loaded from: %s (%s)\n", result.Strategy, result.Duration.Round(time.Millisecond))
			printStats(cmd, result.Index.Stats())
			return nil
		},
	}
}
