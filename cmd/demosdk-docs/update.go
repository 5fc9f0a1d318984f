package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bull/demosdk-docs-mcp/internal/indexer"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Regenerate the API reference and rebuild the index cache",
		Long: `Regenerates the DemoSDK API reference and writes a fresh index cache.

This command:
1. Locates the installed SDK
2. Runs TypeDoc into the API reference directory (bounded by TYPEDOC_TIMEOUT)
3. Parses the generated HTML, or the SDK sources when generation is unavailable
4. Saves the index cache the MCP server loads at startup

Environment variables:
  TYPEDOC_BIN      Documentation generator (default: node_modules/.bin/typedoc)
  TYPEDOC_TIMEOUT  Generator wall-clock limit (default: 60s)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := indexer.NewUpdater(indexer.UpdaterConfig{
				SDKCandidates:  a.cfg.SDKCandidates,
				TypeDocBin:     a.cfg.TypeDocBin,
				TypeDocTimeout: a.cfg.TypeDocTimeout,
				APIRefDir:      a.cfg.APIRefDir,
				CacheFile:      a.cfg.IndexFile,
			}, a.logger)

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Updating DemoSDK documentation...")

			result, err := u.Update(cmd.Context())
			if err != nil {
				return fmt.Errorf("update failed: %w", err)
			}

			fmt.Fprintln(w)
			fmt.Fprintf(w, "SDK: %s\n", result.SDKPath)
			if result.Generated {
				fmt.Fprintln(w, "Generated API reference with TypeDoc")
			} else if result.TypeDocErr != nil {
				fmt.Fprintf(w, "TypeDoc skipped: %v\n", result.TypeDocErr)
			}
			fmt.Fprintf(w, "Parsed from: %s\n", result.Strategy)
			printStats(cmd, result.Stats)
			fmt.Fprintf(w, "Cache: %s\n", result.CacheFile)
			fmt.Fprintf(w, "Duration: %s\n", result.Duration.Round(time.Millisecond))
			return nil
		},
	}
}
