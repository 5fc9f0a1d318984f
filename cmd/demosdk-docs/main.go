// Package main provides the demosdk-docs CLI for building, searching and syncing
// the DemoSDK documentation index.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bull/demosdk-docs-mcp/internal/config"
	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/indexer"
)

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	config.LoadDotEnv()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the environment is read.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "demosdk-docs",
		Short: "DemoSDK documentation indexing tool",
		Long: `CLI tool for generating, inspecting and syncing the DemoSDK API reference index.

Environment variables:
  DEMOSDK_DOCS_DIR     Documentation root (default: ./docs)
  DEMOSDK_INDEX_FILE   Index cache file (default: <docs>/docs-index.json)
  DEMOSDK_API_REF_DIR  Generated HTML root (default: <docs>/demosdk-api-ref)
  DEMOSDK_SDK_PATH     SDK source root (default: first installed node_modules package)
  LOG_LEVEL            debug, info, warn or error (default: info)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(
		newUpdateCmd(a),
		newFetchSDKCmd(a),
		newSearchCmd(a),
		newStatsCmd(a),
		newSyncCmd(a),
	)
	return root
}

// build loads the index the same way the server does at startup.
func (a *app) build(cmd *cobra.Command, writeCache bool) (*indexer.BuildResult, error) {
	b := indexer.NewBuilder(indexer.BuilderConfig{
		CacheFile:  a.cfg.IndexFile,
		APIRefDir:  a.cfg.APIRefDir,
		SDKPath:    a.cfg.ResolveSDKPath(),
		WriteCache: writeCache,
	}, a.logger)

	result, err := b.Build(cmd.Context())
	if err != nil {
		return nil, err
	}
	if result.Strategy == indexer.StrategyNone {
		return nil, fmt.Errorf("%w: run \"demosdk-docs update\" first", indexer.ErrNoDocumentation)
	}
	return result, nil
}

func printStats(cmd *cobra.Command, stats docs.Stats) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "  Classes:    %d\n", stats.Classes)
	fmt.Fprintf(w, "  Interfaces: %d\n", stats.Interfaces)
	fmt.Fprintf(w, "  Functions:  %d\n", stats.Functions)
	fmt.Fprintf(w, "  Enums:      %d\n", stats.Enums)
	fmt.Fprintf(w, "  Types:      %d\n", stats.Types)
	fmt.Fprintf(w, "  Variables:  %d\n", stats.Variables)
	fmt.Fprintf(w, "  Total:      %d\n", stats.Total)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
