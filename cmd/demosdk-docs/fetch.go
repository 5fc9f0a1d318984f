package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	ghclient "github.com/bull/demosdk-docs-mcp/internal/github"
)

func newFetchSDKCmd(a *app) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "fetch-sdk",
		Short: "Download SDK declaration files from GitHub",
		Long: `Downloads the SDK manifest, JavaScript entry files and TypeScript declarations
from GitHub so the source parser can run without an installed SDK.

Environment variables:
  GITHUB_TOKEN      GitHub token for higher rate limits (optional)
  SDK_GITHUB_OWNER  Repository owner (default: kynesyslabs)
  SDK_GITHUB_REPO   Repository name (default: sdk)
  SDK_GITHUB_PATH   Path of the SDK inside the repository (default: repository root)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := time.Now()
			if dest == "" {
				dest = a.cfg.SDKPath
			}
			if dest == "" {
				return fmt.Errorf("no destination: pass --dest or set DEMOSDK_SDK_PATH")
			}

			client, err := ghclient.NewClient(ctx, a.cfg.GitHubToken)
			if err != nil {
				return fmt.Errorf("failed to create GitHub client: %w", err)
			}
			fetcher := ghclient.NewFetcher(client, a.cfg.SDKOwner, a.cfg.SDKRepo, a.cfg.SDKRepoPath, a.logger)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Downloading %s into %s...\n", fetcher.Repository(), dest)

			result, err := fetcher.Download(ctx, dest)
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Download complete!")
			fmt.Fprintf(w, "  Files: %d\n", result.Files)
			fmt.Fprintf(w, "  Commit: %s\n", result.CommitSHA)
			fmt.Fprintf(w, "  Duration: %s\n", time.Since(start).Round(time.Second))

			if len(result.Failed) > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Failed files:")
				for _, failed := range result.Failed {
					fmt.Fprintf(w, "  - %s: %s\n", failed.Path, failed.Reason)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", "directory to write the SDK files to (default: DEMOSDK_SDK_PATH)")
	return cmd
}
