// Package github downloads DemoSDK sources from GitHub so documentation can be
// built without a local npm install.
package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-github/v81/github"
	"golang.org/x/sync/errgroup"
)

// Repository defaults for the published SDK.
const (
	DefaultOwner    = "kynesyslabs"
	DefaultRepo     = "sdk"
	DefaultBasePath = ""
)

// downloadConcurrency bounds parallel file fetches during Download.
const downloadConcurrency = 4

// FetchedFile is one SDK file fetched from GitHub.
type FetchedFile struct {
	Path    string // relative to the fetcher's base path
	Content []byte
	SHA     string // blob SHA
}

// FailedFile records a file that could not be downloaded.
type FailedFile struct {
	Path   string
	Reason string
}

// DownloadResult summarizes a Download call.
type DownloadResult struct {
	Files     int
	Failed    []FailedFile
	CommitSHA string
}

// Fetcher lists and downloads the SDK files the source parser reads: the package
// manifest, JavaScript entry files and TypeScript declaration files.
type Fetcher struct {
	client   *Client
	owner    string
	repo     string
	basePath string
	logger   *slog.Logger

	newBackOff func() backoff.BackOff
}

// NewFetcher creates a fetcher for owner/repo rooted at basePath.
func NewFetcher(client *Client, owner, repo, basePath string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:   client,
		owner:    owner,
		repo:     repo,
		basePath: strings.Trim(basePath, "/"),
		logger:   logger,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 10 * time.Second
			b.MaxElapsedTime = 30 * time.Second
			return b
		},
	}
}

// Repository returns "owner/repo".
func (f *Fetcher) Repository() string {
	return f.owner + "/" + f.repo
}

// wanted reports whether a repository file is needed for source parsing.
func wanted(name string) bool {
	return name == "package.json" ||
		strings.HasSuffix(name, ".d.ts") ||
		strings.HasSuffix(name, ".js")
}

// ListFiles walks the base path recursively and returns the relative paths of
// wanted files. Dependency directories are skipped.
func (f *Fetcher) ListFiles(ctx context.Context) ([]string, error) {
	return f.listRecursive(ctx, f.basePath, "")
}

func (f *Fetcher) listRecursive(ctx context.Context, fullPath, relativePath string) ([]string, error) {
	_, dirContents, _, err := f.client.Repositories.GetContents(ctx, f.owner, f.repo, fullPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get contents of %q: %w", fullPath, err)
	}

	var files []string
	for _, item := range dirContents {
		name := item.GetName()
		if name == "" {
			continue
		}
		itemRelPath := path.Join(relativePath, name)

		switch item.GetType() {
		case "file":
			if wanted(name) {
				files = append(files, itemRelPath)
			}
		case "dir":
			if name == "node_modules" || strings.HasPrefix(name, ".") {
				continue
			}
			sub, err := f.listRecursive(ctx, path.Join(fullPath, name), itemRelPath)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		}
	}
	return files, nil
}

// FetchFile downloads one file, retrying rate limits and server errors.
func (f *Fetcher) FetchFile(ctx context.Context, relativePath string) (*FetchedFile, error) {
	fullPath := path.Join(f.basePath, relativePath)

	var fileContent *github.RepositoryContent
	operation := func() error {
		fc, _, resp, err := f.client.Repositories.GetContents(ctx, f.owner, f.repo, fullPath, nil)
		if err != nil {
			if transient(resp, err) {
				return err
			}
			return backoff.Permanent(err)
		}
		fileContent = fc
		return nil
	}
	if err := backoff.Retry(operation, backoff.WithContext(f.newBackOff(), ctx)); err != nil {
		return nil, fmt.Errorf("failed to get content of %s: %w", fullPath, err)
	}

	if fileContent == nil || fileContent.Content == nil {
		return nil, fmt.Errorf("no file content returned for %s", fullPath)
	}

	content, err := base64.StdEncoding.DecodeString(*fileContent.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode content of %s: %w", fullPath, err)
	}

	return &FetchedFile{
		Path:    relativePath,
		Content: content,
		SHA:     fileContent.GetSHA(),
	}, nil
}

// transient reports whether a failed request is worth retrying.
func transient(resp *github.Response, err error) bool {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return true
	}
	return resp != nil && resp.StatusCode >= http.StatusInternalServerError
}

// GetLatestCommitSHA returns the SHA of the newest commit touching the base path.
func (f *Fetcher) GetLatestCommitSHA(ctx context.Context) (string, error) {
	commits, _, err := f.client.Repositories.ListCommits(ctx, f.owner, f.repo, &github.CommitsListOptions{
		Path:        f.basePath,
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get latest commit: %w", err)
	}
	if len(commits) == 0 {
		return "", fmt.Errorf("no commits found for path %q", f.basePath)
	}
	if commits[0].SHA == nil {
		return "", fmt.Errorf("commit SHA is nil")
	}
	return *commits[0].SHA, nil
}

// Download writes every wanted file under dest, keeping the repository layout.
// Files that fail are reported in the result, in listing order, and do not stop
// the download.
func (f *Fetcher) Download(ctx context.Context, dest string) (*DownloadResult, error) {
	result := &DownloadResult{}

	sha, err := f.GetLatestCommitSHA(ctx)
	if err != nil {
		return nil, err
	}
	result.CommitSHA = sha

	paths, err := f.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	f.logger.Info("Found SDK files", "repository", f.Repository(), "count", len(paths), "commit", sha)

	errs := make([]error, len(paths))
	var g errgroup.Group
	g.SetLimit(downloadConcurrency)
	for i, p := range paths {
		g.Go(func() error {
			errs[i] = f.downloadFile(ctx, dest, p)
			return nil
		})
	}
	g.Wait()

	for i, p := range paths {
		if errs[i] != nil {
			f.logger.Warn("Failed to download SDK file", "path", p, "error", errs[i])
			result.Failed = append(result.Failed, FailedFile{Path: p, Reason: errs[i].Error()})
			continue
		}
		result.Files++
	}
	return result, nil
}

func (f *Fetcher) downloadFile(ctx context.Context, dest, relativePath string) error {
	local := filepath.FromSlash(relativePath)
	if !filepath.IsLocal(local) {
		return fmt.Errorf("refusing path outside destination: %q", relativePath)
	}

	fetched, err := f.FetchFile(ctx, relativePath)
	if err != nil {
		return err
	}

	target := filepath.Join(dest, local)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(target, fetched.Content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}
