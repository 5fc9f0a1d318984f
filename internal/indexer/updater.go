package indexer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/parser"
	"github.com/bull/demosdk-docs-mcp/internal/storage"
)

var (
	ErrSDKNotFound        = errors.New("DemoSDK not found")
	ErrNoDocumentation    = errors.New("no documentation items found")
	ErrTypeDocUnavailable = errors.New("typedoc not available")
)

// DefaultTypeDocTimeout bounds a documentation generation run.
const DefaultTypeDocTimeout = 60 * time.Second

// maxStderrLog bounds the generator output kept in logs and errors.
const maxStderrLog = 500

// UpdaterConfig configures documentation regeneration.
type UpdaterConfig struct {
	SDKCandidates  []string // checked in order; the first existing directory is used
	TypeDocBin     string   // executable name or path; empty skips generation
	TypeDocTimeout time.Duration
	APIRefDir      string // generated HTML output
	CacheFile      string
}

// UpdateResult reports what an update did.
type UpdateResult struct {
	SDKPath    string
	Generated  bool // TypeDoc ran and produced usable output
	Strategy   Strategy
	Stats      docs.Stats
	CacheFile  string
	Duration   time.Duration
	TypeDocErr error // why generation was skipped or failed, if it was
}

// Updater regenerates the API reference with TypeDoc, parses it (or the SDK sources
// when generation is unavailable) and saves the result as the documentation cache.
type Updater struct {
	cfg    UpdaterConfig
	parser *parser.Parser
	cache  *storage.FileCache
	logger *slog.Logger
}

// NewUpdater creates an updater.
func NewUpdater(cfg UpdaterConfig, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TypeDocTimeout <= 0 {
		cfg.TypeDocTimeout = DefaultTypeDocTimeout
	}
	return &Updater{
		cfg:    cfg,
		parser: parser.New(logger),
		cache:  storage.NewFileCache(cfg.CacheFile),
		logger: logger,
	}
}

// FindSDK returns the first candidate SDK directory that exists.
func (u *Updater) FindSDK() (string, error) {
	for _, p := range u.cfg.SDKCandidates {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			u.logger.Info("Found DemoSDK", "path", p)
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: looked in %s", ErrSDKNotFound, strings.Join(u.cfg.SDKCandidates, ", "))
}

// typeDocPath resolves the configured generator to an executable path.
func (u *Updater) typeDocPath() (string, error) {
	bin := u.cfg.TypeDocBin
	if bin == "" {
		return "", fmt.Errorf("%w: no generator configured", ErrTypeDocUnavailable)
	}
	if strings.ContainsRune(bin, filepath.Separator) {
		if _, err := os.Stat(bin); err != nil {
			return "", fmt.Errorf("%w: %s", ErrTypeDocUnavailable, bin)
		}
		return bin, nil
	}
	p, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTypeDocUnavailable, err)
	}
	return p, nil
}

// RunTypeDoc generates the HTML reference for sdkPath into the configured output
// directory. The process is killed when it outlives the configured timeout.
func (u *Updater) RunTypeDoc(ctx context.Context, sdkPath string) error {
	bin, err := u.typeDocPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(u.cfg.APIRefDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, u.cfg.TypeDocTimeout)
	defer cancel()

	args := []string{"--entryPointStrategy", "expand", "--out", u.cfg.APIRefDir, sdkPath}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.WaitDelay = 2 * time.Second
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	u.logger.Info("Generating API reference", "command", bin, "args", strings.Join(args, " "))
	err = cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("typedoc timed out after %s: %w", u.cfg.TypeDocTimeout, ctx.Err())
	}
	if err != nil {
		return fmt.Errorf("typedoc failed: %w: %s", err, clipStderr(stderr.String()))
	}
	return nil
}

// Update locates the SDK, regenerates and parses its documentation and saves the
// cache. It fails with ErrSDKNotFound or ErrNoDocumentation; a failing generator only
// switches parsing to the SDK sources.
func (u *Updater) Update(ctx context.Context) (*UpdateResult, error) {
	start := time.Now()

	sdkPath, err := u.FindSDK()
	if err != nil {
		return nil, err
	}
	result := &UpdateResult{SDKPath: sdkPath, CacheFile: u.cache.Path()}

	if err := u.RunTypeDoc(ctx, sdkPath); err != nil {
		result.TypeDocErr = err
		if errors.Is(err, ErrTypeDocUnavailable) {
			u.logger.Warn("TypeDoc not installed, using source parsing only", "error", err)
		} else {
			u.logger.Warn("TypeDoc generation failed", "error", err)
		}
	} else if info := parser.InspectGeneratedHTML(u.cfg.APIRefDir); info.Usable() {
		result.Generated = true
		u.logger.Info("TypeDoc generation successful", "generator", info.Generator)
	} else {
		u.logger.Warn("TypeDoc finished without usable output", "dir", u.cfg.APIRefDir)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var index *docs.Index
	if result.Generated {
		index, err = u.parser.ParseGeneratedHTML(u.cfg.APIRefDir)
		if err != nil {
			u.logger.Warn("Failed to parse generated HTML", "error", err)
		}
		result.Strategy = StrategyHTML
	}
	if index == nil || index.Empty() {
		u.logger.Info("Falling back to source file parsing", "sdk", sdkPath)
		index, err = u.parser.ParseSourceFallback(sdkPath)
		if err != nil {
			u.logger.Warn("Failed to parse SDK sources", "error", err)
		}
		result.Strategy = StrategySource
	}

	if index == nil || index.Empty() {
		return nil, fmt.Errorf("%w in %s", ErrNoDocumentation, sdkPath)
	}
	result.Stats = index.Stats()

	if err := u.cache.Save(index); err != nil {
		return nil, fmt.Errorf("save documentation index: %w", err)
	}
	result.Duration = time.Since(start)

	u.logger.Info("Documentation update complete",
		"items", result.Stats.Total,
		"classes", result.Stats.Classes,
		"interfaces", result.Stats.Interfaces,
		"functions", result.Stats.Functions,
		"enums", result.Stats.Enums,
		"cache", result.CacheFile,
	)
	return result, nil
}

// clipStderr trims generator output to maxStderrLog bytes without splitting a
// multi-byte character.
func clipStderr(out string) string {
	if len(out) > maxStderrLog {
		out = strings.ToValidUTF8(out[:maxStderrLog], "")
	}
	return strings.TrimSpace(out)
}
