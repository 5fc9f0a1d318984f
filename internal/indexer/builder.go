// Package indexer builds the documentation index and keeps the copy the server
// answers queries from.
package indexer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/parser"
	"github.com/bull/demosdk-docs-mcp/internal/storage"
)

// Strategy names the source an index was built from.
type Strategy string

const (
	StrategyCache  Strategy = "cache"
	StrategyHTML   Strategy = "html"
	StrategySource Strategy = "source"
	// StrategyNone means every strategy came up empty.
	StrategyNone Strategy = "none"
)

// BuildResult is the outcome of a build. Index is never nil.
type BuildResult struct {
	Index    *docs.Index
	Strategy Strategy
	Duration time.Duration
	BuiltAt  time.Time
}

// BuilderConfig locates the inputs of each strategy.
type BuilderConfig struct {
	CacheFile  string // cached index; empty disables the cache
	APIRefDir  string // generated HTML root
	SDKPath    string // SDK sources; empty disables source parsing
	WriteCache bool   // save parsed indexes back to CacheFile
}

// Builder produces an index by trying each strategy in turn until one yields entries.
type Builder struct {
	cfg    BuilderConfig
	cache  *storage.FileCache
	parser *parser.Parser
	logger *slog.Logger
}

// NewBuilder creates a builder.
func NewBuilder(cfg BuilderConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Builder{
		cfg:    cfg,
		parser: parser.New(logger),
		logger: logger,
	}
	if cfg.CacheFile != "" {
		b.cache = storage.NewFileCache(cfg.CacheFile)
	}
	return b
}

type strategy struct {
	name Strategy
	run  func() (*docs.Index, error)
}

// Build tries the cache, then generated HTML, then SDK sources.
func (b *Builder) Build(ctx context.Context) (*BuildResult, error) {
	return b.run(ctx, []strategy{b.fromCache(), b.fromHTML(), b.fromSource()})
}

// Rebuild parses generated HTML or SDK sources, consulting the cache only when
// neither yields entries.
func (b *Builder) Rebuild(ctx context.Context) (*BuildResult, error) {
	return b.run(ctx, []strategy{b.fromHTML(), b.fromSource(), b.fromCache()})
}

// run returns the first non-empty index. Strategy failures are logged and skipped;
// only cancellation is returned as an error.
func (b *Builder) run(ctx context.Context, strategies []strategy) (*BuildResult, error) {
	start := time.Now()

	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		index, err := s.run()
		switch {
		case err != nil && isMissing(err):
			b.logger.Debug("Strategy input not available", "strategy", s.name, "error", err)
			continue
		case err != nil:
			b.logger.Warn("Strategy failed", "strategy", s.name, "error", err)
			continue
		case index == nil || index.Empty():
			b.logger.Info("Strategy produced no entries", "strategy", s.name)
			continue
		}

		if s.name != StrategyCache {
			b.writeBack(index)
		}

		result := &BuildResult{
			Index:    index,
			Strategy: s.name,
			Duration: time.Since(start),
			BuiltAt:  time.Now(),
		}
		b.logger.Info("Documentation index built",
			"strategy", s.name,
			"items", index.TotalCount(),
			"duration", result.Duration,
		)
		return result, nil
	}

	b.logger.Warn("No documentation found, run the update command first")
	return &BuildResult{
		Index:    docs.NewIndex(),
		Strategy: StrategyNone,
		Duration: time.Since(start),
		BuiltAt:  time.Now(),
	}, nil
}

func isMissing(err error) bool {
	return errors.Is(err, storage.ErrCacheNotFound) || errors.Is(err, parser.ErrMissingInput)
}

func (b *Builder) fromCache() strategy {
	return strategy{StrategyCache, func() (*docs.Index, error) {
		if b.cache == nil {
			return nil, storage.ErrCacheNotFound
		}
		return b.cache.Load()
	}}
}

func (b *Builder) fromHTML() strategy {
	return strategy{StrategyHTML, func() (*docs.Index, error) {
		if b.cfg.APIRefDir == "" {
			return nil, parser.ErrMissingInput
		}
		return b.parser.ParseGeneratedHTML(b.cfg.APIRefDir)
	}}
}

func (b *Builder) fromSource() strategy {
	return strategy{StrategySource, func() (*docs.Index, error) {
		if b.cfg.SDKPath == "" {
			return nil, parser.ErrMissingInput
		}
		return b.parser.ParseSourceFallback(b.cfg.SDKPath)
	}}
}

func (b *Builder) writeBack(index *docs.Index) {
	if !b.cfg.WriteCache || b.cache == nil {
		return
	}
	if err := b.cache.Save(index); err != nil {
		b.logger.Warn("Failed to save documentation cache", "path", b.cache.Path(), "error", err)
		return
	}
	b.logger.Info("Saved documentation cache", "path", b.cache.Path())
}
