package indexer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
	"github.com/bull/demosdk-docs-mcp/internal/search"
)

// ErrNotLoaded is returned by Health when no documentation has been loaded.
var ErrNotLoaded = errors.New("documentation not loaded")

// Status describes the index currently served.
type Status struct {
	Initialized bool
	Strategy    Strategy
	BuiltAt     time.Time
	Duration    time.Duration
	Stats       docs.Stats
}

type loaded struct {
	engine *search.Engine
	result *BuildResult
}

// Library owns the index the server answers from. The first EnsureInitialized call
// builds it; Reload replaces it wholesale. Readers always see a complete index:
// queries running during a reload keep the engine they started with.
type Library struct {
	builder *Builder
	logger  *slog.Logger

	mu      sync.Mutex // serializes builds
	current atomic.Pointer[loaded]
	empty   *search.Engine
}

// NewLibrary creates a library that builds with builder.
func NewLibrary(builder *Builder, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		builder: builder,
		logger:  logger,
		empty:   search.New(nil),
	}
}

// EnsureInitialized builds the index unless one is already loaded. Concurrent callers
// wait for the same build. A cancelled build leaves the library uninitialized.
func (l *Library) EnsureInitialized(ctx context.Context) error {
	if l.current.Load() != nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current.Load() != nil {
		return nil
	}

	result, err := l.builder.Build(ctx)
	if err != nil {
		return err
	}
	l.swap(result)
	return nil
}

// Reload rebuilds from generated HTML or sources and swaps the new index in.
// On error the previous index stays in place. A rebuild that finds no documentation
// never replaces a loaded index; it fails with ErrNoDocumentation instead.
func (l *Library) Reload(ctx context.Context) (*BuildResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	result, err := l.builder.Rebuild(ctx)
	if err != nil {
		return nil, err
	}
	if result.Strategy == StrategyNone {
		if cur := l.current.Load(); cur != nil && !cur.engine.Index().Empty() {
			l.logger.Warn("Reload found no documentation, keeping current index",
				"strategy", cur.result.Strategy, "items", cur.engine.Index().TotalCount())
			return nil, ErrNoDocumentation
		}
	}
	l.swap(result)
	return result, nil
}

func (l *Library) swap(result *BuildResult) {
	l.current.Store(&loaded{engine: search.New(result.Index), result: result})
	l.logger.Info("Documentation index loaded", "strategy", result.Strategy, "items", result.Index.TotalCount())
}

// Engine returns the engine over the current index, or an empty engine before
// initialization.
func (l *Library) Engine() *search.Engine {
	if cur := l.current.Load(); cur != nil {
		return cur.engine
	}
	return l.empty
}

// Status reports what is loaded.
func (l *Library) Status() Status {
	cur := l.current.Load()
	if cur == nil {
		return Status{}
	}
	return Status{
		Initialized: true,
		Strategy:    cur.result.Strategy,
		BuiltAt:     cur.result.BuiltAt,
		Duration:    cur.result.Duration,
		Stats:       cur.engine.Stats(),
	}
}

// Health initializes the library if needed and fails when the index has no entries.
func (l *Library) Health(ctx context.Context) error {
	if err := l.EnsureInitialized(ctx); err != nil {
		return err
	}
	if l.Engine().Index().Empty() {
		return ErrNotLoaded
	}
	return nil
}
