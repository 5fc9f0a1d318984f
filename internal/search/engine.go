// Package search ranks documentation entries against free-text queries and answers
// exact lookups over a documentation index.
package search

import (
	"sort"
	"strings"
	"sync"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

const (
	// DefaultLimit is used when a search does not ask for a limit.
	DefaultLimit = 10
	// MaxLimit is the largest limit callers should pass through from user input.
	MaxLimit = 50
)

// Points awarded per matching rule. Name tiers are exclusive; everything else adds up.
const (
	scoreNameExact         = 100
	scoreNamePrefix        = 75
	scoreNameContains      = 50
	scoreDescription       = 20
	scoreContent           = 10
	scoreMethodExact       = 80
	scoreMethodContains    = 40
	scoreMethodDescription = 15
	scorePropertyExact     = 70
	scorePropertyContains  = 35
)

// Options narrows a search.
type Options struct {
	Kind  docs.Kind // empty searches every kind
	Limit int       // maximum results; zero or negative selects DefaultLimit
}

// Result is a scored copy of an index entry.
type Result struct {
	Entry    docs.Entry
	Score    int
	Category docs.Kind
}

// Engine searches one immutable index. It is safe for concurrent use.
type Engine struct {
	index *docs.Index

	suggestOnce sync.Once
	suggester   *Suggester
	suggestErr  error
}

// New returns an engine over index. A nil index behaves as an empty one.
func New(index *docs.Index) *Engine {
	if index == nil {
		index = docs.NewIndex()
	}
	return &Engine{index: index}
}

// Index returns the index the engine reads from.
func (e *Engine) Index() *docs.Index {
	return e.index
}

// Stats returns per-kind entry counts.
func (e *Engine) Stats() docs.Stats {
	return e.index.Stats()
}

// Search scores every entry of the selected kinds against query and returns the
// non-zero matches, highest score first. Equal scores keep index order. A query that
// is empty after trimming yields no results.
func (e *Engine) Search(query string, opts Options) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	kinds := docs.Kinds
	if opts.Kind != "" {
		kinds = []docs.Kind{opts.Kind}
	}

	var results []Result
	for _, kind := range kinds {
		for _, entry := range e.index.Entries(kind) {
			if score := Score(entry, q); score > 0 {
				results = append(results, Result{Entry: entry.Clone(), Score: score, Category: kind})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Score computes the relevance of entry for an already lowercased, trimmed query.
func Score(entry docs.Entry, q string) int {
	score := 0

	name := strings.ToLower(entry.Name)
	fullName := strings.ToLower(entry.FullName)
	switch {
	case name == q || fullName == q:
		score += scoreNameExact
	case strings.HasPrefix(name, q) || strings.HasPrefix(fullName, q):
		score += scoreNamePrefix
	case strings.Contains(name, q) || strings.Contains(fullName, q):
		score += scoreNameContains
	}

	if strings.Contains(strings.ToLower(entry.Description), q) {
		score += scoreDescription
	}
	if strings.Contains(strings.ToLower(entry.Content), q) {
		score += scoreContent
	}

	for _, m := range entry.Methods() {
		methodName := strings.ToLower(m.Name)
		switch {
		case methodName == q:
			score += scoreMethodExact
		case strings.Contains(methodName, q):
			score += scoreMethodContains
		}
		if m.Description != "" && strings.Contains(strings.ToLower(m.Description), q) {
			score += scoreMethodDescription
		}
	}

	for _, p := range entry.Properties() {
		propName := strings.ToLower(p.Name)
		switch {
		case propName == q:
			score += scorePropertyExact
		case strings.Contains(propName, q):
			score += scorePropertyContains
		}
	}

	return score
}
