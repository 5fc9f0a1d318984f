package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

// maxFuzziness is the largest edit distance bleve accepts for fuzzy queries.
const maxFuzziness = 2

// Suggester proposes entry names close to a misspelled query. It keeps an
// in-memory bleve index over entry names.
type Suggester struct {
	index bleve.Index
	names map[string]string // document ID -> entry name
}

// NewSuggester indexes the names of every entry in index.
func NewSuggester(index *docs.Index) (*Suggester, error) {
	mem, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create suggestion index: %w", err)
	}

	s := &Suggester{index: mem, names: make(map[string]string)}
	batch := mem.NewBatch()
	for _, kind := range docs.Kinds {
		for i, entry := range index.Entries(kind) {
			id := fmt.Sprintf("%s/%d", kind, i)
			s.names[id] = entry.Name
			if err := batch.Index(id, map[string]interface{}{
				"name": strings.ToLower(entry.Name),
				"kind": string(kind),
			}); err != nil {
				return nil, fmt.Errorf("index name %q: %w", entry.Name, err)
			}
		}
	}
	if err := mem.Batch(batch); err != nil {
		return nil, fmt.Errorf("build suggestion index: %w", err)
	}
	return s, nil
}

// Suggest returns up to n distinct entry names that share a prefix with query or are
// within two edits of it, best match first.
func (s *Suggester) Suggest(query string, n int) ([]string, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" || n <= 0 {
		return nil, nil
	}

	fuzzy := bleve.NewFuzzyQuery(term)
	fuzzy.SetField("name")
	fuzzy.SetFuzziness(maxFuzziness)
	prefix := bleve.NewPrefixQuery(term)
	prefix.SetField("name")

	// Over-fetch so duplicate names across kinds still leave n distinct suggestions.
	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(fuzzy, prefix), n*3, 0, false)
	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("suggest %q: %w", query, err)
	}

	seen := make(map[string]bool)
	var out []string
	for _, hit := range res.Hits {
		name := s.names[hit.ID]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

// Close releases the underlying index.
func (s *Suggester) Close() error {
	return s.index.Close()
}

// Suggest returns names close to query, building the suggestion index on first use.
func (e *Engine) Suggest(query string, n int) ([]string, error) {
	e.suggestOnce.Do(func() {
		e.suggester, e.suggestErr = NewSuggester(e.index)
	})
	if e.suggestErr != nil {
		return nil, e.suggestErr
	}
	return e.suggester.Suggest(query, n)
}
