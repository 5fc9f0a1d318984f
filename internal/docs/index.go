package docs

import "fmt"

// Index holds the documentation entries grouped by kind.
//
// An Index is filled while it is being built and treated as read-only once handed
// to a search engine. Rebuilds produce a new Index rather than editing one in place.
type Index struct {
	collections map[Kind][]Entry
}

// Stats reports the number of entries per kind.
type Stats struct {
	Classes    int `json:"classes"`
	Interfaces int `json:"interfaces"`
	Functions  int `json:"functions"`
	Enums      int `json:"enums"`
	Types      int `json:"types"`
	Variables  int `json:"variables"`
	Total      int `json:"total"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{collections: make(map[Kind][]Entry, len(Kinds))}
}

// Add validates the entry and appends it to its kind's collection.
func (x *Index) Add(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if x.collections == nil {
		x.collections = make(map[Kind][]Entry, len(Kinds))
	}
	x.collections[e.Kind] = append(x.collections[e.Kind], e)
	return nil
}

// Merge appends every entry of other into x.
func (x *Index) Merge(other *Index) error {
	if other == nil {
		return nil
	}
	for _, k := range Kinds {
		for _, e := range other.collections[k] {
			if err := x.Add(e); err != nil {
				return fmt.Errorf("merge %s: %w", k.Collection(), err)
			}
		}
	}
	return nil
}

// Entries returns the collection for kind. The returned slice must not be modified.
func (x *Index) Entries(kind Kind) []Entry {
	if x == nil {
		return nil
	}
	return x.collections[kind]
}

// Count returns the number of entries of the given kind.
func (x *Index) Count(kind Kind) int {
	return len(x.Entries(kind))
}

// TotalCount returns the number of entries across all kinds.
func (x *Index) TotalCount() int {
	total := 0
	for _, k := range Kinds {
		total += x.Count(k)
	}
	return total
}

// Empty reports whether the index has no entries.
func (x *Index) Empty() bool {
	return x.TotalCount() == 0
}

// Stats returns per-kind counts.
func (x *Index) Stats() Stats {
	s := Stats{
		Classes:    x.Count(KindClass),
		Interfaces: x.Count(KindInterface),
		Functions:  x.Count(KindFunction),
		Enums:      x.Count(KindEnum),
		Types:      x.Count(KindType),
		Variables:  x.Count(KindVariable),
	}
	s.Total = s.Classes + s.Interfaces + s.Functions + s.Enums + s.Types + s.Variables
	return s
}
