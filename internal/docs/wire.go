package docs

import (
	"encoding/json"
	"fmt"
)

// wireEntry is the flat record stored in the cache file. The member and signature
// fields are written only for the kinds that carry them.
type wireEntry struct {
	Type        Kind        `json:"type"`
	Name        string      `json:"name"`
	FullName    string      `json:"fullName"`
	Description string      `json:"description"`
	Methods     []Method    `json:"methods,omitempty"`
	Properties  []Property  `json:"properties,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	Returns     string      `json:"returns,omitempty"`
	FilePath    string      `json:"filePath,omitempty"`
	Content     string      `json:"content"`
}

// wireIndex is the cache file layout: one array per kind.
type wireIndex struct {
	Classes    []wireEntry `json:"classes"`
	Interfaces []wireEntry `json:"interfaces"`
	Functions  []wireEntry `json:"functions"`
	Enums      []wireEntry `json:"enums"`
	Types      []wireEntry `json:"types"`
	Variables  []wireEntry `json:"variables"`
}

func (w *wireIndex) collection(k Kind) *[]wireEntry {
	switch k {
	case KindClass:
		return &w.Classes
	case KindInterface:
		return &w.Interfaces
	case KindFunction:
		return &w.Functions
	case KindEnum:
		return &w.Enums
	case KindType:
		return &w.Types
	case KindVariable:
		return &w.Variables
	}
	return nil
}

func toWire(e Entry) wireEntry {
	w := wireEntry{
		Type:        e.Kind,
		Name:        e.Name,
		FullName:    e.FullName,
		Description: e.Description,
		FilePath:    e.FilePath,
		Content:     e.Content,
	}
	if e.Members != nil {
		w.Methods = e.Members.Methods
		w.Properties = e.Members.Properties
	}
	if e.Signature != nil {
		w.Parameters = e.Signature.Parameters
		w.Returns = e.Signature.Returns
	}
	return w
}

func fromWire(kind Kind, w wireEntry) (Entry, error) {
	if w.Type != "" && w.Type != kind {
		return Entry{}, fmt.Errorf("%w: %q stored under %s", ErrKindMismatch, w.Name, kind.Collection())
	}
	e := NewEntry(kind, w.Name, w.FullName)
	e.Description = w.Description
	e.FilePath = w.FilePath
	e.Content = w.Content
	if e.FullName == "" {
		e.FullName = e.Name
	}
	if e.Members != nil {
		e.Members.Methods = w.Methods
		e.Members.Properties = w.Properties
	}
	if e.Signature != nil {
		e.Signature.Parameters = w.Parameters
		e.Signature.Returns = w.Returns
	}
	return e, nil
}

// MarshalJSON writes the index in the cache file layout. Every collection is
// written as an array, never null.
func (x *Index) MarshalJSON() ([]byte, error) {
	var w wireIndex
	for _, k := range Kinds {
		entries := x.Entries(k)
		out := make([]wireEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, toWire(e))
		}
		*w.collection(k) = out
	}
	return json.Marshal(w)
}

// UnmarshalJSON replaces the index contents with the decoded cache file.
func (x *Index) UnmarshalJSON(data []byte) error {
	var w wireIndex
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	fresh := NewIndex()
	for _, k := range Kinds {
		for i, we := range *w.collection(k) {
			e, err := fromWire(k, we)
			if err != nil {
				return err
			}
			if err := fresh.Add(e); err != nil {
				return fmt.Errorf("%s[%d]: %w", k.Collection(), i, err)
			}
		}
	}
	x.collections = fresh.collections
	return nil
}
