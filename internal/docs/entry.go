// Package docs defines the parsed SDK documentation model: entries of six kinds
// and the index that groups them by kind.
package docs

import (
	"fmt"
	"strings"
)

// Kind tags the variant of an Entry.
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindFunction  Kind = "function"
	KindEnum      Kind = "enum"
	KindType      Kind = "type"
	KindVariable  Kind = "variable"
)

// Kinds lists every kind in index traversal order.
var Kinds = []Kind{KindClass, KindInterface, KindFunction, KindEnum, KindType, KindVariable}

// ParseKind converts a kind name ("class") or collection name ("classes") into a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if name == string(k) || name == k.Collection() {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Valid reports whether k is one of the six known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Collection returns the plural name used for the kind's collection in the cache file.
func (k Kind) Collection() string {
	if k == KindClass {
		return "classes"
	}
	return string(k) + "s"
}

// HasMembers reports whether entries of this kind carry methods and properties.
func (k Kind) HasMembers() bool {
	return k == KindClass || k == KindInterface
}

// HasSignature reports whether entries of this kind carry parameters and a return type.
func (k Kind) HasSignature() bool {
	return k == KindFunction
}

// Method is a documented method of a class or interface.
type Method struct {
	Name        string `json:"name"`
	Signature   string `json:"signature"`
	Description string `json:"description"`
}

// Property is a documented property of a class or interface.
type Property struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Parameter is a documented function parameter.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Members is the class/interface payload of an Entry.
type Members struct {
	Methods    []Method
	Properties []Property
}

// Signature is the function payload of an Entry.
type Signature struct {
	Parameters []Parameter
	Returns    string
}

// Entry is one parsed documentation unit.
//
// Members is set only for classes and interfaces, Signature only for functions.
// Validate enforces that pairing.
type Entry struct {
	Kind        Kind
	Name        string
	FullName    string
	Description string
	Content     string
	FilePath    string

	Members   *Members
	Signature *Signature
}

// NewEntry returns an entry of the given kind with the payload that kind requires.
func NewEntry(kind Kind, name, fullName string) Entry {
	e := Entry{Kind: kind, Name: name, FullName: fullName}
	switch {
	case kind.HasMembers():
		e.Members = &Members{}
	case kind.HasSignature():
		e.Signature = &Signature{}
	}
	return e
}

// Methods returns the entry's methods, or nil for kinds without members.
func (e Entry) Methods() []Method {
	if e.Members == nil {
		return nil
	}
	return e.Members.Methods
}

// Properties returns the entry's properties, or nil for kinds without members.
func (e Entry) Properties() []Property {
	if e.Members == nil {
		return nil
	}
	return e.Members.Properties
}

// Parameters returns the entry's parameters, or nil for non-functions.
func (e Entry) Parameters() []Parameter {
	if e.Signature == nil {
		return nil
	}
	return e.Signature.Parameters
}

// Returns returns the function return type, or "" for non-functions.
func (e Entry) Returns() string {
	if e.Signature == nil {
		return ""
	}
	return e.Signature.Returns
}

// Validate checks the kind tag and that only the payload matching it is present.
func (e Entry) Validate() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
	if e.Name == "" {
		return fmt.Errorf("%w: %s entry", ErrMissingName, e.Kind)
	}
	if e.Members != nil && !e.Kind.HasMembers() {
		return fmt.Errorf("%w: %s %q carries members", ErrKindMismatch, e.Kind, e.Name)
	}
	if e.Signature != nil && !e.Kind.HasSignature() {
		return fmt.Errorf("%w: %s %q carries a signature", ErrKindMismatch, e.Kind, e.Name)
	}
	return nil
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	c := e
	if e.Members != nil {
		c.Members = &Members{
			Methods:    append([]Method(nil), e.Members.Methods...),
			Properties: append([]Property(nil), e.Members.Properties...),
		}
	}
	if e.Signature != nil {
		c.Signature = &Signature{
			Parameters: append([]Parameter(nil), e.Signature.Parameters...),
			Returns:    e.Signature.Returns,
		}
	}
	return c
}

// Summary projects the entry to the fields used by listings.
func (e Entry) Summary() Summary {
	return Summary{Name: e.Name, FullName: e.FullName, Description: e.Description}
}

// MatchesName reports whether name equals the entry's name or full name, ignoring case.
func (e Entry) MatchesName(name string) bool {
	return strings.EqualFold(e.Name, name) || strings.EqualFold(e.FullName, name)
}

// Summary is the listing projection of an Entry.
type Summary struct {
	Name        string `json:"name"`
	FullName    string `json:"fullName"`
	Description string `json:"description"`
}
