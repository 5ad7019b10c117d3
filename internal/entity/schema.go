package entity

import "sort"

// PropertyKind is the declared type of a destination database property.
type PropertyKind string

const (
	KindTitle       PropertyKind = "title"
	KindRichText    PropertyKind = "rich_text"
	KindSelect      PropertyKind = "select"
	KindMultiSelect PropertyKind = "multi_select"
	KindEmail       PropertyKind = "email"
	KindPhone       PropertyKind = "phone_number"
)

// DestinationSchema is the destination database's property name → kind
// mapping. It is immutable once constructed.
type DestinationSchema struct {
	kinds map[string]PropertyKind
}

// NewDestinationSchema copies kinds into a new schema.
func NewDestinationSchema(kinds map[string]PropertyKind) DestinationSchema {
	cp := make(map[string]PropertyKind, len(kinds))
	for k, v := range kinds {
		cp[k] = v
	}
	return DestinationSchema{kinds: cp}
}

// Kind returns the declared kind of a property.
func (s DestinationSchema) Kind(name string) (PropertyKind, bool) {
	k, ok := s.kinds[name]
	return k, ok
}

// Declares reports whether the schema declares name with exactly kind.
func (s DestinationSchema) Declares(name string, kind PropertyKind) bool {
	k, ok := s.kinds[name]
	return ok && k == kind
}

// Len returns the number of declared properties.
func (s DestinationSchema) Len() int { return len(s.kinds) }

// Names returns the declared property names, sorted.
func (s DestinationSchema) Names() []string {
	names := make([]string, 0, len(s.kinds))
	for n := range s.kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Kinds returns a copy of the underlying mapping.
func (s DestinationSchema) Kinds() map[string]PropertyKind {
	cp := make(map[string]PropertyKind, len(s.kinds))
	for k, v := range s.kinds {
		cp[k] = v
	}
	return cp
}
