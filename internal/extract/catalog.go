package extract

import "sort"

// StructType is a cataloged struct definition: a tag and the ordered list
// of simple field names seen under it. Fields accumulate in first-seen
// order across the whole translation unit; a tag defined twice appends
// its fields again rather than replacing them.
type StructType struct {
	Tag    string   `json:"tag" yaml:"tag"`
	Fields []string `json:"fields" yaml:"fields"`
}

// ValueKind identifies the shape of a cataloged value.
type ValueKind string

const (
	// ScalarValue is a single name bound to one expression.
	ScalarValue ValueKind = "scalar"
	// StructValue is a struct instance with ordered field bindings.
	StructValue ValueKind = "struct"
)

// FieldBinding pairs a field name with a simplified expression. Bindings
// are a sequence, not a map: flattening can bind the same field name more
// than once.
type FieldBinding struct {
	Field string     `json:"field" yaml:"field"`
	Expr  Expression `json:"expr" yaml:"expr"`
}

// Value is a cataloged declaration: either a scalar binding or a struct
// instance. Context is the struct tag that was current when the
// declaration was seen (empty when none was); it is part of the value's
// identity, not a C scope.
type Value struct {
	Kind     ValueKind      `json:"kind" yaml:"kind"`
	Context  string         `json:"context,omitempty" yaml:"context,omitempty"`
	Type     string         `json:"type,omitempty" yaml:"type,omitempty"`
	Name     string         `json:"name" yaml:"name"`
	Expr     Expression     `json:"expr,omitempty" yaml:"expr,omitempty"`
	Bindings []FieldBinding `json:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// ValueKey identifies a value in the catalog. Tag is empty when no struct
// tag was current at the declaration site.
type ValueKey struct {
	Tag  string
	Name string
}

// Catalog holds the two outputs of one extraction pass.
type Catalog struct {
	Types  map[string]*StructType
	Values map[ValueKey]*Value
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Types:  make(map[string]*StructType),
		Values: make(map[ValueKey]*Value),
	}
}

// SortedTypes returns the struct types ordered by tag. Map iteration order
// is not stable across runs; callers that render or persist the catalog
// use this instead.
func (c *Catalog) SortedTypes() []*StructType {
	types := make([]*StructType, 0, len(c.Types))
	for _, st := range c.Types {
		types = append(types, st)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Tag < types[j].Tag })
	return types
}

// SortedValues returns the values ordered by (context, name).
func (c *Catalog) SortedValues() []*Value {
	values := make([]*Value, 0, len(c.Values))
	for _, v := range c.Values {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Context != values[j].Context {
			return values[i].Context < values[j].Context
		}
		return values[i].Name < values[j].Name
	})
	return values
}
