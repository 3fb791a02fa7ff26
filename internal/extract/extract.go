// Package extract builds catalogs of C struct types and initialized values
// from a parsed translation unit.
//
// One depth-first pass drives two builders. The pass carries a single
// "current struct tag" slot: it is set whenever a tagged struct specifier
// is entered and deliberately never restored on exit, so the last tag seen
// wins until the next one. Field declarators seen under a tag extend that
// tag's type entry; initialized declarators become value entries, with
// brace initializers flattened positionally against the known field list.
package extract

import (
	"fmt"

	"github.com/hargabyte/cdump/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor runs the extraction pass over one parse result.
type Extractor struct {
	result  *parser.ParseResult
	catalog *Catalog
	curTag  string
	diags   []Diagnostic
}

// New creates an extractor for the given parse result.
func New(result *parser.ParseResult) *Extractor {
	return &Extractor{result: result}
}

// Extract walks the translation unit once and returns the catalogs.
// Calling Extract again restarts from a fresh state.
func (e *Extractor) Extract() *Catalog {
	e.catalog = NewCatalog()
	e.curTag = ""
	e.diags = nil

	e.result.WalkNodes(func(node *sitter.Node) bool {
		switch node.Type() {
		case "struct_specifier":
			if name := node.ChildByFieldName("name"); name != nil {
				e.curTag = e.result.NodeText(name)
			}
		case "field_declaration":
			e.recordFieldDeclaration(node)
		case "init_declarator":
			if err := e.recordDeclaration(node); err != nil {
				e.errorf("skipping declaration: %v", err)
			}
		}
		return true
	})

	return e.catalog
}

// Diagnostics returns the findings collected by the last Extract call.
func (e *Extractor) Diagnostics() []Diagnostic {
	return e.diags
}

// recordFieldDeclaration feeds the struct type catalog from one field
// declaration. Only bare field identifiers count; pointer, array, function
// and bitfield declarators are skipped.
func (e *Extractor) recordFieldDeclaration(node *sitter.Node) {
	for i := uint32(0); i < node.ChildCount(); i++ {
		if node.Child(int(i)).Type() == "bitfield_clause" {
			return
		}
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child.Type() == "field_identifier" {
			e.recordField(e.result.NodeText(child))
		}
	}
}

// recordField appends one field name to the current tag's type entry.
// With no current tag there is nothing to attach the field to: the call
// mutates nothing and leaves a warning.
func (e *Extractor) recordField(name string) {
	if e.curTag == "" {
		e.warnf("field %q seen with no enclosing struct tag", name)
		return
	}
	st := e.catalog.Types[e.curTag]
	if st == nil {
		st = &StructType{Tag: e.curTag}
		e.catalog.Types[e.curTag] = st
	}
	st.Fields = append(st.Fields, name)
}

// recordDeclaration feeds the value catalog from one init declarator.
// Scalars are first-write-wins; struct instances are looked up or created
// and their bindings appended, so a re-visited key accumulates.
func (e *Extractor) recordDeclaration(node *sitter.Node) error {
	value := node.ChildByFieldName("value")
	if value == nil {
		return nil
	}

	decl := node.ChildByFieldName("declarator")
	name := e.declaratorName(decl)
	if name == "" {
		got := "nothing"
		if decl != nil {
			got = decl.Type()
		}
		return &BadDeclaratorError{Got: got}
	}

	if value.Type() != "initializer_list" {
		key := ValueKey{Tag: e.curTag, Name: name}
		if _, exists := e.catalog.Values[key]; !exists {
			e.catalog.Values[key] = &Value{
				Kind:    ScalarValue,
				Context: e.curTag,
				Name:    name,
				Expr:    simplifyExpression(value, e.result.Source),
			}
		}
		return nil
	}

	// A brace initializer is only meaningful against a known field list.
	if e.curTag == "" {
		return nil
	}
	st := e.catalog.Types[e.curTag]
	if st == nil {
		return &UnknownStructTypeError{Tag: e.curTag, Instance: name}
	}

	key := ValueKey{Tag: e.curTag, Name: name}
	v := e.catalog.Values[key]
	if v == nil {
		v = &Value{Kind: StructValue, Context: e.curTag, Type: e.curTag, Name: name}
		e.catalog.Values[key] = v
	}
	if v.Kind != StructValue {
		return nil
	}

	// Zip-to-shortest: excess elements or excess fields are dropped.
	elems := initializerElements(value)
	n := min(len(elems), len(st.Fields))
	for i := 0; i < n; i++ {
		e.fill(v, st.Fields[i], elems[i])
	}
	return nil
}

// fill appends bindings for one initializer element. A nested brace group
// is flattened: every leaf inside it binds to the same outer field name.
// Designators are ignored; matching is purely positional.
func (e *Extractor) fill(v *Value, field string, elem *sitter.Node) {
	switch elem.Type() {
	case "initializer_list":
		for _, sub := range initializerElements(elem) {
			e.fill(v, field, sub)
		}
	case "initializer_pair":
		if val := elem.ChildByFieldName("value"); val != nil {
			e.fill(v, field, val)
		}
	default:
		v.Bindings = append(v.Bindings, FieldBinding{
			Field: field,
			Expr:  simplifyExpression(elem, e.result.Source),
		})
	}
}

// declaratorName resolves a declarator's name form to an identifier,
// looking through pointer and array wrappers. Returns "" for shapes with
// no simple name, such as function declarators.
func (e *Extractor) declaratorName(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier":
		return e.result.NodeText(node)
	case "pointer_declarator", "array_declarator":
		return e.declaratorName(node.ChildByFieldName("declarator"))
	default:
		return ""
	}
}

// initializerElements returns the elements of an initializer list in
// source order, without braces, commas, or comments.
func initializerElements(list *sitter.Node) []*sitter.Node {
	var elems []*sitter.Node
	for i := 0; i < int(list.NamedChildCount()); i++ {
		child := list.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		elems = append(elems, child)
	}
	return elems
}

func (e *Extractor) warnf(format string, args ...any) {
	e.diags = append(e.diags, Diagnostic{Level: LevelWarn, Message: fmt.Sprintf(format, args...)})
}

func (e *Extractor) errorf(format string, args ...any) {
	e.diags = append(e.diags, Diagnostic{Level: LevelError, Message: fmt.Sprintf(format, args...)})
}
