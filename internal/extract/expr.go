package extract

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ExprKind identifies the simplified form of an initializer expression.
type ExprKind string

const (
	// ExprInteger is an integer constant, kept as its lexical text.
	ExprInteger ExprKind = "integer"
	// ExprFloat is a floating-point constant, kept as its lexical text.
	ExprFloat ExprKind = "float"
	// ExprChar is a character constant, quotes stripped.
	ExprChar ExprKind = "char"
	// ExprString is one or more adjacent string literals, quotes stripped,
	// each fragment kept as a separate part in source order.
	ExprString ExprKind = "string"
	// ExprOpaque is any other expression form (calls, arithmetic, casts,
	// identifiers), captured as its source text so nothing is lost.
	ExprOpaque ExprKind = "opaque"
)

// Expression is the simplified representation of an initializer expression.
// Numeric and character constants are never evaluated: 0x10 and 16 stay
// distinct texts.
type Expression struct {
	Kind  ExprKind `json:"kind" yaml:"kind"`
	Text  string   `json:"text,omitempty" yaml:"text,omitempty"`
	Parts []string `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// String renders the expression for the text dump, e.g. Integer("0x1A").
func (x Expression) String() string {
	switch x.Kind {
	case ExprInteger:
		return fmt.Sprintf("Integer(%q)", x.Text)
	case ExprFloat:
		return fmt.Sprintf("Float(%q)", x.Text)
	case ExprChar:
		return fmt.Sprintf("Character(%q)", x.Text)
	case ExprString:
		quoted := make([]string, len(x.Parts))
		for i, p := range x.Parts {
			quoted[i] = fmt.Sprintf("%q", p)
		}
		return fmt.Sprintf("String([%s])", strings.Join(quoted, ", "))
	default:
		return fmt.Sprintf("Opaque(%s)", x.Text)
	}
}

// simplifyExpression maps an expression node to its simplified form.
// It is total: any node it does not recognize becomes ExprOpaque.
func simplifyExpression(node *sitter.Node, source []byte) Expression {
	switch node.Type() {
	case "number_literal":
		text := node.Content(source)
		return Expression{Kind: numberKind(text), Text: text}
	case "char_literal":
		return Expression{Kind: ExprChar, Text: stripQuotes(node.Content(source), '\'')}
	case "string_literal":
		return Expression{Kind: ExprString, Parts: []string{stripQuotes(node.Content(source), '"')}}
	case "concatenated_string":
		var parts []string
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child.Type() == "string_literal" {
				parts = append(parts, stripQuotes(child.Content(source), '"'))
			}
		}
		return Expression{Kind: ExprString, Parts: parts}
	default:
		text := node.Content(source)
		if text == "" {
			text = node.String()
		}
		return Expression{Kind: ExprOpaque, Text: text}
	}
}

// numberKind classifies a C number literal by its lexical text alone.
// Hex literals are floats only with a '.' or a binary exponent; decimal
// literals are floats with a '.' or an exponent.
func numberKind(text string) ExprKind {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "0x") {
		if strings.ContainsAny(lower, ".p") {
			return ExprFloat
		}
		return ExprInteger
	}
	if strings.ContainsAny(lower, ".e") {
		return ExprFloat
	}
	return ExprInteger
}

// stripQuotes removes a matching pair of surrounding quote characters.
// Text that is not quoted as expected is returned unchanged.
func stripQuotes(text string, quote byte) string {
	if len(text) >= 2 && text[0] == quote && text[len(text)-1] == quote {
		return text[1 : len(text)-1]
	}
	return text
}
