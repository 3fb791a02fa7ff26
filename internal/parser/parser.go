// Package parser provides tree-sitter based parsing for C source files.
//
// The parser package wraps the tree-sitter library with the C grammar and
// exposes the parse tree for read-only structural traversal. It performs no
// extraction itself; that is the job of the extract package.
package parser

import (
	"context"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// Parser wraps tree-sitter configured for C.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed tree and metadata.
type ParseResult struct {
	// Tree is the complete tree-sitter parse tree.
	Tree *sitter.Tree
	// Root is the root node (the translation unit).
	Root *sitter.Node
	// Source is the original source code that was parsed.
	Source []byte
	// FilePath is the path to the source file (empty for in-memory parsing).
	FilePath string
}

// NewParser creates a parser for C source.
func NewParser() (*Parser, error) {
	p := sitter.NewParser()
	p.SetLanguage(c.GetLanguage())
	return &Parser{parser: p}, nil
}

// Parse parses source code and returns the parse tree.
func (p *Parser) Parse(source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &ParseError{
			Message: err.Error(),
		}
	}

	return &ParseResult{
		Tree:   tree,
		Root:   tree.RootNode(),
		Source: source,
	}, nil
}

// ParseFile parses a file from disk.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}

	result, err := p.Parse(source)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
		}
		return nil, err
	}

	result.FilePath = path
	return result, nil
}

// Close releases parser resources.
// After calling Close, the parser should not be used.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

// Close releases the parse tree resources.
func (r *ParseResult) Close() {
	if r.Tree != nil {
		r.Tree.Close()
		r.Tree = nil
		r.Root = nil
	}
}

// HasErrors returns true if the parse tree contains syntax errors.
func (r *ParseResult) HasErrors() bool {
	if r.Root == nil {
		return false
	}
	return r.Root.HasError()
}

// FirstError returns the first error node in the tree, or nil if the
// parse succeeded. Used to report a location for syntax errors.
func (r *ParseResult) FirstError() *sitter.Node {
	var errNode *sitter.Node
	r.WalkNodes(func(node *sitter.Node) bool {
		if node.Type() == "ERROR" {
			errNode = node
			return false
		}
		return true
	})
	return errNode
}

// WalkNodes traverses the tree depth-first, calling the visitor function
// for each node. If the visitor returns false, traversal stops.
func (r *ParseResult) WalkNodes(visitor func(*sitter.Node) bool) {
	if r.Root == nil {
		return
	}
	walkNode(r.Root, visitor)
}

// walkNode is a helper for depth-first traversal.
func walkNode(node *sitter.Node, visitor func(*sitter.Node) bool) bool {
	if !visitor(node) {
		return false
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		if !walkNode(node.Child(int(i)), visitor) {
			return false
		}
	}
	return true
}

// NodeText returns the source text for a node.
func (r *ParseResult) NodeText(node *sitter.Node) string {
	if node == nil || r.Source == nil {
		return ""
	}
	return node.Content(r.Source)
}
