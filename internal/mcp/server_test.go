package mcp

import (
	"strings"
	"testing"

	"github.com/hargabyte/cdump/internal/extract"
	"github.com/hargabyte/cdump/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	storeDB, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	catalog := extract.NewCatalog()
	catalog.Types["Point"] = &extract.StructType{Tag: "Point", Fields: []string{"x", "y"}}
	catalog.Values[extract.ValueKey{Tag: "Point", Name: "origin"}] = &extract.Value{
		Kind:    extract.StructValue,
		Context: "Point",
		Type:    "Point",
		Name:    "origin",
		Bindings: []extract.FieldBinding{
			{Field: "x", Expr: extract.Expression{Kind: extract.ExprInteger, Text: "0"}},
			{Field: "y", Expr: extract.Expression{Kind: extract.ExprInteger, Text: "0"}},
		},
	}
	catalog.Values[extract.ValueKey{Name: "count"}] = &extract.Value{
		Kind: extract.ScalarValue,
		Name: "count",
		Expr: extract.Expression{Kind: extract.ExprInteger, Text: "3"},
	}
	if err := storeDB.SaveCatalog(catalog, "main.c"); err != nil {
		t.Fatalf("save catalog: %v", err)
	}

	s := NewWithStore(storeDB)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestExecuteTypesAll(t *testing.T) {
	s := newTestServer(t)

	result, err := s.executeTypes("")
	if err != nil {
		t.Fatalf("executeTypes: %v", err)
	}
	if !strings.Contains(result, "struct Point") {
		t.Errorf("result missing struct Point:\n%s", result)
	}
	if !strings.Contains(result, "  x\n  y\n") {
		t.Errorf("result missing fields:\n%s", result)
	}
}

func TestExecuteTypesByTag(t *testing.T) {
	s := newTestServer(t)

	result, err := s.executeTypes("Point")
	if err != nil {
		t.Fatalf("executeTypes: %v", err)
	}
	if !strings.Contains(result, "struct Point") {
		t.Errorf("result missing struct Point:\n%s", result)
	}

	if _, err := s.executeTypes("Nope"); err == nil {
		t.Error("expected error for unknown tag")
	}
}

func TestExecuteValues(t *testing.T) {
	s := newTestServer(t)

	result, err := s.executeValues("")
	if err != nil {
		t.Fatalf("executeValues: %v", err)
	}
	if !strings.Contains(result, "struct Point origin") {
		t.Errorf("result missing origin:\n%s", result)
	}
	if !strings.Contains(result, `count = Integer("3")`) {
		t.Errorf("result missing count:\n%s", result)
	}
}

func TestExecuteValuesByName(t *testing.T) {
	s := newTestServer(t)

	result, err := s.executeValues("origin")
	if err != nil {
		t.Fatalf("executeValues: %v", err)
	}
	if !strings.Contains(result, `.x = Integer("0")`) {
		t.Errorf("result missing binding:\n%s", result)
	}

	if _, err := s.executeValues("missing"); err == nil {
		t.Error("expected error for unknown name")
	}
}
