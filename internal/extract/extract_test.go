package extract

import (
	"reflect"
	"testing"

	"github.com/hargabyte/cdump/internal/parser"
)

func parseCCode(t *testing.T, code string) *parser.ParseResult {
	t.Helper()
	p, err := parser.NewParser()
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	defer p.Close()

	result, err := p.Parse([]byte(code))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return result
}

func extractCode(t *testing.T, code string) (*Catalog, *Extractor) {
	t.Helper()
	result := parseCCode(t, code)
	t.Cleanup(result.Close)
	ext := New(result)
	return ext.Extract(), ext
}

func TestStructTypeFieldOrder(t *testing.T) {
	catalog, _ := extractCode(t, `
struct S {
    int a;
    int b;
    int c;
};
`)

	st := catalog.Types["S"]
	if st == nil {
		t.Fatal("struct S not cataloged")
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(st.Fields, want) {
		t.Errorf("fields = %v, want %v", st.Fields, want)
	}
}

func TestStructTypeSkipsComplexDeclarators(t *testing.T) {
	catalog, _ := extractCode(t, `
struct S {
    int a;
    int *p;
    int arr[4];
    int (*fp)(int);
    int bits : 3;
    char name;
};
`)

	st := catalog.Types["S"]
	if st == nil {
		t.Fatal("struct S not cataloged")
	}
	want := []string{"a", "name"}
	if !reflect.DeepEqual(st.Fields, want) {
		t.Errorf("fields = %v, want %v", st.Fields, want)
	}
}

func TestStructTypeAccumulatesAcrossRedefinition(t *testing.T) {
	catalog, _ := extractCode(t, `
struct D { int a; };
struct D { int a; };
`)

	st := catalog.Types["D"]
	if st == nil {
		t.Fatal("struct D not cataloged")
	}
	want := []string{"a", "a"}
	if !reflect.DeepEqual(st.Fields, want) {
		t.Errorf("fields = %v, want %v", st.Fields, want)
	}
}

func TestStructInstanceTruncatedZip(t *testing.T) {
	catalog, _ := extractCode(t, `
struct S { int a; int b; int c; };
struct S x = {1, 2};
`)

	v := catalog.Values[ValueKey{Tag: "S", Name: "x"}]
	if v == nil {
		t.Fatal("value x not cataloged")
	}
	if v.Kind != StructValue {
		t.Fatalf("kind = %v, want struct", v.Kind)
	}
	want := []FieldBinding{
		{Field: "a", Expr: Expression{Kind: ExprInteger, Text: "1"}},
		{Field: "b", Expr: Expression{Kind: ExprInteger, Text: "2"}},
	}
	if !reflect.DeepEqual(v.Bindings, want) {
		t.Errorf("bindings = %v, want %v", v.Bindings, want)
	}
}

func TestStructInstanceExcessElementsDropped(t *testing.T) {
	catalog, _ := extractCode(t, `
struct S { int a; };
struct S x = {1, 2, 3};
`)

	v := catalog.Values[ValueKey{Tag: "S", Name: "x"}]
	if v == nil {
		t.Fatal("value x not cataloged")
	}
	if len(v.Bindings) != 1 {
		t.Fatalf("bindings = %v, want one binding", v.Bindings)
	}
	if v.Bindings[0].Field != "a" || v.Bindings[0].Expr.Text != "1" {
		t.Errorf("bindings[0] = %v, want a=1", v.Bindings[0])
	}
}

func TestNestedInitializerFlattensOntoOuterField(t *testing.T) {
	catalog, _ := extractCode(t, `
struct S { int a; int b; int c; };
struct S x = {{1, 2}, 3};
`)

	v := catalog.Values[ValueKey{Tag: "S", Name: "x"}]
	if v == nil {
		t.Fatal("value x not cataloged")
	}
	want := []FieldBinding{
		{Field: "a", Expr: Expression{Kind: ExprInteger, Text: "1"}},
		{Field: "a", Expr: Expression{Kind: ExprInteger, Text: "2"}},
		{Field: "b", Expr: Expression{Kind: ExprInteger, Text: "3"}},
	}
	if !reflect.DeepEqual(v.Bindings, want) {
		t.Errorf("bindings = %v, want %v", v.Bindings, want)
	}
}

func TestDesignatorsMatchedPositionally(t *testing.T) {
	catalog, _ := extractCode(t, `
struct P { int x; int y; };
struct P p = {.y = 5, 1};
`)

	v := catalog.Values[ValueKey{Tag: "P", Name: "p"}]
	if v == nil {
		t.Fatal("value p not cataloged")
	}
	want := []FieldBinding{
		{Field: "x", Expr: Expression{Kind: ExprInteger, Text: "5"}},
		{Field: "y", Expr: Expression{Kind: ExprInteger, Text: "1"}},
	}
	if !reflect.DeepEqual(v.Bindings, want) {
		t.Errorf("bindings = %v, want %v", v.Bindings, want)
	}
}

func TestScalarFirstWriteWins(t *testing.T) {
	catalog, _ := extractCode(t, `
int n = 5;
int n = 7;
`)

	v := catalog.Values[ValueKey{Name: "n"}]
	if v == nil {
		t.Fatal("value n not cataloged")
	}
	if v.Kind != ScalarValue {
		t.Fatalf("kind = %v, want scalar", v.Kind)
	}
	if v.Expr.Text != "5" {
		t.Errorf("expr = %v, want Integer(\"5\")", v.Expr)
	}
}

func TestPointerScalarRecorded(t *testing.T) {
	catalog, _ := extractCode(t, `
int n = 1;
int *p = &n;
`)

	v := catalog.Values[ValueKey{Name: "p"}]
	if v == nil {
		t.Fatal("value p not cataloged")
	}
	if v.Expr.Kind != ExprOpaque {
		t.Errorf("expr kind = %v, want opaque", v.Expr.Kind)
	}
}

func TestUnknownStructTypeSkippedWithDiagnostic(t *testing.T) {
	// T is only referenced, never defined, so its instance cannot be
	// zipped against a field list.
	catalog, ext := extractCode(t, `
struct T y = {1, 2};
`)

	if v := catalog.Values[ValueKey{Tag: "T", Name: "y"}]; v != nil {
		t.Errorf("instance of unknown type was cataloged: %v", v)
	}
	var errs int
	for _, d := range ext.Diagnostics() {
		if d.Level == LevelError {
			errs++
		}
	}
	if errs != 1 {
		t.Errorf("error diagnostics = %d, want 1", errs)
	}
}

func TestFieldWithoutTagWarns(t *testing.T) {
	catalog, ext := extractCode(t, `
struct { int q; } anon;
`)

	if len(catalog.Types) != 0 {
		t.Errorf("types = %v, want empty catalog", catalog.Types)
	}
	var warns int
	for _, d := range ext.Diagnostics() {
		if d.Level == LevelWarn {
			warns++
		}
	}
	if warns != 1 {
		t.Errorf("warning diagnostics = %d, want 1", warns)
	}
}

func TestTagContextLeaksToSiblings(t *testing.T) {
	// The current-tag slot is not restored on subtree exit: the anonymous
	// struct's field lands under the last tag seen.
	catalog, _ := extractCode(t, `
struct S { int a; };
struct { int q; } anon;
`)

	st := catalog.Types["S"]
	if st == nil {
		t.Fatal("struct S not cataloged")
	}
	want := []string{"a", "q"}
	if !reflect.DeepEqual(st.Fields, want) {
		t.Errorf("fields = %v, want %v", st.Fields, want)
	}
}

func TestNestedDeclarationsFound(t *testing.T) {
	catalog, _ := extractCode(t, `
void f(void) {
    int inner = 42;
}
`)

	v := catalog.Values[ValueKey{Name: "inner"}]
	if v == nil {
		t.Fatal("nested declaration not found")
	}
	if v.Expr.Text != "42" {
		t.Errorf("expr = %v, want Integer(\"42\")", v.Expr)
	}
}

func TestExtractDeterminism(t *testing.T) {
	code := `
struct S { int a; int b; };
struct S x = {1, "two"};
int n = 5;
float g = 1.5;
`
	result := parseCCode(t, code)
	defer result.Close()

	first := New(result).Extract()
	second := New(result).Extract()

	if !reflect.DeepEqual(first.SortedTypes(), second.SortedTypes()) {
		t.Error("sorted types differ across fresh runs")
	}
	if !reflect.DeepEqual(first.SortedValues(), second.SortedValues()) {
		t.Error("sorted values differ across fresh runs")
	}
}
