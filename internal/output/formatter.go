package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hargabyte/cdump/internal/extract"
	"gopkg.in/yaml.v3"
)

// Document is the serializable form of one extraction run. Types and
// values are emitted in sorted order so output is stable across runs.
type Document struct {
	Types  []*extract.StructType `json:"types" yaml:"types"`
	Values []*extract.Value      `json:"values" yaml:"values"`
}

// NewDocument builds a document from a catalog.
func NewDocument(catalog *extract.Catalog) *Document {
	return &Document{
		Types:  catalog.SortedTypes(),
		Values: catalog.SortedValues(),
	}
}

// FormatCatalog renders a catalog in the requested format.
func FormatCatalog(catalog *extract.Catalog, format Format) (string, error) {
	doc := NewDocument(catalog)

	switch format {
	case FormatText, "":
		return formatText(doc), nil
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("marshaling yaml: %w", err)
		}
		return string(data), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling json: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatText renders the dump the way the tool's original audience reads
// it: the type catalog first, then one block per value.
func formatText(doc *Document) string {
	var b strings.Builder

	b.WriteString("Struct-Types:\n")
	for _, st := range doc.Types {
		fmt.Fprintf(&b, "struct %s\n", st.Tag)
		for _, field := range st.Fields {
			fmt.Fprintf(&b, "  %s\n", field)
		}
	}

	b.WriteString("\n")
	for _, v := range doc.Values {
		b.WriteString(FormatValue(v))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatValue renders a single value block: a header plus one indented
// line per field binding for struct instances, or a single binding line
// for scalars.
func FormatValue(v *extract.Value) string {
	var b strings.Builder
	if v.Kind == extract.StructValue {
		fmt.Fprintf(&b, "struct %s %s\n", v.Type, v.Name)
		for _, binding := range v.Bindings {
			fmt.Fprintf(&b, "  .%s = %s\n", binding.Field, binding.Expr)
		}
	} else {
		fmt.Fprintf(&b, "%s = %s\n", v.Name, v.Expr)
	}
	return b.String()
}

// FormatStructType renders a single type entry.
func FormatStructType(st *extract.StructType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "struct %s\n", st.Tag)
	for _, field := range st.Fields {
		fmt.Fprintf(&b, "  %s\n", field)
	}
	return b.String()
}
