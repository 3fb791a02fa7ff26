// Package output renders extracted catalogs as text, YAML, or JSON.
package output

import (
	"fmt"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is the default human-readable dump.
	FormatText Format = "text"

	// FormatYAML is the YAML output format.
	FormatYAML Format = "yaml"

	// FormatJSON is the JSON output format.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string into a Format value.
// Accepts: "text", "yaml", "json" (case-insensitive).
// Returns an error for invalid format values.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return FormatText, nil
	case "yaml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected text, yaml, or json)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}
