package extract

import "fmt"

// BadDeclaratorError is returned when an initialized declarator is not a
// simple identifier. The extraction skips the declaration and continues.
type BadDeclaratorError struct {
	Got string // node type of the declarator that was found
}

// Error implements the error interface.
func (e *BadDeclaratorError) Error() string {
	return fmt.Sprintf("expected an identifier declarator, got %s", e.Got)
}

// UnknownStructTypeError is returned when a struct instance initializer
// references a tag with no entry in the type catalog, which happens when
// the type is forward-referenced or was never defined in this unit.
type UnknownStructTypeError struct {
	Tag      string
	Instance string
}

// Error implements the error interface.
func (e *UnknownStructTypeError) Error() string {
	return fmt.Sprintf("struct type %q not found for instance %q", e.Tag, e.Instance)
}

// Level is the severity of a diagnostic.
type Level string

const (
	// LevelWarn marks anomalies the extraction recovers from silently.
	LevelWarn Level = "warn"
	// LevelError marks declarations the extraction had to skip.
	LevelError Level = "error"
)

// Diagnostic is a non-fatal finding collected during extraction.
type Diagnostic struct {
	Level   Level
	Message string
}
