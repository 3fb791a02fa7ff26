package cmd

import (
	"fmt"
	"os"

	"github.com/hargabyte/cdump/internal/config"
	"github.com/hargabyte/cdump/internal/extract"
	"github.com/hargabyte/cdump/internal/output"
	"github.com/hargabyte/cdump/internal/parser"
)

// Shared utility functions for command implementations

// resolveFormat picks the output format: the --format flag wins, then the
// config default.
func resolveFormat(cfg *config.Config) (output.Format, error) {
	if outputFormat != "" {
		return output.ParseFormat(outputFormat)
	}
	return output.ParseFormat(cfg.Output.Format)
}

// resolveInputFile picks the source file: a positional argument wins, then
// the --file flag, then the config default. The result has $VAR and ~
// expansion applied.
func resolveInputFile(args []string, fileFlag string, cfg *config.Config) (string, error) {
	path := cfg.Input.File
	if fileFlag != "" {
		path = fileFlag
	}
	if len(args) > 0 {
		path = args[0]
	}
	return expandPath(path)
}

// parseSource parses one C file, rejecting trees with syntax errors.
func parseSource(path string) (*parser.ParseResult, error) {
	p, err := parser.NewParser()
	if err != nil {
		return nil, fmt.Errorf("creating parser: %w", err)
	}
	defer p.Close()

	result, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}

	if result.HasErrors() {
		pe := &parser.ParseError{Message: "syntax error", File: path}
		if errNode := result.FirstError(); errNode != nil {
			pe.Line = errNode.StartPoint().Row + 1
			pe.Column = errNode.StartPoint().Column + 1
		}
		result.Close()
		return nil, pe
	}

	return result, nil
}

// printDiagnostics reports extraction findings on stderr. Errors are
// always shown; warnings only with --verbose.
func printDiagnostics(diags []extract.Diagnostic) {
	for _, d := range diags {
		if d.Level == extract.LevelWarn && !verbose {
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Level, d.Message)
	}
}
