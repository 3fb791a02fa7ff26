// Package cmd implements the dump command for the cdump CLI.
package cmd

import (
	"fmt"

	"github.com/hargabyte/cdump/internal/config"
	"github.com/hargabyte/cdump/internal/extract"
	"github.com/hargabyte/cdump/internal/output"
	"github.com/spf13/cobra"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Parse a C file and dump struct types and initialized values",
	Long: `Dump parses the given C source file (default ./main.c, configurable in
.cdump/config.yaml) and prints two catalogs: struct type definitions with
their ordered field names, and declared values. Struct instances are shown
with one line per field binding; scalars as name = expression.

Brace initializers are matched positionally against the struct's field
list, truncating to the shorter of the two. Nested brace groups are
flattened: every leaf inside binds to the enclosing field's name.

Examples:
  cdump dump                      # Dump the configured file
  cdump dump src/config.c         # Dump a specific file
  cdump dump -f '$HOME/main.c'    # Environment expansion is applied
  cdump dump --format yaml        # Machine-readable output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDump,
}

// Command-line flags
var dumpFile string

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringVarP(&dumpFile, "file", "f", "", "C source file to dump (default from config)")
}

// runDump implements the dump command logic
func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg)
	if err != nil {
		return err
	}

	path, err := resolveInputFile(args, dumpFile, cfg)
	if err != nil {
		return fmt.Errorf("expanding path: %w", err)
	}

	result, err := parseSource(path)
	if err != nil {
		return err
	}
	defer result.Close()

	ext := extract.New(result)
	catalog := ext.Extract()
	printDiagnostics(ext.Diagnostics())

	rendered, err := output.FormatCatalog(catalog, format)
	if err != nil {
		return err
	}

	fmt.Print(rendered)
	return nil
}
