// Package cmd implements the scan command for the cdump CLI.
package cmd

import (
	"fmt"

	"github.com/hargabyte/cdump/internal/config"
	"github.com/hargabyte/cdump/internal/extract"
	"github.com/hargabyte/cdump/internal/store"
	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Extract catalogs from a C file and persist them",
	Long: `Scan parses the given C source file, extracts the struct type and value
catalogs, and saves them to .cdump/catalog.db, replacing any previous
snapshot. The persisted catalogs back 'cdump show' and 'cdump serve'.

Examples:
  cdump scan                 # Scan the configured file
  cdump scan src/config.c    # Scan a specific file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

// Command-line flags
var scanFile string

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanFile, "file", "f", "", "C source file to scan (default from config)")
}

// runScan implements the scan command logic
func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	path, err := resolveInputFile(args, scanFile, cfg)
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

	cdumpDir, err := config.EnsureConfigDir(".")
	if err != nil {
		return err
	}

	storeDB, err := store.Open(cdumpDir)
	if err != nil {
		return err
	}
	defer storeDB.Close()

	if err := storeDB.SaveCatalog(catalog, path); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}

	fmt.Printf("Scanned %s: %d struct types, %d values\n",
		path, len(catalog.Types), len(catalog.Values))
	return nil
}
