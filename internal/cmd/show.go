// Package cmd implements the show command for the cdump CLI.
package cmd

import (
	"fmt"

	"github.com/hargabyte/cdump/internal/config"
	"github.com/hargabyte/cdump/internal/output"
	"github.com/hargabyte/cdump/internal/store"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a persisted struct type or value by name",
	Long: `Show looks up a name in the persisted catalogs: first as a struct tag,
then as a declared value name. Requires a prior 'cdump scan'.

Examples:
  cdump show Point       # A struct type's ordered fields
  cdump show origin      # A value's bindings or expression`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// runShow implements the show command logic
func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]

	cdumpDir, err := config.FindConfigDir(".")
	if err != nil {
		return fmt.Errorf("no catalog found: run 'cdump scan' first")
	}

	storeDB, err := store.Open(cdumpDir)
	if err != nil {
		return err
	}
	defer storeDB.Close()

	found := false

	st, err := storeDB.StructType(name)
	if err != nil {
		return err
	}
	if st != nil {
		fmt.Print(output.FormatStructType(st))
		found = true
	}

	values, err := storeDB.ValuesNamed(name)
	if err != nil {
		return err
	}
	for _, v := range values {
		if found {
			fmt.Println()
		}
		fmt.Print(output.FormatValue(v))
		found = true
	}

	if !found {
		return fmt.Errorf("%q not found in the catalogs", name)
	}
	return nil
}
