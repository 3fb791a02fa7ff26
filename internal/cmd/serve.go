// Package cmd implements the serve command for the cdump CLI.
package cmd

import (
	"github.com/hargabyte/cdump/internal/mcp"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP server over the persisted catalogs",
	Long: `Serve starts an MCP (Model Context Protocol) server on stdio, exposing
the persisted catalogs to AI agents through two tools:

  cdump_types    List struct types, optionally filtered by tag
  cdump_values   List values, optionally filtered by declared name

Requires a prior 'cdump scan'.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe implements the serve command logic
func runServe(cmd *cobra.Command, args []string) error {
	server, err := mcp.New()
	if err != nil {
		return err
	}
	defer server.Close()

	return server.ServeStdio()
}
