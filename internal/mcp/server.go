// Package mcp provides an MCP (Model Context Protocol) server for cdump.
// This allows AI agents to query the persisted struct and value catalogs
// through MCP tools instead of CLI commands.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/hargabyte/cdump/internal/config"
	"github.com/hargabyte/cdump/internal/output"
	"github.com/hargabyte/cdump/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with cdump-specific functionality.
type Server struct {
	mcpServer *server.MCPServer
	store     *store.Store
}

// New creates an MCP server over the catalog store found from the
// current working directory.
func New() (*Server, error) {
	cdumpDir, err := config.FindConfigDir(".")
	if err != nil {
		return nil, fmt.Errorf("cdump not initialized: run 'cdump scan' first")
	}

	storeDB, err := store.Open(cdumpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return NewWithStore(storeDB), nil
}

// NewWithStore creates an MCP server over an already-open store.
// The server takes ownership of the store and closes it on Close.
func NewWithStore(storeDB *store.Store) *Server {
	mcpServer := server.NewMCPServer(
		"cdump",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     storeDB,
	}

	s.registerTypesTool()
	s.registerValuesTool()

	return s
}

// ServeStdio starts the server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Close closes the server and its resources.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// registerTypesTool registers the cdump_types tool.
func (s *Server) registerTypesTool() {
	tool := mcp.NewTool("cdump_types",
		mcp.WithDescription("List cataloged C struct types with their ordered field names."),
		mcp.WithString("tag",
			mcp.Description("Filter to one struct tag"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleTypes)
}

// registerValuesTool registers the cdump_values tool.
func (s *Server) registerValuesTool() {
	tool := mcp.NewTool("cdump_values",
		mcp.WithDescription("List cataloged initialized values: struct instances with field bindings and scalars."),
		mcp.WithString("name",
			mcp.Description("Filter to values with this declared name"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleValues)
}

func (s *Server) handleTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	tag, _ := args["tag"].(string)

	result, err := s.executeTypes(tag)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleValues(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, _ := args["name"].(string)

	result, err := s.executeValues(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

// executeTypes renders the type catalog, optionally filtered to one tag.
func (s *Server) executeTypes(tag string) (string, error) {
	if tag != "" {
		st, err := s.store.StructType(tag)
		if err != nil {
			return "", err
		}
		if st == nil {
			return "", fmt.Errorf("struct %q not found", tag)
		}
		return output.FormatStructType(st), nil
	}

	catalog, err := s.store.LoadCatalog()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, st := range catalog.SortedTypes() {
		b.WriteString(output.FormatStructType(st))
	}
	if b.Len() == 0 {
		return "no struct types cataloged\n", nil
	}
	return b.String(), nil
}

// executeValues renders the value catalog, optionally filtered by name.
func (s *Server) executeValues(name string) (string, error) {
	if name != "" {
		values, err := s.store.ValuesNamed(name)
		if err != nil {
			return "", err
		}
		if len(values) == 0 {
			return "", fmt.Errorf("value %q not found", name)
		}
		var b strings.Builder
		for _, v := range values {
			b.WriteString(output.FormatValue(v))
		}
		return b.String(), nil
	}

	catalog, err := s.store.LoadCatalog()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, v := range catalog.SortedValues() {
		b.WriteString(output.FormatValue(v))
	}
	if b.Len() == 0 {
		return "no values cataloged\n", nil
	}
	return b.String(), nil
}
